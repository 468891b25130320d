// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package account_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/internal/users/account"
	"github.com/luanpsilva/ludoteca/internal/users/auth"
	"github.com/luanpsilva/ludoteca/pkg/pointer"
)

// fakeAccounts is an in-memory [account.AccountRepository].
type fakeAccounts struct {
	users map[string]*auth.User
}

func newFakeAccounts(users ...*auth.User) *fakeAccounts {
	repo := &fakeAccounts{users: map[string]*auth.User{}}
	for _, user := range users {
		clone := *user
		repo.users[user.ID] = &clone
	}
	return repo
}

func (repo *fakeAccounts) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repo *fakeAccounts) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeAccounts) Update(_ context.Context, user *auth.User) error {
	if _, ok := repo.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *fakeAccounts) SoftDelete(_ context.Context, id string) error {
	delete(repo.users, id)
	return nil
}

// fakePreferences is an in-memory [account.PreferencesRepository].
type fakePreferences struct {
	prefs map[string]*account.Preferences
}

func newFakePreferences() *fakePreferences {
	return &fakePreferences{prefs: map[string]*account.Preferences{}}
}

func (repo *fakePreferences) FindByUserID(_ context.Context, userID string) (*account.Preferences, error) {
	prefs, ok := repo.prefs[userID]
	if !ok {
		return nil, apperr.NotFound("Preferences")
	}
	clone := *prefs
	return &clone, nil
}

func (repo *fakePreferences) Upsert(_ context.Context, prefs *account.Preferences) error {
	clone := *prefs
	repo.prefs[prefs.UserID] = &clone
	return nil
}

// fakeSessions records revocations; listing is not exercised here.
type fakeSessions struct {
	revokedAll []string
}

func (repo *fakeSessions) FindActiveByUserID(_ context.Context, _ string) ([]account.SessionInfo, error) {
	return nil, nil
}

func (repo *fakeSessions) Revoke(_ context.Context, _, _ string) error { return nil }

func (repo *fakeSessions) RevokeOthers(_ context.Context, _, _ string) error { return nil }

func (repo *fakeSessions) RevokeAll(_ context.Context, userID string) error {
	repo.revokedAll = append(repo.revokedAll, userID)
	return nil
}

func newTestService(accounts *fakeAccounts, sessions *fakeSessions) *account.Service {
	return account.NewService(accounts, newFakePreferences(), sessions, slog.New(slog.DiscardHandler))
}

func testUser(id string, tier role.Role) *auth.User {
	return &auth.User{
		ID:        id,
		Username:  "ana",
		Email:     "ana@ludoteca.app.br",
		Role:      tier,
		Status:    auth.StatusActive,
		CreatedAt: time.Now().Add(-10 * 24 * time.Hour),
	}
}

func TestGetPublicProfile_StripsEmail(t *testing.T) {
	service := newTestService(newFakeAccounts(testUser("u1", role.Member)), &fakeSessions{})

	user, err := service.GetPublicProfile(context.Background(), "ana")

	require.NoError(t, err)
	assert.Empty(t, user.Email)
	assert.Equal(t, "ana", user.Username)
}

func TestUpdateProfile_AvatarIsTierGated(t *testing.T) {
	tests := []struct {
		name   string
		role   role.Role
		denied bool
	}{
		{"membro_denied", role.Member, true},
		{"membro_plus_allowed", role.MemberPlus, false},
		{"vip_allowed", role.VIP, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeAccounts(testUser("u1", tt.role)), &fakeSessions{})

			updated, err := service.UpdateProfile(context.Background(), "u1", account.UpdateProfileInput{
				AvatarURL: pointer.To("https://cdn.ludoteca.app.br/avatars/ana.png"),
			})

			if tt.denied {
				require.Error(t, err)
				assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, updated.AvatarURL)
		})
	}
}

func TestUpdateProfile_MembroCanStillEditNameAndBio(t *testing.T) {
	accounts := newFakeAccounts(testUser("u1", role.Member))
	service := newTestService(accounts, &fakeSessions{})

	updated, err := service.UpdateProfile(context.Background(), "u1", account.UpdateProfileInput{
		DisplayName: pointer.To("Ana Livia"),
		Bio:         pointer.To("SNES translation enthusiast."),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Livia", updated.DisplayName)
	assert.Equal(t, "SNES translation enthusiast.", updated.Bio)
}

func TestGetPromotionStatus(t *testing.T) {
	t.Run("aged_membro_is_eligible", func(t *testing.T) {
		service := newTestService(newFakeAccounts(testUser("u1", role.Member)), &fakeSessions{})

		status, err := service.GetPromotionStatus(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, role.Member, status.Role)
		assert.True(t, status.Eligibility.Eligible)
		assert.False(t, status.Permissions.CanCreatePosts)
	})

	t.Run("fresh_membro_has_countdown", func(t *testing.T) {
		fresh := testUser("u1", role.Member)
		fresh.CreatedAt = time.Now().Add(-24*time.Hour + time.Minute)
		service := newTestService(newFakeAccounts(fresh), &fakeSessions{})

		status, err := service.GetPromotionStatus(context.Background(), "u1")

		require.NoError(t, err)
		assert.False(t, status.Eligibility.Eligible)
		require.NotNil(t, status.Eligibility.Remaining)
		assert.Equal(t, 2, status.Eligibility.Remaining.Days)
	})

	t.Run("promoted_tier_is_not_eligible", func(t *testing.T) {
		service := newTestService(newFakeAccounts(testUser("u1", role.VIP)), &fakeSessions{})

		status, err := service.GetPromotionStatus(context.Background(), "u1")

		require.NoError(t, err)
		assert.False(t, status.Eligibility.Eligible)
		assert.Nil(t, status.Eligibility.Remaining)
		assert.True(t, status.Permissions.CanUseGif)
	})
}

func TestDeleteAccount_RevokesAllSessions(t *testing.T) {
	accounts := newFakeAccounts(testUser("u1", role.Member))
	sessions := &fakeSessions{}
	service := newTestService(accounts, sessions)

	require.NoError(t, service.DeleteAccount(context.Background(), "u1"))

	assert.Empty(t, accounts.users)
	assert.Equal(t, []string{"u1"}, sessions.revokedAll)
}

func TestGetPreferences_DefaultsWhenUnset(t *testing.T) {
	service := newTestService(newFakeAccounts(testUser("u1", role.Member)), &fakeSessions{})

	prefs, err := service.GetPreferences(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "system", prefs.Theme)
	assert.Equal(t, 20, prefs.PostsPerPage)
	assert.True(t, prefs.ShowAnimated)
	assert.True(t, prefs.ShowGifs)
	assert.True(t, prefs.HideNSFW)
	assert.Equal(t, "pt-BR", prefs.Language)
}

func TestUpdateThenGetPreferences(t *testing.T) {
	prefsRepo := newFakePreferences()
	service := account.NewService(
		newFakeAccounts(testUser("u1", role.Member)),
		prefsRepo,
		&fakeSessions{},
		slog.New(slog.DiscardHandler),
	)

	err := service.UpdatePreferences(context.Background(), &account.Preferences{
		UserID:       "u1",
		Theme:        "dark",
		PostsPerPage: 50,
		Language:     "pt-BR",
	})
	require.NoError(t, err)

	prefs, err := service.GetPreferences(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "dark", prefs.Theme)
	assert.Equal(t, 50, prefs.PostsPerPage)
	assert.WithinDuration(t, time.Now(), prefs.UpdatedAt, time.Minute)
}
