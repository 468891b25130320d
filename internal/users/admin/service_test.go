// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package admin_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/internal/users/admin"
	"github.com/luanpsilva/ludoteca/internal/users/auth"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// fakeRepository is an in-memory [admin.Repository].
type fakeRepository struct {
	users map[string]*auth.User
}

func newFakeRepository(users ...*auth.User) *fakeRepository {
	repo := &fakeRepository{users: map[string]*auth.User{}}
	for _, user := range users {
		clone := *user
		repo.users[user.ID] = &clone
	}
	return repo
}

func (repo *fakeRepository) List(_ context.Context, _ admin.ListFilter, _ pagination.Params) ([]admin.UserSummary, int, error) {
	var out []admin.UserSummary
	for _, user := range repo.users {
		out = append(out, admin.UserSummary{ID: user.ID, Username: user.Username, Role: user.Role, Status: user.Status})
	}
	return out, len(out), nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repo *fakeRepository) SetRole(_ context.Context, userID string, newRole role.Role, promotedAt *time.Time) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Role = newRole
	if promotedAt != nil {
		user.PromotedAt = promotedAt
	}
	return nil
}

func (repo *fakeRepository) SetStatus(_ context.Context, userID string, newStatus auth.Status) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Status = newStatus
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, userID string) error {
	if _, ok := repo.users[userID]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.users, userID)
	return nil
}

func (repo *fakeRepository) CollectStats(_ context.Context, _ time.Time) (*admin.Stats, error) {
	return &admin.Stats{TotalUsers: len(repo.users)}, nil
}

// fakeRevoker records RevokeAll calls.
type fakeRevoker struct {
	revoked []string
}

func (revoker *fakeRevoker) RevokeAll(_ context.Context, userID string) error {
	revoker.revoked = append(revoker.revoked, userID)
	return nil
}

func newTestService(repo *fakeRepository, revoker *fakeRevoker) *admin.Service {
	return admin.NewService(repo, revoker, slog.New(slog.DiscardHandler))
}

func member(id string) *auth.User {
	return &auth.User{
		ID:       id,
		Username: "user-" + id,
		Role:     role.Member,
		Status:   auth.StatusActive,
	}
}

func TestSetRole_SelfTargetForbidden(t *testing.T) {
	service := newTestService(newFakeRepository(member("admin-1")), &fakeRevoker{})

	_, err := service.SetRole(context.Background(), "admin-1", "admin-1", role.VIP)

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestSetRole_UnknownRoleRejected(t *testing.T) {
	service := newTestService(newFakeRepository(member("u1")), &fakeRevoker{})

	_, err := service.SetRole(context.Background(), "admin-1", "u1", role.Role("superuser"))

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestSetRole_ManualPromotionStampsTimestamp(t *testing.T) {
	repo := newFakeRepository(member("u1"))
	service := newTestService(repo, &fakeRevoker{})

	updated, err := service.SetRole(context.Background(), "admin-1", "u1", role.MemberPlus)

	require.NoError(t, err)
	assert.Equal(t, role.MemberPlus, updated.Role)
	require.NotNil(t, updated.PromotedAt)
	assert.WithinDuration(t, time.Now(), *updated.PromotedAt, time.Minute)
}

func TestSetRole_ExistingPromotionTimestampPreserved(t *testing.T) {
	promoted := time.Now().Add(-30 * 24 * time.Hour)
	user := member("u1")
	user.Role = role.VIP
	user.PromotedAt = &promoted

	repo := newFakeRepository(user)
	service := newTestService(repo, &fakeRevoker{})

	// Demote back to membro+; the original promotion instant must survive.
	updated, err := service.SetRole(context.Background(), "admin-1", "u1", role.MemberPlus)

	require.NoError(t, err)
	require.NotNil(t, updated.PromotedAt)
	assert.True(t, updated.PromotedAt.Equal(promoted))
}

func TestSetStatus_SuspensionRevokesSessions(t *testing.T) {
	tests := []struct {
		name       string
		status     auth.Status
		wantRevoke bool
	}{
		{"banned", auth.StatusBanned, true},
		{"disabled", auth.StatusDisabled, true},
		{"reactivated", auth.StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			revoker := &fakeRevoker{}
			service := newTestService(newFakeRepository(member("u1")), revoker)

			updated, err := service.SetStatus(context.Background(), "admin-1", "u1", tt.status)

			require.NoError(t, err)
			assert.Equal(t, tt.status, updated.Status)
			if tt.wantRevoke {
				assert.Equal(t, []string{"u1"}, revoker.revoked)
			} else {
				assert.Empty(t, revoker.revoked)
			}
		})
	}
}

func TestSetStatus_SelfTargetForbidden(t *testing.T) {
	service := newTestService(newFakeRepository(member("admin-1")), &fakeRevoker{})

	_, err := service.SetStatus(context.Background(), "admin-1", "admin-1", auth.StatusBanned)

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestSetStatus_UnknownStatusRejected(t *testing.T) {
	service := newTestService(newFakeRepository(member("u1")), &fakeRevoker{})

	_, err := service.SetStatus(context.Background(), "admin-1", "u1", auth.Status("frozen"))

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeRepository(member("u1"))
	revoker := &fakeRevoker{}
	service := newTestService(repo, revoker)

	require.NoError(t, service.DeleteUser(context.Background(), "admin-1", "u1"))
	assert.Empty(t, repo.users)
	assert.Equal(t, []string{"u1"}, revoker.revoked)

	err := service.DeleteUser(context.Background(), "admin-1", "admin-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}
