// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package rating_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanpsilva/ludoteca/internal/forum/rating"
	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
)

// fakeRepository is an in-memory [rating.Repository] keyed by post and user.
type fakeRepository struct {
	ratings map[string]*rating.Rating
}

func key(postID, userID string) string { return postID + "/" + userID }

func newFakeRepository() *fakeRepository {
	return &fakeRepository{ratings: map[string]*rating.Rating{}}
}

func (repo *fakeRepository) Upsert(_ context.Context, r *rating.Rating) (bool, error) {
	k := key(r.PostID, r.UserID)
	_, exists := repo.ratings[k]
	clone := *r
	repo.ratings[k] = &clone
	return !exists, nil
}

func (repo *fakeRepository) Find(_ context.Context, postID, userID string) (*rating.Rating, error) {
	r, ok := repo.ratings[key(postID, userID)]
	if !ok {
		return nil, apperr.NotFound("Rating")
	}
	clone := *r
	return &clone, nil
}

func (repo *fakeRepository) Delete(_ context.Context, postID, userID string) error {
	k := key(postID, userID)
	if _, ok := repo.ratings[k]; !ok {
		return apperr.NotFound("Rating")
	}
	delete(repo.ratings, k)
	return nil
}

// fakePosts maps post IDs to author IDs.
type fakePosts map[string]string

func (posts fakePosts) AuthorOf(_ context.Context, postID string) (string, error) {
	author, ok := posts[postID]
	if !ok {
		return "", apperr.NotFound("Post")
	}
	return author, nil
}

func newTestService(repo *fakeRepository, posts fakePosts) *rating.Service {
	return rating.NewService(repo, posts, slog.New(slog.DiscardHandler))
}

func TestRatePost_TierGate(t *testing.T) {
	tests := []struct {
		name   string
		role   role.Role
		denied bool
	}{
		{"membro_denied", role.Member, true},
		{"membro_plus_allowed", role.MemberPlus, false},
		{"admin_allowed", role.Admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository(), fakePosts{"post-1": "author-1"})

			_, err := service.RatePost(context.Background(), "rater-1", tt.role, "post-1", 4)

			if tt.denied {
				require.Error(t, err)
				assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRatePost_StarsRange(t *testing.T) {
	tests := []struct {
		name    string
		stars   int
		wantErr bool
	}{
		{"zero", 0, true},
		{"min", 1, false},
		{"max", 5, false},
		{"six", 6, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository(), fakePosts{"post-1": "author-1"})

			stored, err := service.RatePost(context.Background(), "rater-1", role.VIP, "post-1", tt.stars)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.stars, stored.Stars)
		})
	}
}

func TestRatePost_SelfRatingForbidden(t *testing.T) {
	service := newTestService(newFakeRepository(), fakePosts{"post-1": "author-1"})

	_, err := service.RatePost(context.Background(), "author-1", role.VIP, "post-1", 5)

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestRatePost_UnknownPost(t *testing.T) {
	service := newTestService(newFakeRepository(), fakePosts{})

	_, err := service.RatePost(context.Background(), "rater-1", role.VIP, "ghost", 3)

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRatePost_ReplacesPreviousRating(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, fakePosts{"post-1": "author-1"})

	_, err := service.RatePost(context.Background(), "rater-1", role.VIP, "post-1", 2)
	require.NoError(t, err)

	_, err = service.RatePost(context.Background(), "rater-1", role.VIP, "post-1", 5)
	require.NoError(t, err)

	// One row per user per post, holding the latest value.
	require.Len(t, repo.ratings, 1)
	stored, err := service.GetOwn(context.Background(), "post-1", "rater-1")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stars)
}

func TestRemoveRating(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, fakePosts{"post-1": "author-1"})

	_, err := service.RatePost(context.Background(), "rater-1", role.VIP, "post-1", 4)
	require.NoError(t, err)

	require.NoError(t, service.RemoveRating(context.Background(), "rater-1", "post-1"))
	assert.Empty(t, repo.ratings)

	err = service.RemoveRating(context.Background(), "rater-1", "post-1")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
