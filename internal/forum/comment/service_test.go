// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package comment_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanpsilva/ludoteca/internal/forum/comment"
	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// fakeRepository is an in-memory [comment.Repository].
type fakeRepository struct {
	comments map[string]*comment.Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: map[string]*comment.Comment{}}
}

func (repo *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	clone := *c
	repo.comments[c.ID] = &clone
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	c, ok := repo.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	clone := *c
	return &clone, nil
}

func (repo *fakeRepository) ListByPost(_ context.Context, postID string, _ pagination.Params) ([]comment.Comment, int, error) {
	var out []comment.Comment
	for _, c := range repo.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepository) SoftDelete(_ context.Context, id string) error {
	if _, ok := repo.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, id)
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

func newTestService(repo *fakeRepository, posts fakePosts) *comment.Service {
	return comment.NewService(repo, posts, slog.New(slog.DiscardHandler))
}

func validInput(authorRole role.Role) comment.AddInput {
	return comment.AddInput{
		PostID:     "post-1",
		AuthorID:   "user-1",
		AuthorRole: authorRole,
		Body:       "Works perfectly on my Everdrive, thanks!",
	}
}

func TestAddComment_TierGate(t *testing.T) {
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
			service := newTestService(newFakeRepository(), fakePosts{"post-1": "author-1"})

			created, err := service.AddComment(context.Background(), validInput(tt.role))

			if tt.denied {
				require.Error(t, err)
				assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
		})
	}
}

func TestAddComment_GifRequiresPrivilege(t *testing.T) {
	tests := []struct {
		name   string
		role   role.Role
		denied bool
	}{
		{"membro_plus_denied", role.MemberPlus, true},
		{"vip_allowed", role.VIP, false},
		{"vip_plus_allowed", role.VIPPlus, false},
		{"admin_allowed", role.Admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository(), fakePosts{"post-1": "author-1"})

			input := validInput(tt.role)
			input.GifURL = "https://media.tenor.com/abc/reaction.gif"

			created, err := service.AddComment(context.Background(), input)

			if tt.denied {
				require.Error(t, err)
				assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, input.GifURL, created.GifURL)
		})
	}
}

func TestAddComment_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*comment.AddInput)
	}{
		{"empty_body", func(in *comment.AddInput) { in.Body = "" }},
		{"oversized_body", func(in *comment.AddInput) {
			in.Body = strings.Repeat("a", comment.MaxBodyLength+1)
		}},
		{"bad_gif_url", func(in *comment.AddInput) {
			in.AuthorRole = role.VIP
			in.GifURL = "not-a-url"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository(), fakePosts{"post-1": "author-1"})

			input := validInput(role.VIP)
			tt.mutate(&input)

			_, err := service.AddComment(context.Background(), input)

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

func TestAddComment_UnknownPost(t *testing.T) {
	service := newTestService(newFakeRepository(), fakePosts{})

	_, err := service.AddComment(context.Background(), validInput(role.VIP))

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteComment_AuthorOrAdmin(t *testing.T) {
	tests := []struct {
		name    string
		actorID string
		role    role.Role
		wantErr bool
	}{
		{"author", "user-1", role.MemberPlus, false},
		{"admin", "mod-1", role.Admin, false},
		{"stranger_vip_plus", "stranger", role.VIPPlus, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := newTestService(repo, fakePosts{"post-1": "author-1"})

			created, err := service.AddComment(context.Background(), validInput(role.MemberPlus))
			require.NoError(t, err)

			err = service.DeleteComment(context.Background(), tt.actorID, tt.role, created.ID)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, repo.comments)
		})
	}
}
