// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package post_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanpsilva/ludoteca/internal/forum/post"
	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// fakeRepository is an in-memory [post.Repository].
type fakeRepository struct {
	posts map[string]*post.Post

	viewBumps int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{posts: map[string]*post.Post{}}
}

func (repo *fakeRepository) Create(_ context.Context, p *post.Post) error {
	for _, existing := range repo.posts {
		if existing.Slug == p.Slug {
			return apperr.Conflict("A post with this title already exists.")
		}
	}
	clone := *p
	repo.posts[p.ID] = &clone
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*post.Post, error) {
	p, ok := repo.posts[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	clone := *p
	return &clone, nil
}

func (repo *fakeRepository) FindBySlug(_ context.Context, slug string) (*post.Post, error) {
	for _, p := range repo.posts {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Post")
}

func (repo *fakeRepository) List(_ context.Context, _ post.ListFilter, _ pagination.Params) ([]post.Post, int, error) {
	var out []post.Post
	for _, p := range repo.posts {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (repo *fakeRepository) Update(_ context.Context, p *post.Post) error {
	if _, ok := repo.posts[p.ID]; !ok {
		return apperr.NotFound("Post")
	}
	clone := *p
	repo.posts[p.ID] = &clone
	return nil
}

func (repo *fakeRepository) SoftDelete(_ context.Context, id string) error {
	if _, ok := repo.posts[id]; !ok {
		return apperr.NotFound("Post")
	}
	delete(repo.posts, id)
	return nil
}

func (repo *fakeRepository) AuthorOf(_ context.Context, postID string) (string, error) {
	p, ok := repo.posts[postID]
	if !ok {
		return "", apperr.NotFound("Post")
	}
	return p.AuthorID, nil
}

func (repo *fakeRepository) IncrementViews(_ context.Context, id string) error {
	p, ok := repo.posts[id]
	if !ok {
		return apperr.NotFound("Post")
	}
	p.ViewCount++
	repo.viewBumps++
	return nil
}

func newTestService(repo *fakeRepository) *post.Service {
	return post.NewService(repo, slog.New(slog.DiscardHandler))
}

func validCreateInput(authorRole role.Role) post.CreateInput {
	return post.CreateInput{
		AuthorID:    "author-1",
		AuthorRole:  authorRole,
		Title:       "Chrono Trigger PT-BR",
		Description: "Full translation patch, pre-applied.",
		Tags:        []string{"snes", "rpg"},
		DownloadLinks: []post.DownloadLink{
			{Label: "Mega", URL: "https://mega.nz/file/abc123"},
		},
	}
}

func TestCreatePost_TierGate(t *testing.T) {
	tests := []struct {
		name    string
		role    role.Role
		wantErr string
	}{
		{"membro_denied", role.Member, "PERMISSION_DENIED"},
		{"membro_plus_allowed", role.MemberPlus, ""},
		{"vip_allowed", role.VIP, ""},
		{"admin_allowed", role.Admin, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository())

			created, err := service.CreatePost(context.Background(), validCreateInput(tt.role))

			if tt.wantErr != "" {
				require.Error(t, err)
				require.True(t, apperr.IsAppError(err))
				assert.Equal(t, tt.wantErr, apperr.As(err).Code)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.Equal(t, "chrono-trigger-pt-br", created.Slug)
		})
	}
}

func TestCreatePost_AnimatedRequiresPrivilege(t *testing.T) {
	service := newTestService(newFakeRepository())

	input := validCreateInput(role.MemberPlus)
	input.IsAnimated = true

	_, err := service.CreatePost(context.Background(), input)

	require.Error(t, err)
	assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)

	// vip+ carries the animated decoration privilege.
	input.AuthorRole = role.VIPPlus
	created, err := service.CreatePost(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, created.IsAnimated)
}

func TestCreatePost_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*post.CreateInput)
	}{
		{"empty_title", func(in *post.CreateInput) { in.Title = "" }},
		{"short_title", func(in *post.CreateInput) { in.Title = "ab" }},
		{"no_links", func(in *post.CreateInput) { in.DownloadLinks = nil }},
		{"bad_link_host", func(in *post.CreateInput) {
			in.DownloadLinks = []post.DownloadLink{{Label: "X", URL: "https://evil.example.com/f"}}
		}},
		{"plain_http_link", func(in *post.CreateInput) {
			in.DownloadLinks = []post.DownloadLink{{Label: "X", URL: "http://mega.nz/f"}}
		}},
		{"too_many_tags", func(in *post.CreateInput) {
			in.Tags = make([]string, post.MaxTags+1)
			for i := range in.Tags {
				in.Tags[i] = "tag"
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository())

			input := validCreateInput(role.MemberPlus)
			tt.mutate(&input)

			_, err := service.CreatePost(context.Background(), input)

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

func TestCreatePost_NormalizesTags(t *testing.T) {
	service := newTestService(newFakeRepository())

	input := validCreateInput(role.MemberPlus)
	input.Tags = []string{"Action RPG", "SNES"}

	created, err := service.CreatePost(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, []string{"action-rpg", "snes"}, created.Tags)
}

func TestCreatePost_DuplicateTitleConflicts(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.CreatePost(context.Background(), validCreateInput(role.MemberPlus))
	require.NoError(t, err)

	input := validCreateInput(role.VIP)
	input.AuthorID = "author-2"
	_, err = service.CreatePost(context.Background(), input)

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestGetBySlug_RecordsView(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreatePost(context.Background(), validCreateInput(role.MemberPlus))
	require.NoError(t, err)

	got, err := service.GetBySlug(context.Background(), created.Slug)

	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
	assert.Equal(t, 1, repo.viewBumps)
}

func TestUpdatePost_AuthorOnly(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreatePost(context.Background(), validCreateInput(role.MemberPlus))
	require.NoError(t, err)

	newTitle := "Chrono Trigger PT-BR v2"
	_, err = service.UpdatePost(context.Background(), "someone-else", role.VIPPlus, created.ID, post.UpdateInput{
		Title: &newTitle,
	})

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	updated, err := service.UpdatePost(context.Background(), created.AuthorID, role.MemberPlus, created.ID, post.UpdateInput{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "chrono-trigger-pt-br-v2", updated.Slug)
}

func TestDeletePost_AuthorOrAdmin(t *testing.T) {
	tests := []struct {
		name    string
		actorID string
		role    role.Role
		wantErr bool
	}{
		{"author", "author-1", role.MemberPlus, false},
		{"admin", "mod-1", role.Admin, false},
		{"stranger_vip_plus", "stranger", role.VIPPlus, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := newTestService(repo)

			created, err := service.CreatePost(context.Background(), validCreateInput(role.MemberPlus))
			require.NoError(t, err)

			err = service.DeletePost(context.Background(), tt.actorID, tt.role, created.ID)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, repo.posts)
		})
	}
}
