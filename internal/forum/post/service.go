// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/internal/platform/validate"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
	"github.com/luanpsilva/ludoteca/pkg/pointer"
	"github.com/luanpsilva/ludoteca/pkg/slice"
	"github.com/luanpsilva/ludoteca/pkg/slug"
	"github.com/luanpsilva/ludoteca/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for forum posts.
//
// Every write passes the tier permission gate before touching storage:
// content from unauthorized accounts is rejected up front rather than
// written and reaped afterwards.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new post [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// CreateInput carries everything needed to publish a post.
type CreateInput struct {
	AuthorID   string
	AuthorRole role.Role

	Title         string
	Description   string
	CoverURL      string
	Tags          []string
	DownloadLinks []DownloadLink
	IsAnimated    bool
}

/*
CreatePost validates and publishes a new post.

Description: The author's tier must grant post creation. Download links must
point to allowed file hosts. The animated decoration flag is restricted to
tiers with that privilege. The slug is derived from the title.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Post: The created post
  - error: apperr.PermissionDenied, validation, or persistence failures
*/
func (service *Service) CreatePost(context context.Context, input CreateInput) (*Post, error) {

	// Tier gate runs before any validation or storage work.
	if err := role.Authorize(input.AuthorRole, role.ActionCreatePost); err != nil {
		return nil, err
	}

	if input.IsAnimated && !role.Permissions(input.AuthorRole).HasAnimatedPosts {
		return nil, apperr.PermissionDenied("Your current tier does not allow animated posts.")
	}

	// Tags are normalized to slug form so "Action RPG" and "action-rpg" collide.
	input.Tags = slice.Map(input.Tags, slug.From)

	if err := validateContent(input.Title, input.Description, input.CoverURL, input.Tags, input.DownloadLinks); err != nil {
		return nil, err
	}

	now := time.Now()
	post := &Post{
		ID:            uuid.New(),
		AuthorID:      input.AuthorID,
		Title:         input.Title,
		Slug:          slug.From(input.Title),
		Description:   input.Description,
		CoverURL:      input.CoverURL,
		Tags:          input.Tags,
		DownloadLinks: input.DownloadLinks,
		IsAnimated:    input.IsAnimated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := service.repository.Create(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("author_id", post.AuthorID),
		slog.String("slug", post.Slug),
	)

	return post, nil
}

/*
GetByID retrieves a post by its unique ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Post: Hydrated entity
  - error: Not found or retrieval failures
*/
func (service *Service) GetByID(context context.Context, id string) (*Post, error) {
	post, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("post_service_get_failed: %w", err)
	}
	return post, nil
}

/*
GetBySlug retrieves a post by slug and records the view.

Description: The view counter bump is best-effort; a failed increment never
fails the read.

Parameters:
  - context: context.Context
  - postSlug: string

Returns:
  - *Post: Hydrated entity
  - error: Not found or retrieval failures
*/
func (service *Service) GetBySlug(context context.Context, postSlug string) (*Post, error) {
	post, err := service.repository.FindBySlug(context, postSlug)
	if err != nil {
		return nil, fmt.Errorf("post_service_get_by_slug_failed: %w", err)
	}

	if err := service.repository.IncrementViews(context, post.ID); err != nil {
		service.logger.Warn("post_view_increment_failed",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()),
		)
	} else {
		post.ViewCount++
	}

	return post, nil
}

/*
ListPosts returns a filtered, paginated page of posts.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - params: pagination.Params

Returns:
  - []Post: Page of results
  - pagination.Meta: Navigation metadata
  - error: Retrieval failures
*/
func (service *Service) ListPosts(context context.Context, filter ListFilter, params pagination.Params) ([]Post, pagination.Meta, error) {
	posts, total, err := service.repository.List(context, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("post_service_list_failed: %w", err)
	}

	return posts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// UpdateInput carries the editable subset of post fields.
type UpdateInput struct {
	Title         *string
	Description   *string
	CoverURL      *string
	Tags          []string
	DownloadLinks []DownloadLink
	IsAnimated    *bool
}

/*
UpdatePost applies a partial set of changes to a post.

Description: Only the author may edit a post. Changing the title regenerates
the slug. The same host allow-list and tier restrictions apply as on create.

Parameters:
  - context: context.Context
  - actorID: string
  - actorRole: role.Role
  - postID: string
  - input: UpdateInput

Returns:
  - *Post: The updated post
  - error: Forbidden, validation, or persistence failures
*/
func (service *Service) UpdatePost(context context.Context, actorID string, actorRole role.Role, postID string, input UpdateInput) (*Post, error) {
	post, err := service.repository.FindByID(context, postID)
	if err != nil {
		return nil, fmt.Errorf("post_service_update_lookup_failed: %w", err)
	}

	if post.AuthorID != actorID {
		return nil, apperr.Forbidden("Only the author can edit this post.")
	}

	if input.Title != nil {
		post.Title = *input.Title
		post.Slug = slug.From(*input.Title)
	}
	post.Description = pointer.Fallback(input.Description, post.Description)
	post.CoverURL = pointer.Fallback(input.CoverURL, post.CoverURL)
	if input.Tags != nil {
		post.Tags = slice.Map(input.Tags, slug.From)
	}
	if input.DownloadLinks != nil {
		post.DownloadLinks = input.DownloadLinks
	}
	if input.IsAnimated != nil {
		if *input.IsAnimated && !role.Permissions(actorRole).HasAnimatedPosts {
			return nil, apperr.PermissionDenied("Your current tier does not allow animated posts.")
		}
		post.IsAnimated = *input.IsAnimated
	}

	if err := validateContent(post.Title, post.Description, post.CoverURL, post.Tags, post.DownloadLinks); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_updated", slog.String("post_id", post.ID))

	return post, nil
}

/*
DeletePost removes a post.

Description: The author may always delete their own post. Deleting someone
else's post requires the delete-any-post privilege (admin).

Parameters:
  - context: context.Context
  - actorID: string
  - actorRole: role.Role
  - postID: string

Returns:
  - error: PermissionDenied or execution failures
*/
func (service *Service) DeletePost(context context.Context, actorID string, actorRole role.Role, postID string) error {
	post, err := service.repository.FindByID(context, postID)
	if err != nil {
		return fmt.Errorf("post_service_delete_lookup_failed: %w", err)
	}

	if post.AuthorID != actorID {
		if err := role.Authorize(actorRole, role.ActionDeleteAnyPost); err != nil {
			return err
		}
	}

	if err := service.repository.SoftDelete(context, postID); err != nil {
		return fmt.Errorf("post_service_delete_failed: %w", err)
	}

	service.logger.Info("post_deleted",
		slog.String("post_id", postID),
		slog.String("actor_id", actorID),
	)

	return nil
}

// validateContent checks the shared invariants for create and update.
func validateContent(title, description, coverURL string, tags []string, links []DownloadLink) error {
	v := &validate.Validator{}
	v.Required(FieldTitle, title).
		MinLen(FieldTitle, title, 3).
		MaxLen(FieldTitle, title, 150).
		MaxLen(FieldDescription, description, 5000).
		Custom(FieldTags, len(tags) > MaxTags, fmt.Sprintf("Maximum %d tags", MaxTags)).
		Custom(FieldDownloadLinks, len(links) == 0, "At least one download link is required").
		Custom(FieldDownloadLinks, len(links) > MaxDownloadLinks, fmt.Sprintf("Maximum %d download links", MaxDownloadLinks))

	if coverURL != "" {
		v.URL(FieldCoverURL, coverURL)
	}

	for _, tag := range tags {
		v.Slug(FieldTags, tag)
	}

	for _, link := range links {
		v.Required(FieldDownloadLinks, link.Label).
			Custom(FieldDownloadLinks, !HostAllowed(link.URL), "Download links must use an allowed file host")
	}

	return v.Err()
}
