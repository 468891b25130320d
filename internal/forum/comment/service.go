// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/validate"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
	"github.com/luanpsilva/ludoteca/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for post comments.
type Service struct {
	repository Repository
	posts      PostChecker
	logger     *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(repository Repository, posts PostChecker, logger *slog.Logger) *Service {
	return &Service{repository: repository, posts: posts, logger: logger}
}

// AddInput carries everything needed to attach a comment to a post.
type AddInput struct {
	PostID     string
	AuthorID   string
	AuthorRole role.Role
	Body       string
	GifURL     string
}

/*
AddComment validates and publishes a new comment.

Description: The author's tier must grant commenting; attaching a GIF
requires the separate GIF privilege. The post must exist. Both gates run
before anything is written.

Parameters:
  - context: context.Context
  - input: AddInput

Returns:
  - *Comment: The created comment
  - error: PermissionDenied, validation, or persistence failures
*/
func (service *Service) AddComment(context context.Context, input AddInput) (*Comment, error) {

	// Tier gates run before any validation or storage work.
	if err := role.Authorize(input.AuthorRole, role.ActionComment); err != nil {
		return nil, err
	}

	if input.GifURL != "" {
		if err := role.Authorize(input.AuthorRole, role.ActionUseGif); err != nil {
			return nil, err
		}
	}

	v := &validate.Validator{}
	v.Required(FieldBody, input.Body).
		MaxLen(FieldBody, input.Body, MaxBodyLength)
	if input.GifURL != "" {
		v.URL(FieldGifURL, input.GifURL)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := service.posts.AuthorOf(context, input.PostID); err != nil {
		return nil, fmt.Errorf("comment_service_post_lookup_failed: %w", err)
	}

	now := time.Now()
	comment := &Comment{
		ID:        uuid.New(),
		PostID:    input.PostID,
		AuthorID:  input.AuthorID,
		Body:      input.Body,
		GifURL:    input.GifURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", comment.PostID),
		slog.String("author_id", comment.AuthorID),
	)

	return comment, nil
}

/*
ListComments returns a paginated page of a post's comments, oldest first.

Parameters:
  - context: context.Context
  - postID: string
  - params: pagination.Params

Returns:
  - []Comment: Page of results
  - pagination.Meta: Navigation metadata
  - error: Retrieval failures
*/
func (service *Service) ListComments(context context.Context, postID string, params pagination.Params) ([]Comment, pagination.Meta, error) {
	comments, total, err := service.repository.ListByPost(context, postID, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("comment_service_list_failed: %w", err)
	}

	return comments, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
DeleteComment removes a comment.

Description: The author may always delete their own comment. Deleting someone
else's requires the delete-any privilege (admin).

Parameters:
  - context: context.Context
  - actorID: string
  - actorRole: role.Role
  - commentID: string

Returns:
  - error: PermissionDenied or execution failures
*/
func (service *Service) DeleteComment(context context.Context, actorID string, actorRole role.Role, commentID string) error {
	comment, err := service.repository.FindByID(context, commentID)
	if err != nil {
		return fmt.Errorf("comment_service_delete_lookup_failed: %w", err)
	}

	if comment.AuthorID != actorID {
		if err := role.Authorize(actorRole, role.ActionDeleteAnyPost); err != nil {
			return err
		}
	}

	if err := service.repository.SoftDelete(context, commentID); err != nil {
		return fmt.Errorf("comment_service_delete_failed: %w", err)
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", commentID),
		slog.String("actor_id", actorID),
	)

	return nil
}
