// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package rating

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/internal/platform/validate"
)

// # Service Layer

// Service orchestrates business logic for post ratings.
type Service struct {
	repository Repository
	posts      PostAuthorFinder
	logger     *slog.Logger
}

// NewService constructs a new rating [Service].
func NewService(repository Repository, posts PostAuthorFinder, logger *slog.Logger) *Service {
	return &Service{repository: repository, posts: posts, logger: logger}
}

/*
RatePost stores or replaces the caller's star rating for a post.

Description: The caller's tier must grant rating. Authors cannot rate their
own posts. Stars outside 1-5 are rejected. Re-rating replaces the previous
value without double-counting.

Parameters:
  - context: context.Context
  - actorID: string
  - actorRole: role.Role
  - postID: string
  - stars: int

Returns:
  - *Rating: The stored rating
  - error: PermissionDenied, validation, or persistence failures
*/
func (service *Service) RatePost(context context.Context, actorID string, actorRole role.Role, postID string, stars int) (*Rating, error) {

	// Tier gate runs before any validation or storage work.
	if err := role.Authorize(actorRole, role.ActionRate); err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	v.Range("stars", stars, MinStars, MaxStars)
	if err := v.Err(); err != nil {
		return nil, err
	}

	authorID, err := service.posts.AuthorOf(context, postID)
	if err != nil {
		return nil, fmt.Errorf("rating_service_post_lookup_failed: %w", err)
	}

	if authorID == actorID {
		return nil, apperr.Forbidden("You cannot rate your own post.")
	}

	now := time.Now()
	rating := &Rating{
		PostID:    postID,
		UserID:    actorID,
		Stars:     stars,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := service.repository.Upsert(context, rating)
	if err != nil {
		return nil, fmt.Errorf("rating_service_upsert_failed: %w", err)
	}

	service.logger.Info("post_rated",
		slog.String("post_id", postID),
		slog.String("user_id", actorID),
		slog.Int("stars", stars),
		slog.Bool("first_time", created),
	)

	return rating, nil
}

/*
GetOwn returns the caller's rating for a post.

Parameters:
  - context: context.Context
  - postID: string
  - userID: string

Returns:
  - *Rating: Hydrated entity
  - error: Not found or retrieval failures
*/
func (service *Service) GetOwn(context context.Context, postID, userID string) (*Rating, error) {
	rating, err := service.repository.Find(context, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("rating_service_get_failed: %w", err)
	}
	return rating, nil
}

/*
RemoveRating deletes the caller's rating for a post.

Parameters:
  - context: context.Context
  - actorID: string
  - postID: string

Returns:
  - error: Not found or execution failures
*/
func (service *Service) RemoveRating(context context.Context, actorID, postID string) error {
	if err := service.repository.Delete(context, postID, actorID); err != nil {
		return fmt.Errorf("rating_service_delete_failed: %w", err)
	}

	service.logger.Info("post_rating_removed",
		slog.String("post_id", postID),
		slog.String("user_id", actorID),
	)

	return nil
}
