// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

/*
Package comment implements the discussion domain for forum posts.

Commenting is a tier privilege; embedding a GIF in a comment is a separate,
higher privilege. The post's comment counter is maintained transactionally
alongside every write.
*/
package comment

import (
	"context"
	"time"

	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// # Domain Entities

// Comment is one user's reply on a post.
type Comment struct {
	ID       string `json:"id"`
	PostID   string `json:"post_id"`
	AuthorID string `json:"author_id"`
	Body     string `json:"body"`

	// GifURL embeds an animated GIF, a vip privilege.
	GifURL string `json:"gif_url,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Content limits.
const (
	MaxBodyLength = 2000
)

// Field identifiers for validation.
const (
	FieldBody   = "body"
	FieldGifURL = "gif_url"
)

// # Repository Contract

// Repository defines the data access contract for comments.
type Repository interface {
	/*
		Create persists a new comment and increments the post's comment
		counter in the same transaction.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID returns the comment with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		ListByPost returns a page of comments for a post, oldest first,
		plus the total count.

		Parameters:
		  - context: context.Context
		  - postID: string
		  - params: pagination.Params

		Returns:
		  - []Comment: Page of results
		  - int: Total matching rows
		  - error: Retrieval failures
	*/
	ListByPost(context context.Context, postID string, params pagination.Params) ([]Comment, int, error)

	/*
		SoftDelete marks the comment as deleted and decrements the post's
		comment counter in the same transaction.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	SoftDelete(context context.Context, id string) error
}

// PostChecker verifies that a post exists before a comment is attached.
//
// Satisfied by the post repository.
type PostChecker interface {
	AuthorOf(context context.Context, postID string) (string, error)
}
