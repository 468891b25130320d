// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package post

import (
	"context"

	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// ListFilter narrows the post listing by optional criteria.
type ListFilter struct {
	// AuthorID filters by post author; empty means all authors.
	AuthorID string

	// Tags filters posts carrying all of the given tags; empty means all posts.
	Tags []string

	// Search matches title or description (substring).
	Search string

	// Sort is one of "recent" (default), "rating", or "views".
	Sort string
}

// Repository defines the data access contract for forum posts.
type Repository interface {
	/*
		Create persists a new post and increments the author's post counter
		in the same transaction.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: apperr.Conflict on slug collision, persistence failures
	*/
	Create(context context.Context, post *Post) error

	/*
		FindByID returns the post with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Post: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Post, error)

	/*
		FindBySlug returns the post with the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Post: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindBySlug(context context.Context, slug string) (*Post, error)

	/*
		List returns a page of posts matching the filter, plus the total
		match count.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter
		  - params: pagination.Params

		Returns:
		  - []Post: Page of results
		  - int: Total matching rows
		  - error: Retrieval failures
	*/
	List(context context.Context, filter ListFilter, params pagination.Params) ([]Post, int, error)

	/*
		Update persists changes to a post's editable fields (title, slug,
		description, cover, tags, links, animated flag).

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, post *Post) error

	/*
		SoftDelete marks the post as deleted and decrements the author's
		post counter in the same transaction.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	SoftDelete(context context.Context, id string) error

	/*
		AuthorOf resolves the author ID of a live post.

		Parameters:
		  - context: context.Context
		  - postID: string

		Returns:
		  - string: Author user ID
		  - error: apperr.NotFound or retrieval failures
	*/
	AuthorOf(context context.Context, postID string) (string, error)

	/*
		IncrementViews bumps the view counter by one.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	IncrementViews(context context.Context, id string) error
}
