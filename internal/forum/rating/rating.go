// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

/*
Package rating implements the 1-5 star rating domain for forum posts.

Each user holds at most one rating per post; re-rating replaces the previous
value. The post's denormalized aggregates (count and sum) and the rater's
activity counter are maintained transactionally alongside every write.
*/
package rating

import (
	"context"
	"time"
)

// # Domain Entities

// Rating is one user's star rating for one post.
type Rating struct {
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Stars     int       `json:"stars"` // 1-5, inclusive
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Star bounds.
const (
	MinStars = 1
	MaxStars = 5
)

// # Repository Contract

// Repository defines the data access contract for ratings.
type Repository interface {
	/*
		Upsert stores or replaces the user's rating for a post, keeping the
		post aggregates and the user's rating counter consistent in one
		transaction.

		Parameters:
		  - context: context.Context
		  - rating: *Rating

		Returns:
		  - bool: true if this was a first-time rating, false on re-rate
		  - error: Persistence failures
	*/
	Upsert(context context.Context, rating *Rating) (bool, error)

	/*
		Find returns the user's rating for a post.

		Parameters:
		  - context: context.Context
		  - postID: string
		  - userID: string

		Returns:
		  - *Rating: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	Find(context context.Context, postID, userID string) (*Rating, error)

	/*
		Delete removes the user's rating and rolls back the aggregates in
		the same transaction.

		Parameters:
		  - context: context.Context
		  - postID: string
		  - userID: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	Delete(context context.Context, postID, userID string) error
}

// PostAuthorFinder resolves the author of a post.
//
// Satisfied by the post repository; declared here to keep the dependency
// surface between the sibling domains narrow.
type PostAuthorFinder interface {
	AuthorOf(context context.Context, postID string) (string, error)
}
