// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] using pgx.
//
// # Schema Table Mapping
//   - forum.rating: One row per (post, user) pair.
//   - forum.post: ratingcount / ratingsum aggregates.
//   - users.account: ratingcount activity counter.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for ratings.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Upsert stores or replaces the user's rating, keeping aggregates consistent.

Description: The existing row is locked (FOR UPDATE) to decide between
first-time insert and replacement, so concurrent re-rates cannot skew the
post's sum.

Parameters:
  - context: context.Context
  - rating: *Rating

Returns:
  - bool: true on first-time rating
  - error: Persistence failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, rating *Rating) (bool, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return false, fmt.Errorf("postgres_rating_repo_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 FOR UPDATE`,
		schema.ForumRating.Stars, schema.ForumRating.Table,
		schema.ForumRating.PostID, schema.ForumRating.UserID,
	)

	var oldStars int
	created := false

	err = tx.QueryRow(context, lockQuery, rating.PostID, rating.UserID).Scan(&oldStars)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		created = true
	case err != nil:
		return false, fmt.Errorf("postgres_rating_repo_lock_failed: %w", err)
	}

	if created {
		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5)`,
			schema.ForumRating.Table,
			schema.ForumRating.PostID, schema.ForumRating.UserID, schema.ForumRating.Stars,
			schema.ForumRating.CreatedAt, schema.ForumRating.UpdatedAt,
		)
		if _, err := tx.Exec(context, insertQuery,
			rating.PostID, rating.UserID, rating.Stars, rating.CreatedAt, rating.UpdatedAt,
		); err != nil {
			return false, fmt.Errorf("postgres_rating_repo_insert_failed: %w", err)
		}

		postQuery := fmt.Sprintf(`
			UPDATE %s SET %s = %s + 1, %s = %s + $2 WHERE %s = $1`,
			schema.ForumPost.Table,
			schema.ForumPost.RatingCount, schema.ForumPost.RatingCount,
			schema.ForumPost.RatingSum, schema.ForumPost.RatingSum,
			schema.ForumPost.ID,
		)
		if _, err := tx.Exec(context, postQuery, rating.PostID, rating.Stars); err != nil {
			return false, fmt.Errorf("postgres_rating_repo_post_aggregate_failed: %w", err)
		}

		userQuery := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
			schema.UserAccount.Table,
			schema.UserAccount.RatingCount, schema.UserAccount.RatingCount,
			schema.UserAccount.ID,
		)
		if _, err := tx.Exec(context, userQuery, rating.UserID); err != nil {
			return false, fmt.Errorf("postgres_rating_repo_user_counter_failed: %w", err)
		}
	} else {
		updateQuery := fmt.Sprintf(`
			UPDATE %s SET %s = $3, %s = $4 WHERE %s = $1 AND %s = $2`,
			schema.ForumRating.Table,
			schema.ForumRating.Stars, schema.ForumRating.UpdatedAt,
			schema.ForumRating.PostID, schema.ForumRating.UserID,
		)
		if _, err := tx.Exec(context, updateQuery,
			rating.PostID, rating.UserID, rating.Stars, rating.UpdatedAt,
		); err != nil {
			return false, fmt.Errorf("postgres_rating_repo_update_failed: %w", err)
		}

		postQuery := fmt.Sprintf(`UPDATE %s SET %s = %s + $2 WHERE %s = $1`,
			schema.ForumPost.Table,
			schema.ForumPost.RatingSum, schema.ForumPost.RatingSum,
			schema.ForumPost.ID,
		)
		if _, err := tx.Exec(context, postQuery, rating.PostID, rating.Stars-oldStars); err != nil {
			return false, fmt.Errorf("postgres_rating_repo_post_aggregate_failed: %w", err)
		}
	}

	if err := tx.Commit(context); err != nil {
		return false, fmt.Errorf("postgres_rating_repo_commit_failed: %w", err)
	}

	return created, nil
}

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
func (repository *PostgresRepository) Find(context context.Context, postID, userID string) (*Rating, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		schema.ForumRating.PostID, schema.ForumRating.UserID, schema.ForumRating.Stars,
		schema.ForumRating.CreatedAt, schema.ForumRating.UpdatedAt,
		schema.ForumRating.Table,
		schema.ForumRating.PostID, schema.ForumRating.UserID,
	)

	rating := &Rating{}
	err := repository.pool.QueryRow(context, query, postID, userID).Scan(
		&rating.PostID, &rating.UserID, &rating.Stars, &rating.CreatedAt, &rating.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Rating")
		}
		return nil, fmt.Errorf("postgres_rating_repo_find_failed: %w", err)
	}

	return rating, nil
}

/*
Delete removes the user's rating and rolls back the aggregates.

Parameters:
  - context: context.Context
  - postID: string
  - userID: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, postID, userID string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_rating_repo_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	deleteQuery := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1 AND %s = $2 RETURNING %s`,
		schema.ForumRating.Table,
		schema.ForumRating.PostID, schema.ForumRating.UserID, schema.ForumRating.Stars,
	)

	var stars int
	if err := tx.QueryRow(context, deleteQuery, postID, userID).Scan(&stars); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Rating")
		}
		return fmt.Errorf("postgres_rating_repo_delete_failed: %w", err)
	}

	postQuery := fmt.Sprintf(`
		UPDATE %s SET %s = GREATEST(%s - 1, 0), %s = GREATEST(%s - $2, 0) WHERE %s = $1`,
		schema.ForumPost.Table,
		schema.ForumPost.RatingCount, schema.ForumPost.RatingCount,
		schema.ForumPost.RatingSum, schema.ForumPost.RatingSum,
		schema.ForumPost.ID,
	)
	if _, err := tx.Exec(context, postQuery, postID, stars); err != nil {
		return fmt.Errorf("postgres_rating_repo_post_aggregate_failed: %w", err)
	}

	userQuery := fmt.Sprintf(`UPDATE %s SET %s = GREATEST(%s - 1, 0) WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.RatingCount, schema.UserAccount.RatingCount,
		schema.UserAccount.ID,
	)
	if _, err := tx.Exec(context, userQuery, userID); err != nil {
		return fmt.Errorf("postgres_rating_repo_user_counter_failed: %w", err)
	}

	return tx.Commit(context)
}
