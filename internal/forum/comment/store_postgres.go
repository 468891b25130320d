// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/internal/platform/database/schema"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
//
// # Schema Table Mapping
//   - forum.comment: Comment rows.
//   - forum.post: commentcount aggregate, maintained transactionally.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for comments.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new comment and bumps the post's counter atomically.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.ForumComment.Table,
		schema.ForumComment.ID, schema.ForumComment.PostID, schema.ForumComment.AuthorID,
		schema.ForumComment.Body, schema.ForumComment.GifURL,
		schema.ForumComment.CreatedAt, schema.ForumComment.UpdatedAt,
	)

	_, err = tx.Exec(context, insertQuery,
		comment.ID, comment.PostID, comment.AuthorID,
		comment.Body, comment.GifURL, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	counterQuery := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.ForumPost.Table,
		schema.ForumPost.CommentCount, schema.ForumPost.CommentCount,
		schema.ForumPost.ID,
	)

	if _, err := tx.Exec(context, counterQuery, comment.PostID); err != nil {
		return fmt.Errorf("postgres_comment_repo_counter_failed: %w", err)
	}

	return tx.Commit(context)
}

/*
FindByID returns the comment with the given ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Comment: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		schema.ForumComment.ID, schema.ForumComment.PostID, schema.ForumComment.AuthorID,
		schema.ForumComment.Body, schema.ForumComment.GifURL,
		schema.ForumComment.CreatedAt, schema.ForumComment.UpdatedAt,
		schema.ForumComment.Table,
		schema.ForumComment.ID, schema.ForumComment.DeletedAt,
	)

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID,
		&comment.Body, &comment.GifURL, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

/*
ListByPost returns a page of comments for a post, oldest first.

Parameters:
  - context: context.Context
  - postID: string
  - params: pagination.Params

Returns:
  - []Comment: Page of results
  - int: Total matching rows
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByPost(context context.Context, postID string, params pagination.Params) ([]Comment, int, error) {
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s IS NULL`,
		schema.ForumComment.Table, schema.ForumComment.PostID, schema.ForumComment.DeletedAt,
	)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_count_failed: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3`,
		schema.ForumComment.ID, schema.ForumComment.PostID, schema.ForumComment.AuthorID,
		schema.ForumComment.Body, schema.ForumComment.GifURL,
		schema.ForumComment.CreatedAt, schema.ForumComment.UpdatedAt,
		schema.ForumComment.Table,
		schema.ForumComment.PostID, schema.ForumComment.DeletedAt,
		schema.ForumComment.CreatedAt,
	)

	rows, err := repository.pool.Query(context, listQuery, postID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.GifURL, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

/*
SoftDelete marks the comment as deleted and decrements the post counter.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	deleteQuery := fmt.Sprintf(`
		UPDATE %s SET %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s`,
		schema.ForumComment.Table, schema.ForumComment.DeletedAt,
		schema.ForumComment.ID, schema.ForumComment.DeletedAt,
		schema.ForumComment.PostID,
	)

	var postID string
	if err := tx.QueryRow(context, deleteQuery, id).Scan(&postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Comment")
		}
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}

	counterQuery := fmt.Sprintf(`
		UPDATE %s SET %s = GREATEST(%s - 1, 0) WHERE %s = $1`,
		schema.ForumPost.Table,
		schema.ForumPost.CommentCount, schema.ForumPost.CommentCount,
		schema.ForumPost.ID,
	)

	if _, err := tx.Exec(context, counterQuery, postID); err != nil {
		return fmt.Errorf("postgres_comment_repo_counter_failed: %w", err)
	}

	return tx.Commit(context)
}
