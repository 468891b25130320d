// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/internal/platform/database/schema"
	"github.com/luanpsilva/ludoteca/internal/platform/dberr"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
//
// # Schema Table Mapping
//   - forum.post: Post rows; tags as text[], download links as jsonb.
//   - users.account: postcount counter, maintained transactionally.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for forum posts.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// postColumns is the shared projection for hydrating a [Post].
var postColumns = strings.Join([]string{
	schema.ForumPost.ID, schema.ForumPost.AuthorID, schema.ForumPost.Title,
	schema.ForumPost.Slug, schema.ForumPost.Description, schema.ForumPost.CoverURL,
	schema.ForumPost.Tags, schema.ForumPost.DownloadLinks, schema.ForumPost.IsAnimated,
	schema.ForumPost.ViewCount, schema.ForumPost.RatingCount, schema.ForumPost.RatingSum,
	schema.ForumPost.CommentCount, schema.ForumPost.CreatedAt, schema.ForumPost.UpdatedAt,
}, ", ")

// scanPost hydrates a [Post] from a row with the [postColumns] projection.
func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{}
	var links []byte

	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Slug,
		&post.Description,
		&post.CoverURL,
		&post.Tags,
		&links,
		&post.IsAnimated,
		&post.ViewCount,
		&post.RatingCount,
		&post.RatingSum,
		&post.CommentCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(links) > 0 {
		if err := json.Unmarshal(links, &post.DownloadLinks); err != nil {
			return nil, fmt.Errorf("postgres_post_repo_links_decode_failed: %w", err)
		}
	}

	return post, nil
}

/*
Create persists a new post and bumps the author's post counter atomically.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: apperr.Conflict on slug collision, persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	links, err := json.Marshal(post.DownloadLinks)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_links_encode_failed: %w", err)
	}

	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schema.ForumPost.Table,
		schema.ForumPost.ID, schema.ForumPost.AuthorID, schema.ForumPost.Title,
		schema.ForumPost.Slug, schema.ForumPost.Description, schema.ForumPost.CoverURL,
		schema.ForumPost.Tags, schema.ForumPost.DownloadLinks, schema.ForumPost.IsAnimated,
		schema.ForumPost.CreatedAt, schema.ForumPost.UpdatedAt,
	)

	_, err = tx.Exec(context, insertQuery,
		post.ID, post.AuthorID, post.Title, post.Slug, post.Description,
		post.CoverURL, post.Tags, links, post.IsAnimated,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A post with this title already exists")
		}
		return fmt.Errorf("postgres_post_repo_create_failed: %w", err)
	}

	counterQuery := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.PostCount,
		schema.UserAccount.PostCount, schema.UserAccount.ID,
	)

	if _, err := tx.Exec(context, counterQuery, post.AuthorID); err != nil {
		return fmt.Errorf("postgres_post_repo_counter_failed: %w", err)
	}

	return tx.Commit(context)
}

/*
FindByID returns the post with the given ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	return repository.findBy(context, schema.ForumPost.ID, id)
}

/*
FindBySlug returns the post with the given slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Post, error) {
	return repository.findBy(context, schema.ForumPost.Slug, slug)
}

// findBy loads a post row matched on a single column.
func (repository *PostgresRepository) findBy(context context.Context, column, value string) (*Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		postColumns, schema.ForumPost.Table, column, schema.ForumPost.DeletedAt,
	)

	post, err := scanPost(repository.pool.QueryRow(context, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("postgres_post_repo_find_failed: %w", err)
	}

	return post, nil
}

/*
List returns a page of posts matching the filter.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - params: pagination.Params

Returns:
  - []Post: Page of results
  - int: Total matching rows
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]Post, int, error) {
	conditions := []string{schema.ForumPost.DeletedAt + " IS NULL"}
	var args []any

	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.ForumPost.AuthorID, len(args)))
	}

	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		conditions = append(conditions, fmt.Sprintf("%s @> $%d", schema.ForumPost.Tags, len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)",
			schema.ForumPost.Title, n, schema.ForumPost.Description, n))
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.ForumPost.Table, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_count_failed: %w", err)
	}

	orderBy := schema.ForumPost.CreatedAt + " DESC"
	switch filter.Sort {
	case "rating":
		// Raw average, unrated posts last.
		orderBy = fmt.Sprintf("CASE WHEN %s = 0 THEN 0 ELSE %s::float / %s END DESC, %s DESC",
			schema.ForumPost.RatingCount, schema.ForumPost.RatingSum,
			schema.ForumPost.RatingCount, schema.ForumPost.CreatedAt)
	case "views":
		orderBy = schema.ForumPost.ViewCount + " DESC, " + schema.ForumPost.CreatedAt + " DESC"
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		postColumns, schema.ForumPost.Table, where, orderBy,
		len(args)+1, len(args)+2,
	)

	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
	}

	return posts, total, nil
}

/*
Update persists changes to a post's editable fields.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: apperr.Conflict on slug collision, persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	links, err := json.Marshal(post.DownloadLinks)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_links_encode_failed: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1 AND %s IS NULL`,
		schema.ForumPost.Table,
		schema.ForumPost.Title, schema.ForumPost.Slug, schema.ForumPost.Description,
		schema.ForumPost.CoverURL, schema.ForumPost.Tags, schema.ForumPost.DownloadLinks,
		schema.ForumPost.IsAnimated, schema.ForumPost.UpdatedAt,
		schema.ForumPost.ID, schema.ForumPost.DeletedAt,
	)

	_, err = repository.pool.Exec(context, query,
		post.ID, post.Title, post.Slug, post.Description,
		post.CoverURL, post.Tags, links, post.IsAnimated,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A post with this title already exists")
		}
		return fmt.Errorf("postgres_post_repo_update_failed: %w", err)
	}

	return nil
}

/*
SoftDelete marks the post as deleted and decrements the author's counter.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	deleteQuery := fmt.Sprintf(`
		UPDATE %s SET %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s`,
		schema.ForumPost.Table, schema.ForumPost.DeletedAt,
		schema.ForumPost.ID, schema.ForumPost.DeletedAt,
		schema.ForumPost.AuthorID,
	)

	var authorID string
	if err := tx.QueryRow(context, deleteQuery, id).Scan(&authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Post")
		}
		return fmt.Errorf("postgres_post_repo_delete_failed: %w", err)
	}

	counterQuery := fmt.Sprintf(`
		UPDATE %s SET %s = GREATEST(%s - 1, 0) WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.PostCount,
		schema.UserAccount.PostCount, schema.UserAccount.ID,
	)

	if _, err := tx.Exec(context, counterQuery, authorID); err != nil {
		return fmt.Errorf("postgres_post_repo_counter_failed: %w", err)
	}

	return tx.Commit(context)
}

/*
AuthorOf resolves the author ID of a live post.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - string: Author user ID
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresRepository) AuthorOf(context context.Context, postID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		schema.ForumPost.AuthorID, schema.ForumPost.Table,
		schema.ForumPost.ID, schema.ForumPost.DeletedAt,
	)

	var authorID string
	if err := repository.pool.QueryRow(context, query, postID).Scan(&authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("Post")
		}
		return "", fmt.Errorf("postgres_post_repo_author_failed: %w", err)
	}

	return authorID, nil
}

/*
IncrementViews bumps the view counter by one.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1 AND %s IS NULL`,
		schema.ForumPost.Table, schema.ForumPost.ViewCount, schema.ForumPost.ViewCount,
		schema.ForumPost.ID, schema.ForumPost.DeletedAt,
	)
	_, err := repository.pool.Exec(context, query, id)
	return err
}
