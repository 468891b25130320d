// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/internal/platform/database/schema"
	"github.com/luanpsilva/ludoteca/internal/users/auth"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for the admin dashboard.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// buildFilter translates a [ListFilter] into a WHERE clause and its arguments.
// Soft-deleted rows are always excluded.
func buildFilter(filter ListFilter) (string, []any) {
	conditions := []string{schema.UserAccount.DeletedAt + " IS NULL"}
	var args []any

	if filter.Role != "" {
		args = append(args, string(filter.Role))
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.UserAccount.Role, len(args)))
	}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.UserAccount.Status, len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			schema.UserAccount.Username, n,
			schema.UserAccount.Email, n,
			schema.UserAccount.DisplayName, n,
		))
	}

	return strings.Join(conditions, " AND "), args
}

/*
List returns a page of user summaries matching the filter.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - params: pagination.Params

Returns:
  - []UserSummary: Page of results
  - int: Total matching rows
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]UserSummary, int, error) {
	where, args := buildFilter(filter)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.UserAccount.Table, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_admin_repo_count_failed: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.DisplayName, schema.UserAccount.Role, schema.UserAccount.Status,
		schema.UserAccount.IsVerified, schema.UserAccount.PostCount, schema.UserAccount.RatingCount,
		schema.UserAccount.PromotedAt, schema.UserAccount.CreatedAt,
		schema.UserAccount.Table,
		where,
		schema.UserAccount.CreatedAt,
		len(args)+1, len(args)+2,
	)

	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_admin_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var users []UserSummary
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.Role, &u.Status,
			&u.IsVerified, &u.PostCount, &u.RatingCount, &u.PromotedAt, &u.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}

	return users, total, nil
}

/*
FindByID retrieves a full user record for administrative inspection.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL,
		schema.UserAccount.Bio, schema.UserAccount.Role, schema.UserAccount.Status,
		schema.UserAccount.IsVerified, schema.UserAccount.PostCount, schema.UserAccount.RatingCount,
		schema.UserAccount.PromotedAt, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.AvatarURL, &user.Bio, &user.Role, &user.Status,
		&user.IsVerified, &user.PostCount, &user.RatingCount, &user.PromotedAt,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_admin_repo_find_failed: %w", err)
	}

	return user, nil
}

/*
SetRole replaces a user's tier, optionally stamping promotedat.

Parameters:
  - context: context.Context
  - userID: string
  - newRole: role.Role
  - promotedAt: *time.Time

Returns:
  - error: apperr.NotFound or update failures
*/
func (repository *PostgresRepository) SetRole(context context.Context, userID string, newRole role.Role, promotedAt *time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = COALESCE($3, %s), %s = NOW()
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.Role, schema.UserAccount.PromotedAt, schema.UserAccount.PromotedAt,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	tag, err := repository.pool.Exec(context, query, userID, string(newRole), promotedAt)
	if err != nil {
		return fmt.Errorf("postgres_admin_repo_set_role_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
SetStatus replaces a user's account status.

Parameters:
  - context: context.Context
  - userID: string
  - newStatus: auth.Status

Returns:
  - error: apperr.NotFound or update failures
*/
func (repository *PostgresRepository) SetStatus(context context.Context, userID string, newStatus auth.Status) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.Status, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	tag, err := repository.pool.Exec(context, query, userID, string(newStatus))
	if err != nil {
		return fmt.Errorf("postgres_admin_repo_set_status_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
Delete soft-deletes a user account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table, schema.UserAccount.DeletedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)
	_, err := repository.pool.Exec(context, query, userID)
	return err
}

/*
CollectStats computes the dashboard aggregates in three queries.

Parameters:
  - context: context.Context
  - promotionCutoff: time.Time

Returns:
  - *Stats: Aggregated counters
  - error: Retrieval failures
*/
func (repository *PostgresRepository) CollectStats(context context.Context, promotionCutoff time.Time) (*Stats, error) {
	stats := &Stats{
		ByRole:   make(map[role.Role]int),
		ByStatus: make(map[auth.Status]int),
	}

	roleQuery := fmt.Sprintf(`
		SELECT %s, COUNT(*) FROM %s WHERE %s IS NULL GROUP BY %s`,
		schema.UserAccount.Role, schema.UserAccount.Table,
		schema.UserAccount.DeletedAt, schema.UserAccount.Role,
	)

	rows, err := repository.pool.Query(context, roleQuery)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_stats_roles_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r string
		var count int
		if err := rows.Scan(&r, &count); err != nil {
			return nil, err
		}
		stats.ByRole[role.Parse(r)] += count
		stats.TotalUsers += count
	}
	rows.Close()

	statusQuery := fmt.Sprintf(`
		SELECT %s, COUNT(*) FROM %s WHERE %s IS NULL GROUP BY %s`,
		schema.UserAccount.Status, schema.UserAccount.Table,
		schema.UserAccount.DeletedAt, schema.UserAccount.Status,
	)

	rows, err = repository.pool.Query(context, statusQuery)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_stats_statuses_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s string
		var count int
		if err := rows.Scan(&s, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[auth.Status(s)] = count
	}
	rows.Close()

	pendingQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s
		WHERE %s = $1 AND %s = $2 AND %s <= $3 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.Role, schema.UserAccount.Status,
		schema.UserAccount.CreatedAt, schema.UserAccount.DeletedAt,
	)

	err = repository.pool.QueryRow(context, pendingQuery,
		string(role.Member), string(auth.StatusActive), promotionCutoff,
	).Scan(&stats.PendingPromotion)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_stats_pending_failed: %w", err)
	}

	return stats, nil
}
