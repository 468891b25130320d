// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
)

// PostgresStore implements [Store] against the users.account table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewStore creates a new PostgreSQL implementation of the promotion Store.
func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
FindEligible returns all membro accounts created at or before the cutoff.

Description: The predicate mirrors the promotion rule exactly; banned or
disabled accounts are excluded so a moderated account is never silently
upgraded while locked out.

Parameters:
  - context: context.Context
  - cutoff: time.Time

Returns:
  - []Candidate: Matching accounts
  - error: Query or scan failures
*/
func (store *PostgresStore) FindEligible(context context.Context, cutoff time.Time) ([]Candidate, error) {
	const query = `
		SELECT id, createdat
		FROM users.account
		WHERE role = $1
		  AND createdat <= $2
		  AND status = 'active'
		  AND deletedat IS NULL`

	rows, err := store.pool.Query(context, query, role.Member, cutoff)
	if err != nil {
		return nil, fmt.Errorf("promotion_store_find_eligible_failed: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var candidate Candidate
		if err := rows.Scan(&candidate.ID, &candidate.CreatedAt); err != nil {
			return nil, fmt.Errorf("promotion_store_scan_failed: %w", err)
		}
		candidates = append(candidates, candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("promotion_store_rows_failed: %w", err)
	}

	return candidates, nil
}

/*
PromoteBatch promotes the given accounts to membro+ in one transaction.

Description: The role predicate is repeated in the UPDATE so that a
concurrent manual role change between query and commit cannot be clobbered;
such rows simply drop out of the affected count. All updates commit together
or not at all.

Parameters:
  - context: context.Context
  - ids: []string
  - promotedAt: time.Time

Returns:
  - int64: Rows actually promoted
  - error: Transaction failures (nothing applied)
*/
func (store *PostgresStore) PromoteBatch(context context.Context, ids []string, promotedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	const query = `
		UPDATE users.account
		SET role = $1, promotedat = $2, updatedat = $2
		WHERE id = ANY($3)
		  AND role = $4`

	transaction, err := store.pool.BeginTx(context, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("promotion_store_begin_tx_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	tag, err := transaction.Exec(context, query, role.MemberPlus, promotedAt, ids, role.Member)
	if err != nil {
		return 0, fmt.Errorf("promotion_store_batch_update_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return 0, fmt.Errorf("promotion_store_commit_failed: %w", err)
	}

	return tag.RowsAffected(), nil
}
