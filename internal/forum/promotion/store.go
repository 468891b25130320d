// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

/*
Package promotion implements the daily batch job that promotes membro
accounts to membro+ once their account age reaches the threshold.

# Architecture

  - Store: the data access contract against the account table.
  - Service: one sweep cycle (query eligible → apply batch → log).
  - Sweeper: the in-process daily trigger with timezone-pinned scheduling.

Each sweep cycle is a stateless, idempotent evaluation of current data:
already-promoted accounts no longer match the query predicate, so running
two cycles back to back promotes nothing the second time.
*/
package promotion

import (
	"context"
	"time"
)

// # Data Access

// Candidate is the minimal account projection the sweep operates on.
type Candidate struct {
	ID        string
	CreatedAt time.Time
}

// Store defines the data access contract for the promotion sweep.
type Store interface {

	/*
		FindEligible returns every account with role 'membro' created at or
		before the cutoff instant.

		Parameters:
		  - context: context.Context
		  - cutoff: time.Time (now − promotion threshold)

		Returns:
		  - []Candidate: Matching accounts (possibly empty)
		  - error: Query failures
	*/
	FindEligible(context context.Context, cutoff time.Time) ([]Candidate, error)

	/*
		PromoteBatch sets role = 'membro+' and stamps promotedat for every
		given account, inside a single transaction. The batch is
		all-or-nothing: a failure leaves every account unchanged.

		Parameters:
		  - context: context.Context
		  - ids: []string (account IDs to promote)
		  - promotedAt: time.Time

		Returns:
		  - int64: Number of rows updated
		  - error: Transaction or execution failures
	*/
	PromoteBatch(context context.Context, ids []string, promotedAt time.Time) (int64, error)
}
