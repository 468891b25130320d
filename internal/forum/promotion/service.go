// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package promotion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
)

// # Sweep Service

// Service runs promotion sweep cycles against a [Store].
type Service struct {
	store  Store
	logger *slog.Logger

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewService constructs a new promotion [Service].
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

/*
RunSweep executes one promotion cycle.

Description: Queries every membro account whose age has reached the
threshold and promotes them to membro+ in a single all-or-nothing batch.
The cycle has no partial-success mode: if the batch fails, nobody is
promoted and the next scheduled run is the retry.

Parameters:
  - context: context.Context

Returns:
  - int64: Number of accounts promoted this cycle
  - error: Query or batch-commit failures (cycle abandoned)
*/
func (service *Service) RunSweep(context context.Context) (int64, error) {
	now := service.now()
	cutoff := now.Add(-role.PromotionThreshold)

	candidates, err := service.store.FindEligible(context, cutoff)
	if err != nil {
		return 0, fmt.Errorf("promotion_sweep_query_failed: %w", err)
	}

	if len(candidates) == 0 {
		service.logger.Info("promotion_sweep_no_candidates")
		return 0, nil
	}

	// Re-check each candidate against the pure rule before committing.
	// The query predicate should already guarantee this; the double check
	// keeps a malformed row (zero createdat) from slipping into the batch.
	ids := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if role.CheckEligibility(role.Member, candidate.CreatedAt, now).Eligible {
			ids = append(ids, candidate.ID)
		} else {
			service.logger.Warn("promotion_sweep_candidate_skipped",
				slog.String("account_id", candidate.ID),
				slog.Time("created_at", candidate.CreatedAt),
			)
		}
	}

	if len(ids) == 0 {
		return 0, nil
	}

	promoted, err := service.store.PromoteBatch(context, ids, now)
	if err != nil {
		return 0, fmt.Errorf("promotion_sweep_batch_failed: %w", err)
	}

	service.logger.Info("promotion_sweep_completed",
		slog.Int64("promoted", promoted),
		slog.Int("candidates", len(candidates)),
	)

	return promoted, nil
}
