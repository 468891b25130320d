// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package promotion

import (
	"context"
	"log/slog"
	"time"
)

// # Daily Trigger

// Sweeper fires the promotion sweep once per day at local midnight in a
// configured civil timezone.
//
// # Scheduling vs. measuring
//
// The timezone pins WHEN the sweep runs; the 3-day eligibility window itself
// is computed in absolute elapsed time inside [Service.RunSweep]. A failed
// cycle is logged and skipped — the next day's run is the retry. Overlapping
// or duplicate invocations are harmless because the query predicate is
// idempotent.
type Sweeper struct {
	service  *Service
	logger   *slog.Logger
	location *time.Location
}

// NewSweeper constructs a [Sweeper].
//
// # Parameters
//   - service: The sweep service to invoke.
//   - timezone: IANA timezone name (e.g. "America/Sao_Paulo") pinning the
//     daily fire time. Invalid names fall back to UTC.
//   - logger: Structured logger for cycle outcomes.
func NewSweeper(service *Service, timezone string, logger *slog.Logger) *Sweeper {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("sweeper_invalid_timezone_fallback_utc", slog.String("timezone", timezone))
		location = time.UTC
	}

	return &Sweeper{
		service:  service,
		logger:   logger,
		location: location,
	}
}

// Start launches the background scheduling loop.
//
// It returns immediately; the loop stops when ctx is cancelled. Call it once
// from the application entry point.
func (sweeper *Sweeper) Start(ctx context.Context) {
	go sweeper.loop(ctx)
}

// loop sleeps until the next local midnight, runs one cycle, and repeats.
func (sweeper *Sweeper) loop(ctx context.Context) {
	sweeper.logger.Info("promotion_sweeper_started",
		slog.String("timezone", sweeper.location.String()),
	)

	for {
		wait := sweeper.untilNextFire(time.Now())
		timer := time.NewTimer(wait)

		select {
		case <-timer.C:
			sweeper.runOnce(ctx)
		case <-ctx.Done():
			timer.Stop()
			sweeper.logger.Info("promotion_sweeper_stopped")
			return
		}
	}
}

// runOnce executes a single cycle with a bounded deadline.
func (sweeper *Sweeper) runOnce(ctx context.Context) {
	// A hung sweep must not block tomorrow's cycle.
	cycleCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if _, err := sweeper.service.RunSweep(cycleCtx); err != nil {
		// Log and skip this cycle; the next scheduled run retries.
		sweeper.logger.Error("promotion_sweep_cycle_failed", slog.Any("error", err))
	}
}

// untilNextFire computes the duration until the next midnight in the
// configured timezone.
func (sweeper *Sweeper) untilNextFire(now time.Time) time.Duration {
	local := now.In(sweeper.location)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, sweeper.location)
	return next.Sub(local)
}
