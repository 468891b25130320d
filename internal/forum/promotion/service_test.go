// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package promotion_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanpsilva/ludoteca/internal/forum/promotion"
	"github.com/luanpsilva/ludoteca/internal/forum/role"
)

// fakeStore is an in-memory [promotion.Store] tracking account roles.
type fakeStore struct {
	accounts map[string]fakeAccount

	findErr    error
	promoteErr error

	promoteCalls int
}

type fakeAccount struct {
	role      role.Role
	createdAt time.Time
}

func (store *fakeStore) FindEligible(_ context.Context, cutoff time.Time) ([]promotion.Candidate, error) {
	if store.findErr != nil {
		return nil, store.findErr
	}

	var out []promotion.Candidate
	for id, account := range store.accounts {
		if account.role == role.Member && !account.createdAt.After(cutoff) {
			out = append(out, promotion.Candidate{ID: id, CreatedAt: account.createdAt})
		}
	}
	return out, nil
}

func (store *fakeStore) PromoteBatch(_ context.Context, ids []string, _ time.Time) (int64, error) {
	store.promoteCalls++
	if store.promoteErr != nil {
		// All-or-nothing: nothing is mutated on failure.
		return 0, store.promoteErr
	}

	var promoted int64
	for _, id := range ids {
		account, ok := store.accounts[id]
		if !ok || account.role != role.Member {
			continue
		}
		account.role = role.MemberPlus
		store.accounts[id] = account
		promoted++
	}
	return promoted, nil
}

func newTestService(store *fakeStore) *promotion.Service {
	return promotion.NewService(store, slog.New(slog.DiscardHandler))
}

/*
TestRunSweep_PromotesOnlyEligible seeds two eligible membro accounts, one
fresh membro, and one already-promoted account; exactly the two eligible
accounts must change.
*/
func TestRunSweep_PromotesOnlyEligible(t *testing.T) {
	now := time.Now()
	store := &fakeStore{accounts: map[string]fakeAccount{
		"old-a":    {role: role.Member, createdAt: now.Add(-4 * 24 * time.Hour)},
		"old-b":    {role: role.Member, createdAt: now.Add(-72 * time.Hour)},
		"fresh":    {role: role.Member, createdAt: now.Add(-time.Hour)},
		"promoted": {role: role.MemberPlus, createdAt: now.Add(-30 * 24 * time.Hour)},
	}}

	promoted, err := newTestService(store).RunSweep(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 2, promoted)
	assert.Equal(t, role.MemberPlus, store.accounts["old-a"].role)
	assert.Equal(t, role.MemberPlus, store.accounts["old-b"].role)
	assert.Equal(t, role.Member, store.accounts["fresh"].role)
	assert.Equal(t, role.MemberPlus, store.accounts["promoted"].role)
}

/*
TestRunSweep_Idempotent runs the sweep twice with no intervening changes; the
second run must promote nothing.
*/
func TestRunSweep_Idempotent(t *testing.T) {
	now := time.Now()
	store := &fakeStore{accounts: map[string]fakeAccount{
		"old": {role: role.Member, createdAt: now.Add(-10 * 24 * time.Hour)},
	}}
	service := newTestService(store)

	first, err := service.RunSweep(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, first)

	second, err := service.RunSweep(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, second)
}

/*
TestRunSweep_BatchFailurePromotesNobody verifies the all-or-nothing contract:
a failed batch commit leaves every account unchanged.
*/
func TestRunSweep_BatchFailurePromotesNobody(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		accounts: map[string]fakeAccount{
			"old-a": {role: role.Member, createdAt: now.Add(-5 * 24 * time.Hour)},
			"old-b": {role: role.Member, createdAt: now.Add(-5 * 24 * time.Hour)},
		},
		promoteErr: errors.New("commit failed"),
	}

	promoted, err := newTestService(store).RunSweep(context.Background())

	require.Error(t, err)
	assert.EqualValues(t, 0, promoted)
	assert.Equal(t, role.Member, store.accounts["old-a"].role)
	assert.Equal(t, role.Member, store.accounts["old-b"].role)
}

/*
TestRunSweep_QueryFailureAbandonsCycle checks that a failed query aborts the
cycle without attempting a batch.
*/
func TestRunSweep_QueryFailureAbandonsCycle(t *testing.T) {
	store := &fakeStore{findErr: errors.New("connection reset")}

	promoted, err := newTestService(store).RunSweep(context.Background())

	require.Error(t, err)
	assert.EqualValues(t, 0, promoted)
	assert.Equal(t, 0, store.promoteCalls)
}

/*
TestRunSweep_SkipsMalformedCandidates ensures a zero createdat row returned by
the store is filtered out by the fail-safe re-check instead of being promoted.
*/
func TestRunSweep_SkipsMalformedCandidates(t *testing.T) {
	store := &fakeStore{accounts: map[string]fakeAccount{
		"bad": {role: role.Member, createdAt: time.Time{}},
	}}

	// Zero time is before any cutoff, so FindEligible returns it; the
	// service must still refuse to promote it.
	promoted, err := newTestService(store).RunSweep(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 0, promoted)
	assert.Equal(t, role.Member, store.accounts["bad"].role)
}
