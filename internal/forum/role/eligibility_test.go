// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package role_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
)

/*
TestCheckEligibility_Threshold exercises the exact 72h boundary.
*/
func TestCheckEligibility_Threshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		age      time.Duration
		eligible bool
	}{
		{"brand_new", 0, false},
		{"one_day", 24 * time.Hour, false},
		{"just_under", 72*time.Hour - time.Second, false},
		{"exactly_72h", 72 * time.Hour, true},
		{"well_past", 30 * 24 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := role.CheckEligibility(role.Member, now.Add(-tt.age), now)
			assert.Equal(t, tt.eligible, result.Eligible)
		})
	}
}

/*
TestCheckEligibility_OnlyMembro verifies that non-membro roles are never
eligible regardless of account age.
*/
func TestCheckEligibility_OnlyMembro(t *testing.T) {
	now := time.Now()
	old := now.Add(-365 * 24 * time.Hour)

	for _, r := range []role.Role{role.MemberPlus, role.VIP, role.VIPPlus, role.Admin, role.Role("unknown")} {
		t.Run(string(r), func(t *testing.T) {
			result := role.CheckEligibility(r, old, now)
			assert.False(t, result.Eligible)
			assert.Nil(t, result.Remaining)
		})
	}
}

/*
TestCheckEligibility_Remaining checks the countdown breakdown shown to users.
*/
func TestCheckEligibility_Remaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// Created 2 days, 23 hours and 59 minutes ago: one minute to go.
	createdAt := now.Add(-(2*24*time.Hour + 23*time.Hour + 59*time.Minute))
	result := role.CheckEligibility(role.Member, createdAt, now)

	assert.False(t, result.Eligible)
	require.NotNil(t, result.Remaining)
	assert.Equal(t, 0, result.Remaining.Days)
	assert.Equal(t, 0, result.Remaining.Hours)
	assert.Equal(t, 1, result.Remaining.Minutes)

	// Created 1 hour ago: 2 days and 23 hours left.
	result = role.CheckEligibility(role.Member, now.Add(-time.Hour), now)
	assert.False(t, result.Eligible)
	require.NotNil(t, result.Remaining)
	assert.Equal(t, 2, result.Remaining.Days)
	assert.Equal(t, 23, result.Remaining.Hours)
	assert.Equal(t, 0, result.Remaining.Minutes)
}

/*
TestCheckEligibility_FailSafe verifies ambiguous timestamps never promote.
*/
func TestCheckEligibility_FailSafe(t *testing.T) {
	now := time.Now()

	// Zero timestamp (missing/unparseable upstream).
	result := role.CheckEligibility(role.Member, time.Time{}, now)
	assert.False(t, result.Eligible)
	assert.Nil(t, result.Remaining)

	// Timestamp in the future (clock skew or corrupted data).
	result = role.CheckEligibility(role.Member, now.Add(time.Hour), now)
	assert.False(t, result.Eligible)
}
