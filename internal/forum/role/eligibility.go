// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package role

import "time"

// # Automatic Promotion Rule

const (
	// PromotionThresholdDays is the account age (in days) required for the
	// automatic membro → membro+ promotion.
	PromotionThresholdDays = 3

	// PromotionThreshold is the same threshold as a duration. The window is
	// measured in absolute elapsed time (exactly 72h), independent of the
	// civil timezone the sweep happens to be scheduled in.
	PromotionThreshold = PromotionThresholdDays * 24 * time.Hour
)

// Remaining is the time left until automatic promotion, broken into
// calendar-friendly components for display.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Eligibility is the result of evaluating the promotion rule for an account.
type Eligibility struct {
	Eligible bool `json:"eligible"`

	// Remaining is populated only when the account is a membro that has not
	// yet reached the threshold. Components are floor-divided and never
	// negative.
	Remaining *Remaining `json:"remaining,omitempty"`
}

// CheckEligibility evaluates the automatic promotion rule.
//
// An account is eligible iff its role is [Member] AND now − createdAt has
// reached [PromotionThreshold]. The check is a pure predicate: it is shared
// by the daily sweep and the read-only "time until promotion" display, and
// it never mutates anything.
//
// # Fail-safe input handling
//
// A zero createdAt (missing or unparseable timestamp upstream) yields "not
// eligible" rather than an error: promotion must never happen on ambiguous
// data. Non-membro roles are never eligible regardless of account age —
// vip/vip+/admin are granted out-of-band, and membro+ is already promoted.
func CheckEligibility(r Role, createdAt time.Time, now time.Time) Eligibility {
	if r != Member {
		return Eligibility{Eligible: false}
	}

	if createdAt.IsZero() || createdAt.After(now) {
		return Eligibility{Eligible: false}
	}

	elapsed := now.Sub(createdAt)
	if elapsed >= PromotionThreshold {
		return Eligibility{Eligible: true}
	}

	left := PromotionThreshold - elapsed
	return Eligibility{
		Eligible: false,
		Remaining: &Remaining{
			Days:    int(left / (24 * time.Hour)),
			Hours:   int(left % (24 * time.Hour) / time.Hour),
			Minutes: int(left % time.Hour / time.Minute),
		},
	}
}
