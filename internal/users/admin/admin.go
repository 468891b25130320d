// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

/*
Package admin implements the administrative dashboard for the user base.

It provides moderation capabilities reserved for admin accounts: browsing and
searching the member list, changing tiers, banning or disabling accounts, and
hard-removing users.

# Architecture

  - Entities: UserSummary, Stats (DTOs). The full User entity lives in auth.
  - Security: Every endpoint is mounted behind RequireRole(admin) and the
    manage-users permission gate; the service adds self-targeting guards.
*/
package admin

import (
	"context"
	"time"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/users/auth"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// # Domain Entities

// UserSummary is the admin-facing listing row for a user account.
type UserSummary struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Role        role.Role   `json:"role"`
	Status      auth.Status `json:"status"`
	IsVerified  bool        `json:"is_verified"`
	PostCount   int         `json:"post_count"`
	RatingCount int         `json:"rating_count"`
	PromotedAt  *time.Time  `json:"promoted_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ListFilter narrows the member list by optional criteria.
type ListFilter struct {
	// Role filters by exact tier; empty means all tiers.
	Role role.Role

	// Status filters by account status; empty means all statuses.
	Status auth.Status

	// Search matches username, email, or display name (substring).
	Search string
}

// Stats aggregates the dashboard counters shown on the admin home.
type Stats struct {
	TotalUsers int `json:"total_users"`

	// ByRole maps each tier to its member count.
	ByRole map[role.Role]int `json:"by_role"`

	// ByStatus maps each account status to its member count.
	ByStatus map[auth.Status]int `json:"by_status"`

	// PendingPromotion is the number of membro accounts currently past the
	// promotion threshold, i.e. what the next sweep is expected to promote.
	PendingPromotion int `json:"pending_promotion"`
}

// # Repository Contract

// Repository defines the administrative data access contract.
type Repository interface {
	/*
		List returns a page of user summaries matching the filter, plus the
		total match count for pagination metadata.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter
		  - params: pagination.Params

		Returns:
		  - []UserSummary: Page of results
		  - int: Total matching rows
		  - error: Retrieval failures
	*/
	List(context context.Context, filter ListFilter, params pagination.Params) ([]UserSummary, int, error)

	/*
		FindByID retrieves a full user record for administrative inspection.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *auth.User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		SetRole replaces a user's tier. When promotedAt is non-nil it is
		stamped in the same statement.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newRole: role.Role
		  - promotedAt: *time.Time

		Returns:
		  - error: Update failures
	*/
	SetRole(context context.Context, userID string, newRole role.Role, promotedAt *time.Time) error

	/*
		SetStatus replaces a user's account status.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newStatus: auth.Status

		Returns:
		  - error: Update failures
	*/
	SetStatus(context context.Context, userID string, newStatus auth.Status) error

	/*
		Delete soft-deletes a user account.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Execution failures
	*/
	Delete(context context.Context, userID string) error

	/*
		CollectStats computes the dashboard aggregates.

		Parameters:
		  - context: context.Context
		  - promotionCutoff: time.Time (accounts created at or before this
		    instant count toward PendingPromotion)

		Returns:
		  - *Stats: Aggregated counters
		  - error: Retrieval failures
	*/
	CollectStats(context context.Context, promotionCutoff time.Time) (*Stats, error)
}

// SessionRevoker terminates sessions when moderation actions demand it.
//
// Satisfied by the account package's session repository; declared here so the
// admin service does not import a sibling domain.
type SessionRevoker interface {
	RevokeAll(context context.Context, userID string) error
}
