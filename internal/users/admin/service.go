// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/apperr"
	"github.com/luanpsilva/ludoteca/internal/users/auth"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// # Service Layer

// Service orchestrates administrative moderation actions.
type Service struct {
	repository Repository
	sessions   SessionRevoker
	logger     *slog.Logger
}

// NewService constructs a new admin [Service].
func NewService(repository Repository, sessions SessionRevoker, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		sessions:   sessions,
		logger:     logger,
	}
}

/*
ListUsers returns a filtered, paginated page of the member list.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - params: pagination.Params

Returns:
  - []UserSummary: Page of results
  - pagination.Meta: Navigation metadata
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, filter ListFilter, params pagination.Params) ([]UserSummary, pagination.Meta, error) {
	users, total, err := service.repository.List(context, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("admin_service_list_users_failed: %w", err)
	}

	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
GetUser retrieves the full account record for administrative inspection.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: Hydrated entity
  - error: Not found or retrieval failures
*/
func (service *Service) GetUser(context context.Context, userID string) (*auth.User, error) {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("admin_service_get_user_failed: %w", err)
	}
	return user, nil
}

/*
SetRole changes a user's tier.

Description: Admins cannot change their own tier (lock-out prevention). A
manual grant of membro+ stamps promotedat the same way the automatic sweep
does, so the account never re-enters the promotion queue.

Parameters:
  - context: context.Context
  - actorID: string (the admin performing the change)
  - userID: string (the target account)
  - newRole: role.Role

Returns:
  - *auth.User: The updated account
  - error: Validation, self-target, or update failures
*/
func (service *Service) SetRole(context context.Context, actorID, userID string, newRole role.Role) (*auth.User, error) {
	if actorID == userID {
		return nil, apperr.Forbidden("You cannot change your own role.")
	}

	if !newRole.IsValid() {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "role",
			Message: "Unknown role",
		})
	}

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("admin_service_set_role_lookup_failed: %w", err)
	}

	var promotedAt *time.Time
	if newRole == role.MemberPlus && user.PromotedAt == nil {
		now := time.Now()
		promotedAt = &now
	}

	if err := service.repository.SetRole(context, userID, newRole, promotedAt); err != nil {
		return nil, fmt.Errorf("admin_service_set_role_failed: %w", err)
	}

	service.logger.Info("admin_role_changed",
		slog.String("actor_id", actorID),
		slog.String("user_id", userID),
		slog.String("from", string(user.Role)),
		slog.String("to", string(newRole)),
	)

	user.Role = newRole
	if promotedAt != nil {
		user.PromotedAt = promotedAt
	}

	return user, nil
}

/*
SetStatus changes a user's account status (active, banned, disabled).

Description: Banning or disabling revokes every live session so the target is
signed out immediately; the login and refresh paths then reject the account.
Admins cannot suspend themselves.

Parameters:
  - context: context.Context
  - actorID: string
  - userID: string
  - newStatus: auth.Status

Returns:
  - *auth.User: The updated account
  - error: Validation, self-target, or update failures
*/
func (service *Service) SetStatus(context context.Context, actorID, userID string, newStatus auth.Status) (*auth.User, error) {
	if actorID == userID {
		return nil, apperr.Forbidden("You cannot change your own account status.")
	}

	switch newStatus {
	case auth.StatusActive, auth.StatusBanned, auth.StatusDisabled:
	default:
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "status",
			Message: "Unknown status",
		})
	}

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("admin_service_set_status_lookup_failed: %w", err)
	}

	if err := service.repository.SetStatus(context, userID, newStatus); err != nil {
		return nil, fmt.Errorf("admin_service_set_status_failed: %w", err)
	}

	// Suspension takes effect immediately, not at next token expiry.
	if !newStatus.IsActive() {
		_ = service.sessions.RevokeAll(context, userID)
	}

	service.logger.Warn("admin_status_changed",
		slog.String("actor_id", actorID),
		slog.String("user_id", userID),
		slog.String("from", string(user.Status)),
		slog.String("to", string(newStatus)),
	)

	user.Status = newStatus
	return user, nil
}

/*
DeleteUser soft-deletes a user account and revokes its sessions.

Parameters:
  - context: context.Context
  - actorID: string
  - userID: string

Returns:
  - error: Self-target or execution failures
*/
func (service *Service) DeleteUser(context context.Context, actorID, userID string) error {
	if actorID == userID {
		return apperr.Forbidden("You cannot delete your own account from the dashboard.")
	}

	if err := service.repository.Delete(context, userID); err != nil {
		return fmt.Errorf("admin_service_delete_user_failed: %w", err)
	}

	_ = service.sessions.RevokeAll(context, userID)

	service.logger.Warn("admin_user_deleted",
		slog.String("actor_id", actorID),
		slog.String("user_id", userID),
	)

	return nil
}

/*
GetStats computes the dashboard aggregates.

Description: PendingPromotion uses the same cutoff rule as the sweep, so the
dashboard predicts exactly what the next run will promote.

Parameters:
  - context: context.Context

Returns:
  - *Stats: Aggregated counters
  - error: Retrieval failures
*/
func (service *Service) GetStats(context context.Context) (*Stats, error) {
	cutoff := time.Now().Add(-role.PromotionThreshold)

	stats, err := service.repository.CollectStats(context, cutoff)
	if err != nil {
		return nil, fmt.Errorf("admin_service_stats_failed: %w", err)
	}

	return stats, nil
}
