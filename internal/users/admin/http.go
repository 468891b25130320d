// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/middleware"
	requestutil "github.com/luanpsilva/ludoteca/internal/platform/request"
	"github.com/luanpsilva/ludoteca/internal/platform/respond"
	"github.com/luanpsilva/ludoteca/internal/platform/validate"
	"github.com/luanpsilva/ludoteca/internal/users/auth"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// Handler implements the HTTP layer for the admin dashboard.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new admin [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] with the admin dashboard endpoints.
//
// The whole router is gated twice: the tier check (admin only) and the
// manage-users permission flag from the matrix.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireRole(role.Admin))
	router.Use(middleware.RequireAction(role.ActionManageUsers))

	router.Get("/stats", handler.getStats)
	router.Get("/users", handler.listUsers)
	router.Get("/users/{id}", handler.getUser)
	router.Patch("/users/{id}/role", handler.setRole)
	router.Patch("/users/{id}/status", handler.setStatus)
	router.Delete("/users/{id}", handler.deleteUser)

	return router
}

/*
GET /api/v1/admin/stats.

Description: Returns the dashboard aggregates: member totals per tier and
status, plus the number of accounts the next promotion sweep will pick up.

Response:
  - 200: Stats: Aggregated counters
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.adminService.GetStats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

/*
GET /api/v1/admin/users.

Description: Lists user accounts with optional filters.

Request:
  - query: page, limit (pagination)
  - query: role, status, search (filters)

Response:
  - 200: []UserSummary: Paginated member list
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := ListFilter{
		Search: request.URL.Query().Get("search"),
	}

	if raw := request.URL.Query().Get("role"); raw != "" {
		filter.Role = role.Parse(raw)
	}
	if raw := request.URL.Query().Get("status"); raw != "" {
		filter.Status = auth.Status(raw)
	}

	users, meta, err := handler.adminService.ListUsers(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

/*
GET /api/v1/admin/users/{id}.

Description: Retrieves the full account record for a user.

Response:
  - 200: User: Hydrated account
  - 404: ErrNotFound: Unknown user
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID := chi.URLParam(request, "id")

	user, err := handler.adminService.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// setRoleRequest is the payload for tier changes.
type setRoleRequest struct {
	Role string `json:"role"`
}

/*
PATCH /api/v1/admin/users/{id}/role.

Description: Replaces a user's tier. Granting membro+ manually stamps the
promotion timestamp exactly like the automatic sweep.

Request:
  - body: setRoleRequest

Response:
  - 200: User: The updated account
  - 400: Validation: Unknown role
  - 403: ErrForbidden: Self-target or caller not admin
  - 404: ErrNotFound: Unknown user
*/
func (handler *Handler) setRole(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	targetID := chi.URLParam(request, "id")

	user, err := handler.adminService.SetRole(request.Context(), claims.UserID, targetID, role.Role(input.Role))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// setStatusRequest is the payload for account status changes.
type setStatusRequest struct {
	Status string `json:"status"`
}

/*
PATCH /api/v1/admin/users/{id}/status.

Description: Bans, disables, or reactivates an account. Suspension revokes
every live session immediately.

Request:
  - body: setStatusRequest

Response:
  - 200: User: The updated account
  - 400: Validation: Unknown status
  - 403: ErrForbidden: Self-target or caller not admin
  - 404: ErrNotFound: Unknown user
*/
func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	targetID := chi.URLParam(request, "id")

	user, err := handler.adminService.SetStatus(request.Context(), claims.UserID, targetID, auth.Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/admin/users/{id}.

Description: Soft-deletes a user account and terminates its sessions.

Response:
  - 204: No Content: Account removed
  - 403: ErrForbidden: Self-target or caller not admin
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := chi.URLParam(request, "id")

	if err := handler.adminService.DeleteUser(request.Context(), claims.UserID, targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
