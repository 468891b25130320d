// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/middleware"
	requestutil "github.com/luanpsilva/ludoteca/internal/platform/request"
	"github.com/luanpsilva/ludoteca/internal/platform/respond"
	"github.com/luanpsilva/ludoteca/internal/platform/validate"
)

// Handler implements the HTTP layer for post ratings.
type Handler struct {
	ratingService *Service
}

// NewHandler constructs a new rating [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{ratingService: service}
}

// Routes returns a [chi.Router] with the rating endpoints.
//
// Mounted under /posts/{postID}/rating by the server.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getOwnRating)
	router.With(middleware.RequireAction(role.ActionRate)).Put("/", handler.ratePost)
	router.Delete("/", handler.removeRating)

	return router
}

/*
GET /api/v1/posts/{postID}/rating.

Description: Returns the caller's rating for the post.

Response:
  - 200: Rating: The caller's rating
  - 404: ErrNotFound: Caller has not rated this post
*/
func (handler *Handler) getOwnRating(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rating, err := handler.ratingService.GetOwn(request.Context(), chi.URLParam(request, "postID"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, rating)
}

// rateRequest is the payload for rating a post.
type rateRequest struct {
	Stars int `json:"stars"`
}

/*
PUT /api/v1/posts/{postID}/rating.

Description: Stores or replaces the caller's 1-5 star rating. Idempotent per
(post, user) pair.

Request:
  - body: rateRequest

Response:
  - 200: Rating: The stored rating
  - 400: Validation: Stars out of range
  - 403: PermissionDenied: Tier cannot rate, or own post
  - 404: ErrNotFound: Unknown post
*/
func (handler *Handler) ratePost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	rating, err := handler.ratingService.RatePost(
		request.Context(),
		claims.UserID,
		role.Parse(claims.Role),
		chi.URLParam(request, "postID"),
		input.Stars,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, rating)
}

/*
DELETE /api/v1/posts/{postID}/rating.

Description: Removes the caller's rating and rolls the aggregates back.

Response:
  - 204: No Content: Rating removed
  - 404: ErrNotFound: Caller has not rated this post
*/
func (handler *Handler) removeRating(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.ratingService.RemoveRating(request.Context(), userID, chi.URLParam(request, "postID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
