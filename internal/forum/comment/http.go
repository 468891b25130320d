// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/middleware"
	requestutil "github.com/luanpsilva/ludoteca/internal/platform/request"
	"github.com/luanpsilva/ludoteca/internal/platform/respond"
	"github.com/luanpsilva/ludoteca/internal/platform/validate"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
)

// Handler implements the HTTP layer for post comments.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] with the comment endpoints.
//
// Mounted under /posts/{postID}/comments by the server; the standalone
// delete route lives under /comments/{id}.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listComments)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireAction(role.ActionComment)).Post("/", handler.addComment)
	})

	return router
}

// DeleteRoutes returns the router for comment deletion by ID.
func (handler *Handler) DeleteRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Delete("/{id}", handler.deleteComment)
	})

	return router
}

/*
GET /api/v1/posts/{postID}/comments.

Description: Lists a post's comments, oldest first.

Request:
  - query: page, limit (pagination)

Response:
  - 200: []Comment: Paginated comment list
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	comments, meta, err := handler.commentService.ListComments(
		request.Context(),
		chi.URLParam(request, "postID"),
		params,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, meta)
}

// commentRequest is the payload for adding a comment.
type commentRequest struct {
	Body   string `json:"body"`
	GifURL string `json:"gif_url"`
}

/*
POST /api/v1/posts/{postID}/comments.

Description: Attaches a comment to a post. Commenting requires the comment
privilege; embedding a GIF requires the separate GIF privilege.

Request:
  - body: commentRequest

Response:
  - 201: Comment: The created comment
  - 400: Validation: Empty or oversized body
  - 403: PermissionDenied: Tier cannot comment or use GIFs
  - 404: ErrNotFound: Unknown post
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.commentService.AddComment(request.Context(), AddInput{
		PostID:     chi.URLParam(request, "postID"),
		AuthorID:   claims.UserID,
		AuthorRole: role.Parse(claims.Role),
		Body:       input.Body,
		GifURL:     input.GifURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
DELETE /api/v1/comments/{id}.

Description: Deletes a comment. Authors can delete their own; the delete-any
privilege (admin) covers the rest.

Response:
  - 204: No Content: Comment deleted
  - 403: PermissionDenied: Not the author and no delete-any privilege
  - 404: ErrNotFound: Unknown comment
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.commentService.DeleteComment(
		request.Context(),
		claims.UserID,
		role.Parse(claims.Role),
		chi.URLParam(request, "id"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
