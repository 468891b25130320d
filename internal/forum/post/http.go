// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luanpsilva/ludoteca/internal/forum/role"
	"github.com/luanpsilva/ludoteca/internal/platform/middleware"
	requestutil "github.com/luanpsilva/ludoteca/internal/platform/request"
	"github.com/luanpsilva/ludoteca/internal/platform/respond"
	"github.com/luanpsilva/ludoteca/internal/platform/validate"
	"github.com/luanpsilva/ludoteca/pkg/pagination"
	"github.com/luanpsilva/ludoteca/pkg/query"
)

// Handler implements the HTTP layer for forum posts.
type Handler struct {
	postService *Service
}

// NewHandler constructs a new post [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes returns a [chi.Router] with the post domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public browsing
	router.Get("/", handler.listPosts)
	router.Get("/{slug}", handler.getPost)

	// Authenticated writes
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireAction(role.ActionCreatePost)).Post("/", handler.createPost)
		r.Patch("/{id}", handler.updatePost)
		r.Delete("/{id}", handler.deletePost)
	})

	return router
}

/*
GET /api/v1/posts.

Description: Lists posts with optional filters and sorting.

Request:
  - query: page, limit (pagination)
  - query: author, tags (comma-separated), search, sort (recent|rating|views)

Response:
  - 200: []Post: Paginated post list
*/
func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := ListFilter{
		AuthorID: request.URL.Query().Get("author"),
		Tags:     query.StringSlice(request.URL.Query().Get("tags")),
		Search:   request.URL.Query().Get("search"),
		Sort:     request.URL.Query().Get("sort"),
	}

	posts, meta, err := handler.postService.ListPosts(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

/*
GET /api/v1/posts/{slug}.

Description: Retrieves a post by slug and records the view.

Response:
  - 200: Post: Hydrated post
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.postService.GetBySlug(request.Context(), chi.URLParam(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// postRequest is the payload for creating a post.
type postRequest struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	CoverURL      string         `json:"cover_url"`
	Tags          []string       `json:"tags"`
	DownloadLinks []DownloadLink `json:"download_links"`
	IsAnimated    bool           `json:"is_animated"`
}

/*
POST /api/v1/posts.

Description: Publishes a new post. The caller's tier must grant post
creation; download links must use allowed file hosts.

Request:
  - body: postRequest

Response:
  - 201: Post: The created post
  - 400: Validation: Bad input or disallowed link host
  - 403: PermissionDenied: Tier cannot create posts
  - 409: ErrConflict: Duplicate title
*/
func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.postService.CreatePost(request.Context(), CreateInput{
		AuthorID:      claims.UserID,
		AuthorRole:    role.Parse(claims.Role),
		Title:         input.Title,
		Description:   input.Description,
		CoverURL:      input.CoverURL,
		Tags:          input.Tags,
		DownloadLinks: input.DownloadLinks,
		IsAnimated:    input.IsAnimated,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

// updatePostRequest is the payload for partial post edits.
type updatePostRequest struct {
	Title         *string        `json:"title"`
	Description   *string        `json:"description"`
	CoverURL      *string        `json:"cover_url"`
	Tags          []string       `json:"tags"`
	DownloadLinks []DownloadLink `json:"download_links"`
	IsAnimated    *bool          `json:"is_animated"`
}

/*
PATCH /api/v1/posts/{id}.

Description: Applies partial edits to a post. Author only.

Request:
  - body: updatePostRequest

Response:
  - 200: Post: The updated post
  - 403: ErrForbidden: Caller is not the author
  - 404: ErrNotFound: Unknown post
*/
func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.postService.UpdatePost(
		request.Context(),
		claims.UserID,
		role.Parse(claims.Role),
		chi.URLParam(request, "id"),
		UpdateInput{
			Title:         input.Title,
			Description:   input.Description,
			CoverURL:      input.CoverURL,
			Tags:          input.Tags,
			DownloadLinks: input.DownloadLinks,
			IsAnimated:    input.IsAnimated,
		},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
DELETE /api/v1/posts/{id}.

Description: Deletes a post. Authors can delete their own; the delete-any
privilege (admin) covers the rest.

Response:
  - 204: No Content: Post deleted
  - 403: PermissionDenied: Not the author and no delete-any privilege
  - 404: ErrNotFound: Unknown post
*/
func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.postService.DeletePost(
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
