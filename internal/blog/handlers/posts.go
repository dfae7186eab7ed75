package handlers

// posts.go implements the /posts endpoints

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/blog-demo/internal/blog"
	"github.com/information-sharing-networks/blog-demo/internal/logger"
)

// PostsHandler maps the /posts routes to the blog post store
type PostsHandler struct {
	store blog.Store
}

// NewPostsHandler creates a new handler for the /posts routes
func NewPostsHandler(store blog.Store) *PostsHandler {
	return &PostsHandler{store: store}
}

// HandleListPosts godoc
//
//	@Summary		List blog posts
//	@Description	Returns every blog post, oldest first. An empty collection is returned as `[]`.
//	@Description
//	@Description	The response carries an `ETag`; send it back in `If-None-Match` to receive `304 Not Modified`
//	@Description	while the collection is unchanged.
//	@Tags			Posts
//	@Produce		json
//	@Param			If-None-Match	header		string				false	"ETag from a previous response"
//	@Success		200				{array}		blog.PostResponse
//	@Success		304				{string}	string				"Not modified"
//	@Failure		500				{object}	blog.ErrorResponse	"Internal error"
//	@Router			/posts [get]
func (h *PostsHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := h.store.FindAll(ctx)
	if err != nil {
		blog.RespondWithErrorResponse(w, r, blog.WrapInternalError(err, "failed to list blog posts"))
		return
	}

	response := blog.NewPostResponses(posts)

	etag, err := blog.ETag(response)
	if err != nil {
		blog.RespondWithErrorResponse(w, r, blog.WrapInternalError(err, "failed to list blog posts"))
		return
	}

	logger.ContextWithLogAttrs(ctx, slog.Int("post_count", len(response)))

	w.Header().Set("ETag", etag)
	if blog.ETagMatches(r.Header.Get("If-None-Match"), etag) {
		blog.RespondWithStatusCodeOnly(w, http.StatusNotModified)
		return
	}

	blog.RespondWithJSONPayload(w, http.StatusOK, response)
}

// HandleGetPost godoc
//
//	@Summary	Get a blog post
//	@Tags		Posts
//	@Produce	json
//	@Param		id	path		string	true	"Post id"
//	@Success	200	{object}	blog.PostResponse
//	@Failure	404	{object}	blog.ErrorResponse	"Post not found"
//	@Failure	500	{object}	blog.ErrorResponse	"Internal error"
//	@Router		/posts/{id} [get]
func (h *PostsHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		blog.RespondWithErrorResponse(w, r, storeError(err, id, "failed to get blog post"))
		return
	}

	blog.RespondWithJSONPayload(w, http.StatusOK, blog.NewPostResponse(post))
}

// HandleCreatePost godoc
//
//	@Summary		Create a blog post
//	@Description	`title`, `content`, `author.firstName` and `author.lastName` are required.
//	@Description	The id and created time are assigned by the server.
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Param			post	body		blog.CreatePostRequest	true	"Post to create"
//	@Success		201		{object}	blog.PostResponse
//	@Header			201		{string}	Location	"/posts/{id}"
//	@Failure		400		{object}	blog.ErrorResponse	"Malformed request or missing field"
//	@Failure		413		{object}	blog.ErrorResponse	"Request too large"
//	@Failure		500		{object}	blog.ErrorResponse	"Internal error"
//	@Router			/posts [post]
func (h *PostsHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqLogger := logger.ContextRequestLogger(ctx)

	var req blog.CreatePostRequest
	if err := blog.DecodeJSON(r, &req); err != nil {
		blog.RespondWithErrorResponse(w, r, err)
		return
	}

	post, err := req.Validate()
	if err != nil {
		blog.RespondWithErrorResponse(w, r, err)
		return
	}

	created, err := h.store.Insert(ctx, post)
	if err != nil {
		blog.RespondWithErrorResponse(w, r, blog.WrapInternalError(err, "failed to create blog post"))
		return
	}

	reqLogger.Info("blog post created", slog.String("post_id", created.ID))
	logger.ContextWithLogAttrs(ctx, slog.String("post_id", created.ID))

	w.Header().Set("Location", "/posts/"+created.ID)
	blog.RespondWithJSONPayload(w, http.StatusCreated, blog.NewPostResponse(created))
}

// HandleUpdatePost godoc
//
//	@Summary		Update a blog post
//	@Description	Applies a partial update. The body `id` must match the path id.
//	@Description	Any subset of `title`, `content`, `author.firstName`, `author.lastName` may be sent. A body with only the id leaves the post unchanged.
//	@Description	The id and created time cannot be changed.
//	@Tags			Posts
//	@Accept			json
//	@Param			id		path	string					true	"Post id"
//	@Param			post	body	blog.UpdatePostRequest	true	"Fields to update"
//	@Success		204
//	@Failure		400	{object}	blog.ErrorResponse	"Malformed request, blank field or id mismatch"
//	@Failure		404	{object}	blog.ErrorResponse	"Post not found"
//	@Failure		500	{object}	blog.ErrorResponse	"Internal error"
//	@Router			/posts/{id} [put]
func (h *PostsHandler) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqLogger := logger.ContextRequestLogger(ctx)
	id := chi.URLParam(r, "id")

	var req blog.UpdatePostRequest
	if err := blog.DecodeJSON(r, &req); err != nil {
		blog.RespondWithErrorResponse(w, r, err)
		return
	}

	update, err := req.Validate(id)
	if err != nil {
		blog.RespondWithErrorResponse(w, r, err)
		return
	}

	if _, err := h.store.Update(ctx, id, update); err != nil {
		blog.RespondWithErrorResponse(w, r, storeError(err, id, "failed to update blog post"))
		return
	}

	reqLogger.Info("blog post updated", slog.String("post_id", id))
	blog.RespondWithStatusCodeOnly(w, http.StatusNoContent)
}

// HandleDeletePost godoc
//
//	@Summary		Delete a blog post
//	@Description	Deleting a post that does not exist also returns 204.
//	@Tags			Posts
//	@Param			id	path	string	true	"Post id"
//	@Success		204
//	@Failure		500	{object}	blog.ErrorResponse	"Internal error"
//	@Router			/posts/{id} [delete]
func (h *PostsHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqLogger := logger.ContextRequestLogger(ctx)
	id := chi.URLParam(r, "id")

	deleted, err := h.store.Delete(ctx, id)
	if err != nil {
		blog.RespondWithErrorResponse(w, r, blog.WrapInternalError(err, "failed to delete blog post"))
		return
	}

	if deleted {
		reqLogger.Info("blog post deleted", slog.String("post_id", id))
	} else {
		reqLogger.Debug("delete requested for a blog post that does not exist", slog.String("post_id", id))
	}
	logger.ContextWithLogAttrs(ctx, slog.Bool("deleted", deleted))

	blog.RespondWithStatusCodeOnly(w, http.StatusNoContent)
}

// storeError maps ErrPostNotFound to a 404, anything else is an internal error
func storeError(err error, id, msg string) error {
	if errors.Is(err, blog.ErrPostNotFound) {
		return blog.NewNotFoundError(id)
	}
	return blog.WrapInternalError(err, msg)
}
