package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/devhub/backend/internal/auth"
	"github.com/devhub/backend/internal/models"
)

// ForumService is the interface that wraps methods for forum business logic
type ForumService interface {
	ListThreads(ctx context.Context, page, size int, categorySlug string) (*models.PageResponse[*models.ForumThreadResponse], error)
	GetThread(ctx context.Context, id int64, page, size int) (*models.ForumThreadDetailResponse, error)
	CreateThread(ctx context.Context, req *models.CreateThreadRequest, author *models.User) (*models.ForumThreadResponse, error)
	// CreatePost adds a post to a thread. Posting to a locked thread fails
	// with models.ErrThreadLocked; a missing thread fails with models.ErrNotFound.
	CreatePost(ctx context.Context, threadID int64, req *models.CreatePostRequest, author *models.User) (*models.ForumPostResponse, error)
}

// ForumHandler handles forum-related HTTP requests
type ForumHandler struct {
	BaseHandler
	forumService ForumService
}

// NewForumHandler creates a new forum handler
func NewForumHandler(forumService ForumService, logger *zap.Logger) *ForumHandler {
	return &ForumHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		forumService: forumService,
	}
}

// RegisterRoutes registers all forum handler routes
// Note: This assumes the router is already scoped to /api
func (h *ForumHandler) RegisterRoutes(r chi.Router) {
	r.Route("/forum", func(r chi.Router) {
		r.Get("/threads", h.ListThreads)
		r.Get("/threads/{id}", h.GetThread)
		r.Post("/threads", h.CreateThread)
		r.Post("/threads/{id}/posts", h.CreatePost)
	})
}

// ListThreads handles GET /forum/threads
// @Summary List forum threads
// @Tags forum
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(20)
// @Param category query string false "Category slug filter"
// @Success 200 {object} models.PageResponse[models.ForumThreadResponse]
// @Router /forum/threads [get]
func (h *ForumHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 20)
	category := r.URL.Query().Get("category")

	result, err := h.forumService.ListThreads(r.Context(), page, size, category)
	if err != nil {
		h.Logger.Error("failed to list threads", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetThread handles GET /forum/threads/{id}
// @Summary Get a thread with its posts
// @Tags forum
// @Produce json
// @Param id path int true "Thread ID"
// @Param page query int false "Post page number" default(0)
// @Param size query int false "Post page size" default(50)
// @Success 200 {object} models.ForumThreadDetailResponse
// @Failure 404 {object} map[string]string "Thread not found"
// @Router /forum/threads/{id} [get]
func (h *ForumHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid thread id")
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 50)

	thread, err := h.forumService.GetThread(r.Context(), id, page, size)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "thread not found")
			return
		}
		h.Logger.Error("failed to get thread", zap.Error(err), zap.Int64("id", id))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, thread)
}

// CreateThread handles POST /forum/threads
// @Summary Create a thread
// @Tags forum
// @Accept json
// @Produce json
// @Param request body models.CreateThreadRequest true "Thread data"
// @Success 201 {object} models.ForumThreadResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Authentication required"
// @Security ApiKeyAuth
// @Router /forum/threads [post]
func (h *ForumHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	thread, err := h.forumService.CreateThread(r.Context(), &req, principal)
	if err != nil {
		h.Logger.Error("failed to create thread", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, thread)
}

// CreatePost handles POST /forum/threads/{id}/posts
// @Summary Add a post to a thread
// @Tags forum
// @Accept json
// @Produce json
// @Param id path int true "Thread ID"
// @Param request body models.CreatePostRequest true "Post data"
// @Success 201 {object} models.ForumPostResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 403 {object} map[string]string "Thread is locked"
// @Failure 404 {object} map[string]string "Thread not found"
// @Security ApiKeyAuth
// @Router /forum/threads/{id}/posts [post]
func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid thread id")
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.forumService.CreatePost(r.Context(), id, &req, principal)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			h.RespondError(w, http.StatusNotFound, "thread not found")
		case errors.Is(err, models.ErrThreadLocked):
			h.RespondError(w, http.StatusForbidden, err.Error())
		default:
			h.Logger.Error("failed to create post", zap.Error(err), zap.Int64("thread_id", id))
			h.RespondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.RespondJSON(w, http.StatusCreated, post)
}
