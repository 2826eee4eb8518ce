package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/devhub/backend/internal/auth"
	"github.com/devhub/backend/internal/models"
)

// NewsService is the interface that wraps methods for news business logic
type NewsService interface {
	List(ctx context.Context, page, size int, tag string) (*models.PageResponse[*models.NewsResponse], error)
	GetBySlug(ctx context.Context, slug string) (*models.NewsResponse, error)
	// Create publishes a news item; author may be nil for anonymous callers
	Create(ctx context.Context, req *models.CreateNewsRequest, author *models.User) (*models.NewsResponse, error)
}

// NewsHandler handles news-related HTTP requests
type NewsHandler struct {
	BaseHandler
	newsService NewsService
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsService NewsService, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{
		BaseHandler: BaseHandler{Logger: logger},
		newsService: newsService,
	}
}

// RegisterRoutes registers all news handler routes
// Note: This assumes the router is already scoped to /api
func (h *NewsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/news", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{slug}", h.GetBySlug)
		r.Post("/", h.Create)
	})
}

// List handles GET /news
// @Summary List published news
// @Tags news
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(20)
// @Param tag query string false "Tag filter"
// @Success 200 {object} models.PageResponse[models.NewsResponse]
// @Router /news [get]
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 20)
	tag := r.URL.Query().Get("tag")

	result, err := h.newsService.List(r.Context(), page, size, tag)
	if err != nil {
		h.Logger.Error("failed to list news", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetBySlug handles GET /news/{slug}
// @Summary Get a news item by slug
// @Tags news
// @Produce json
// @Param slug path string true "News slug"
// @Success 200 {object} models.NewsResponse
// @Failure 404 {object} map[string]string "News not found"
// @Router /news/{slug} [get]
func (h *NewsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	item, err := h.newsService.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "news not found")
			return
		}
		h.Logger.Error("failed to get news", zap.Error(err), zap.String("slug", slug))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// Create handles POST /news
// @Summary Create a news item
// @Tags news
// @Accept json
// @Produce json
// @Param request body models.CreateNewsRequest true "News data"
// @Success 201 {object} models.NewsResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /news [post]
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Attach the author when the caller is authenticated; news creation
	// itself is open per the declared route policy.
	principal, _ := auth.PrincipalFromContext(r.Context())

	var req models.CreateNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.newsService.Create(r.Context(), &req, principal)
	if err != nil {
		h.Logger.Error("failed to create news", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, item)
}
