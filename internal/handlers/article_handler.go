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

// ArticleService is the interface that wraps methods for article business logic
type ArticleService interface {
	List(ctx context.Context, page, size int, categorySlug string) (*models.PageResponse[*models.ArticleListResponse], error)
	GetBySlug(ctx context.Context, slug string) (*models.ArticleResponse, error)
	Search(ctx context.Context, q string, page, size int) (*models.PageResponse[*models.ArticleListResponse], error)
	GetPopular(ctx context.Context, size int) ([]*models.ArticleListResponse, error)
	Create(ctx context.Context, req *models.CreateArticleRequest, author *models.User) (*models.ArticleResponse, error)
}

// ArticleHandler handles article-related HTTP requests
type ArticleHandler struct {
	BaseHandler
	articleService ArticleService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService ArticleService, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		articleService: articleService,
	}
}

// RegisterRoutes registers all article handler routes
// Note: This assumes the router is already scoped to /api
func (h *ArticleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/articles", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/popular", h.Popular)
		r.Get("/{slug}", h.GetBySlug)
		r.Post("/", h.Create)
	})
}

// List handles GET /articles
// @Summary List published articles
// @Tags articles
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Param category query string false "Category slug filter"
// @Success 200 {object} models.PageResponse[models.ArticleListResponse]
// @Router /articles [get]
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 10)
	category := r.URL.Query().Get("category")

	result, err := h.articleService.List(r.Context(), page, size, category)
	if err != nil {
		h.Logger.Error("failed to list articles", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetBySlug handles GET /articles/{slug}
// @Summary Get an article by slug
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} models.ArticleResponse
// @Failure 404 {object} map[string]string "Article not found"
// @Router /articles/{slug} [get]
func (h *ArticleHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.articleService.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "article not found")
			return
		}
		h.Logger.Error("failed to get article", zap.Error(err), zap.String("slug", slug))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, article)
}

// Search handles GET /articles/search
// @Summary Search published articles
// @Tags articles
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} models.PageResponse[models.ArticleListResponse]
// @Router /articles/search [get]
func (h *ArticleHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		h.RespondError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 10)

	result, err := h.articleService.Search(r.Context(), q, page, size)
	if err != nil {
		h.Logger.Error("failed to search articles", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// Popular handles GET /articles/popular
// @Summary List the most viewed articles
// @Tags articles
// @Produce json
// @Param size query int false "Number of articles" default(5)
// @Success 200 {array} models.ArticleListResponse
// @Router /articles/popular [get]
func (h *ArticleHandler) Popular(w http.ResponseWriter, r *http.Request) {
	size := queryInt(r, "size", 5)

	articles, err := h.articleService.GetPopular(r.Context(), size)
	if err != nil {
		h.Logger.Error("failed to list popular articles", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, articles)
}

// Create handles POST /articles
// @Summary Create an article
// @Tags articles
// @Accept json
// @Produce json
// @Param request body models.CreateArticleRequest true "Article data"
// @Success 201 {object} models.ArticleResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Authentication required"
// @Security ApiKeyAuth
// @Router /articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articleService.Create(r.Context(), &req, principal)
	if err != nil {
		h.Logger.Error("failed to create article", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, article)
}
