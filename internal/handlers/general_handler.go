package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/devhub/backend/internal/auth"
	"github.com/devhub/backend/internal/models"
)

// GeneralService is the interface that wraps methods for category, tag and stats business logic
type GeneralService interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetStats(ctx context.Context) (*models.StatsResponse, error)
}

// GeneralHandler handles category, tag, current-user and stats HTTP requests
type GeneralHandler struct {
	BaseHandler
	generalService GeneralService
}

// NewGeneralHandler creates a new general handler
func NewGeneralHandler(generalService GeneralService, logger *zap.Logger) *GeneralHandler {
	return &GeneralHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		generalService: generalService,
	}
}

// RegisterRoutes registers all general handler routes
// Note: This assumes the router is already scoped to /api
func (h *GeneralHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.ListCategories)
	r.Get("/tags", h.ListTags)
	r.Get("/users/me", h.GetCurrentUser)
	r.Get("/stats", h.GetStats)
}

// ListCategories handles GET /categories
// @Summary List categories
// @Tags general
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *GeneralHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.generalService.ListCategories(r.Context())
	if err != nil {
		h.Logger.Error("failed to list categories", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, categories)
}

// ListTags handles GET /tags
// @Summary List tags
// @Tags general
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (h *GeneralHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.generalService.ListTags(r.Context())
	if err != nil {
		h.Logger.Error("failed to list tags", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, tags)
}

// GetCurrentUser handles GET /users/me
// @Summary Get the authenticated user
// @Tags general
// @Produce json
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (h *GeneralHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	h.RespondJSON(w, http.StatusOK, principal.ToResponse())
}

// GetStats handles GET /stats
// @Summary Get site statistics
// @Tags general
// @Produce json
// @Success 200 {object} models.StatsResponse
// @Router /stats [get]
func (h *GeneralHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.generalService.GetStats(r.Context())
	if err != nil {
		h.Logger.Error("failed to get stats", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}
