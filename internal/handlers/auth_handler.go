package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/devhub/backend/internal/models"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Method Register performs user credentials validation and creation and returns a token with the new user.
	//
	// "req" parameter contains username, email, password and optional display name.
	//
	// If the username or email is already taken, models.ErrUsernameExists or models.ErrEmailExists will be returned.
	Register(ctx context.Context, req *models.RegisterRequest) (string, *models.User, error)
	// Method Login performs user credentials validation and returns a token with the user.
	//
	// "req" parameter contains username and password.
	//
	// If the credentials do not match any user, models.ErrInvalidCredentials will be returned.
	Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Register a new user with username, email, password and optional display name. Returns a bearer token and the created user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.AuthResponse "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid request body or username/email already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrUsernameExists) || errors.Is(err, models.ErrEmailExists) {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to register user", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, &models.AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	})
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Verify username and password. Returns a bearer token and the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login data"
// @Success 200 {object} models.AuthResponse "Logged in successfully"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.RespondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Logger.Error("failed to log in user", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, &models.AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	})
}
