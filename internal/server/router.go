// Package server assembles the HTTP router with its middleware chain
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/devhub/backend/internal/auth"
	"github.com/devhub/backend/internal/handlers"
	"github.com/devhub/backend/internal/middlewares"
)

// maxRequestSize limits request bodies to 1MB; the API accepts JSON only
const maxRequestSize = 1 << 20

// Deps carries everything the router needs
type Deps struct {
	Logger         *zap.Logger
	Codec          *auth.TokenCodec
	Users          auth.UserLookup
	Policy         *auth.Policy
	AllowedOrigins []string

	Auth     *handlers.AuthHandler
	Articles *handlers.ArticleHandler
	Forum    *handlers.ForumHandler
	News     *handlers.NewsHandler
	General  *handlers.GeneralHandler
}

// NewRouter builds the chi router. The authenticator runs before the policy
// gate so every handler below sees the resolved principal, and the policy
// decides whether the request may proceed at all.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(deps.Logger))
	r.Use(middlewares.RecoveryMiddleware(deps.Logger))
	r.Use(middlewares.CORSMiddleware(deps.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(maxRequestSize))
	r.Use(auth.Authenticator(deps.Codec, deps.Users))
	r.Use(deps.Policy.Middleware())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api", func(r chi.Router) {
		deps.Auth.RegisterRoutes(r)
		deps.Articles.RegisterRoutes(r)
		deps.Forum.RegisterRoutes(r)
		deps.News.RegisterRoutes(r)
		deps.General.RegisterRoutes(r)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}
