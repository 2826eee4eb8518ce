package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	_ "github.com/devhub/backend/docs"
	"github.com/devhub/backend/internal/auth"
	"github.com/devhub/backend/internal/config"
	"github.com/devhub/backend/internal/handlers"
	"github.com/devhub/backend/internal/logger"
	"github.com/devhub/backend/internal/repositories"
	"github.com/devhub/backend/internal/server"
	"github.com/devhub/backend/internal/services"
)

// @title DevHub API
// @version 1.0
// @description API for the DevHub content and community platform

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting DevHub backend")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize token codec
	codec := auth.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.Expiration)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	categoryRepo := repositories.NewCategoryRepository(db, logger.Logger)
	tagRepo := repositories.NewTagRepository(db, logger.Logger)
	articleRepo := repositories.NewArticleRepository(db, logger.Logger)
	forumRepo := repositories.NewForumRepository(db, logger.Logger)
	newsRepo := repositories.NewNewsRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, codec, logger.Logger)
	articleService := services.NewArticleService(articleRepo, categoryRepo, tagRepo, logger.Logger)
	forumService := services.NewForumService(forumRepo, categoryRepo, logger.Logger)
	newsService := services.NewNewsService(newsRepo, logger.Logger)
	generalService := services.NewGeneralService(categoryRepo, tagRepo, userRepo, articleRepo, forumRepo, newsRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	articleHandler := handlers.NewArticleHandler(articleService, logger.Logger)
	forumHandler := handlers.NewForumHandler(forumService, logger.Logger)
	newsHandler := handlers.NewNewsHandler(newsService, logger.Logger)
	generalHandler := handlers.NewGeneralHandler(generalService, logger.Logger)

	// Setup router
	r := server.NewRouter(server.Deps{
		Logger:         logger.Logger,
		Codec:          codec,
		Users:          userRepo,
		Policy:         auth.NewPolicy(auth.DefaultRules()),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Auth:           authHandler,
		Articles:       articleHandler,
		Forum:          forumHandler,
		News:           newsHandler,
		General:        generalHandler,
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
