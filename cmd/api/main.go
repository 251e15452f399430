package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "assetboard/docs" // This is for Swagger
	"assetboard/internal/config"
	"assetboard/internal/database"
	"assetboard/internal/handlers"
	"assetboard/internal/logger"
	"assetboard/internal/middleware"
	"assetboard/internal/repository"
	"assetboard/internal/service"
	"assetboard/migrations"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Assetboard API
// @version 1.0
// @description Read API serving per-asset review rows pivoted from the production review event stream

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logger
	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	// Run database migrations
	migrator := database.NewMigrationExecutor(db.DB)
	if err := migrator.RunMigrations(migrations.FS); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Initialize repositories
	eventRepo := repository.NewReviewEventRepository(db.DB)
	categoryRepo := repository.NewCategoryRepository(db.DB)
	projectRepo := repository.NewProjectRepository(db.DB)

	// Initialize services
	pivotService := service.NewReviewPivotService(eventRepo, categoryRepo, projectRepo, cfg.Engine)
	projectService := service.NewProjectService(projectRepo)

	// Initialize handlers
	assetReviewHandler := handlers.NewAssetReviewHandler(pivotService)
	projectHandler := handlers.NewProjectHandler(projectService)
	metaHandler := handlers.NewMetaHandler(pivotService)
	healthHandler := handlers.NewHealthHandler(db)

	// Initialize middleware
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)

	mux := http.NewServeMux()

	// Project endpoints
	mux.HandleFunc("GET /api/v1/projects", projectHandler.GetProjects)

	// Asset review endpoints
	mux.HandleFunc("GET /api/v1/projects/{project}/asset-reviews", assetReviewHandler.GetAssetReviews)
	mux.HandleFunc("GET /api/v1/projects/{project}/asset-reviews/{name}", assetReviewHandler.GetAssetReview)

	// Vocabulary endpoints
	mux.HandleFunc("GET /api/v1/meta/phases", metaHandler.GetPhases)
	mux.HandleFunc("GET /api/v1/meta/statuses", metaHandler.GetStatuses)

	// Health check endpoint
	mux.HandleFunc("GET /healthz", healthHandler.GetHealth)

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Apply global middleware
	handler := middleware.RequestIDMiddleware(
		middleware.LoggingMiddleware(
			middleware.SecurityHeaders(
				corsMw.Handler(
					rateLimiter.Limit(mux),
				),
			),
		),
	)

	// Create server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
