package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adventure-server/internal/config"
	appdatabase "adventure-server/internal/database"
	"adventure-server/internal/handler"
	"adventure-server/internal/logger"
	"adventure-server/internal/repository"
	"adventure-server/internal/service"
	"adventure-server/pkg/ai"
	"adventure-server/pkg/database"
	"adventure-server/pkg/migration"
	"adventure-server/pkg/taskrunner"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()
	zap.ReplaceGlobals(appLogger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.New(ctx, database.Config{
		URL:      cfg.DatabaseURL(),
		MaxConns: cfg.DBMaxConns,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: appdatabase.MigrationsPath,
		MigrationsFS:   appdatabase.MigrationsFS,
	}, db.Pool)
	if err := migrator.Up(ctx); err != nil {
		appLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	aiClient, err := ai.New(ai.Config{
		APIKey:     cfg.AIAPIKey,
		ModelName:  cfg.AIModel,
		BaseURL:    cfg.AIBaseURL,
		ImageModel: cfg.ImageModel,
		ImageSize:  cfg.ImageSize,
		Timeout:    cfg.AITimeout,
		MaxRetries: cfg.AIMaxAttempts,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize AI client", zap.Error(err))
	}

	runner := taskrunner.New(taskrunner.Config{MaxConcurrent: cfg.MaxConcurrentJobs})

	storyRepo := repository.NewPgStoryRepository(appLogger)
	nodeRepo := repository.NewPgStoryNodeRepository(appLogger)
	jobRepo := repository.NewPgStoryJobRepository(appLogger)

	storyService := service.NewStoryService(db.Pool, db, storyRepo, nodeRepo, jobRepo, aiClient, runner, appLogger)
	storyHandler := handler.NewStoryHandler(storyService, aiClient, appLogger)

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(handler.GinZapLogger(appLogger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		appLogger.Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	storyHandler.RegisterRoutes(router)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout: 15 * time.Second,
		// Scene image generation waits on the image API inside the
		// request, so the write timeout must cover the AI timeout.
		WriteTimeout: cfg.AITimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	if err := runner.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Background tasks did not finish in time", zap.Error(err))
	}

	appLogger.Info("Server exiting")
}
