package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusvoice/backend/internal/api/handlers"
	"github.com/campusvoice/backend/internal/config"
	"github.com/campusvoice/backend/internal/database"
	"github.com/campusvoice/backend/internal/health"
	"github.com/campusvoice/backend/internal/middleware"
	"github.com/campusvoice/backend/internal/migration"
	"github.com/campusvoice/backend/internal/repository"
	"github.com/campusvoice/backend/internal/semantic"
	"github.com/campusvoice/backend/internal/services"
	"github.com/campusvoice/backend/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting CampusVoice backend...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	dbConfig := &database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	migrationRunner := migration.NewRunner(dbManager, logger)
	if err := migrationRunner.RunMigrations("migrations"); err != nil {
		logger.WithError(err).Fatal("Database migrations failed")
	}

	repoManager := repository.NewRepositoryManager(dbManager.DB)
	cache := database.NewCache(dbManager.Redis, logger)

	// Optional embedding backend; the lexical engine never depends on it
	var semanticService *semantic.Service
	if cfg.Semantic.Enabled {
		if err := cfg.ValidateSemantic(); err != nil {
			logger.WithError(err).Fatal("Semantic backend configuration validation failed")
		}
		semanticClient := semantic.NewClient(cfg.Semantic.BaseURL, cfg.Semantic.APIKey, logger)
		semanticService = semantic.NewService(semanticClient, logger)
		logger.Info("Semantic backend enabled")
	}

	duplicateChecker := services.NewDuplicateCheckService(
		repoManager.Feedback,
		repoManager.Response,
		logger,
		services.Options{
			MinScore:       cfg.Similarity.MinScore,
			MaxMatches:     cfg.Similarity.MaxMatches,
			CandidateLimit: cfg.Similarity.CandidateLimit,
			ChunkSize:      cfg.Similarity.ChunkSize,
		},
	)
	feedbackService := services.NewFeedbackService(repoManager, duplicateChecker, semanticService, logger)

	duplicateHandler := handlers.NewDuplicateCheckHandler(duplicateChecker, repoManager, logger)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, logger)
	categoryHandler := handlers.NewCategoryHandler(repoManager, cache, logger)
	topicHandler := handlers.NewTopicHandler(repoManager, cache, logger)

	healthChecker := health.NewHealthChecker(dbManager, repoManager.SystemHealth, logger, cfg.Semantic.BaseURL)
	healthHandler := handlers.NewHealthHandler(healthChecker, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go healthChecker.PeriodicHealthCheck(ctx, 30*time.Second)

	router := setupRouter(duplicateHandler, feedbackHandler, categoryHandler, topicHandler, healthHandler)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	logger.Info("Server stopped")
}

func setupRouter(
	duplicateHandler *handlers.DuplicateCheckHandler,
	feedbackHandler *handlers.FeedbackHandler,
	categoryHandler *handlers.CategoryHandler,
	topicHandler *handlers.TopicHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true

	// The duplicate-check widget is embedded on pages we don't control,
	// so CORS stays permissive.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Session-ID", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())

	rateLimiter := middleware.NewRateLimiter(60)
	router.Use(rateLimiter.RateLimit())

	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/health/detailed", healthHandler.HandleHealthDetailed)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/duplicates/check", duplicateHandler.HandleCheck)

		v1.POST("/feedback", feedbackHandler.HandleSubmit)
		v1.GET("/feedback", feedbackHandler.HandleList)
		v1.GET("/feedback/:id", feedbackHandler.HandleGet)
		v1.POST("/feedback/:id/responses", feedbackHandler.HandleAddResponse)
		v1.PATCH("/feedback/:id/status", feedbackHandler.HandleUpdateStatus)

		v1.GET("/categories", categoryHandler.HandleList)
		v1.GET("/topics/trending", topicHandler.HandleTrending)
	}

	return router
}
