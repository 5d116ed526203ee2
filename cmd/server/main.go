package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-predictor/internal/api"
	"github.com/jstittsworth/fpl-predictor/internal/api/handlers"
	"github.com/jstittsworth/fpl-predictor/internal/api/middleware"
	"github.com/jstittsworth/fpl-predictor/internal/difficulty"
	"github.com/jstittsworth/fpl-predictor/internal/eligibility"
	"github.com/jstittsworth/fpl-predictor/internal/features"
	"github.com/jstittsworth/fpl-predictor/internal/ranking"
	"github.com/jstittsworth/fpl-predictor/internal/scoring"
	"github.com/jstittsworth/fpl-predictor/internal/services"
	"github.com/jstittsworth/fpl-predictor/internal/store"
	"github.com/jstittsworth/fpl-predictor/pkg/config"
	"github.com/jstittsworth/fpl-predictor/pkg/database"
	"github.com/jstittsworth/fpl-predictor/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger("", cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	cacheService := services.NewCacheService(redisClient)

	// Build the prediction engine
	historicalStore := store.NewSQLStore(db)
	estimator := difficulty.NewEstimator(historicalStore, cacheService, cfg.DifficultyCacheTTL)
	computer := features.NewComputer(historicalStore, estimator, features.Config{
		MinHistory: cfg.MinHistoryMatches,
		Strict:     cfg.StrictHistory,
	})
	filter := eligibility.NewFilter()
	scorer := buildScorer(cfg, log)
	engine := ranking.NewEngine(historicalStore, computer, filter, scorer, ranking.Config{
		Workers:        cfg.RankingWorkers,
		ScoringTimeout: cfg.ScoringTimeout,
	})

	// Scheduled cache invalidation keeps rankings aligned with fresh ingests
	if cfg.EnableRefresher {
		refresher := services.NewRefresherService(cacheService, log, cfg.RefreshSchedule)
		if err := refresher.Start(); err != nil {
			log.Errorf("Failed to start cache refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	router.GET("/health", handlers.Health)

	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, historicalStore, engine, computer, estimator, cacheService, cfg)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// buildScorer picks the configured scoring backend: a remote model service
// when SCORING_MODEL_URL is set, otherwise trained weights from disk, falling
// back to the shipped baseline.
func buildScorer(cfg *config.Config, log *logrus.Logger) scoring.Scorer {
	if cfg.ScoringModelURL != "" {
		log.WithField("url", cfg.ScoringModelURL).Info("Using remote scoring model")
		return scoring.NewRemoteScorer(cfg.ScoringModelURL, cfg.ScoringRateLimit, cfg.ScoringBreaker)
	}

	if cfg.ModelWeightsPath != "" {
		model, err := scoring.LoadLinearModel(cfg.ModelWeightsPath)
		if err != nil {
			log.WithError(err).Fatal("Failed to load model weights")
		}
		log.WithField("path", cfg.ModelWeightsPath).Info("Loaded scoring model weights")
		return model
	}

	log.Warn("No scoring model configured, using baseline weights")
	return scoring.DefaultLinearModel()
}
