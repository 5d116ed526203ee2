package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-predictor/internal/api/handlers"
	"github.com/jstittsworth/fpl-predictor/internal/difficulty"
	"github.com/jstittsworth/fpl-predictor/internal/features"
	"github.com/jstittsworth/fpl-predictor/internal/ranking"
	"github.com/jstittsworth/fpl-predictor/internal/services"
	"github.com/jstittsworth/fpl-predictor/internal/store"
	"github.com/jstittsworth/fpl-predictor/pkg/config"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, st store.HistoricalStore, engine *ranking.Engine, computer *features.Computer, estimator *difficulty.Estimator, cache *services.CacheService, cfg *config.Config) {
	predictionsHandler := handlers.NewPredictionsHandler(engine, cache, cfg)
	playersHandler := handlers.NewPlayersHandler(st, computer)
	difficultyHandler := handlers.NewDifficultyHandler(estimator)

	// Prediction endpoints
	group.GET("/predictions/:gameweek", predictionsHandler.GetPredictions)

	// Player endpoints
	group.GET("/players/:id/features", playersHandler.GetFeatures)
	group.GET("/players/:id/availability", playersHandler.GetAvailability)

	// Team endpoints
	group.GET("/teams/:id/difficulty", difficultyHandler.GetDifficulty)
}
