package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-predictor/internal/ranking"
	"github.com/jstittsworth/fpl-predictor/internal/services"
	"github.com/jstittsworth/fpl-predictor/pkg/config"
	"github.com/jstittsworth/fpl-predictor/pkg/utils"
)

type PredictionsHandler struct {
	engine *ranking.Engine
	cache  *services.CacheService
	cfg    *config.Config
}

func NewPredictionsHandler(engine *ranking.Engine, cache *services.CacheService, cfg *config.Config) *PredictionsHandler {
	return &PredictionsHandler{
		engine: engine,
		cache:  cache,
		cfg:    cfg,
	}
}

// GetPredictions returns the ranked predictions for a gameweek
func (h *PredictionsHandler) GetPredictions(c *gin.Context) {
	gameweek, err := strconv.Atoi(c.Param("gameweek"))
	if err != nil {
		utils.SendValidationError(c, "Invalid gameweek", err.Error())
		return
	}

	topN := h.cfg.DefaultTopN
	if topStr := c.Query("top"); topStr != "" {
		topN, err = strconv.Atoi(topStr)
		if err != nil {
			utils.SendValidationError(c, "Invalid top parameter", err.Error())
			return
		}
	}

	ctx := c.Request.Context()

	// Rankings are snapshot-pure, so short-lived caching is safe
	cacheKey := services.PredictionsCacheKey(gameweek, topN)
	if h.cache != nil {
		var cached ranking.Result
		if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
			utils.SendSuccess(c, cached)
			return
		}
	}

	result, err := h.engine.Rank(ctx, gameweek, topN)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidArgument) {
			utils.SendError(c, http.StatusBadRequest,
				utils.NewAppError(utils.ErrCodeInvalidArgument, "Invalid ranking arguments", err.Error()))
			return
		}
		utils.SendInternalError(c, "Ranking pass failed")
		return
	}

	if h.cache != nil && result.Status == ranking.StatusOK {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = h.cache.Set(cacheCtx, cacheKey, result, h.cfg.PredictionsCacheTTL)
	}

	utils.SendSuccess(c, result)
}
