package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-predictor/internal/difficulty"
	"github.com/jstittsworth/fpl-predictor/internal/models"
	"github.com/jstittsworth/fpl-predictor/pkg/utils"
)

type DifficultyHandler struct {
	estimator *difficulty.Estimator
}

func NewDifficultyHandler(estimator *difficulty.Estimator) *DifficultyHandler {
	return &DifficultyHandler{estimator: estimator}
}

// GetDifficulty returns a team's venue-contextualized defensive rating as of
// a gameweek
func (h *DifficultyHandler) GetDifficulty(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid team ID", err.Error())
		return
	}

	venue := models.Venue(c.DefaultQuery("venue", string(models.VenueHome)))
	if venue != models.VenueHome && venue != models.VenueAway {
		utils.SendValidationError(c, "Invalid venue", "venue must be home or away")
		return
	}

	gameweek, err := strconv.Atoi(c.Query("gameweek"))
	if err != nil || gameweek < 1 {
		utils.SendValidationError(c, "Invalid gameweek", "gameweek query parameter must be a positive integer")
		return
	}

	score := h.estimator.Estimate(c.Request.Context(), uint(teamID), venue, gameweek)

	utils.SendSuccess(c, gin.H{
		"team_id":  teamID,
		"venue":    venue,
		"gameweek": gameweek,
		"score":    score,
	})
}
