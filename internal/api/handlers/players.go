package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-predictor/internal/features"
	"github.com/jstittsworth/fpl-predictor/internal/models"
	"github.com/jstittsworth/fpl-predictor/internal/store"
	"github.com/jstittsworth/fpl-predictor/pkg/utils"
)

type PlayersHandler struct {
	store    store.HistoricalStore
	computer *features.Computer
}

func NewPlayersHandler(st store.HistoricalStore, computer *features.Computer) *PlayersHandler {
	return &PlayersHandler{
		store:    st,
		computer: computer,
	}
}

// GetFeatures returns the feature vector a player would carry into a
// gameweek, for model debugging and provenance inspection
func (h *PlayersHandler) GetFeatures(c *gin.Context) {
	playerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid player ID", err.Error())
		return
	}

	gameweek, err := strconv.Atoi(c.Query("gameweek"))
	if err != nil || gameweek < 1 {
		utils.SendValidationError(c, "Invalid gameweek", "gameweek query parameter must be a positive integer")
		return
	}

	ctx := c.Request.Context()

	player, err := h.store.Player(ctx, uint(playerID))
	if err != nil {
		utils.SendInternalError(c, "Player lookup failed")
		return
	}
	if player == nil {
		utils.SendNotFound(c, "Player not found")
		return
	}

	fixtures, err := h.store.FixturesForGameweek(ctx, gameweek)
	if err != nil {
		utils.SendInternalError(c, "Fixture lookup failed")
		return
	}
	var fixture *models.Fixture
	for i := range fixtures {
		if fixtures[i].Involves(player.TeamID) {
			fixture = &fixtures[i]
			break
		}
	}
	if fixture == nil {
		utils.SendNotFound(c, "Player's team has no fixture in this gameweek")
		return
	}

	computed, err := h.computer.Compute(ctx, *player, *fixture)
	if err != nil {
		utils.SendInternalError(c, "Feature computation failed")
		return
	}

	utils.SendSuccess(c, gin.H{
		"player_id":   player.ID,
		"player_name": player.FullName(),
		"gameweek":    gameweek,
		"fixture_id":  fixture.ID,
		"computed":    computed,
	})
}

// GetAvailability returns the player's current availability snapshot
func (h *PlayersHandler) GetAvailability(c *gin.Context) {
	playerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid player ID", err.Error())
		return
	}

	ctx := c.Request.Context()

	availability, err := h.store.Availability(ctx, uint(playerID))
	if err != nil {
		utils.SendInternalError(c, "Availability lookup failed")
		return
	}
	if availability == nil {
		utils.SendSuccess(c, gin.H{
			"player_id": playerID,
			"status":    models.StatusAvailable,
		})
		return
	}

	utils.SendSuccess(c, availability)
}
