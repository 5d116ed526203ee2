package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fpl-predictor/internal/difficulty"
	"github.com/jstittsworth/fpl-predictor/internal/eligibility"
	"github.com/jstittsworth/fpl-predictor/internal/features"
	"github.com/jstittsworth/fpl-predictor/internal/models"
	"github.com/jstittsworth/fpl-predictor/internal/ranking"
	"github.com/jstittsworth/fpl-predictor/internal/scoring"
	"github.com/jstittsworth/fpl-predictor/internal/store"
	"github.com/jstittsworth/fpl-predictor/pkg/config"
	"github.com/jstittsworth/fpl-predictor/pkg/utils"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	snap := store.Snapshot{
		Teams: []models.Team{
			{ID: 1, Name: "Arsenal", ShortName: "ARS"},
			{ID: 2, Name: "Chelsea", ShortName: "CHE"},
		},
		Players: []models.Player{
			{ID: 10, FirstName: "Kai", SecondName: "Havertz", TeamID: 1, Position: models.PositionForward},
			{ID: 20, FirstName: "Cole", SecondName: "Palmer", TeamID: 2, Position: models.PositionMidfielder},
		},
		Fixtures: []models.Fixture{
			{ID: 400, Gameweek: 4, HomeTeamID: 1, AwayTeamID: 2},
		},
		Stats: []models.PlayerStat{
			{PlayerID: 10, FixtureID: 301, Gameweek: 1, TeamID: 1, OpponentID: 2, WasHome: true, Minutes: 90, TotalPoints: 6, GoalsConceded: 1},
			{PlayerID: 10, FixtureID: 302, Gameweek: 2, TeamID: 1, OpponentID: 2, WasHome: false, Minutes: 90, TotalPoints: 4, GoalsConceded: 2},
			{PlayerID: 20, FixtureID: 301, Gameweek: 1, TeamID: 2, OpponentID: 1, WasHome: false, Minutes: 90, TotalPoints: 8, GoalsConceded: 0},
		},
		Availability: []models.AvailabilityStatus{
			{PlayerID: 20, Status: models.StatusDoubtful, News: "Late fitness test"},
		},
	}

	st := store.NewMemStore(snap)
	estimator := difficulty.NewEstimator(st, nil, time.Minute)
	computer := features.NewComputer(st, estimator, features.Config{})
	engine := ranking.NewEngine(st, computer, eligibility.NewFilter(), scoring.DefaultLinearModel(), ranking.Config{Workers: 2})

	cfg := &config.Config{DefaultTopN: 20, PredictionsCacheTTL: time.Minute}

	router := gin.New()
	group := router.Group("/api/v1")

	predictionsHandler := NewPredictionsHandler(engine, nil, cfg)
	playersHandler := NewPlayersHandler(st, computer)
	difficultyHandler := NewDifficultyHandler(estimator)

	group.GET("/predictions/:gameweek", predictionsHandler.GetPredictions)
	group.GET("/players/:id/features", playersHandler.GetFeatures)
	group.GET("/players/:id/availability", playersHandler.GetAvailability)
	group.GET("/teams/:id/difficulty", difficultyHandler.GetDifficulty)

	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGetPredictions(t *testing.T) {
	router := testRouter(t)

	rec, body := doRequest(t, router, "/api/v1/predictions/4")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Success)

	data, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var result ranking.Result
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, ranking.StatusOK, result.Status)
	assert.Len(t, result.Predictions, 2)
}

func TestGetPredictions_NoFixturesGameweek(t *testing.T) {
	router := testRouter(t)

	rec, body := doRequest(t, router, "/api/v1/predictions/7")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Success)

	data, _ := json.Marshal(body.Data)
	var result ranking.Result
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, ranking.StatusNoFixtures, result.Status)
	assert.Empty(t, result.Predictions)
}

func TestGetPredictions_BadInput(t *testing.T) {
	router := testRouter(t)

	rec, body := doRequest(t, router, "/api/v1/predictions/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, utils.ErrCodeValidation, body.Error.Code)

	rec, body = doRequest(t, router, "/api/v1/predictions/4?top=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, utils.ErrCodeInvalidArgument, body.Error.Code)
}

func TestGetFeatures(t *testing.T) {
	router := testRouter(t)

	rec, body := doRequest(t, router, "/api/v1/players/10/features?gameweek=4")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Success)

	payload, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(10), payload["player_id"])
	assert.Equal(t, float64(400), payload["fixture_id"])
	assert.Contains(t, payload, "computed")
}

func TestGetFeatures_NotFound(t *testing.T) {
	router := testRouter(t)

	rec, body := doRequest(t, router, "/api/v1/players/999/features?gameweek=4")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, body.Success)

	// known player, but no fixture that gameweek
	rec, _ = doRequest(t, router, "/api/v1/players/10/features?gameweek=8")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAvailability(t *testing.T) {
	router := testRouter(t)

	rec, body := doRequest(t, router, "/api/v1/players/20/availability")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Success)

	payload, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.StatusDoubtful, payload["status"])

	// no recorded news reads as available
	rec, body = doRequest(t, router, "/api/v1/players/10/availability")
	require.Equal(t, http.StatusOK, rec.Code)
	payload, ok = body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.StatusAvailable, payload["status"])
}

func TestGetDifficulty(t *testing.T) {
	router := testRouter(t)

	rec, body := doRequest(t, router, "/api/v1/teams/1/difficulty?venue=home&gameweek=4")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Success)

	payload, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	score, ok := payload["score"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 1.0+4.0/3.0, score["value"].(float64), 1e-9)

	rec, body = doRequest(t, router, "/api/v1/teams/1/difficulty?venue=sideways&gameweek=4")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, body.Success)
}
