package features

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-predictor/internal/difficulty"
	"github.com/jstittsworth/fpl-predictor/internal/models"
	"github.com/jstittsworth/fpl-predictor/internal/store"
	"github.com/jstittsworth/fpl-predictor/pkg/logger"
	"github.com/jstittsworth/fpl-predictor/pkg/utils"
)

// Lookback windows, in matches. The long window also drives minutes
// consistency so the two read on the same span; the form window also drives
// goal threat.
const (
	shortWindow = 5
	longWindow  = 10
	formWindow  = 3

	injuryRiskWindow = 5
)

type Config struct {
	// MinHistory is the number of prior matches required when Strict is set.
	// With Strict off the computer degrades to neutral zero priors instead.
	MinHistory int
	Strict     bool
}

// Computer derives the model input vector for one (player, target fixture)
// pair from causally prior data only.
type Computer struct {
	store      store.HistoricalStore
	difficulty *difficulty.Estimator
	cfg        Config
	logger     *logrus.Logger
}

func NewComputer(st store.HistoricalStore, est *difficulty.Estimator, cfg Config) *Computer {
	return &Computer{
		store:      st,
		difficulty: est,
		cfg:        cfg,
		logger:     logger.GetLogger(),
	}
}

// Computed pairs the model vector with its provenance
type Computed struct {
	Vector              Vector   `json:"vector"`
	Extended            Extended `json:"extended"`
	HistoryMatches      int      `json:"history_matches"`
	DifficultyDefaulted bool     `json:"difficulty_defaulted"`
}

// Compute builds the feature vector for the player ahead of the target
// fixture. Only matches with gameweek strictly before the fixture's gameweek
// contribute; records at or after it must never change the result.
func (c *Computer) Compute(ctx context.Context, player models.Player, fixture models.Fixture) (*Computed, error) {
	history, err := c.store.MatchesBefore(ctx, player.ID, fixture.Gameweek)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for player %d: %w", player.ID, err)
	}

	if c.cfg.Strict && len(history) < c.cfg.MinHistory {
		return nil, fmt.Errorf("%w: player %d has %d of %d required matches",
			utils.ErrInsufficientHistory, player.ID, len(history), c.cfg.MinHistory)
	}

	opponentID, isHome := fixture.OpponentOf(player.TeamID)

	// Defensive records differ by venue; rate the opponent at the venue they
	// occupy in the target fixture.
	opponentVenue := models.VenueHome
	if isHome {
		opponentVenue = models.VenueAway
	}
	diff := c.difficulty.Estimate(ctx, opponentID, opponentVenue, fixture.Gameweek)

	points := make([]float64, len(history))
	minutes := make([]float64, len(history))
	contributions := make([]float64, len(history))
	for i, s := range history {
		points[i] = float64(s.TotalPoints)
		minutes[i] = float64(s.Minutes)
		contributions[i] = float64(s.GoalContributions())
	}

	home := 0.0
	if isHome {
		home = 1.0
	}

	v := Vector{
		AvgPointsLast5:     meanOfRecent(points, shortWindow),
		AvgPointsLast10:    meanOfRecent(points, longWindow),
		Form:               meanOfRecent(points, formWindow),
		OpponentDifficulty: diff.Value,
		IsHome:             home,
		MinutesConsistency: minutesConsistency(minutes, longWindow),
		GoalThreat:         meanOfRecent(contributions, formWindow),
		InjuryRisk:         injuryRisk(minutes, injuryRiskWindow),
	}

	return &Computed{
		Vector:              v,
		Extended:            c.extended(history, minutes),
		HistoryMatches:      len(history),
		DifficultyDefaulted: diff.Defaulted,
	}, nil
}

// extended derives the supplementary report from the same causal history
func (c *Computer) extended(history []models.PlayerStat, minutes []float64) Extended {
	ext := Extended{
		AvgMinutesLast5:  meanOfRecent(minutes, shortWindow),
		MinutesTrend:     minutesTrend(minutes),
		GamesWithMinutes: gamesWithMinutes(minutes),
	}

	n := shortWindow
	if n > len(history) {
		n = len(history)
	}

	var xg, xa, shots, goals float64
	advanced := 0
	for _, s := range history[:n] {
		if s.XG == nil || s.XA == nil {
			continue
		}
		advanced++
		xg += *s.XG
		xa += *s.XA
		goals += float64(s.GoalsScored)
		if s.Shots != nil {
			shots += float64(*s.Shots)
		}
	}
	if advanced > 0 {
		ext.HasAdvancedStats = true
		ext.AvgXGLast5 = xg / float64(advanced)
		ext.AvgXALast5 = xa / float64(advanced)
		ext.AvgShotsLast5 = shots / float64(advanced)
		ext.XGOutperformance = (goals - xg) / float64(advanced)
	}

	return ext
}
