package ranking

import (
	"github.com/jstittsworth/fpl-predictor/internal/features"
)

// Status flags the overall outcome of a ranking pass
type Status string

const (
	StatusOK         Status = "ok"
	StatusNoFixtures Status = "no_fixtures_for_gameweek"
)

// Prediction pairs a player with a predicted score and the feature values
// that produced it
type Prediction struct {
	PlayerID   uint   `json:"player_id"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position"`
	Team       string `json:"team"`
	Opponent   string `json:"opponent"`
	IsHome     bool   `json:"is_home"`
	FixtureID  uint   `json:"fixture_id"`

	PredictedPoints float64 `json:"predicted_points"`

	Features            features.Vector   `json:"features"`
	Extended            features.Extended `json:"extended"`
	DifficultyDefaulted bool              `json:"difficulty_defaulted"`
	Doubtful            bool              `json:"doubtful,omitempty"`
}

// Excluded records a player left out of the rankings and why, for the
// companion unavailable-players report
type Excluded struct {
	PlayerID       uint   `json:"player_id"`
	PlayerName     string `json:"player_name"`
	Status         string `json:"status,omitempty"`
	Reason         string `json:"reason"`
	ExpectedReturn *int   `json:"expected_return,omitempty"`
}

// Result is the output of one ranking pass. Predictions are non-increasing in
// predicted score with a deterministic tie-break, so identical input
// snapshots always produce identical output.
type Result struct {
	Gameweek    int          `json:"gameweek"`
	Status      Status       `json:"status"`
	Predictions []Prediction `json:"predictions"`
	Excluded    []Excluded   `json:"excluded"`
}
