package scoring

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fpl-predictor/internal/features"
)

func fullWeights() map[string]float64 {
	w := make(map[string]float64, features.FieldCount)
	for _, name := range features.FieldNames() {
		w[name] = 1.0
	}
	return w
}

func TestNewLinearModel_RejectsMissingFeature(t *testing.T) {
	w := fullWeights()
	delete(w, "goal_threat")

	_, err := NewLinearModel(0, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goal_threat")
}

func TestNewLinearModel_RejectsUnknownFeature(t *testing.T) {
	w := fullWeights()
	w["points_per_shot"] = 0.5

	_, err := NewLinearModel(0, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "points_per_shot")
}

func TestLinearModel_Score(t *testing.T) {
	m, err := NewLinearModel(2.0, map[string]float64{
		"avg_points_last_5":   1.0,
		"avg_points_last_10":  0.0,
		"form":                0.0,
		"opponent_difficulty": -1.0,
		"is_home":             0.5,
		"minutes_consistency": 0.0,
		"goal_threat":         0.0,
		"injury_risk":         0.0,
	})
	require.NoError(t, err)

	v := features.Vector{
		AvgPointsLast5:     4.0,
		OpponentDifficulty: 3.0,
		IsHome:             1.0,
	}

	score, err := m.Score(context.Background(), v)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, score, 1e-9) // 2 + 4 - 3 + 0.5
}

func TestLinearModel_ScoreHonorsCancelledContext(t *testing.T) {
	m := DefaultLinearModel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Score(ctx, features.Vector{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultLinearModel_ZeroVectorScoresIntercept(t *testing.T) {
	m := DefaultLinearModel()

	score, err := m.Score(context.Background(), features.Vector{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestLoadLinearModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	content := `{
		"intercept": 0.5,
		"weights": {
			"avg_points_last_5": 1.0,
			"avg_points_last_10": 0.0,
			"form": 0.0,
			"opponent_difficulty": 0.0,
			"is_home": 0.0,
			"minutes_consistency": 0.0,
			"goal_threat": 0.0,
			"injury_risk": 0.0
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := LoadLinearModel(path)
	require.NoError(t, err)

	score, err := m.Score(context.Background(), features.Vector{AvgPointsLast5: 6.0})
	require.NoError(t, err)
	assert.InDelta(t, 6.5, score, 1e-9)
}

func TestLoadLinearModel_Errors(t *testing.T) {
	_, err := LoadLinearModel(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadLinearModel(bad)
	assert.Error(t, err)

	incomplete := filepath.Join(t.TempDir(), "incomplete.json")
	require.NoError(t, os.WriteFile(incomplete, []byte(`{"intercept": 0, "weights": {"form": 1.0}}`), 0o644))
	_, err = LoadLinearModel(incomplete)
	assert.Error(t, err)
}
