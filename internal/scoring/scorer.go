package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jstittsworth/fpl-predictor/internal/features"
)

// Scorer is the trained regression model consumed as a black box: a fixed
// eight-field vector in, a predicted point total out. Implementations must be
// side-effect-free; a failed call fails only the candidate being scored.
type Scorer interface {
	Score(ctx context.Context, v features.Vector) (float64, error)
}

// LinearModel is the in-process baseline scorer. Weights are keyed by feature
// name and validated complete at construction, so a typo in a weights file is
// an immediate error rather than a silently zeroed feature.
type LinearModel struct {
	intercept float64
	weights   map[string]float64
}

// modelFile is the on-disk weight format
type modelFile struct {
	Intercept float64            `json:"intercept"`
	Weights   map[string]float64 `json:"weights"`
}

func NewLinearModel(intercept float64, weights map[string]float64) (*LinearModel, error) {
	for _, name := range features.FieldNames() {
		if _, ok := weights[name]; !ok {
			return nil, fmt.Errorf("model weights missing feature %q", name)
		}
	}
	if len(weights) != features.FieldCount {
		for name := range weights {
			known := false
			for _, want := range features.FieldNames() {
				if name == want {
					known = true
					break
				}
			}
			if !known {
				return nil, fmt.Errorf("model weights contain unknown feature %q", name)
			}
		}
	}
	return &LinearModel{intercept: intercept, weights: weights}, nil
}

// LoadLinearModel reads weights exported by the training pipeline
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model weights: %w", err)
	}
	var file modelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse model weights: %w", err)
	}
	return NewLinearModel(file.Intercept, file.Weights)
}

// DefaultLinearModel returns the shipped baseline weights, used when no
// trained weights file is configured.
func DefaultLinearModel() *LinearModel {
	m, err := NewLinearModel(1.0, map[string]float64{
		"avg_points_last_5":   0.45,
		"avg_points_last_10":  0.20,
		"form":                0.50,
		"opponent_difficulty": -0.35,
		"is_home":             0.40,
		"minutes_consistency": 1.20,
		"goal_threat":         1.00,
		"injury_risk":         -1.50,
	})
	if err != nil {
		// The baseline table covers every field by definition
		panic(err)
	}
	return m
}

func (m *LinearModel) Score(ctx context.Context, v features.Vector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	total := m.intercept
	for name, value := range v.Named() {
		total += m.weights[name] * value
	}
	return total, nil
}
