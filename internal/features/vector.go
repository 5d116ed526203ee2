package features

// Vector is the fixed-schema input to the scoring model. Field order matches
// the order the model was trained with; do not reorder.
type Vector struct {
	AvgPointsLast5     float64 `json:"avg_points_last_5"`
	AvgPointsLast10    float64 `json:"avg_points_last_10"`
	Form               float64 `json:"form"`
	OpponentDifficulty float64 `json:"opponent_difficulty"`
	IsHome             float64 `json:"is_home"`
	MinutesConsistency float64 `json:"minutes_consistency"`
	GoalThreat         float64 `json:"goal_threat"`
	InjuryRisk         float64 `json:"injury_risk"`
}

// FieldCount is the number of model inputs
const FieldCount = 8

// FieldNames returns the model input names in training order
func FieldNames() []string {
	return []string{
		"avg_points_last_5",
		"avg_points_last_10",
		"form",
		"opponent_difficulty",
		"is_home",
		"minutes_consistency",
		"goal_threat",
		"injury_risk",
	}
}

// Values returns the field values in training order
func (v Vector) Values() []float64 {
	return []float64{
		v.AvgPointsLast5,
		v.AvgPointsLast10,
		v.Form,
		v.OpponentDifficulty,
		v.IsHome,
		v.MinutesConsistency,
		v.GoalThreat,
		v.InjuryRisk,
	}
}

// Named returns the vector as a name-to-value map, for serialization to
// remote scoring services and for weight lookup in the baseline model.
func (v Vector) Named() map[string]float64 {
	names := FieldNames()
	values := v.Values()
	out := make(map[string]float64, FieldCount)
	for i, name := range names {
		out[name] = values[i]
	}
	return out
}
