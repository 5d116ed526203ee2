package features

// Extended carries supplementary signals reported alongside predictions for
// provenance. These are not part of the model input vector.
type Extended struct {
	AvgMinutesLast5  float64 `json:"avg_minutes_last_5"`
	MinutesTrend     float64 `json:"minutes_trend"`
	GamesWithMinutes float64 `json:"games_with_minutes"`

	// Understat-derived signals, populated only when the history carries
	// advanced stats
	HasAdvancedStats bool    `json:"has_advanced_stats"`
	AvgXGLast5       float64 `json:"avg_xg_last_5"`
	AvgXALast5       float64 `json:"avg_xa_last_5"`
	AvgShotsLast5    float64 `json:"avg_shots_last_5"`
	XGOutperformance float64 `json:"xg_outperformance"` // goals minus xG: finishing quality
}
