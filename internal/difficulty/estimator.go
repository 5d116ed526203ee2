package difficulty

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-predictor/internal/models"
	"github.com/jstittsworth/fpl-predictor/internal/store"
	"github.com/jstittsworth/fpl-predictor/pkg/logger"
)

const (
	// NeutralScore is returned when a team has no history at the venue.
	// Callers that track provenance see Defaulted=true on the result.
	NeutralScore = 3.0

	minScore = 1.0
	maxScore = 5.0

	// saturationConceded is the average goals conceded per match at which a
	// defense pins the top of the scale.
	saturationConceded = 3.0
)

// Score is a venue-contextualized defensive strength rating on a 1-5 scale.
// 5 means the team concedes freely (an easy opponent for attackers), 1 means
// it rarely concedes.
type Score struct {
	Value     float64 `json:"value"`
	Defaulted bool    `json:"defaulted"` // no venue history; neutral constant used
	Matches   int     `json:"matches"`   // sample size behind the value
}

// Cache stores computed venue aggregates. Keys embed the as-of gameweek, so a
// new gameweek of results never collides with stale entries.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Estimator computes opponent difficulty from historical goals conceded,
// split by venue. Lookups degrade to NeutralScore rather than failing.
type Estimator struct {
	store  store.HistoricalStore
	cache  Cache
	ttl    time.Duration
	logger *logrus.Logger
}

// NewEstimator creates an estimator. cache may be nil to disable caching.
func NewEstimator(st store.HistoricalStore, cache Cache, ttl time.Duration) *Estimator {
	return &Estimator{
		store:  st,
		cache:  cache,
		ttl:    ttl,
		logger: logger.GetLogger(),
	}
}

// CacheKey builds the cache key for a (team, venue, as-of) aggregate
func CacheKey(teamID uint, venue models.Venue, beforeGameweek int) string {
	return fmt.Sprintf("difficulty:%d:%s:%d", teamID, venue, beforeGameweek)
}

// Estimate rates the team's defense at the given venue using only matches
// before the gameweek. venue is the side the rated team plays on in the
// target fixture.
func (e *Estimator) Estimate(ctx context.Context, teamID uint, venue models.Venue, beforeGameweek int) Score {
	key := CacheKey(teamID, venue, beforeGameweek)
	if e.cache != nil {
		var cached Score
		if err := e.cache.Get(ctx, key, &cached); err == nil {
			return cached
		}
	}

	matches, err := e.store.TeamMatchesBefore(ctx, teamID, venue, beforeGameweek)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"team_id": teamID,
			"venue":   venue,
		}).WithError(err).Warn("Team history lookup failed, using neutral difficulty")
		return Score{Value: NeutralScore, Defaulted: true}
	}

	if len(matches) == 0 {
		return Score{Value: NeutralScore, Defaulted: true}
	}

	conceded := 0
	for _, m := range matches {
		conceded += m.GoalsConceded
	}
	avgConceded := float64(conceded) / float64(len(matches))

	score := Score{
		Value:   scale(avgConceded),
		Matches: len(matches),
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, score, e.ttl); err != nil {
			e.logger.WithError(err).Debug("Failed to cache difficulty score")
		}
	}

	return score
}

// scale maps average goals conceded per match linearly onto [1,5]. Monotone
// non-decreasing in the average.
func scale(avgConceded float64) float64 {
	score := minScore + (maxScore-minScore)*avgConceded/saturationConceded
	if score > maxScore {
		return maxScore
	}
	if score < minScore {
		return minScore
	}
	return score
}
