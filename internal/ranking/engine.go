package ranking

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-predictor/internal/eligibility"
	"github.com/jstittsworth/fpl-predictor/internal/features"
	"github.com/jstittsworth/fpl-predictor/internal/models"
	"github.com/jstittsworth/fpl-predictor/internal/scoring"
	"github.com/jstittsworth/fpl-predictor/internal/store"
	"github.com/jstittsworth/fpl-predictor/pkg/logger"
	"github.com/jstittsworth/fpl-predictor/pkg/utils"
)

type Config struct {
	// Workers bounds concurrent feature computation; 0 means NumCPU
	Workers int
	// ScoringTimeout bounds each scoring call; an elapsed timeout excludes
	// that candidate only. 0 disables the per-candidate bound.
	ScoringTimeout time.Duration
}

// Engine orchestrates eligibility, feature computation and model scoring
// across all candidates for a target gameweek. It holds no mutable state
// between passes: each pass is a pure function of the snapshot it reads.
type Engine struct {
	store    store.HistoricalStore
	features *features.Computer
	filter   *eligibility.Filter
	scorer   scoring.Scorer
	cfg      Config
	logger   *logrus.Logger
}

func NewEngine(st store.HistoricalStore, fc *features.Computer, filter *eligibility.Filter, scorer scoring.Scorer, cfg Config) *Engine {
	return &Engine{
		store:    st,
		features: fc,
		filter:   filter,
		scorer:   scorer,
		cfg:      cfg,
		logger:   logger.GetLogger(),
	}
}

// candidate is one (player, fixture) pair up for scoring. In a double
// gameweek the same player appears once per fixture.
type candidate struct {
	player   models.Player
	fixture  models.Fixture
	doubtful bool
}

// outcome of scoring one candidate; exactly one field is set
type outcome struct {
	pred *Prediction
	excl *Excluded
}

// Rank predicts points for every eligible player in the gameweek's fixtures
// and returns the top n sorted by predicted score, plus the excluded players.
func (e *Engine) Rank(ctx context.Context, gameweek, topN int) (*Result, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: top_n must be positive, got %d", utils.ErrInvalidArgument, topN)
	}
	if gameweek < 1 {
		return nil, fmt.Errorf("%w: gameweek must be >= 1, got %d", utils.ErrInvalidArgument, gameweek)
	}

	passLog := logger.WithRankingPass(uuid.New().String(), gameweek)

	fixtures, err := e.store.FixturesForGameweek(ctx, gameweek)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		passLog.Warn("No fixtures scheduled for gameweek")
		return &Result{
			Gameweek:    gameweek,
			Status:      StatusNoFixtures,
			Predictions: []Prediction{},
			Excluded:    []Excluded{},
		}, nil
	}

	teamNames, err := e.resolveTeamNames(ctx, fixtures)
	if err != nil {
		return nil, err
	}

	candidates, excluded, err := e.collectCandidates(ctx, fixtures)
	if err != nil {
		return nil, err
	}

	passLog.WithFields(logrus.Fields{
		"fixtures":   len(fixtures),
		"candidates": len(candidates),
		"ruled_out":  len(excluded),
	}).Info("Starting ranking pass")

	outcomes := e.scoreAll(ctx, candidates, teamNames)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var predictions []Prediction
	for _, o := range outcomes {
		switch {
		case o.pred != nil:
			predictions = append(predictions, *o.pred)
		case o.excl != nil:
			excluded = append(excluded, *o.excl)
		}
	}

	sortPredictions(predictions)
	if len(predictions) > topN {
		predictions = predictions[:topN]
	}
	if predictions == nil {
		predictions = []Prediction{}
	}

	excluded = dedupeExcluded(excluded)

	passLog.WithFields(logrus.Fields{
		"predictions": len(predictions),
		"excluded":    len(excluded),
	}).Info("Ranking pass completed")

	return &Result{
		Gameweek:    gameweek,
		Status:      StatusOK,
		Predictions: predictions,
		Excluded:    excluded,
	}, nil
}

// collectCandidates enumerates both squads of every fixture and applies the
// availability filter. Squads and fixtures arrive in fixed order from the
// store, so candidate order is stable across passes.
func (e *Engine) collectCandidates(ctx context.Context, fixtures []models.Fixture) ([]candidate, []Excluded, error) {
	var candidates []candidate
	var excluded []Excluded

	for _, f := range fixtures {
		for _, teamID := range []uint{f.HomeTeamID, f.AwayTeamID} {
			squad, err := e.store.Squad(ctx, teamID)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to load squad for team %d: %w", teamID, err)
			}
			for _, p := range squad {
				av, err := e.store.Availability(ctx, p.ID)
				if err != nil {
					// Missing news must not sink the pass; treat as available
					e.logger.WithField("player_id", p.ID).WithError(err).
						Warn("Availability lookup failed, treating player as available")
					av = nil
				}
				decision := e.filter.Check(av)
				if !decision.Eligible {
					excluded = append(excluded, Excluded{
						PlayerID:       p.ID,
						PlayerName:     p.FullName(),
						Status:         decision.Status,
						Reason:         decision.Reason,
						ExpectedReturn: decision.ExpectedReturn,
					})
					continue
				}
				candidates = append(candidates, candidate{
					player:   p,
					fixture:  f,
					doubtful: decision.Doubtful,
				})
			}
		}
	}

	return candidates, excluded, nil
}

// scoreAll runs feature computation and scoring over a bounded worker pool.
// Outcomes land in a slice indexed by candidate, so worker scheduling cannot
// influence ordering.
func (e *Engine) scoreAll(ctx context.Context, candidates []candidate, teamNames map[uint]string) []outcome {
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	outcomes := make([]outcome, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = e.scoreCandidate(ctx, candidates[i], teamNames)
			}
		}()
	}

	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (e *Engine) scoreCandidate(ctx context.Context, c candidate, teamNames map[uint]string) outcome {
	if ctx.Err() != nil {
		return outcome{}
	}

	computed, err := e.features.Compute(ctx, c.player, c.fixture)
	if err != nil {
		reason := utils.ErrCodeInternal
		if errors.Is(err, utils.ErrInsufficientHistory) {
			reason = utils.ErrCodeInsufficientHistory
		}
		e.logger.WithField("player_id", c.player.ID).WithError(err).
			Warn("Feature computation failed, excluding candidate")
		return outcome{excl: &Excluded{
			PlayerID:   c.player.ID,
			PlayerName: c.player.FullName(),
			Reason:     reason,
		}}
	}

	scoreCtx := ctx
	if e.cfg.ScoringTimeout > 0 {
		var cancel context.CancelFunc
		scoreCtx, cancel = context.WithTimeout(ctx, e.cfg.ScoringTimeout)
		defer cancel()
	}

	score, err := e.scorer.Score(scoreCtx, computed.Vector)
	if err != nil {
		reason := utils.ErrCodeScoringFailure
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			reason = utils.ErrCodeScoringTimeout
		}
		e.logger.WithField("player_id", c.player.ID).WithError(err).
			Warn("Scoring call failed, excluding candidate")
		return outcome{excl: &Excluded{
			PlayerID:   c.player.ID,
			PlayerName: c.player.FullName(),
			Reason:     reason,
		}}
	}

	// The model is unbounded below; negative point totals are not meaningful
	if score < 0 {
		score = 0
	}

	opponentID, isHome := c.fixture.OpponentOf(c.player.TeamID)

	return outcome{pred: &Prediction{
		PlayerID:            c.player.ID,
		PlayerName:          c.player.FullName(),
		Position:            c.player.Position,
		Team:                teamNames[c.player.TeamID],
		Opponent:            teamNames[opponentID],
		IsHome:              isHome,
		FixtureID:           c.fixture.ID,
		PredictedPoints:     score,
		Features:            computed.Vector,
		Extended:            computed.Extended,
		DifficultyDefaulted: computed.DifficultyDefaulted,
		Doubtful:            c.doubtful,
	}}
}

func (e *Engine) resolveTeamNames(ctx context.Context, fixtures []models.Fixture) (map[uint]string, error) {
	names := make(map[uint]string)
	for _, f := range fixtures {
		for _, teamID := range []uint{f.HomeTeamID, f.AwayTeamID} {
			if _, ok := names[teamID]; ok {
				continue
			}
			team, err := e.store.Team(ctx, teamID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve team %d: %w", teamID, err)
			}
			if team == nil {
				names[teamID] = "UNK"
				continue
			}
			if team.ShortName != "" {
				names[teamID] = team.ShortName
			} else {
				names[teamID] = team.Name
			}
		}
	}
	return names, nil
}

// sortPredictions orders by predicted score descending with a deterministic
// tie-break: recent form, then player ID, then fixture ID.
func sortPredictions(predictions []Prediction) {
	sort.SliceStable(predictions, func(i, j int) bool {
		a, b := predictions[i], predictions[j]
		if a.PredictedPoints != b.PredictedPoints {
			return a.PredictedPoints > b.PredictedPoints
		}
		if a.Features.AvgPointsLast5 != b.Features.AvgPointsLast5 {
			return a.Features.AvgPointsLast5 > b.Features.AvgPointsLast5
		}
		if a.PlayerID != b.PlayerID {
			return a.PlayerID < b.PlayerID
		}
		return a.FixtureID < b.FixtureID
	})
}

// dedupeExcluded sorts the exclusion list and collapses repeat entries for
// the same player (double gameweeks produce one exclusion per fixture).
func dedupeExcluded(excluded []Excluded) []Excluded {
	if excluded == nil {
		return []Excluded{}
	}
	sort.SliceStable(excluded, func(i, j int) bool {
		if excluded[i].PlayerID != excluded[j].PlayerID {
			return excluded[i].PlayerID < excluded[j].PlayerID
		}
		return excluded[i].Reason < excluded[j].Reason
	})
	out := excluded[:0]
	var lastID uint
	for i, ex := range excluded {
		if i > 0 && ex.PlayerID == lastID {
			continue
		}
		out = append(out, ex)
		lastID = ex.PlayerID
	}
	return out
}
