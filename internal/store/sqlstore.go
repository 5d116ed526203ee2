package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jstittsworth/fpl-predictor/internal/models"
	"github.com/jstittsworth/fpl-predictor/pkg/database"
)

// SQLStore implements HistoricalStore over the ingested season database.
type SQLStore struct {
	db *database.DB
}

func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) MatchesBefore(ctx context.Context, playerID uint, gameweek int) ([]models.PlayerStat, error) {
	var stats []models.PlayerStat
	err := s.db.WithContext(ctx).
		Where("player_id = ? AND gameweek < ?", playerID, gameweek).
		Order("gameweek DESC, fixture_id DESC").
		Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for player %d: %w", playerID, err)
	}
	return stats, nil
}

func (s *SQLStore) TeamMatchesBefore(ctx context.Context, teamID uint, venue models.Venue, gameweek int) ([]TeamMatch, error) {
	wasHome := venue == models.VenueHome

	// One row per fixture; goals conceded is recorded identically on every
	// stat row of the same team in the same fixture.
	var matches []TeamMatch
	err := s.db.WithContext(ctx).
		Model(&models.PlayerStat{}).
		Select("fixture_id, gameweek, MAX(goals_conceded) AS goals_conceded").
		Where("team_id = ? AND was_home = ? AND gameweek < ?", teamID, wasHome, gameweek).
		Group("fixture_id, gameweek").
		Order("gameweek DESC, fixture_id DESC").
		Scan(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load team matches for team %d: %w", teamID, err)
	}
	for i := range matches {
		matches[i].Venue = venue
	}
	return matches, nil
}

func (s *SQLStore) FixturesForGameweek(ctx context.Context, gameweek int) ([]models.Fixture, error) {
	var fixtures []models.Fixture
	err := s.db.WithContext(ctx).
		Where("gameweek = ?", gameweek).
		Order("id ASC").
		Find(&fixtures).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures for gameweek %d: %w", gameweek, err)
	}
	return fixtures, nil
}

func (s *SQLStore) Squad(ctx context.Context, teamID uint) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("id ASC").
		Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load squad for team %d: %w", teamID, err)
	}
	return players, nil
}

func (s *SQLStore) Availability(ctx context.Context, playerID uint) (*models.AvailabilityStatus, error) {
	var status models.AvailabilityStatus
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load availability for player %d: %w", playerID, err)
	}
	return &status, nil
}

func (s *SQLStore) Team(ctx context.Context, teamID uint) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).First(&team, teamID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}
	return &team, nil
}

func (s *SQLStore) Player(ctx context.Context, playerID uint) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).First(&player, playerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player %d: %w", playerID, err)
	}
	return &player, nil
}
