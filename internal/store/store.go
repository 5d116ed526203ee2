package store

import (
	"context"

	"github.com/jstittsworth/fpl-predictor/internal/models"
)

// TeamMatch is a team-level view of one played fixture, derived from the
// player stat rows for that fixture. Used for opponent difficulty aggregates.
type TeamMatch struct {
	FixtureID     uint         `json:"fixture_id"`
	Gameweek      int          `json:"gameweek"`
	Venue         models.Venue `json:"venue"`
	GoalsConceded int          `json:"goals_conceded"`
}

// HistoricalStore is the read-only view of the ingested season data that the
// prediction engine runs against. Every *Before method returns only rows with
// gameweek strictly less than the given one, so callers cannot accidentally
// leak the target fixture into its own features.
type HistoricalStore interface {
	// MatchesBefore returns the player's stat rows before the gameweek,
	// most recent first.
	MatchesBefore(ctx context.Context, playerID uint, gameweek int) ([]models.PlayerStat, error)

	// TeamMatchesBefore returns the team's played fixtures at the given venue
	// before the gameweek, most recent first.
	TeamMatchesBefore(ctx context.Context, teamID uint, venue models.Venue, gameweek int) ([]TeamMatch, error)

	// FixturesForGameweek returns the fixtures scheduled for the gameweek,
	// ordered by fixture ID.
	FixturesForGameweek(ctx context.Context, gameweek int) ([]models.Fixture, error)

	// Squad returns the team's players ordered by player ID.
	Squad(ctx context.Context, teamID uint) ([]models.Player, error)

	// Availability returns the player's current availability snapshot, or
	// nil when none has been recorded (treated as available).
	Availability(ctx context.Context, playerID uint) (*models.AvailabilityStatus, error)

	// Team returns the team row, or nil when unknown.
	Team(ctx context.Context, teamID uint) (*models.Team, error)

	// Player returns the player row, or nil when unknown.
	Player(ctx context.Context, playerID uint) (*models.Player, error)
}
