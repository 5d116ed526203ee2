package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fpl-predictor/internal/models"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Teams: []models.Team{
			{ID: 1, Name: "Arsenal", ShortName: "ARS"},
			{ID: 2, Name: "Chelsea", ShortName: "CHE"},
		},
		Players: []models.Player{
			{ID: 20, SecondName: "Saka", TeamID: 1, Position: models.PositionMidfielder},
			{ID: 10, SecondName: "Havertz", TeamID: 1, Position: models.PositionForward},
			{ID: 30, SecondName: "Palmer", TeamID: 2, Position: models.PositionMidfielder},
		},
		Fixtures: []models.Fixture{
			{ID: 102, Gameweek: 3, HomeTeamID: 2, AwayTeamID: 1},
			{ID: 101, Gameweek: 3, HomeTeamID: 1, AwayTeamID: 2},
		},
		Stats: []models.PlayerStat{
			{PlayerID: 10, FixtureID: 51, Gameweek: 1, TeamID: 1, OpponentID: 2, WasHome: true, Minutes: 90, TotalPoints: 2, GoalsConceded: 1},
			{PlayerID: 10, FixtureID: 52, Gameweek: 2, TeamID: 1, OpponentID: 2, WasHome: false, Minutes: 90, TotalPoints: 9, GoalsConceded: 0},
			{PlayerID: 20, FixtureID: 51, Gameweek: 1, TeamID: 1, OpponentID: 2, WasHome: true, Minutes: 45, TotalPoints: 1, GoalsConceded: 1},
		},
		Availability: []models.AvailabilityStatus{
			{PlayerID: 30, Status: models.StatusInjured, News: "Knee injury"},
		},
	}
}

func TestMatchesBefore_StrictlyBeforeMostRecentFirst(t *testing.T) {
	m := NewMemStore(testSnapshot())
	ctx := context.Background()

	matches, err := m.MatchesBefore(ctx, 10, 3)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 2, matches[0].Gameweek, "most recent match first")
	assert.Equal(t, 1, matches[1].Gameweek)

	// the boundary gameweek itself is excluded
	matches, err = m.MatchesBefore(ctx, 10, 2)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Gameweek)

	matches, err = m.MatchesBefore(ctx, 10, 1)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestTeamMatchesBefore_VenueSplitAndFixtureDedupe(t *testing.T) {
	m := NewMemStore(testSnapshot())
	ctx := context.Background()

	// fixture 51 has two player rows for team 1; it must count once
	home, err := m.TeamMatchesBefore(ctx, 1, models.VenueHome, 3)
	require.NoError(t, err)
	require.Len(t, home, 1)
	assert.Equal(t, uint(51), home[0].FixtureID)
	assert.Equal(t, 1, home[0].GoalsConceded)
	assert.Equal(t, models.VenueHome, home[0].Venue)

	away, err := m.TeamMatchesBefore(ctx, 1, models.VenueAway, 3)
	require.NoError(t, err)
	require.Len(t, away, 1)
	assert.Equal(t, uint(52), away[0].FixtureID)
	assert.Equal(t, 0, away[0].GoalsConceded)
}

func TestFixturesForGameweek_SortedByID(t *testing.T) {
	m := NewMemStore(testSnapshot())

	fixtures, err := m.FixturesForGameweek(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, uint(101), fixtures[0].ID)
	assert.Equal(t, uint(102), fixtures[1].ID)

	empty, err := m.FixturesForGameweek(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSquad_SortedByPlayerID(t *testing.T) {
	m := NewMemStore(testSnapshot())

	squad, err := m.Squad(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, squad, 2)
	assert.Equal(t, uint(10), squad[0].ID)
	assert.Equal(t, uint(20), squad[1].ID)
}

func TestAvailability_MissingIsNil(t *testing.T) {
	m := NewMemStore(testSnapshot())
	ctx := context.Background()

	av, err := m.Availability(ctx, 30)
	require.NoError(t, err)
	require.NotNil(t, av)
	assert.Equal(t, models.StatusInjured, av.Status)

	av, err = m.Availability(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, av, "no recorded news means nil, not an error")
}

func TestTeamAndPlayerLookups(t *testing.T) {
	m := NewMemStore(testSnapshot())
	ctx := context.Background()

	team, err := m.Team(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, team)
	assert.Equal(t, "CHE", team.ShortName)

	missing, err := m.Team(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	player, err := m.Player(ctx, 20)
	require.NoError(t, err)
	require.NotNil(t, player)
	assert.Equal(t, "Saka", player.SecondName)
}

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	content := `{
		"teams": [{"id": 1, "name": "Arsenal", "short_name": "ARS"}],
		"players": [{"id": 10, "second_name": "Havertz", "team_id": 1, "position": "FWD"}],
		"fixtures": [{"id": 101, "gameweek": 2, "home_team_id": 1, "away_team_id": 2}],
		"stats": [{"player_id": 10, "fixture_id": 51, "gameweek": 1, "team_id": 1, "opponent_id": 2, "was_home": true, "minutes": 90, "total_points": 6, "goals_conceded": 0}],
		"availability": []
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := LoadSnapshot(path)
	require.NoError(t, err)

	matches, err := m.MatchesBefore(context.Background(), 10, 2)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 6, matches[0].TotalPoints)

	_, err = LoadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
