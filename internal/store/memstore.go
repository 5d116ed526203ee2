package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/jstittsworth/fpl-predictor/internal/models"
)

// Snapshot is a self-contained season snapshot, loadable from JSON. The
// predict CLI and tests run against it instead of a live database.
type Snapshot struct {
	Teams        []models.Team               `json:"teams"`
	Players      []models.Player             `json:"players"`
	Fixtures     []models.Fixture            `json:"fixtures"`
	Stats        []models.PlayerStat         `json:"stats"`
	Availability []models.AvailabilityStatus `json:"availability"`
}

// MemStore implements HistoricalStore over an in-memory snapshot. All lookups
// return data in a fixed order so ranking output is reproducible.
type MemStore struct {
	teams         map[uint]models.Team
	players       map[uint]models.Player
	squads        map[uint][]models.Player
	fixtures      map[int][]models.Fixture
	statsByPlayer map[uint][]models.PlayerStat
	statsByTeam   map[uint][]models.PlayerStat
	availability  map[uint]models.AvailabilityStatus
}

func NewMemStore(snap Snapshot) *MemStore {
	m := &MemStore{
		teams:         make(map[uint]models.Team),
		players:       make(map[uint]models.Player),
		squads:        make(map[uint][]models.Player),
		fixtures:      make(map[int][]models.Fixture),
		statsByPlayer: make(map[uint][]models.PlayerStat),
		statsByTeam:   make(map[uint][]models.PlayerStat),
		availability:  make(map[uint]models.AvailabilityStatus),
	}

	for _, t := range snap.Teams {
		m.teams[t.ID] = t
	}
	for _, p := range snap.Players {
		m.players[p.ID] = p
		m.squads[p.TeamID] = append(m.squads[p.TeamID], p)
	}
	for _, f := range snap.Fixtures {
		m.fixtures[f.Gameweek] = append(m.fixtures[f.Gameweek], f)
	}
	for _, s := range snap.Stats {
		m.statsByPlayer[s.PlayerID] = append(m.statsByPlayer[s.PlayerID], s)
		m.statsByTeam[s.TeamID] = append(m.statsByTeam[s.TeamID], s)
	}
	for _, a := range snap.Availability {
		m.availability[a.PlayerID] = a
	}

	for teamID := range m.squads {
		sort.Slice(m.squads[teamID], func(i, j int) bool {
			return m.squads[teamID][i].ID < m.squads[teamID][j].ID
		})
	}
	for gw := range m.fixtures {
		sort.Slice(m.fixtures[gw], func(i, j int) bool {
			return m.fixtures[gw][i].ID < m.fixtures[gw][j].ID
		})
	}
	for playerID := range m.statsByPlayer {
		stats := m.statsByPlayer[playerID]
		sort.Slice(stats, func(i, j int) bool {
			if stats[i].Gameweek != stats[j].Gameweek {
				return stats[i].Gameweek > stats[j].Gameweek
			}
			return stats[i].FixtureID > stats[j].FixtureID
		})
	}
	for teamID := range m.statsByTeam {
		stats := m.statsByTeam[teamID]
		sort.Slice(stats, func(i, j int) bool {
			if stats[i].Gameweek != stats[j].Gameweek {
				return stats[i].Gameweek > stats[j].Gameweek
			}
			return stats[i].FixtureID > stats[j].FixtureID
		})
	}

	return m
}

// LoadSnapshot reads a season snapshot from a JSON file
func LoadSnapshot(path string) (*MemStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	return NewMemStore(snap), nil
}

func (m *MemStore) MatchesBefore(ctx context.Context, playerID uint, gameweek int) ([]models.PlayerStat, error) {
	var out []models.PlayerStat
	for _, s := range m.statsByPlayer[playerID] {
		if s.Gameweek < gameweek {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemStore) TeamMatchesBefore(ctx context.Context, teamID uint, venue models.Venue, gameweek int) ([]TeamMatch, error) {
	wasHome := venue == models.VenueHome

	var out []TeamMatch
	seen := make(map[uint]bool)
	for _, s := range m.statsByTeam[teamID] {
		if s.Gameweek >= gameweek || s.WasHome != wasHome || seen[s.FixtureID] {
			continue
		}
		seen[s.FixtureID] = true
		out = append(out, TeamMatch{
			FixtureID:     s.FixtureID,
			Gameweek:      s.Gameweek,
			Venue:         venue,
			GoalsConceded: s.GoalsConceded,
		})
	}
	return out, nil
}

func (m *MemStore) FixturesForGameweek(ctx context.Context, gameweek int) ([]models.Fixture, error) {
	return m.fixtures[gameweek], nil
}

func (m *MemStore) Squad(ctx context.Context, teamID uint) ([]models.Player, error) {
	return m.squads[teamID], nil
}

func (m *MemStore) Availability(ctx context.Context, playerID uint) (*models.AvailabilityStatus, error) {
	if a, ok := m.availability[playerID]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *MemStore) Team(ctx context.Context, teamID uint) (*models.Team, error) {
	if t, ok := m.teams[teamID]; ok {
		return &t, nil
	}
	return nil, nil
}

func (m *MemStore) Player(ctx context.Context, playerID uint) (*models.Player, error) {
	if p, ok := m.players[playerID]; ok {
		return &p, nil
	}
	return nil, nil
}
