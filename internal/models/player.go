package models

import "fmt"

// Position codes follow the FPL element types.
const (
	PositionGoalkeeper = "GKP"
	PositionDefender   = "DEF"
	PositionMidfielder = "MID"
	PositionForward    = "FWD"
)

type Team struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex;not null" json:"name"`
	ShortName string `json:"short_name"`

	Players []Player `gorm:"foreignKey:TeamID" json:"players,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

type Player struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	TeamID     uint   `gorm:"not null;index" json:"team_id"`
	Position   string `gorm:"not null" json:"position"`

	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

// FullName returns the display name used in prediction output
func (p *Player) FullName() string {
	if p.FirstName == "" {
		return p.SecondName
	}
	return fmt.Sprintf("%s %s", p.FirstName, p.SecondName)
}

// PlayerStat is one player's line for one fixture. Rows are written once by
// the ingestion layer and never mutated here.
type PlayerStat struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PlayerID  uint `gorm:"not null;index:idx_player_gameweek" json:"player_id"`
	FixtureID uint `gorm:"not null;index" json:"fixture_id"`
	Gameweek  int  `gorm:"not null;index:idx_player_gameweek" json:"gameweek"`

	TeamID     uint `gorm:"not null;index" json:"team_id"`
	OpponentID uint `gorm:"not null" json:"opponent_id"`
	WasHome    bool `gorm:"not null" json:"was_home"`

	Minutes       int `gorm:"not null" json:"minutes"`
	GoalsScored   int `gorm:"not null" json:"goals_scored"`
	Assists       int `gorm:"not null" json:"assists"`
	TotalPoints   int `gorm:"not null" json:"total_points"`
	GoalsConceded int `gorm:"not null" json:"goals_conceded"`

	// Understat advanced stats, present only when the scrape succeeded
	XG    *float64 `gorm:"column:xg" json:"xg,omitempty"`
	XA    *float64 `gorm:"column:xa" json:"xa,omitempty"`
	Shots *int     `json:"shots,omitempty"`

	Player Player `gorm:"foreignKey:PlayerID" json:"-"`
}

func (PlayerStat) TableName() string {
	return "player_stats"
}

// GoalContributions returns goals plus assists for the match
func (s *PlayerStat) GoalContributions() int {
	return s.GoalsScored + s.Assists
}
