package models

import "time"

// Venue identifies which side of a fixture a team plays on.
type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

type Fixture struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Gameweek   int       `gorm:"not null;index" json:"gameweek"`
	HomeTeamID uint      `gorm:"not null;index" json:"home_team_id"`
	AwayTeamID uint      `gorm:"not null;index" json:"away_team_id"`
	KickoffAt  time.Time `json:"kickoff_at"`

	HomeTeam Team `gorm:"foreignKey:HomeTeamID" json:"home_team,omitempty"`
	AwayTeam Team `gorm:"foreignKey:AwayTeamID" json:"away_team,omitempty"`
}

func (Fixture) TableName() string {
	return "fixtures"
}

// Involves reports whether the team plays in this fixture
func (f *Fixture) Involves(teamID uint) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

// OpponentOf returns the other team in the fixture, and whether the given
// team plays at home. The second value is meaningless if the team is not in
// the fixture.
func (f *Fixture) OpponentOf(teamID uint) (opponentID uint, home bool) {
	if f.HomeTeamID == teamID {
		return f.AwayTeamID, true
	}
	return f.HomeTeamID, false
}
