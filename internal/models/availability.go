package models

import "time"

// Availability statuses as reported by the ingestion layer.
const (
	StatusAvailable   = "available"
	StatusDoubtful    = "doubtful"
	StatusInjured     = "injured"
	StatusUnavailable = "unavailable"
)

// AvailabilityStatus is a point-in-time snapshot of a player's availability.
// It may change between ranking passes but is treated as fixed during one.
type AvailabilityStatus struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PlayerID       uint      `gorm:"uniqueIndex;not null" json:"player_id"`
	Status         string    `gorm:"not null;default:available" json:"status"`
	News           string    `json:"news,omitempty"`
	ExpectedReturn *int      `json:"expected_return,omitempty"` // gameweek, when known
	UpdatedAt      time.Time `json:"updated_at"`

	Player Player `gorm:"foreignKey:PlayerID" json:"-"`
}

func (AvailabilityStatus) TableName() string {
	return "availability_status"
}

// RulesOut reports whether the status alone removes a player from rankings
func (a *AvailabilityStatus) RulesOut() bool {
	return a.Status == StatusInjured || a.Status == StatusUnavailable
}
