package eligibility

import (
	"fmt"

	"github.com/jstittsworth/fpl-predictor/internal/models"
)

// Decision is the outcome of an availability check. Ineligible players are
// surfaced with status and expected return so callers can build the
// companion unavailable-players report; they are never silently dropped.
type Decision struct {
	Eligible       bool
	Doubtful       bool // eligible but flagged for downstream display
	Status         string
	Reason         string
	ExpectedReturn *int
}

// Filter applies availability policy. Injured and unavailable players are
// always out; doubtful is a policy choice and defaults to in-but-annotated.
type Filter struct {
	DoubtfulPlays bool
}

func NewFilter() *Filter {
	return &Filter{DoubtfulPlays: true}
}

// Check evaluates a player's availability snapshot. A nil snapshot means no
// news has been recorded and the player is treated as available.
func (f *Filter) Check(av *models.AvailabilityStatus) Decision {
	if av == nil {
		return Decision{Eligible: true, Status: models.StatusAvailable}
	}

	switch av.Status {
	case models.StatusInjured, models.StatusUnavailable:
		return Decision{
			Eligible:       false,
			Status:         av.Status,
			Reason:         fmt.Sprintf("ruled out: %s", av.Status),
			ExpectedReturn: av.ExpectedReturn,
		}
	case models.StatusDoubtful:
		if !f.DoubtfulPlays {
			return Decision{
				Eligible:       false,
				Status:         av.Status,
				Reason:         "excluded by doubtful policy",
				ExpectedReturn: av.ExpectedReturn,
			}
		}
		return Decision{
			Eligible:       true,
			Doubtful:       true,
			Status:         av.Status,
			ExpectedReturn: av.ExpectedReturn,
		}
	default:
		return Decision{Eligible: true, Status: models.StatusAvailable}
	}
}
