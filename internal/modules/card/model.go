// README: Dashboard recommendation cards produced by the global scan.
package card

import (
	"errors"
	"time"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type Type string

const (
	TypeTraction   Type = "TRACTION"
	TypeStrategic  Type = "STRATEGIC"
	TypeEngagement Type = "ENGAGEMENT"
	TypeQuality    Type = "QUALITY"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApplied   Status = "APPLIED"
	StatusDismissed Status = "DISMISSED"
)

var ErrNotFound = errors.New("card not found")

// Card is one actionable dashboard entry. PENDING cards are replaced
// wholesale on every scan run; APPLIED and DISMISSED cards are history and
// survive until explicitly deleted.
type Card struct {
	ID       types.ID
	Type     Type
	Priority int
	Title    string
	// TargetID references the trip request or driver the card is about.
	TargetID  types.ID
	Status    Status
	CreatedAt time.Time
}
