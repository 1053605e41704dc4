// README: Trip request aggregate, staff status workflow and sentinel errors.
package request

import (
	"errors"
	"time"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type Status string

const (
	StatusNew       Status = "NEW"
	StatusReviewed  Status = "REVIEWED"
	StatusContacted Status = "CONTACTED"
	StatusIgnored   Status = "IGNORED"
)

var (
	ErrNotFound     = errors.New("trip request not found")
	ErrInvalidState = errors.New("invalid status transition")
	ErrConflict     = errors.New("trip request status conflict")
	ErrBadRequest   = errors.New("bad request")
)

// TripRequest is a customer's stated travel intent, created by the site
// intake form and mutated here only on its recommendation and status fields.
type TripRequest struct {
	ID              types.ID
	OriginCity      string
	DestinationCity string
	// Origin and Destination are nil when the intake form could not be
	// geocoded; a request without coordinates yields no candidates.
	Origin      *types.Point
	Destination *types.Point
	// DesiredDate nil means "as soon as possible".
	DesiredDate *time.Time
	Status      Status
	ContactInfo string
	// AIRecommendation holds the raw tagged text of the last pipeline run.
	// It is set together with AIUpdatedAt or not at all.
	AIRecommendation *string
	AIUpdatedAt      *time.Time
}

// AllowedTransitions is the staff triage flow. IGNORED and CONTACTED are
// terminal; a request is never deleted by the pipeline.
var AllowedTransitions = map[Status][]Status{
	StatusNew:      {StatusReviewed, StatusContacted, StatusIgnored},
	StatusReviewed: {StatusContacted, StatusIgnored},
}

func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
