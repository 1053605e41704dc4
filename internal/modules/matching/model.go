// README: Matching candidates and parsed recommendation results.
package matching

import (
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/trip"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

// Candidate pairs a bookable trip with its distances to a request's
// endpoints. Distances are derived per matching run and never persisted.
type Candidate struct {
	Trip *trip.Trip
	// OriginDistanceKm and DestinationDistanceKm are jointly present or
	// jointly absent; a partial computation counts as "no distance" and
	// ranks last.
	OriginDistanceKm      *float64
	DestinationDistanceKm *float64
}

// Recommendation is the parsed output of one LLM invocation.
type Recommendation struct {
	// InternalComment is at minimum the raw model output, never empty
	// unless the input itself was empty.
	InternalComment string
	// ChosenTripID is nil when the model answered NONE or no id could be
	// recovered.
	ChosenTripID *types.ID
	// CustomerMessage is nil when no [MESSAGE] section was present.
	CustomerMessage *string
}

// Band groups candidates for the map screen's progressive disclosure.
// MaxKm 0 means unbounded.
type Band struct {
	MaxKm      float64
	Candidates []Candidate
}

// radiusBands are the fixed disclosure bands of the interactive map path.
var radiusBands = []float64{5, 10, 15, 0}
