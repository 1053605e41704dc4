// README: Driver-published trips considered as match candidates.
package trip

import (
	"time"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusPending Status = "PENDING"
)

// Trip is an existing, bookable driver trip.
type Trip struct {
	ID            types.ID
	DepartureCity string
	ArrivalCity   string
	// Departure and Arrival are nil when the trip row carries no
	// coordinates; such trips rank last for any request.
	Departure      *types.Point
	Arrival        *types.Point
	DepartureTime  time.Time
	SeatsAvailable int
	// Polyline is the precision-5 encoded driving route, when known.
	Polyline string
	Status   Status
}
