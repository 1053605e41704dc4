// README: Candidate trip selection; great-circle distances, ranking, radius bands.
package matching

import (
	"math"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/trip"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees. Exactness is not a correctness
// requirement for ranking, only monotonic ordering.
func haversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// sortByDistance performs an insertion sort (fine for small N) on any slice
// where each element exposes a distance via the accessor function.
func sortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}

// SelectCandidates ranks the open trip pool against a request's endpoints and
// truncates to limit. A request without coordinates yields an empty set: the
// prompt must not be built and the outcome is "no match, insufficient data".
func SelectCandidates(origin, destination *types.Point, pool []*trip.Trip, limit int) []Candidate {
	if origin == nil || destination == nil || limit <= 0 {
		return nil
	}

	candidates := make([]Candidate, 0, len(pool))
	for _, t := range pool {
		c := Candidate{Trip: t}
		// Both trip endpoints are required; anything less is "no distance".
		if t.Departure != nil && t.Arrival != nil {
			od := haversineKm(*origin, *t.Departure)
			dd := haversineKm(*destination, *t.Arrival)
			c.OriginDistanceKm = &od
			c.DestinationDistanceKm = &dd
		}
		candidates = append(candidates, c)
	}

	sortByDistance(candidates, func(c Candidate) float64 {
		if c.OriginDistanceKm == nil {
			return math.Inf(1)
		}
		return *c.OriginDistanceKm
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// PartitionByRadius splits candidates into the fixed 5/10/15/unbounded km
// bands by the max of the two distances. Presentation concern of the map
// screen, layered on the same distance computation.
func PartitionByRadius(candidates []Candidate) []Band {
	bands := make([]Band, len(radiusBands))
	for i, max := range radiusBands {
		bands[i] = Band{MaxKm: max}
	}

	for _, c := range candidates {
		bands[bandIndex(c)].Candidates = append(bands[bandIndex(c)].Candidates, c)
	}
	return bands
}

func bandIndex(c Candidate) int {
	if c.OriginDistanceKm == nil || c.DestinationDistanceKm == nil {
		return len(radiusBands) - 1
	}
	worst := math.Max(*c.OriginDistanceKm, *c.DestinationDistanceKm)
	for i, max := range radiusBands {
		if max > 0 && worst <= max {
			return i
		}
	}
	return len(radiusBands) - 1
}
