// README: Shared value types used across modules.
package types

// ID is an opaque record identifier (trip requests, trips, cards, drivers).
type ID string

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}
