// README: Precision-5 polyline decoding, delegated to the Google Maps codec.
package geo

import (
	"googlemaps.github.io/maps"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

// DecodePolyline decodes a precision-5 encoded polyline to a point sequence.
// Malformed input yields an empty slice rather than an error; map overlays
// simply render nothing.
func DecodePolyline(encoded string) []types.Point {
	if encoded == "" {
		return nil
	}
	latlngs, err := maps.DecodePolyline(encoded)
	if err != nil {
		return nil
	}
	points := make([]types.Point, len(latlngs))
	for i, ll := range latlngs {
		points[i] = types.Point{Lat: ll.Lat, Lng: ll.Lng}
	}
	return points
}

// EncodePolyline is the inverse codec, used by tests and route fixtures.
func EncodePolyline(points []types.Point) string {
	latlngs := make([]maps.LatLng, len(points))
	for i, p := range points {
		latlngs[i] = maps.LatLng{Lat: p.Lat, Lng: p.Lng}
	}
	return maps.Encode(latlngs)
}
