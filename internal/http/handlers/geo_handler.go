// README: Geocoding and routing handlers for the interactive map screen.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/geo"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type GeoHandler struct {
	geocoder *geo.Geocoder
	router   *geo.Router
}

func NewGeoHandler(geocoder *geo.Geocoder, router *geo.Router) *GeoHandler {
	return &GeoHandler{geocoder: geocoder, router: router}
}

// Geocode handles GET /api/geocode?q=. A miss is a 404, not an error toast.
func (h *GeoHandler) Geocode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, http.StatusBadRequest, "missing q")
		return
	}
	p, ok := h.geocoder.ResolvePlace(c.Request.Context(), query)
	if !ok {
		writeError(c, http.StatusNotFound, "place not found")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"lat": p.Lat, "lng": p.Lng})
}

type pointView struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route handles GET /api/route?from_lat=&from_lng=&to_lat=&to_lng=.
func (h *GeoHandler) Route(c *gin.Context) {
	start, ok1 := pointParam(c, "from_lat", "from_lng")
	end, ok2 := pointParam(c, "to_lat", "to_lng")
	if !ok1 || !ok2 {
		writeError(c, http.StatusBadRequest, "invalid coordinates")
		return
	}

	route, ok := h.router.Route(c.Request.Context(), start, end)
	if !ok {
		writeError(c, http.StatusNotFound, "no route found")
		return
	}

	points := make([]pointView, len(route.Points))
	for i, p := range route.Points {
		points[i] = pointView{Lat: p.Lat, Lng: p.Lng}
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"polyline":         route.Polyline,
		"points":           points,
		"distance_meters":  route.DistanceMeters,
		"duration_seconds": route.DurationSeconds,
	})
}

func pointParam(c *gin.Context, latKey, lngKey string) (types.Point, bool) {
	lat, errLat := strconv.ParseFloat(c.Query(latKey), 64)
	lng, errLng := strconv.ParseFloat(c.Query(lngKey), 64)
	if errLat != nil || errLng != nil {
		return types.Point{}, false
	}
	return types.Point{Lat: lat, Lng: lng}, true
}
