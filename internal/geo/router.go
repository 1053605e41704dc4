// README: OSRM routing client returning polyline, decoded points and travel estimate.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

// RouteResult is one driving route between two points.
type RouteResult struct {
	Polyline        string
	Points          []types.Point
	DistanceMeters  float64
	DurationSeconds float64
}

// Router performs route lookups against an OSRM HTTP server.
type Router struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func NewRouter(baseURL string, log *slog.Logger) *Router {
	return &Router{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     log,
	}
}

// Route queries OSRM for a driving route. Any provider failure or "no route"
// answer is a not-found outcome.
func (r *Router) Route(ctx context.Context, start, end types.Point) (*RouteResult, bool) {
	// OSRM route query: /route/v1/driving/{lon1},{lat1};{lon2},{lat2}
	url := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full",
		r.baseURL, start.Lng, start.Lat, end.Lng, end.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn("route request failed", "err", err)
		return nil, false
	}
	defer resp.Body.Close()

	var out struct {
		Code   string `json:"code"`
		Routes []struct {
			Geometry string  `json:"geometry"`
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false
	}
	if out.Code != "Ok" || len(out.Routes) == 0 {
		return nil, false
	}

	route := out.Routes[0]
	return &RouteResult{
		Polyline:        route.Geometry,
		Points:          DecodePolyline(route.Geometry),
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
	}, true
}
