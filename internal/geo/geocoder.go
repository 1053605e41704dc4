// README: Nominatim geocoder restricted to one country context.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/observability"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

// Geocoder resolves free-text place names to coordinates. A lookup that the
// provider cannot answer is a not-found outcome, never an error that aborts
// the caller.
type Geocoder struct {
	baseURL     string
	countryCode string
	client      *http.Client
	log         *slog.Logger
}

func NewGeocoder(baseURL, countryCode string, log *slog.Logger) *Geocoder {
	return &Geocoder{
		baseURL:     baseURL,
		countryCode: countryCode,
		client:      &http.Client{Timeout: 5 * time.Second},
		log:         log,
	}
}

// ResolvePlace returns the first match for query, or ok=false when the
// provider errors out or returns an empty result set.
func (g *Geocoder) ResolvePlace(ctx context.Context, query string) (types.Point, bool) {
	if query == "" {
		return types.Point{}, false
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", g.countryCode)

	reqURL := fmt.Sprintf("%s/search?%s", g.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.Point{}, false
	}
	// Nominatim usage policy requires an identifying UA.
	req.Header.Set("User-Agent", "KlandoDash/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("geocode request failed", "query", query, "err", err)
		observability.GeocodeLookups.WithLabelValues("error").Inc()
		return types.Point{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.GeocodeLookups.WithLabelValues("error").Inc()
		return types.Point{}, false
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		observability.GeocodeLookups.WithLabelValues("error").Inc()
		return types.Point{}, false
	}
	if len(results) == 0 {
		observability.GeocodeLookups.WithLabelValues("not_found").Inc()
		return types.Point{}, false
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLng != nil {
		observability.GeocodeLookups.WithLabelValues("error").Inc()
		return types.Point{}, false
	}

	observability.GeocodeLookups.WithLabelValues("ok").Inc()
	return types.Point{Lat: lat, Lng: lng}, true
}
