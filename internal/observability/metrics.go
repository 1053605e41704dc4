package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScanRunsTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "klandodash", Name: "scan_runs_total", Help: "Total number of global scan runs"})
	ScanDuration  = promauto.NewHistogram(prometheus.HistogramOpts{Namespace: "klandodash", Name: "scan_duration_seconds", Help: "Global scan duration in seconds", Buckets: prometheus.ExponentialBuckets(1, 2, 10)})
	CardsInserted = promauto.NewCounter(prometheus.CounterOpts{Namespace: "klandodash", Name: "scan_cards_inserted_total", Help: "Recommendation cards inserted by scans"})

	AICallsTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "klandodash", Name: "ai_calls_total", Help: "Total Gemini completion calls"})
	AIErrors     = promauto.NewCounter(prometheus.CounterOpts{Namespace: "klandodash", Name: "ai_errors_total", Help: "Failed Gemini completion calls"})

	GeocodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "klandodash", Name: "geocode_lookups_total", Help: "Geocoder lookups by outcome"},
		[]string{"outcome"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "klandodash", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
)
