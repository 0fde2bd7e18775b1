// Package metrics provides Prometheus metrics for gametracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts inbound requests by method and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gametracker",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	// HTTPRequestDuration measures inbound request duration.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gametracker",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// CatalogRequestsTotal counts catalog provider calls by endpoint and outcome.
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gametracker",
			Name:      "catalog_requests_total",
			Help:      "Total number of catalog provider requests",
		},
		[]string{"endpoint", "outcome"},
	)

	// CatalogRequestDuration measures catalog provider call duration.
	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gametracker",
			Name:      "catalog_request_duration_seconds",
			Help:      "Duration of catalog provider requests in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"endpoint"},
	)

	// TokenRefreshesTotal counts client-credential exchanges.
	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gametracker",
			Name:      "catalog_token_refreshes_total",
			Help:      "Total number of catalog access token exchanges",
		},
		[]string{"status"},
	)

	// CacheLookupsTotal counts cache lookups by cache name and result.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gametracker",
			Name:      "cache_lookups_total",
			Help:      "Total number of catalog cache lookups",
		},
		[]string{"cache", "result"},
	)
)

const (
	CacheHit       = "hit"
	CacheRemoteHit = "remote_hit"
	CacheMiss      = "miss"
	CacheStale     = "stale"
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, status).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(seconds)
}

// RecordCatalogRequest records one catalog provider call.
func RecordCatalogRequest(endpoint, outcome string, seconds float64) {
	CatalogRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	CatalogRequestDuration.WithLabelValues(endpoint).Observe(seconds)
}

func RecordTokenRefresh(status string) {
	TokenRefreshesTotal.WithLabelValues(status).Inc()
}

func RecordCacheLookup(cache, result string) {
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}
