package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts finished HTTP requests by method, route, and status
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_http_requests_total",
			Help: "Total number of HTTP requests by method, route, and status code",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inkwell_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// PageCacheHitsTotal counts global listing requests served from the page cache
	PageCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inkwell_page_cache_hits_total",
			Help: "Total number of responses served from the page cache",
		},
	)

	// PageCacheMissesTotal counts global listing requests that were recomputed
	PageCacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inkwell_page_cache_misses_total",
			Help: "Total number of page cache misses",
		},
	)
)

// Register registers all collectors with the default registry
func Register() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		PageCacheHitsTotal,
		PageCacheMissesTotal,
	)
}

// Handler returns the HTTP handler exposing the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
