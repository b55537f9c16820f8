package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics. The path label is normalized by pathutil before it gets here.
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Feed metrics
var (
	// NewsFetchTotal counts news fetches by provider and result
	NewsFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_news_fetch_total",
			Help: "News fetches, one per company per render",
		},
		[]string{"provider", "status"}, // status: success|failure
	)

	// NewsFetchDuration measures time to fetch news for one company
	NewsFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_news_fetch_duration_seconds",
			Help:    "Time taken to fetch news for one company",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	// CardsRenderedTotal counts display cards produced by kind
	CardsRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cards_rendered_total",
			Help: "Total number of display cards rendered",
		},
		[]string{"kind"},
	)

	// UpdatesSubmittedTotal counts manual update submissions by result
	UpdatesSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_updates_submitted_total",
			Help: "Total number of manual update submissions",
		},
		[]string{"status"}, // status: accepted|rejected|failed
	)
)

// Update store metrics, labelled by driver (jsonfile, postgres)
var (
	// StoreOperationDuration measures update store operation duration
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_store_operation_duration_seconds",
			Help:    "Update store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"driver", "operation"},
	)

	// StoreErrorsTotal counts failed update store operations
	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_store_errors_total",
			Help: "Total number of failed update store operations",
		},
		[]string{"driver", "operation"},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
