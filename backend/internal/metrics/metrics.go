// Package metrics exposes Prometheus collectors for graph queries, the HTTP API
// and the recommendation engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Graph store metrics
	GraphQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graph_query_duration_seconds",
			Help:    "Duration of graph store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	GraphQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_query_errors_total",
			Help: "Total number of failed graph store queries",
		},
		[]string{"operation"},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation metrics
	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendations_returned",
			Help:    "Number of events recommended per request",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)
)

// RecordGraphQuery records a graph store query metric
func RecordGraphQuery(operation string, duration time.Duration, err error) {
	GraphQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		GraphQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendations records the size of a recommendation result
func RecordRecommendations(count int) {
	RecommendationsReturned.Observe(float64(count))
}
