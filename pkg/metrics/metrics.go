// Package metrics holds every Prometheus collector exported by the Dota 2
// API client. Collectors are registered once, here, through promauto so the
// client, retry, ratelimit, pagination and refdata packages can share them
// without registering the same name twice.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the client.
var Registry = prometheus.DefaultRegisterer

// Request metrics (pkg/client).
var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "d2api_requests_total",
		Help: "Total Dota 2 Web API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "d2api_request_duration_seconds",
		Help:    "Dota 2 Web API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "d2api_errors_total",
		Help: "Total Dota 2 Web API errors by class",
	}, []string{"class"})
)

// Retry metrics (pkg/retry).
var (
	RetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "d2api_retries_total",
		Help: "Total number of retry attempts by operation",
	}, []string{"operation"})

	RetryBackoffSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "d2api_retry_backoff_seconds",
		Help:    "Backoff duration for retries by operation",
		Buckets: []float64{0.5, 1, 5, 10, 30, 60},
	}, []string{"operation"})

	RetryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "d2api_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by operation",
	}, []string{"operation"})
)

// Pacing metrics (pkg/ratelimit).
var (
	PacingWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "d2api_pacing_wait_seconds",
		Help:    "Time spent waiting on the request pacer",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5},
	})
)

// Aggregation metrics (pkg/pagination).
var (
	PagesFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "d2api_history_pages_fetched_total",
		Help: "Total match history pages fetched by walk mode",
	}, []string{"mode"})

	DetailsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "d2api_match_details_fetched_total",
		Help: "Total match details fetched during aggregation",
	})

	AggregationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "d2api_aggregations_total",
		Help: "Total aggregation walks by outcome",
	}, []string{"outcome"})
)

// Reference data metrics (pkg/refdata).
var (
	RefDataHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "d2api_refdata_hits_total",
		Help: "Total reference data store hits by backend",
	}, []string{"backend"})

	RefDataMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "d2api_refdata_misses_total",
		Help: "Total reference data store misses by backend",
	}, []string{"backend"})

	RefDataErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "d2api_refdata_errors_total",
		Help: "Total reference data store errors by operation",
	}, []string{"operation"})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Example Prometheus Queries:
//
//   # Transient error rate
//   sum(rate(d2api_errors_total{class=~"server|rate_limit|network"}[5m]))
//
//   # Retry exhaustion by operation
//   increase(d2api_retry_exhausted_total[1h])
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(d2api_request_duration_seconds_bucket[5m]))
//
//   # Detail fetch throughput during a walk
//   rate(d2api_match_details_fetched_total[1m])
