// Package metrics exposes Prometheus metrics for the analytics pipeline
// and the HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline metrics
	RecordsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supplysight_records_loaded_total",
			Help: "Total number of dataset records loaded",
		},
		[]string{"dataset"},
	)

	SeriesPrepared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "supplysight_series_prepared_total",
			Help: "Total number of demand series built by the preprocessor",
		},
	)

	ForecastRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supplysight_forecast_runs_total",
			Help: "Total number of forecasts generated, by winning model",
		},
		[]string{"model"},
	)

	SeriesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supplysight_series_skipped_total",
			Help: "Total number of series skipped during a pipeline run",
		},
		[]string{"stage"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supplysight_pipeline_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"stage"},
	)

	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supplysight_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supplysight_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint", "status"},
	)
)

// RecordRequest records metrics for one HTTP request
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// ObserveStage records the wall time of one pipeline stage
func ObserveStage(stage string, duration time.Duration) {
	PipelineDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// classifyStatus buckets an HTTP status code into its class
func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	default:
		return "unknown"
	}
}

// Handler returns the Prometheus exposition handler
func Handler() http.Handler {
	return promhttp.Handler()
}
