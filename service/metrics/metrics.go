package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the application.
// Following the explicit dependency injection pattern, this struct
// is passed to all components that need to record metrics.
type Metrics struct {
	// Solana RPC Metrics
	solanaRPCCallsTotal   *prometheus.CounterVec
	solanaRPCCallDuration *prometheus.HistogramVec
	solanaRPCErrorsTotal  *prometheus.CounterVec

	// Pool Scan Metrics
	poolScansTotal      *prometheus.CounterVec
	poolScanMatches     prometheus.Histogram
	poolScanDuration    prometheus.Histogram
	poolScanLastSuccess prometheus.Gauge

	// HTTP Metrics
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		// Solana RPC Metrics
		solanaRPCCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solana_rpc_calls_total",
				Help: "Total number of Solana RPC calls by method and status",
			},
			[]string{"method", "status", "endpoint"},
		),
		solanaRPCCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "solana_rpc_call_duration_seconds",
				Help:    "Duration of Solana RPC calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"method", "endpoint"},
		),
		solanaRPCErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solana_rpc_errors_total",
				Help: "Total number of failed Solana RPC calls by error class",
			},
			[]string{"method", "reason"},
		),

		// Pool Scan Metrics
		poolScansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pool_scans_total",
				Help: "Total number of pool scan iterations by status",
			},
			[]string{"status"},
		),
		poolScanMatches: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pool_scan_matches",
				Help:    "Number of matching pool accounts per successful scan",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
			},
		),
		poolScanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pool_scan_duration_seconds",
				Help:    "Duration of a pool scan iteration, excluding the poll wait",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		poolScanLastSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pool_scan_last_success_timestamp_seconds",
				Help: "Unix time of the last successful pool scan",
			},
		),

		// HTTP Metrics
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"handler", "method", "status"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"handler", "method", "status"},
		),
	}
}

// Solana RPC metric helpers

// RecordRPCCall records a Solana RPC call with duration.
func (m *Metrics) RecordRPCCall(method, status, endpoint string, duration float64) {
	m.solanaRPCCallsTotal.WithLabelValues(method, status, endpoint).Inc()
	m.solanaRPCCallDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordRPCError records a failed RPC call by error class.
func (m *Metrics) RecordRPCError(method, reason string) {
	m.solanaRPCErrorsTotal.WithLabelValues(method, reason).Inc()
}

// Pool scan metric helpers

// RecordScan records the outcome of one scan iteration.
// matches is only observed for successful scans.
func (m *Metrics) RecordScan(err error, matches int, at time.Time) {
	if err != nil {
		m.poolScansTotal.WithLabelValues("error").Inc()
		return
	}
	m.poolScansTotal.WithLabelValues("success").Inc()
	m.poolScanMatches.Observe(float64(matches))
	m.poolScanLastSuccess.Set(float64(at.Unix()))
}

// RecordScanDuration records how long a scan iteration took.
func (m *Metrics) RecordScanDuration(duration float64) {
	m.poolScanDuration.Observe(duration)
}

// HTTP metric helpers

// RecordHTTPRequest records an HTTP request with duration.
func (m *Metrics) RecordHTTPRequest(handler, method string, statusCode int, duration float64) {
	status := statusCodeToString(statusCode)
	m.httpRequestDuration.WithLabelValues(handler, method, status).Observe(duration)
	m.httpRequestsTotal.WithLabelValues(handler, method, status).Inc()
}

// Handler returns the mux served by the metrics server: /metrics for Prometheus
// scrapes and /health for liveness probes.
// If gatherer is nil, prometheus.DefaultGatherer is used.
func Handler(m *Metrics, gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", instrument(m, "/metrics",
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	))
	mux.Handle("GET /health", instrument(m, "/health",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		}),
	))
	return mux
}

// Helper functions

func statusCodeToString(code int) string {
	// Group status codes by class
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "unknown"
	}
}
