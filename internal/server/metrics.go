package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsNamespace prefixes every metric the scan server exports.
const metricsNamespace = "dupscan"

// Metrics bundles the Prometheus instruments for the scan server.
// Each instance carries its own registry so repeated construction (tests,
// embedded servers) never trips duplicate registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
	scanDuration   prometheus.Histogram
	symbolsScanned prometheus.Counter
}

// NewMetrics creates the server metrics set backed by a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_requests",
			Help:      "Number of HTTP requests currently being served.",
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Total HTTP requests by handler and status code.",
		}, []string{"handler", "code"}),
		scanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "scan_duration_seconds",
			Help:      "Duration of duplicate scans served over HTTP.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		symbolsScanned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "symbols_scanned_total",
			Help:      "Total symbols processed by the scan endpoint.",
		}),
	}

	// Pre-create the expected label combinations so the counters appear in
	// the exposition before the first request.
	for _, h := range []string{"scan", "healthz", "metrics"} {
		m.requestsTotal.WithLabelValues(h, "200").Add(0)
	}

	registry.MustRegister(collectors.NewGoCollector())

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks one request in flight.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks one request finished.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// CountRequest records a completed request for a handler and status code.
func (m *Metrics) CountRequest(handler string, code int) {
	m.requestsTotal.WithLabelValues(handler, strconv.Itoa(code)).Inc()
}

// ObserveScan records a served scan: its duration and the symbols covered.
func (m *Metrics) ObserveScan(d time.Duration, symbols int) {
	m.scanDuration.Observe(d.Seconds())
	m.symbolsScanned.Add(float64(symbols))
}

// WritePrometheus serves the Prometheus exposition for this metrics set.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
