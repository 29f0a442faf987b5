// Package metrics provides Prometheus metrics for assetlens.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus collectors used across the client, the reactive
// layer and the development backend.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Client side: calls issued through the request utility
	clientRequests        *prometheus.CounterVec
	clientRequestDuration *prometheus.HistogramVec

	// Server side: the development backend
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	distributionTotal   *prometheus.GaugeVec

	// Reactive layer
	recomputes   *prometheus.CounterVec
	stateChanges *prometheus.CounterVec
	chartRenders *prometheus.CounterVec

	// Process
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "assetlens",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) initializeMetrics() {
	m.clientRequests = m.counterVec("client_requests_total",
		"Requests issued by the request utility by path and outcome", "path", "outcome")
	m.clientRequestDuration = m.histogramVec("client_request_duration_milliseconds",
		"Round-trip time of client requests in milliseconds", "path")

	m.httpRequests = m.counterVec("http_requests_total",
		"HTTP requests served by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", "endpoint", "method", "status_code")
	m.errorsByEndpoint = m.counterVec("http_errors_total",
		"HTTP error responses by endpoint, method and error type", "endpoint", "method", "error_type")
	m.distributionTotal = promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "distribution_total",
		Help:        "Last computed total of a distribution set",
		ConstLabels: m.constLabels,
	}, []string{"set"})

	m.recomputes = m.counterVec("computed_recomputes_total",
		"Recomputations of memoized derived values", "name")
	m.stateChanges = m.counterVec("state_changes_total",
		"Observed changes of shared application state", "key")
	m.chartRenders = m.counterVec("chart_renders_total",
		"Rendered chart images by theme", "theme")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Current goroutine count")
}

// RecordClientRequest records the outcome and latency of one client request.
func RecordClientRequest(path, outcome string, durationMs float64) {
	globalManager.clientRequests.WithLabelValues(path, outcome).Inc()
	globalManager.clientRequestDuration.WithLabelValues(path).Observe(durationMs)
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records served HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error response by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateDistributionTotal sets the last computed total of a set.
func UpdateDistributionTotal(set string, total float64) {
	globalManager.distributionTotal.WithLabelValues(set).Set(total)
}

// RecordRecompute counts one recomputation of a derived value.
func RecordRecompute(name string) {
	globalManager.recomputes.WithLabelValues(name).Inc()
}

// RecordStateChange counts one change of a shared state key.
func RecordStateChange(key string) {
	globalManager.stateChanges.WithLabelValues(key).Inc()
}

// RecordChartRender counts one rendered chart.
func RecordChartRender(theme string) {
	globalManager.chartRenders.WithLabelValues(theme).Inc()
}

// UpdateSystemMemoryUsage sets heap allocation in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
