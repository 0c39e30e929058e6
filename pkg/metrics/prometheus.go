// Package metrics provides Prometheus metrics for the launchboard dashboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset Metrics - shape of the table loaded at startup
	datasetRecords      prometheus.Gauge
	datasetSites        prometheus.Gauge
	payloadMin          prometheus.Gauge
	payloadMax          prometheus.Gauge
	datasetLoadDuration prometheus.Gauge

	// Query Metrics - view recomputation per control change
	queries      *prometheus.CounterVec
	queryLatency *prometheus.HistogramVec
	emptyViews   *prometheus.CounterVec

	// Chart Metrics - server-side rendering
	chartRenders       *prometheus.CounterVec
	chartRenderLatency *prometheus.HistogramVec
	chartRenderErrors  *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "launchboard",
		subsystem:        "dashboard",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.datasetRecords = m.gauge("dataset_records", "Number of launch records loaded at startup")
	m.datasetSites = m.gauge("dataset_sites", "Number of distinct launch sites")
	m.payloadMin = m.gauge("dataset_payload_min_kg", "Smallest payload mass in the dataset")
	m.payloadMax = m.gauge("dataset_payload_max_kg", "Largest payload mass in the dataset")
	m.datasetLoadDuration = m.gauge("dataset_load_duration_milliseconds", "Time spent parsing the data file")

	m.queries = m.counterVec("queries_total", "Total number of view computations by view", "view")
	m.queryLatency = m.histogramVec("query_latency_milliseconds", "View computation latency in milliseconds", "view")
	m.emptyViews = m.counterVec("empty_views_total", "Views that matched no data (unknown site or inverted range)", "view")

	m.chartRenders = m.counterVec("chart_renders_total", "Total number of rendered charts", "chart", "format")
	m.chartRenderLatency = m.histogramVec("chart_render_latency_milliseconds", "Chart rendering latency in milliseconds", "chart")
	m.chartRenderErrors = m.counterVec("chart_render_errors_total", "Chart rendering failures", "chart")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
		"endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Errors by component", "component", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by HTTP endpoint", "endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec("error_latency_milliseconds", "Latency of operations that resulted in errors",
		"component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Current memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Current number of goroutines")
	m.systemGCPauseTime = promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.customLabels,
	})
}

// UpdateDatasetShape publishes record and site counts and payload bounds.
func UpdateDatasetShape(records, sites int, payloadMin, payloadMax float64) {
	globalManager.datasetRecords.Set(float64(records))
	globalManager.datasetSites.Set(float64(sites))
	globalManager.payloadMin.Set(payloadMin)
	globalManager.payloadMax.Set(payloadMax)
}

// RecordDatasetLoadDuration records how long the data file took to parse.
func RecordDatasetLoadDuration(durationMs float64) {
	globalManager.datasetLoadDuration.Set(durationMs)
}

// RecordQuery counts one computation of view and its latency.
func RecordQuery(view string, latencyMs float64) {
	globalManager.queries.WithLabelValues(view).Inc()
	globalManager.queryLatency.WithLabelValues(view).Observe(latencyMs)
}

// RecordEmptyView counts a view that matched no data.
func RecordEmptyView(view string) {
	globalManager.emptyViews.WithLabelValues(view).Inc()
}

// RecordChartRender counts a rendered chart and its latency.
func RecordChartRender(chart, format string, latencyMs float64) {
	globalManager.chartRenders.WithLabelValues(chart, format).Inc()
	globalManager.chartRenderLatency.WithLabelValues(chart).Observe(latencyMs)
}

// RecordChartRenderError counts a chart rendering failure.
func RecordChartRenderError(chart string) {
	globalManager.chartRenderErrors.WithLabelValues(chart).Inc()
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records errors by component and type.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records errors by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records errors by HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records latency for operations that resulted in errors.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage updates the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
