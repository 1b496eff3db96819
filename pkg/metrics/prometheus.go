// Package metrics provides Prometheus metrics for the roasboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Load pipeline
	loadsTotal      *prometheus.CounterVec
	loadDuration    prometheus.Histogram
	sourceRows      *prometheus.GaugeVec
	rejectedRows    *prometheus.CounterVec
	summaryRows     prometheus.Gauge
	undefinedROAS   prometheus.Gauge
	lastLoadUnix    prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheEntries    prometheus.Gauge
	cacheEvictions  prometheus.Counter

	// Query side
	filterResultRows prometheus.Histogram
	exportsTotal     prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// Process
	memoryBytes prometheus.Gauge
	goroutines  prometheus.Gauge
	gcPauseMs   prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by package-level helpers

// customRegistry keeps the exposition free of default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "roasboard",
		subsystem:        "campaign",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen
	auto := promauto.With(m.registry)

	m.loadsTotal = auto.NewCounterVec(
		m.counterOpts("loads_total", "Source loads by outcome (ok, missing_source, schema_mismatch, invalid_input)"),
		[]string{"outcome"},
	)
	m.loadDuration = auto.NewHistogram(
		m.histogramOpts("load_duration_milliseconds", "Time to read the sources and build the summary table", m.histogramBuckets),
	)
	m.sourceRows = auto.NewGaugeVec(
		m.gaugeOpts("source_rows", "Rows read from each source file in the last load"),
		[]string{"source"},
	)
	m.rejectedRows = auto.NewCounterVec(
		m.counterOpts("rejected_rows_total", "Malformed rows skipped in relaxed mode"),
		[]string{"source"},
	)
	m.summaryRows = auto.NewGauge(
		m.gaugeOpts("summary_rows", "Influencers in the current summary table"),
	)
	m.undefinedROAS = auto.NewGauge(
		m.gaugeOpts("undefined_roas_rows", "Summary rows whose payout is missing or zero"),
	)
	m.lastLoadUnix = auto.NewGauge(
		m.gaugeOpts("last_load_unix_seconds", "Unix time of the last successful load"),
	)
	m.cacheHits = auto.NewCounter(m.counterOpts("cache_hits_total", "Summary lookups served from the cache"))
	m.cacheMisses = auto.NewCounter(m.counterOpts("cache_misses_total", "Summary lookups that required a rebuild"))
	m.cacheEntries = auto.NewGauge(m.gaugeOpts("cache_entries", "Summary snapshots currently cached"))
	m.cacheEvictions = auto.NewCounter(m.counterOpts("cache_evictions_total", "Snapshots evicted from the cache"))

	m.filterResultRows = auto.NewHistogram(
		m.histogramOpts("filter_result_rows", "Rows returned by a filter pass", prometheus.ExponentialBuckets(1, 2, 12)),
	)
	m.exportsTotal = auto.NewCounter(m.counterOpts("exports_total", "CSV exports served"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and kind"),
		[]string{"component", "kind"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "HTTP errors by endpoint, method and kind"),
		[]string{"endpoint", "method", "kind"},
	)

	m.memoryBytes = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Bytes of allocated heap objects"))
	m.goroutines = auto.NewGauge(m.gaugeOpts("system_goroutines", "Number of goroutines"))
	m.gcPauseMs = auto.NewGauge(m.gaugeOpts("system_gc_pause_milliseconds", "Average GC pause in milliseconds"))
}

// RecordLoad counts a load attempt by outcome and observes its latency.
func RecordLoad(outcome string, latencyMs float64) {
	globalManager.loadsTotal.WithLabelValues(outcome).Inc()
	globalManager.loadDuration.Observe(latencyMs)
}

// UpdateSourceRows sets the row count read from a source file.
func UpdateSourceRows(source string, rows int) {
	globalManager.sourceRows.WithLabelValues(source).Set(float64(rows))
}

// RecordRejectedRows adds n skipped rows for a source.
func RecordRejectedRows(source string, n int) {
	if n <= 0 {
		return
	}
	globalManager.rejectedRows.WithLabelValues(source).Add(float64(n))
}

// UpdateSummary records the size of a freshly built summary table.
func UpdateSummary(rows, undefined int, loadedAtUnix int64) {
	globalManager.summaryRows.Set(float64(rows))
	globalManager.undefinedROAS.Set(float64(undefined))
	globalManager.lastLoadUnix.Set(float64(loadedAtUnix))
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() { globalManager.cacheHits.Inc() }

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

// UpdateCacheEntries sets the number of cached snapshots.
func UpdateCacheEntries(n int) { globalManager.cacheEntries.Set(float64(n)) }

// RecordCacheEviction increments the eviction counter.
func RecordCacheEviction() { globalManager.cacheEvictions.Inc() }

// RecordFilterResult observes the size of a filtered view.
func RecordFilterResult(rows int) { globalManager.filterResultRows.Observe(float64(rows)) }

// RecordExport increments the export counter.
func RecordExport() { globalManager.exportsTotal.Inc() }

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes HTTP request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent counts an error raised inside a component.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

// RecordErrorByEndpoint counts an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, kind string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, kind).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.memoryBytes.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(n int) { globalManager.goroutines.Set(float64(n)) }

// RecordSystemGCPauseTime sets the average GC pause.
func RecordSystemGCPauseTime(ms float64) { globalManager.gcPauseMs.Set(ms) }

// GetRegistry returns the registry backing the package-level helpers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
