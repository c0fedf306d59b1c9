// Package metrics provides Prometheus metrics for the tastingd service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Core business metrics
	submissionsAccepted prometheus.Counter
	documentsRecovered  prometheus.Counter
	eventsCreated       prometheus.Counter
	entriesAppended     prometheus.Counter
	entriesReplaced     prometheus.Counter

	// Remote API metrics
	remoteLatency *prometheus.HistogramVec
	remoteErrors  *prometheus.CounterVec

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

// defaultManager is the global metrics instance.
var defaultManager *Manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	defaultManager = NewManager()
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tastingd",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.submissionsAccepted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_accepted_total",
		Help:      "Tasting note submissions written back successfully.",
	})
	m.documentsRecovered = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "documents_recovered_total",
		Help:      "Stored documents discarded as unparsable and rebuilt empty.",
	})
	m.eventsCreated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_created_total",
		Help:      "Tasting events created by merges.",
	})
	m.entriesAppended = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_appended_total",
		Help:      "Wine entries appended by merges.",
	})
	m.entriesReplaced = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_replaced_total",
		Help:      "Wine entries replaced in place by merges.",
	})

	m.remoteLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "remote_request_duration_ms",
		Help:      "Admin API round-trip latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})
	m.remoteErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "remote_errors_total",
		Help:      "Admin API calls that failed.",
	}, []string{"operation"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
	m.errorsByEndpoint = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by endpoint, method and error type.",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordSubmissionAccepted counts a fully written submission.
func RecordSubmissionAccepted() {
	defaultManager.submissionsAccepted.Inc()
}

// RecordStoreRecovered counts a stored document discarded as unparsable.
func RecordStoreRecovered() {
	defaultManager.documentsRecovered.Inc()
}

// RecordEventCreated counts a merge that created a new tasting event.
func RecordEventCreated() {
	defaultManager.eventsCreated.Inc()
}

// RecordEntryAppended counts a merge that appended a new wine entry.
func RecordEntryAppended() {
	defaultManager.entriesAppended.Inc()
}

// RecordEntryReplaced counts a merge that replaced an existing wine entry.
func RecordEntryReplaced() {
	defaultManager.entriesReplaced.Inc()
}

// RecordRemoteLatency records one Admin API round-trip duration.
func RecordRemoteLatency(operation string, latencyMs float64) {
	defaultManager.remoteLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordRemoteError counts one failed Admin API call.
func RecordRemoteError(operation string) {
	defaultManager.remoteErrors.WithLabelValues(operation).Inc()
}

// RecordHTTPRequest records basic HTTP request metrics.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	defaultManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	defaultManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error response by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	defaultManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return defaultManager.registry
}
