// Package metrics provides Prometheus metrics for the game night service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Draw pipeline
	drawsGenerated    prometheus.Counter
	drawFailures      prometheus.Counter
	matchupsScheduled prometheus.Counter
	playersWaitlisted prometheus.Counter
	drawDuration      prometheus.Histogram

	// Rating pipeline
	ratingRuns       prometheus.Counter
	ratingFailures   prometheus.Counter
	playersRated     prometheus.Counter
	ratingDuration   prometheus.Histogram
	duplicateBatches prometheus.Counter

	// Notifications
	notificationsSent  prometheus.Counter
	notificationErrors prometheus.Counter
	notifyQueueSize    prometheus.Gauge
	notifyQueueDropped prometheus.Counter
	notifySendDuration prometheus.Histogram

	// Repository
	eventsTracked  prometheus.Gauge
	playersTracked prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gamenight",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.drawsGenerated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "draw",
		Name: "generated_total",
		Help: "Total number of draws generated successfully.",
	})
	m.drawFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "draw",
		Name: "failures_total",
		Help: "Total number of failed draw generation attempts.",
	})
	m.matchupsScheduled = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "draw",
		Name: "matchups_scheduled_total",
		Help: "Total number of matchups placed on courts.",
	})
	m.playersWaitlisted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "draw",
		Name: "players_waitlisted_total",
		Help: "Total number of players moved to the waitlist by draw generation.",
	})
	m.drawDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "draw",
		Name:    "generation_duration_ms",
		Help:    "Draw generation latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})

	m.ratingRuns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "rating",
		Name: "runs_total",
		Help: "Total number of completed rating runs.",
	})
	m.ratingFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "rating",
		Name: "failures_total",
		Help: "Total number of failed rating runs.",
	})
	m.playersRated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "rating",
		Name: "players_rated_total",
		Help: "Total number of player ratings written.",
	})
	m.ratingDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "rating",
		Name:    "run_duration_ms",
		Help:    "Rating run latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.duplicateBatches = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "rating",
		Name: "duplicate_batches_total",
		Help: "Total number of result batches rejected as already applied.",
	})

	m.notificationsSent = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "notify",
		Name: "sent_total",
		Help: "Total number of notifications delivered.",
	})
	m.notificationErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "notify",
		Name: "errors_total",
		Help: "Total number of notification delivery failures.",
	})
	m.notifyQueueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "notify",
		Name: "queue_size",
		Help: "Current number of queued notifications.",
	})
	m.notifyQueueDropped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "notify",
		Name: "queue_dropped_total",
		Help: "Total number of notifications dropped due to backpressure.",
	})
	m.notifySendDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "notify",
		Name:    "send_duration_ms",
		Help:    "Notification send latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})

	m.eventsTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "repository",
		Name: "events_tracked",
		Help: "Number of events currently stored.",
	})
	m.playersTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "repository",
		Name: "players_tracked",
		Help: "Number of players currently ranked.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "requests_total",
		Help: "Total HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name:    "request_duration_ms",
		Help:    "HTTP request latency in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the registry backing the global manager, for serving
// the metrics endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

func RecordDrawGenerated() { globalManager.drawsGenerated.Inc() }
func RecordDrawFailure()   { globalManager.drawFailures.Inc() }
func RecordMatchupsScheduled(n int) {
	globalManager.matchupsScheduled.Add(float64(n))
}
func RecordPlayersWaitlisted(n int) {
	globalManager.playersWaitlisted.Add(float64(n))
}
func RecordDrawDuration(ms float64) { globalManager.drawDuration.Observe(ms) }

func RecordRatingRun()     { globalManager.ratingRuns.Inc() }
func RecordRatingFailure() { globalManager.ratingFailures.Inc() }
func RecordPlayersRated(n int) {
	globalManager.playersRated.Add(float64(n))
}
func RecordRatingDuration(ms float64) { globalManager.ratingDuration.Observe(ms) }
func RecordDuplicateBatch()           { globalManager.duplicateBatches.Inc() }

func RecordNotificationSent()     { globalManager.notificationsSent.Inc() }
func RecordNotificationError()    { globalManager.notificationErrors.Inc() }
func UpdateNotifyQueueSize(n int) { globalManager.notifyQueueSize.Set(float64(n)) }
func RecordNotificationDropped()  { globalManager.notifyQueueDropped.Inc() }
func RecordNotifySendDuration(ms float64) {
	globalManager.notifySendDuration.Observe(ms)
}

func UpdateEventsTracked(n int)  { globalManager.eventsTracked.Set(float64(n)) }
func UpdatePlayersTracked(n int) { globalManager.playersTracked.Set(float64(n)) }

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}
