package providers

import (
	"studytrack/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	SetRecordsTotal(collection string, count int)
	IncNotificationsTotal(kind string)
	ObserveScanDuration(duration time.Duration)
	SetPendingReminders(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	recordsTotal        *prometheus.GaugeVec
	notificationsTotal  *prometheus.CounterVec
	scanDuration        prometheus.Histogram
	pendingReminders    prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRecordsTotal(collection string, count int) {
	m.recordsTotal.WithLabelValues(collection).Set(float64(count))
}

func (m *MetricsProvider) IncNotificationsTotal(kind string) {
	m.notificationsTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) ObserveScanDuration(duration time.Duration) {
	m.scanDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetPendingReminders(count int) {
	m.pendingReminders.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "studytrack_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studytrack_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "studytrack_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "studytrack_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "studytrack_persistence_duration_seconds",
			Help:    "Duration of store flushes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		recordsTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "studytrack_records_total",
			Help: "Number of records per collection",
		}, []string{"collection"}),

		notificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "studytrack_notifications_total",
			Help: "Notifications emitted by kind",
		}, []string{"kind"}),

		scanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "studytrack_scan_duration_seconds",
			Help:    "Duration of calendar reminder scans in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		pendingReminders: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "studytrack_pending_reminders",
			Help: "Reminders armed and waiting for their trigger instant",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetRecordsTotal(_ string, _ int)                  {}
func (n *noopMetrics) IncNotificationsTotal(_ string)                   {}
func (n *noopMetrics) ObserveScanDuration(_ time.Duration)              {}
func (n *noopMetrics) SetPendingReminders(_ int)                        {}
