package service

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "student_api"

// MetricsService owns the Prometheus registry served on /metrics.
// Every method is a no-op on a nil receiver so tests can skip instrumentation.
type MetricsService struct {
	registry      *prometheus.Registry
	requests      *prometheus.HistogramVec
	cacheLookups  *prometheus.HistogramVec
	cacheWrites   prometheus.Histogram
	logins        *prometheus.CounterVec
	notifications *prometheus.CounterVec
	exports       *prometheus.CounterVec
}

func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &MetricsService{
		registry: registry,
		requests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		cacheLookups: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookup_seconds",
			Help:      "Redis lookups by key family and result.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"family", "result"}),
		cacheWrites: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cache_write_seconds",
			Help:      "Redis write latency.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "logins_total",
			Help:      "Login attempts by account kind and outcome.",
		}, []string{"kind", "outcome"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "notifications_total",
			Help:      "Student emails by kind and outcome.",
		}, []string{"kind", "outcome"}),
		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "exports_total",
			Help:      "Rendered export files by dataset and format.",
		}, []string{"dataset", "format"}),
	}
}

func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one request. path must be a route template, never a raw URL.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

// ObserveCacheLookup records a lookup under the key's family, the text before the first ':'.
func (m *MetricsService) ObserveCacheLookup(key string, hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	family, _, _ := strings.Cut(key, ":")
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(family, result).Observe(duration.Seconds())
}

func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrites.Observe(duration.Seconds())
}

// RecordLogin counts a login attempt. kind is "staff" or "student".
func (m *MetricsService) RecordLogin(kind string, success bool) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(kind, outcome(success)).Inc()
}

func (m *MetricsService) RecordNotification(kind string, success bool) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind, outcome(success)).Inc()
}

func (m *MetricsService) RecordExport(dataset, format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(dataset, format).Inc()
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
