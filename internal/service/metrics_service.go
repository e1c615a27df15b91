package service

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/teaching-scheduler-api/internal/models"
)

const metricsNamespace = "scheduler"

// MetricsService owns the Prometheus registry served on /metrics. It covers
// route latency, cache effectiveness and store query timings, and is separate
// from the per-path request counters rendered by RequestMetrics.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	routeDuration *prometheus.HistogramVec
	routeTotal    *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	cacheLatency  prometheus.Histogram
	cacheWrite    prometheus.Histogram
	cacheHitRatio prometheus.Gauge
	queryDuration *prometheus.HistogramVec

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMetricsService builds a registry with the Go runtime and process
// collectors plus the scheduler collectors.
func NewMetricsService() *MetricsService {
	m := &MetricsService{
		registry: prometheus.NewRegistry(),
		routeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "route_duration_seconds",
			Help:      "Latency of HTTP requests by route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		routeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "route_requests_total",
			Help:      "HTTP requests by route template.",
		}, []string{"method", "route", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookups_total",
			Help:      "Dashboard cache lookups by outcome.",
		}, []string{"outcome"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookup_seconds",
			Help:      "Latency of cache lookups.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cache_write_seconds",
			Help:      "Latency of cache writes.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheHitRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hit_ratio",
			Help:      "Share of cache lookups that hit.",
		}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "store_query_seconds",
			Help:      "Duration of store queries by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.routeDuration, m.routeTotal,
		m.cacheLookups, m.cacheLatency, m.cacheWrite, m.cacheHitRatio,
		m.queryDuration,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Handler serves the registry. A nil service answers 503.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// TrackDatabase exposes the store's connection state as a 0/1 gauge.
func (m *MetricsService) TrackDatabase(status func() models.ConnectionState) {
	if m == nil || status == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "database_up",
		Help:      "1 when the database connection is established.",
	}, func() float64 {
		if status() == models.ConnectionConnected {
			return 1
		}
		return 0
	}))
}

// ObserveHTTPRequest records latency for one request to route.
func (m *MetricsService) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.routeDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	m.routeTotal.WithLabelValues(method, route, code).Inc()
}

// RecordCacheOperation counts a lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	outcome := "miss"
	if hit {
		outcome = "hit"
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	m.cacheLookups.WithLabelValues(outcome).Inc()

	hits, misses := m.hits.Load(), m.misses.Load()
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration of a cache write.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records the duration of a store operation.
func (m *MetricsService) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
