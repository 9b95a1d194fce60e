package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Shopfloor
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	PartsRegisteredTotal      prometheus.Counter
	PartTransitionsTotal      prometheus.CounterVec
	NotificationsEmittedTotal prometheus.CounterVec
	PartsInShop               prometheus.GaugeVec
	SweepDuration             prometheus.Histogram
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopfloor_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopfloor_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "shopfloor_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopfloor_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopfloor_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		PartsRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shopfloor_parts_registered_total",
				Help: "Total parts registered through intake",
			},
		),
		PartTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopfloor_part_transitions_total",
				Help: "Total workflow transitions by from and to status",
			},
			[]string{"from_status", "to_status"},
		),
		NotificationsEmittedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopfloor_notifications_emitted_total",
				Help: "Total advisory notifications emitted by rule",
			},
			[]string{"rule"},
		),
		PartsInShop: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "shopfloor_parts_in_shop",
				Help: "Current number of tracked parts by status",
			},
			[]string{"status"},
		),
		SweepDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shopfloor_sweep_duration_seconds",
				Help:    "Notification sweep execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
	}
}
