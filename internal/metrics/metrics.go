// Package metrics держит prometheus-метрики сайта и HTTP-мидлварь для них.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freightsite_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "freightsite_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	TrackingLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freightsite_tracking_lookups_total",
			Help: "Tracking lookups by outcome",
		},
		[]string{"result"},
	)

	ShipmentCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freightsite_shipment_cache_total",
			Help: "Shipment cache hits, misses and invalidations",
		},
		[]string{"result"},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freightsite_submissions_total",
			Help: "Form submissions by kind and outcome",
		},
		[]string{"kind", "result"},
	)

	KafkaMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freightsite_kafka_messages_total",
			Help: "Consumed kafka messages by topic and outcome",
		},
		[]string{"topic", "result"},
	)

	RateLimitExceededTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freightsite_rate_limit_exceeded_total",
			Help: "Total number of submissions rejected due to rate limiting",
		},
		[]string{"method", "route"},
	)
)

// Значения лейбла result.
const (
	ResultFound       = "found"
	ResultNotFound    = "not_found"
	ResultEmpty       = "empty"
	ResultError       = "error"
	ResultHit         = "hit"
	ResultMiss        = "miss"
	ResultInvalidated = "invalidated"
	ResultCreated     = "created"
	ResultInvalid     = "invalid"
	ResultFailed      = "failed"
	ResultProcessed   = "processed"
)
