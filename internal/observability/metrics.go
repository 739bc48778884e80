// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "critica_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "critica_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// SignupRequests counts signup attempts by outcome.
	SignupRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "critica_signup_requests_total",
		Help: "Total number of signup requests by outcome",
	}, []string{"outcome"})

	// TokensIssued counts successfully issued access tokens.
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "critica_tokens_issued_total",
		Help: "Total number of access tokens issued",
	})

	// MailSendFailures counts confirmation-code delivery failures.
	MailSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "critica_mail_send_failures_total",
		Help: "Total number of failed confirmation mail deliveries",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
