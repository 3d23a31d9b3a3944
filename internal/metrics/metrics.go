// Package metrics exposes Prometheus collectors for HTTP traffic and the
// payment reconciliation path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "loanlink"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// source is webhook or poll; outcome is created, replayed or failed
	MaterializationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "materializations_total",
			Help:      "Paid checkout sessions turned into application and payment records",
		},
		[]string{"source", "outcome"},
	)

	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "webhook_events_total",
			Help:      "Processor webhook deliveries by event type and result",
		},
		[]string{"type", "result"},
	)

	SuspensionsCleared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "suspensions_cleared_total",
			Help:      "Expired suspensions cleared, by path (lazy or sweep)",
		},
		[]string{"path"},
	)
)

const (
	SourceWebhook = "webhook"
	SourcePoll    = "poll"

	OutcomeCreated  = "created"
	OutcomeReplayed = "replayed"
	OutcomeFailed   = "failed"
)

func ObserveMaterialization(source, outcome string) {
	MaterializationsTotal.WithLabelValues(source, outcome).Inc()
}

func ObserveWebhook(eventType, result string) {
	WebhookEventsTotal.WithLabelValues(eventType, result).Inc()
}

func ObserveSuspensionsCleared(path string, n int64) {
	if n > 0 {
		SuspensionsCleared.WithLabelValues(path).Add(float64(n))
	}
}
