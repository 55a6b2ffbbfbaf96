package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "donation_service",
			Name:      "payment_intents_total",
			Help:      "Payment intents requested from the processor by outcome",
		},
		[]string{"outcome"},
	)

	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "donation_service",
			Name:      "webhook_events_total",
			Help:      "Verified processor events by type",
		},
		[]string{"type"},
	)

	DuplicateEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "donation_service",
			Name:      "webhook_duplicate_events_total",
			Help:      "Processor events dropped as redeliveries",
		},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "donation_service",
			Name:      "notifications_total",
			Help:      "Chat webhook deliveries by result",
		},
		[]string{"result"},
	)

	NotificationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "donation_service",
			Name:      "notification_duration_seconds",
			Help:      "Chat webhook delivery latency including retries",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
