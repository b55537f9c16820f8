package notify

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery outcomes used as the "outcome" label.
const (
	outcomeSent     = "sent"
	outcomeFailed   = "failed"
	outcomeOpen     = "circuit_open"
	outcomeShutdown = "shutdown"
)

var (
	deliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_update_notifications_total",
			Help: "Update announcements by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	deliveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_update_notification_duration_seconds",
			Help:    "Webhook round-trip time for attempted announcements",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"channel"},
	)

	enabledChannels = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_notification_channels_enabled",
			Help: "Notification channels configured as enabled",
		},
	)
)

// recordDelivery counts one outcome. Only attempted sends observe a duration.
func recordDelivery(channel, outcome string, took time.Duration) {
	deliveriesTotal.WithLabelValues(channel, outcome).Inc()
	if outcome == outcomeSent || outcome == outcomeFailed {
		deliveryDuration.WithLabelValues(channel).Observe(took.Seconds())
	}
}
