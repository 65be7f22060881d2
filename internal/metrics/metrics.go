package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officebook",
			Name:      "bookings_created_total",
			Help:      "Bookings created, by initial status.",
		},
		[]string{"status"},
	)

	paymentWebhooks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officebook",
			Name:      "payment_webhooks_total",
			Help:      "Payment webhook notifications, by target and outcome.",
		},
		[]string{"target", "result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, paymentWebhooks)
	})
}

// IncBookingCreated increments the created-bookings counter.
func IncBookingCreated(status string) {
	bookingsCreated.WithLabelValues(status).Inc()
}

// IncPaymentWebhook increments the webhook counter for a target/result pair.
func IncPaymentWebhook(target, result string) {
	paymentWebhooks.WithLabelValues(target, result).Inc()
}
