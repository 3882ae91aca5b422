package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cleaningapp",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by customers.",
		},
	)

	bookingCanceled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cleaningapp",
			Name:      "booking_canceled_total",
			Help:      "Count of bookings canceled by customers.",
		},
	)

	statusUpdated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cleaningapp",
			Name:      "booking_status_updated_total",
			Help:      "Count of admin status updates by new status.",
		},
		[]string{"status"},
	)

	paymentSucceeded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cleaningapp",
			Name:      "payment_succeeded_total",
			Help:      "Count of successful Stripe payments seen by the webhook.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingCanceled, statusUpdated, paymentSucceeded)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingCanceled() {
	bookingCanceled.Inc()
}

func IncStatusUpdated(status string) {
	statusUpdated.WithLabelValues(status).Inc()
}

func IncPaymentSucceeded() {
	paymentSucceeded.Inc()
}
