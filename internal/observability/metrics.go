package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "carpool", Name: "fare_quotes_total", Help: "Total fare quotes computed"})

	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "carpool", Name: "ride_searches_total", Help: "Total nearby-ride searches"})

	ConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "carpool", Name: "booking_confirmations_total", Help: "Booking confirmation attempts by outcome"},
		[]string{"outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carpool",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Confirmation outcome labels.
const (
	OutcomeConfirmed  = "confirmed"
	OutcomeNoCapacity = "no_capacity"
	OutcomeNotPending = "not_pending"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)
