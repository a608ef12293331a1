package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the booking lifecycle. Transitions are labelled by the
// target status so confirmations, completions and cancellations can be
// graphed separately.
var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Number of bookings created.",
	})

	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_transitions_total",
		Help: "Number of successful booking status transitions.",
	}, []string{"target"})

	BookingTransitionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_transition_failures_total",
		Help: "Number of rejected booking status transitions.",
	}, []string{"reason"})
)
