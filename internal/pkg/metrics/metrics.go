package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts booking rows created, by path.
	BookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skynest",
		Name:      "bookings_created_total",
		Help:      "Booking rows created, labelled by creation path.",
	}, []string{"path"}) // interactive | auto_convert

	// SchedulerRows counts batch-job row outcomes.
	SchedulerRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skynest",
		Name:      "scheduler_rows_total",
		Help:      "Scheduler row outcomes, labelled by job and outcome.",
	}, []string{"job", "outcome"})

	// ConflictsRejected counts creation attempts rejected for overlap.
	ConflictsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "skynest",
		Name:      "booking_conflicts_total",
		Help:      "Booking creation attempts rejected due to room conflicts.",
	})
)
