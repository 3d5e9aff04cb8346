package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pms_reservations_created_total",
		Help: "Reservations successfully created.",
	})

	ReservationsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pms_reservations_cancelled_total",
		Help: "Reservations cancelled.",
	})

	// Conflicts counts both plain no-availability and allocation races
	// lost at commit time; callers cannot tell them apart and neither
	// does this counter.
	Conflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pms_reservation_conflicts_total",
		Help: "Create attempts rejected because no room was available.",
	})
)
