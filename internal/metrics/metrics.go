// Package metrics exposes Prometheus counters for the assignment engine.
// The counters track proposal lifecycle volume; request-level metrics come
// from the HTTP middleware, not from here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	ProposalsCreated    prometheus.Counter
	AssignmentsAccepted prometheus.Counter
	AssignmentsRejected prometheus.Counter
	AssignmentsExpired  prometheus.Counter
	StopsCompleted      *prometheus.CounterVec
	OrdersCreated       prometheus.Counter
}

// New creates the engine collectors and registers them on the given
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProposalsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sig_proposals_created_total",
			Help: "Assignment proposals created by the planner.",
		}),
		AssignmentsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sig_assignments_accepted_total",
			Help: "Assignment proposals accepted by couriers.",
		}),
		AssignmentsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sig_assignments_rejected_total",
			Help: "Assignment proposals rejected by couriers or cleanup sweeps.",
		}),
		AssignmentsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sig_assignments_expired_total",
			Help: "Assignment proposals expired by the background sweep.",
		}),
		StopsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sig_stops_completed_total",
			Help: "Stops completed, labeled by outcome.",
		}, []string{"outcome"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sig_orders_created_total",
			Help: "Orders accepted through intake.",
		}),
	}

	reg.MustRegister(
		m.ProposalsCreated,
		m.AssignmentsAccepted,
		m.AssignmentsRejected,
		m.AssignmentsExpired,
		m.StopsCompleted,
		m.OrdersCreated,
	)

	return m
}
