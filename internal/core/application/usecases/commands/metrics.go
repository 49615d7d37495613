package commands

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "munchies_order_transitions_applied_total",
		Help: "Order status transitions committed, by target status.",
	}, []string{"to"})

	transitionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "munchies_order_transitions_rejected_total",
		Help: "Order status transitions rejected by the state machine, by requested status.",
	}, []string{"to"})
)
