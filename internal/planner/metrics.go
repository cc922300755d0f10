package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for solvesTotal
const (
	resultOK         = "ok"
	resultInfeasible = "infeasible"
	resultInvalid    = "invalid"
	resultError      = "error"
)

var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trip_planner_solves_total",
		Help: "Trip calculations by strategy and result",
	}, []string{"strategy", "result"})

	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trip_planner_solve_duration_seconds",
		Help:    "Trip calculation duration including distance lookups",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"strategy"})

	statesExpanded = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trip_planner_states_expanded",
		Help:    "Subset states computed per exact search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 13),
	})
)
