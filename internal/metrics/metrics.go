// Package metrics holds the process-wide Prometheus collectors. They are
// registered on the default registry by promauto and served by Handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PartitioningsTotal counts strategy runs by strategy and outcome.
	PartitioningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famtree_partitionings_total",
			Help: "Total number of strategy runs",
		},
		[]string{"strategy", "outcome"},
	)

	// StrategyDuration measures how long a strategy run takes.
	StrategyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "famtree_strategy_duration_seconds",
			Help:    "Duration of strategy runs in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"strategy"},
	)

	// PlanCache counts plan cache lookups by result (hit or miss).
	PlanCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famtree_plan_cache_lookups_total",
			Help: "Plan cache lookups",
		},
		[]string{"result"},
	)

	// ArtifactsTotal counts emitted artifacts by format and outcome.
	ArtifactsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famtree_artifacts_total",
			Help: "Artifacts written by the emitter",
		},
		[]string{"format", "outcome"},
	)

	// GraphPeople tracks the size of the most recently loaded graph.
	GraphPeople = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "famtree_graph_people",
			Help: "People in the most recently loaded family graph",
		},
	)
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
