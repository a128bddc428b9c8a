// internal/metrics/metrics.go
//
// Prometheus collectors for solver activity, registered on the default
// registry and served by the HTTP server at /metrics.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for SolvesTotal.
const (
	OutcomeSolved          = "solved"
	OutcomeNotFound        = "not_found"
	OutcomeEmptyDictionary = "empty_dictionary"
	OutcomeError           = "error"
)

var (
	SolvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_solves_total",
		Help: "Solve attempts by strategy and outcome",
	}, []string{"strategy", "outcome"})

	SolveRounds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wordle_solve_rounds",
		Help:    "Guesses needed per successful solve",
		Buckets: prometheus.LinearBuckets(1, 1, 12),
	}, []string{"strategy"})

	SolveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wordle_solve_duration_seconds",
		Help:    "Wall time of a single solve attempt",
		Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
	}, []string{"strategy"})

	BenchRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordle_bench_runs_total",
		Help: "Completed benchmark runs",
	})
)

// ObserveSolve records one finished solve attempt.
func ObserveSolve(strategy, outcome string, rounds int, d time.Duration) {
	SolvesTotal.WithLabelValues(strategy, outcome).Inc()
	SolveDuration.WithLabelValues(strategy).Observe(d.Seconds())
	if outcome == OutcomeSolved {
		SolveRounds.WithLabelValues(strategy).Observe(float64(rounds))
	}
}
