package observability

import (
	"context"

	"github.com/aretw0/balance/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine counters.
type Metrics struct {
	PuzzlesLoaded *prometheus.CounterVec
	Operations    *prometheus.CounterVec
	Rejections    *prometheus.CounterVec
	Undos         prometheus.Counter
	Hints         *prometheus.CounterVec
	Solved        *prometheus.CounterVec
	SolveSteps    prometheus.Histogram
}

// NewMetrics creates the engine metrics and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PuzzlesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "balance_puzzles_loaded_total",
			Help: "Total number of puzzles loaded into sessions",
		}, []string{"puzzle_id"}),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "balance_operations_applied_total",
			Help: "Total number of operations applied to both sides",
		}, []string{"operation"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "balance_operations_rejected_total",
			Help: "Total number of rejected operations by error kind",
		}, []string{"operation", "kind"}),
		Undos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "balance_undo_total",
			Help: "Total number of undone steps",
		}),
		Hints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "balance_hints_total",
			Help: "Total number of hints requested by hint kind",
		}, []string{"kind"}),
		Solved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "balance_puzzles_solved_total",
			Help: "Total number of puzzles solved",
		}, []string{"puzzle_id"}),
		SolveSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "balance_solve_steps",
			Help:    "Number of history steps on the way to a solution",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.PuzzlesLoaded, m.Operations, m.Rejections, m.Undos, m.Hints, m.Solved, m.SolveSteps)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPuzzleLoaded: func(_ context.Context, e *domain.PuzzleEvent) {
			m.PuzzlesLoaded.WithLabelValues(e.PuzzleID).Inc()
		},
		OnApply: func(_ context.Context, e *domain.OperationEvent) {
			m.Operations.WithLabelValues(string(e.Operation)).Inc()
		},
		OnReject: func(_ context.Context, e *domain.OperationEvent) {
			m.Rejections.WithLabelValues(string(e.Operation), domain.ErrorKindName(e.Err)).Inc()
		},
		OnUndo: func(_ context.Context, _ *domain.OperationEvent) {
			m.Undos.Inc()
		},
		OnSolved: func(_ context.Context, e *domain.SolvedEvent) {
			m.Solved.WithLabelValues(e.PuzzleID).Inc()
			m.SolveSteps.Observe(float64(e.Steps))
		},
		OnHint: func(_ context.Context, e *domain.HintEvent) {
			m.Hints.WithLabelValues(string(e.Hint.Kind)).Inc()
		},
	}
}
