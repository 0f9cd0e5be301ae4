package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for streak evaluation outcomes. Labels:
//   - trigger: "evaluate" (passive) or "force" (completion/routine change)
//   - result: "incremented", "held", "rest_day", "already_evaluated", "error"
var (
	EvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "focusfit_streak_evaluations_total",
		Help: "Streak evaluations by trigger kind and outcome.",
	}, []string{"trigger", "result"})

	ResetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "focusfit_streak_resets_total",
		Help: "Streak resets by cause.",
	}, []string{"cause"})

	WriteConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "focusfit_streak_write_conflicts_total",
		Help: "Streak state writes rejected by the optimistic version check.",
	})
)
