// Package streak implements the consecutive-completion streak state machine.
//
// All date comparisons the streak depends on happen here, never at call
// sites. Per user, the persisted state is (current, longest, lastDate,
// baseline); baseline is the streak value before today's contribution and is
// what makes forced recomputes cheap.
package streak

import (
	"errors"
	"fmt"
	"time"

	"focusfit/internal/metrics"
	"focusfit/internal/models"
	"focusfit/internal/storage"
)

// DayEvaluator produces a single day's completion verdict.
type DayEvaluator interface {
	Evaluate(userID int64, day string) (models.DayVerdict, error)
}

// StateStore reads and writes the persisted per-user streak row.
type StateStore interface {
	GetStreakState(userID int64) (models.StreakState, error)
	SaveStreakState(models.StreakState) error
}

// Engine is the streak state machine. Evaluate is the idempotent entry point
// for passive triggers (login, page load); ForceRecompute is for triggers
// that changed today's completion data. Both run the read-decide-write cycle
// under a per-user lock, and every write carries the optimistic version read
// at the start, so two concurrent triggers can never double-increment.
type Engine struct {
	days  DayEvaluator
	store StateStore
	now   func() time.Time

	locks userLocks
}

func New(days DayEvaluator, store StateStore) *Engine {
	return &Engine{
		days:  days,
		store: store,
		now:   time.Now,
	}
}

// Today returns the current calendar day in the engine's clock.
func (e *Engine) Today() string {
	return e.now().Format(models.DayFormat)
}

// Evaluate runs the idempotent evaluation for the given day (normally today).
// Re-evaluating an already-evaluated day returns the same verdict and leaves
// the persisted state untouched.
func (e *Engine) Evaluate(userID int64, day string) (models.StreakVerdict, error) {
	return e.run(userID, day, false)
}

// ForceRecompute re-derives today's streak contribution after a completion
// record or routine schedule changed. If today was already folded into the
// streak, the stored baseline is restored first so the increment decision is
// made fresh against current completion data.
func (e *Engine) ForceRecompute(userID int64, day string) (models.StreakVerdict, error) {
	return e.run(userID, day, true)
}

// DescribeState returns a read-only snapshot of the stored streak row for
// diagnostics. No side effects.
func (e *Engine) DescribeState(userID int64) (models.StreakState, error) {
	return e.store.GetStreakState(userID)
}

func (e *Engine) run(userID int64, day string, force bool) (models.StreakVerdict, error) {
	trigger := "evaluate"
	if force {
		trigger = "force"
	}

	if _, err := time.Parse(models.DayFormat, day); err != nil {
		metrics.EvaluationsTotal.WithLabelValues(trigger, "error").Inc()
		return models.StreakVerdict{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	// A future day must never be folded in: once persisted as LastDate it
	// would make every later evaluation look backdated until the wall clock
	// catches up. Lexical comparison is safe on the canonical layout.
	if today := e.now().Format(models.DayFormat); day > today {
		metrics.EvaluationsTotal.WithLabelValues(trigger, "error").Inc()
		return models.StreakVerdict{}, fmt.Errorf("day %s is in the future (today is %s)", day, today)
	}

	mu := e.locks.forUser(userID)
	mu.Lock()
	defer mu.Unlock()

	st, err := e.store.GetStreakState(userID)
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues(trigger, "error").Inc()
		return models.StreakVerdict{}, fmt.Errorf("failed to read streak state: %w", err)
	}
	// The state as last persisted; returned unchanged whenever evaluation
	// aborts so a failure never surfaces a half-applied streak.
	persisted := st

	// Backdating check: a previously evaluated day that was left incomplete
	// breaks the streak retroactively, and so does any gap of more than one
	// contiguous day, even when the last evaluated day was complete.
	if st.LastDate != "" && st.LastDate != day {
		gap, err := daysBetween(st.LastDate, day)
		if err != nil {
			metrics.EvaluationsTotal.WithLabelValues(trigger, "error").Inc()
			return staleVerdict(persisted), err
		}
		if gap < 0 {
			metrics.EvaluationsTotal.WithLabelValues(trigger, "error").Inc()
			return staleVerdict(persisted), fmt.Errorf("day %s precedes last evaluated day %s", day, st.LastDate)
		}

		lastVerdict, err := e.days.Evaluate(userID, st.LastDate)
		if err != nil {
			metrics.EvaluationsTotal.WithLabelValues(trigger, "error").Inc()
			return staleVerdict(persisted), fmt.Errorf("failed to evaluate day %s: %w", st.LastDate, err)
		}

		switch {
		case lastVerdict.HasSchedule && !lastVerdict.IsComplete:
			st.Current, st.LastDate, st.Baseline = 0, "", 0
			metrics.ResetsTotal.WithLabelValues("incomplete_day").Inc()
		case gap > 1:
			st.Current, st.LastDate, st.Baseline = 0, "", 0
			metrics.ResetsTotal.WithLabelValues("gap").Inc()
		}
	}

	// Anti-duplication guard: this day is already folded into the streak.
	// Report the current verdict without touching state.
	if st.LastDate == day && !force {
		dv, err := e.days.Evaluate(userID, day)
		if err != nil {
			metrics.EvaluationsTotal.WithLabelValues(trigger, "error").Inc()
			return staleVerdict(persisted), fmt.Errorf("failed to evaluate day %s: %w", day, err)
		}
		metrics.EvaluationsTotal.WithLabelValues(trigger, "already_evaluated").Inc()
		return buildVerdict(st, dv), nil
	}

	// Forced recompute of a day already folded in: restore the baseline so
	// the increment decision below starts from the pre-contribution value.
	// A streak that broke to 0 this day stays 0; restoring its baseline
	// would resurrect a dead streak from a stale memo.
	if force && st.LastDate == day {
		if st.Current != 0 {
			st.Current = st.Baseline
		}
		st.LastDate = previousDay(day)
	}

	dv, err := e.days.Evaluate(userID, day)
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues(trigger, "error").Inc()
		return staleVerdict(persisted), fmt.Errorf("failed to evaluate day %s: %w", day, err)
	}

	base := st.Current
	st.Baseline = base
	st.LastDate = day

	result := "held"
	switch {
	case !dv.HasSchedule:
		// Rest day: mark the day evaluated, leave the count alone.
		result = "rest_day"
	case dv.IsComplete:
		st.Current = base + 1
		if st.Current > st.Longest {
			st.Longest = st.Current
		}
		result = "incremented"
	}

	if err := e.store.SaveStreakState(st); err != nil {
		if errors.Is(err, storage.ErrStaleStreakState) {
			metrics.WriteConflictsTotal.Inc()
		}
		metrics.EvaluationsTotal.WithLabelValues(trigger, "error").Inc()
		return staleVerdict(persisted), fmt.Errorf("failed to persist streak state: %w", err)
	}

	metrics.EvaluationsTotal.WithLabelValues(trigger, result).Inc()
	return buildVerdict(st, dv), nil
}

func buildVerdict(st models.StreakState, dv models.DayVerdict) models.StreakVerdict {
	return models.StreakVerdict{
		Current:        st.Current,
		Longest:        st.Longest,
		Active:         dv.IsComplete,
		IsComplete:     dv.IsComplete,
		RestDay:        !dv.HasSchedule,
		ScheduledCount: dv.ScheduledCount,
		CompletedCount: dv.CompletedCount,
	}
}

// staleVerdict reports the last persisted state when evaluation aborts.
// Callers receiving it alongside an error should treat it as provisional.
func staleVerdict(st models.StreakState) models.StreakVerdict {
	return models.StreakVerdict{
		Current: st.Current,
		Longest: st.Longest,
	}
}
