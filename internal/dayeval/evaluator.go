package dayeval

import (
	"fmt"

	"focusfit/internal/models"
)

// ScheduleSource resolves which items are scheduled for a user on a day.
type ScheduleSource interface {
	ItemsScheduledFor(userID int64, day string) ([]models.RoutineItem, error)
}

// CompletionSource reads the completion ledger for a user and day.
type CompletionSource interface {
	GetCompletions(userID int64, day string) ([]models.CompletionRecord, error)
}

// Evaluator combines the schedule resolver and the completion ledger into a
// single day's completion verdict.
type Evaluator struct {
	schedule    ScheduleSource
	completions CompletionSource
}

func New(schedule ScheduleSource, completions CompletionSource) *Evaluator {
	return &Evaluator{
		schedule:    schedule,
		completions: completions,
	}
}

// Evaluate produces the day verdict for the user. Completion records that do
// not resolve to a currently scheduled item (orphans left behind by routine
// edits) are ignored; only resolvable items count toward either total.
func (e *Evaluator) Evaluate(userID int64, day string) (models.DayVerdict, error) {
	items, err := e.schedule.ItemsScheduledFor(userID, day)
	if err != nil {
		return models.DayVerdict{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	verdict := models.DayVerdict{
		ScheduledCount: len(items),
		HasSchedule:    len(items) > 0,
	}
	if !verdict.HasSchedule {
		return verdict, nil
	}

	scheduled := make(map[string]bool, len(items))
	for _, item := range items {
		scheduled[item.ID] = true
	}

	recs, err := e.completions.GetCompletions(userID, day)
	if err != nil {
		return models.DayVerdict{}, fmt.Errorf("failed to read completions: %w", err)
	}

	for _, rec := range recs {
		if rec.Completed && scheduled[rec.ItemID] {
			verdict.CompletedCount++
		}
	}

	verdict.IsComplete = verdict.CompletedCount >= verdict.ScheduledCount
	return verdict, nil
}
