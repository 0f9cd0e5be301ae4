package dayeval

import (
	"errors"
	"testing"

	"focusfit/internal/models"
)

type fakeSchedule struct {
	items []models.RoutineItem
	err   error
}

func (f *fakeSchedule) ItemsScheduledFor(userID int64, day string) ([]models.RoutineItem, error) {
	return f.items, f.err
}

type fakeCompletions struct {
	recs []models.CompletionRecord
	err  error
}

func (f *fakeCompletions) GetCompletions(userID int64, day string) ([]models.CompletionRecord, error) {
	return f.recs, f.err
}

func items(ids ...string) []models.RoutineItem {
	out := make([]models.RoutineItem, len(ids))
	for i, id := range ids {
		out[i] = models.RoutineItem{ID: id}
	}
	return out
}

func completions(done map[string]bool) []models.CompletionRecord {
	var recs []models.CompletionRecord
	for id, completed := range done {
		recs = append(recs, models.CompletionRecord{ItemID: id, Completed: completed})
	}
	return recs
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		scheduled []models.RoutineItem
		recs      []models.CompletionRecord
		want      models.DayVerdict
	}{
		{
			name: "no schedule",
			want: models.DayVerdict{},
		},
		{
			name:      "no schedule ignores stray completions",
			recs:      completions(map[string]bool{"x": true}),
			want:      models.DayVerdict{},
			scheduled: nil,
		},
		{
			name:      "nothing completed",
			scheduled: items("a", "b"),
			want:      models.DayVerdict{ScheduledCount: 2, HasSchedule: true},
		},
		{
			name:      "partially completed",
			scheduled: items("a", "b", "c"),
			recs:      completions(map[string]bool{"a": true, "b": false}),
			want:      models.DayVerdict{ScheduledCount: 3, CompletedCount: 1, HasSchedule: true},
		},
		{
			name:      "fully completed",
			scheduled: items("a", "b"),
			recs:      completions(map[string]bool{"a": true, "b": true}),
			want:      models.DayVerdict{ScheduledCount: 2, CompletedCount: 2, HasSchedule: true, IsComplete: true},
		},
		{
			name:      "orphan completions do not count",
			scheduled: items("a"),
			recs:      completions(map[string]bool{"gone-1": true, "gone-2": true}),
			want:      models.DayVerdict{ScheduledCount: 1, HasSchedule: true},
		},
		{
			name:      "orphans do not block completion either",
			scheduled: items("a"),
			recs:      completions(map[string]bool{"a": true, "gone": false}),
			want:      models.DayVerdict{ScheduledCount: 1, CompletedCount: 1, HasSchedule: true, IsComplete: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(&fakeSchedule{items: tt.scheduled}, &fakeCompletions{recs: tt.recs})
			got, err := e.Evaluate(1, "2025-06-11")
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEvaluateScheduleError(t *testing.T) {
	e := New(&fakeSchedule{err: errors.New("boom")}, &fakeCompletions{})
	if _, err := e.Evaluate(1, "2025-06-11"); err == nil {
		t.Error("expected error when schedule resolution fails")
	}
}

func TestEvaluateCompletionError(t *testing.T) {
	e := New(&fakeSchedule{items: items("a")}, &fakeCompletions{err: errors.New("boom")})
	if _, err := e.Evaluate(1, "2025-06-11"); err == nil {
		t.Error("expected error when completion read fails")
	}
}
