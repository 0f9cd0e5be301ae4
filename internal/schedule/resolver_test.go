package schedule

import (
	"testing"
	"time"

	"focusfit/internal/models"
)

type fakeSource struct {
	routines []models.Routine
	items    map[string][]models.RoutineItem
}

func (f *fakeSource) GetRoutinesForUser(userID int64) ([]models.Routine, error) {
	return f.routines, nil
}

func (f *fakeSource) GetItemsForRoutine(routineID string) ([]models.RoutineItem, error) {
	return f.items[routineID], nil
}

func TestItemsScheduledFor(t *testing.T) {
	// 2025-06-11 is a Wednesday, 2025-06-12 a Thursday.
	source := &fakeSource{
		routines: []models.Routine{
			{ID: "r1", Weekdays: []time.Weekday{time.Monday, time.Wednesday}},
			{ID: "r2", Weekdays: []time.Weekday{time.Thursday}},
			{ID: "r3", Weekdays: nil},
		},
		items: map[string][]models.RoutineItem{
			"r1": {{ID: "i1", RoutineID: "r1"}, {ID: "i2", RoutineID: "r1"}},
			"r2": {{ID: "i3", RoutineID: "r2"}},
			"r3": {{ID: "i4", RoutineID: "r3"}},
		},
	}
	r := New(source)

	items, err := r.ItemsScheduledFor(1, "2025-06-11")
	if err != nil {
		t.Fatalf("ItemsScheduledFor failed: %v", err)
	}
	if len(items) != 2 || items[0].ID != "i1" || items[1].ID != "i2" {
		t.Errorf("Wednesday items = %+v, want i1 and i2", items)
	}

	items, err = r.ItemsScheduledFor(1, "2025-06-12")
	if err != nil {
		t.Fatalf("ItemsScheduledFor failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "i3" {
		t.Errorf("Thursday items = %+v, want i3 only", items)
	}
}

func TestItemsScheduledForNoRoutines(t *testing.T) {
	r := New(&fakeSource{})
	items, err := r.ItemsScheduledFor(1, "2025-06-11")
	if err != nil {
		t.Fatalf("ItemsScheduledFor failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty set, got %+v", items)
	}
}

func TestItemsScheduledForInvalidDay(t *testing.T) {
	r := New(&fakeSource{})
	if _, err := r.ItemsScheduledFor(1, "June 11"); err == nil {
		t.Error("expected error for malformed day")
	}
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{input: "mon,wed,fri", want: []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
		{input: "Monday, Saturday", want: []time.Weekday{time.Monday, time.Saturday}},
		{input: "0,6", want: []time.Weekday{time.Sunday, time.Saturday}},
		{input: "sun,, tue", want: []time.Weekday{time.Sunday, time.Tuesday}},
		{input: "7", wantErr: true},
		{input: "someday", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseWeekdays(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseWeekdays(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWeekdays(%q) failed: %v", tt.input, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}

func TestFormatWeekdays(t *testing.T) {
	if got := FormatWeekdays(nil); got != "none" {
		t.Errorf("FormatWeekdays(nil) = %q, want %q", got, "none")
	}
	if got := FormatWeekdays([]time.Weekday{time.Monday, time.Friday}); got != "Mon,Fri" {
		t.Errorf("FormatWeekdays = %q, want %q", got, "Mon,Fri")
	}
}
