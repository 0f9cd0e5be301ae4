package models

import "time"

// DayFormat is the canonical calendar-day layout used everywhere a day is
// stored or compared.
const DayFormat = "2006-01-02"

// Routine groups items that recur on a fixed set of weekdays
type Routine struct {
	ID        string         `json:"id"`
	UserID    int64          `json:"user_id"`
	Name      string         `json:"name"`
	Weekdays  []time.Weekday `json:"weekdays"`
	CreatedAt time.Time      `json:"created_at"`
}

// ScheduledOn reports whether the routine recurs on the given weekday.
func (r Routine) ScheduledOn(day time.Weekday) bool {
	for _, wd := range r.Weekdays {
		if wd == day {
			return true
		}
	}
	return false
}

// RoutineItem is the atomic unit of "something to do". An item belongs to
// exactly one routine.
type RoutineItem struct {
	ID        string `json:"id"`
	RoutineID string `json:"routine_id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
}

// CompletionRecord is one (user, item, day) completion flag. Records are
// created lazily on first toggle or materialized when a day's checklist is
// first viewed; they are never deleted except through the item cascade.
type CompletionRecord struct {
	UserID      int64      `json:"user_id"`
	ItemID      string     `json:"item_id"`
	Day         string     `json:"day"` // YYYY-MM-DD format
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
