package models

// StreakState is the persisted per-user streak row. It is owned by the streak
// engine and mutated only through its evaluation entry points.
//
// Baseline holds the value Current had immediately before the most recent
// evaluation of LastDate. It is the minimal memo needed to re-derive today's
// contribution on a forced recompute without rescanning completion history.
type StreakState struct {
	UserID   int64  `json:"user_id"`
	Current  int    `json:"current_streak"`
	Longest  int    `json:"longest_streak"`
	LastDate string `json:"last_evaluated_date,omitempty"` // YYYY-MM-DD, empty if never evaluated
	Baseline int    `json:"baseline_before_today"`

	// Version is the optimistic-concurrency counter on the stored row.
	// Writes carrying a stale version are rejected by storage.
	Version int64 `json:"-"`
}

// DayVerdict is a single day's completion verdict.
//
// A day with zero scheduled items is distinguished by HasSchedule=false so
// callers can apply rest-day semantics; it is never IsComplete.
type DayVerdict struct {
	ScheduledCount int  `json:"scheduled_count"`
	CompletedCount int  `json:"completed_count"`
	HasSchedule    bool `json:"has_schedule"`
	IsComplete     bool `json:"is_complete"`
}

// StreakVerdict is what the streak engine returns to its triggers.
type StreakVerdict struct {
	Current        int  `json:"current_streak"`
	Longest        int  `json:"longest_streak"`
	Active         bool `json:"active"`
	IsComplete     bool `json:"is_complete"`
	RestDay        bool `json:"rest_day"`
	ScheduledCount int  `json:"scheduled_count"`
	CompletedCount int  `json:"completed_count"`
}
