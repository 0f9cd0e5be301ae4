package schedule

import (
	"fmt"
	"time"

	"focusfit/internal/models"
)

// RoutineSource is the slice of storage the resolver reads from.
type RoutineSource interface {
	GetRoutinesForUser(userID int64) ([]models.Routine, error)
	GetItemsForRoutine(routineID string) ([]models.RoutineItem, error)
}

// Resolver maps (user, calendar day) to the set of routine items scheduled
// for that day. Pure read, no side effects. A user with no routines and a
// user whose routines skip the day both resolve to an empty set.
type Resolver struct {
	store RoutineSource
}

func New(store RoutineSource) *Resolver {
	return &Resolver{store: store}
}

// ItemsScheduledFor returns all items belonging to routines of the user whose
// weekday set contains the given day's weekday. Day is YYYY-MM-DD.
func (r *Resolver) ItemsScheduledFor(userID int64, day string) ([]models.RoutineItem, error) {
	date, err := time.Parse(models.DayFormat, day)
	if err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", day, err)
	}
	weekday := date.Weekday()

	routines, err := r.store.GetRoutinesForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read routines: %w", err)
	}

	var items []models.RoutineItem
	for _, routine := range routines {
		if !routine.ScheduledOn(weekday) {
			continue
		}
		routineItems, err := r.store.GetItemsForRoutine(routine.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read items for routine %s: %w", routine.ID, err)
		}
		items = append(items, routineItems...)
	}

	return items, nil
}
