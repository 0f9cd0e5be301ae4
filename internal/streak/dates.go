package streak

import (
	"fmt"
	"time"

	"focusfit/internal/models"
)

// daysBetween returns the calendar-day distance from one day to another.
// Negative when to precedes from.
func daysBetween(from, to string) (int, error) {
	fromDate, err := time.Parse(models.DayFormat, from)
	if err != nil {
		return 0, fmt.Errorf("invalid day %q: %w", from, err)
	}
	toDate, err := time.Parse(models.DayFormat, to)
	if err != nil {
		return 0, fmt.Errorf("invalid day %q: %w", to, err)
	}
	return int(toDate.Sub(fromDate).Hours() / 24), nil
}

// previousDay returns the calendar day before the given one. The argument is
// validated by the caller.
func previousDay(day string) string {
	date, _ := time.Parse(models.DayFormat, day)
	return date.AddDate(0, 0, -1).Format(models.DayFormat)
}
