// Package scheduler runs the periodic re-evaluation sweep. It is an external
// trigger like any other: it calls the same engine entry point that logins
// and page loads do, so a user whose streak lapsed is caught even if they
// never open the app again.
package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"focusfit/internal/models"
)

// UserSource lists the users to sweep.
type UserSource interface {
	ListUserIDs() ([]int64, error)
}

// Evaluator is the streak engine surface the sweep drives.
type Evaluator interface {
	Evaluate(userID int64, day string) (models.StreakVerdict, error)
	Today() string
}

// Start begins a periodic sweep that passively evaluates every user's streak.
// The returned scheduler should be shut down by the caller on exit.
func Start(users UserSource, engine Evaluator, interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { sweep(users, engine) }),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

func sweep(users UserSource, engine Evaluator) {
	ids, err := users.ListUserIDs()
	if err != nil {
		slog.Error("failed to list users for streak sweep", "error", err)
		return
	}

	today := engine.Today()
	for _, id := range ids {
		if _, err := engine.Evaluate(id, today); err != nil {
			slog.Error("streak sweep evaluation failed", "user", id, "error", err)
		}
	}
}
