package cli

import (
	"fmt"
	"time"

	"focusfit/internal/config"
	"focusfit/internal/dayeval"
	"focusfit/internal/models"
	"focusfit/internal/schedule"
	"focusfit/internal/storage"
	"focusfit/internal/streak"
)

type Context struct {
	Store  storage.Provider
	Config config.Config
}

// buildEngine wires the resolver, day evaluator and streak engine on top of
// the loaded store.
func (ctx *Context) buildEngine() (*streak.Engine, *schedule.Resolver) {
	resolver := schedule.New(ctx.Store)
	days := dayeval.New(resolver, ctx.Store)
	return streak.New(days, ctx.Store), resolver
}

// resolveDay turns a CLI date argument into a canonical day, accepting
// "today" and "yesterday" shortcuts.
func resolveDay(arg string) (string, error) {
	switch arg {
	case "", "today":
		return time.Now().Format(models.DayFormat), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format(models.DayFormat), nil
	}
	if _, err := time.Parse(models.DayFormat, arg); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD, 'today' or 'yesterday')", arg)
	}
	if today := time.Now().Format(models.DayFormat); arg > today {
		return "", fmt.Errorf("date %s is in the future", arg)
	}
	return arg, nil
}
