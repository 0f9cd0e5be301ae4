package cli

import (
	"fmt"

	"github.com/google/uuid"

	"focusfit/internal/models"
	"focusfit/internal/schedule"
)

type UserAddCmd struct {
	Name string `arg:"" help:"Display name for the user."`
}

func (c *UserAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	id, err := ctx.Store.AddUser(c.Name)
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	fmt.Printf("Added user %d (%s)\n", id, c.Name)
	return nil
}

type RoutineAddCmd struct {
	User  int64    `required:"" help:"Owner user ID."`
	Name  string   `arg:"" help:"Routine name."`
	Days  string   `required:"" help:"Scheduled weekdays, e.g. 'mon,wed,fri'."`
	Items []string `help:"Item names to create inside the routine."`
}

func (c *RoutineAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	weekdays, err := schedule.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	routine := models.Routine{
		ID:       uuid.NewString(),
		UserID:   c.User,
		Name:     c.Name,
		Weekdays: weekdays,
	}
	if err := ctx.Store.AddRoutine(routine); err != nil {
		return fmt.Errorf("failed to add routine: %w", err)
	}

	for i, name := range c.Items {
		item := models.RoutineItem{
			ID:        uuid.NewString(),
			RoutineID: routine.ID,
			Name:      name,
			Position:  i,
		}
		if err := ctx.Store.AddItem(item); err != nil {
			return fmt.Errorf("failed to add item %q: %w", name, err)
		}
	}

	// A schedule change can flip whether today has routines at all.
	engine, _ := ctx.buildEngine()
	if _, err := engine.ForceRecompute(c.User, engine.Today()); err != nil {
		fmt.Printf("Warning: streak recompute failed: %v\n", err)
	}

	fmt.Printf("Added routine %s (%s on %s) with %d items\n",
		routine.ID, routine.Name, schedule.FormatWeekdays(weekdays), len(c.Items))
	return nil
}

type ItemAddCmd struct {
	Routine  string `required:"" help:"Routine ID the item belongs to."`
	Name     string `arg:"" help:"Item name."`
	Position int    `help:"Sort position within the routine."`
}

func (c *ItemAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	routine, err := ctx.Store.GetRoutine(c.Routine)
	if err != nil {
		return fmt.Errorf("routine not found: %s", c.Routine)
	}

	item := models.RoutineItem{
		ID:        uuid.NewString(),
		RoutineID: routine.ID,
		Name:      c.Name,
		Position:  c.Position,
	}
	if err := ctx.Store.AddItem(item); err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	engine, _ := ctx.buildEngine()
	if _, err := engine.ForceRecompute(routine.UserID, engine.Today()); err != nil {
		fmt.Printf("Warning: streak recompute failed: %v\n", err)
	}

	fmt.Printf("Added item %s (%s)\n", item.ID, item.Name)
	return nil
}
