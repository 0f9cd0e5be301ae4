package cli

import (
	"encoding/json"
	"fmt"

	"focusfit/internal/dayeval"
	"focusfit/internal/schedule"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show database path."`
	Streak *DebugStreakCmd `cmd:"" help:"Dump a user's stored streak state as JSON."`
	Day    *DebugDayCmd    `cmd:"" help:"Dump a user's day verdict as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugStreakCmd struct {
	User int64 `arg:"" help:"User ID to inspect."`
}

func (cmd *DebugStreakCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	engine, _ := ctx.buildEngine()

	// Read-only snapshot; does not advance the streak.
	state, err := engine.DescribeState(cmd.User)
	if err != nil {
		return fmt.Errorf("failed to read streak state: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDayCmd struct {
	User int64  `arg:"" help:"User ID to inspect."`
	Date string `arg:"" optional:"" help:"Day to inspect (YYYY-MM-DD or 'today')." default:"today"`
}

func (cmd *DebugDayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	day, err := resolveDay(cmd.Date)
	if err != nil {
		return err
	}

	resolver := schedule.New(ctx.Store)
	verdict, err := dayeval.New(resolver, ctx.Store).Evaluate(cmd.User, day)
	if err != nil {
		return fmt.Errorf("failed to evaluate day: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
