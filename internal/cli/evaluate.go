package cli

import (
	"encoding/json"
	"fmt"
)

type EvaluateCmd struct {
	User  int64  `arg:"" help:"User ID to evaluate."`
	Date  string `arg:"" optional:"" help:"Day to evaluate (YYYY-MM-DD or 'today')." default:"today"`
	Force bool   `help:"Force a recompute even if the day was already evaluated."`
}

func (c *EvaluateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	engine, _ := ctx.buildEngine()

	evaluate := engine.Evaluate
	if c.Force {
		evaluate = engine.ForceRecompute
	}
	verdict, err := evaluate(c.User, day)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
