package cli

import (
	"fmt"

	"focusfit/internal/scheduler"
	"focusfit/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address." default:""`
}

func (c *ServeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	engine, resolver := ctx.buildEngine()

	sched, err := scheduler.Start(ctx.Store, engine, ctx.Config.EvalInterval)
	if err != nil {
		return fmt.Errorf("failed to start re-evaluation sweep: %w", err)
	}
	defer func() { _ = sched.Shutdown() }()

	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Addr
	}

	return server.New(ctx.Store, engine, resolver).Run(addr)
}
