package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"focusfit/internal/cli"
	"focusfit/internal/config"
	"focusfit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Database file path (overrides FOCUSFIT_DB)." type:"path"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize focusfit storage."`
	Serve    cli.ServeCmd    `cmd:"" help:"Run the HTTP API and the periodic streak sweep."`
	Evaluate cli.EvaluateCmd `cmd:"" help:"Evaluate a user's streak for a day."`
	User     struct {
		Add cli.UserAddCmd `cmd:"" help:"Add a user."`
	} `cmd:"" help:"Manage users."`
	Routine struct {
		Add cli.RoutineAddCmd `cmd:"" help:"Add a routine with a weekday schedule."`
	} `cmd:"" help:"Manage routines."`
	Item struct {
		Add cli.ItemAddCmd `cmd:"" help:"Add an item to a routine."`
	} `cmd:"" help:"Manage routine items."`
	Debug cli.DebugCmd `cmd:"" help:"Inspect stored state."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("focusfit"),
		kong.Description("Habit routine tracker with a consecutive-completion streak engine"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg := config.Load()
	if CLI.DB != "" {
		cfg.DBPath = CLI.DB
	}

	appCtx := &cli.Context{
		Store:  storage.NewSQLiteStore(cfg.DBPath),
		Config: cfg,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
