package main

import (
	"context"
	"os"
	"time"

	"github.com/lox/blackjack-survival/cmd/blackjack/shared"
	"github.com/lox/blackjack-survival/internal/randutil"
	"github.com/lox/blackjack-survival/internal/simulator"
)

// SimulateCmd plays games unattended and prints a summary
type SimulateCmd struct {
	Games    int           `default:"1000" help:"Number of games to simulate"`
	Parallel int           `default:"4" help:"Games to play concurrently"`
	StandOn  int           `default:"17" help:"Stand once the hand scores at least this"`
	HealAt   int           `default:"40" help:"Buy health in the shop at or below this health"`
	NoPowers bool          `name:"no-power-ups" help:"Never buy power-ups"`
	Timeout  time.Duration `default:"5m" help:"Give up after this long"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(os.Stderr, cfg.Log.Level, g.Debug)
	seed := randutil.Seed(g.Seed)
	logger.Info("Starting simulation", "games", c.Games, "parallel", c.Parallel, "seed", seed)

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()
	if c.Timeout > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, c.Timeout)
		defer stop()
	}

	sim := simulator.New(simulator.Config{
		Games:    c.Games,
		Parallel: c.Parallel,
		Seed:     seed,
		Rules:    cfg.GameRules(),
		Strategy: simulator.ThresholdStrategy{
			StandOn:     c.StandOn,
			HealAt:      c.HealAt,
			BuyPowerUps: !c.NoPowers,
		},
		Logger: logger,
	})

	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	simulator.PrintSummary(os.Stdout, res)
	return nil
}
