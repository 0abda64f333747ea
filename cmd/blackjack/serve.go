package main

import (
	"os"

	"github.com/lox/blackjack-survival/cmd/blackjack/shared"
	"github.com/lox/blackjack-survival/internal/randutil"
	"github.com/lox/blackjack-survival/internal/server"
)

// ServeCmd serves games to WebSocket clients
type ServeCmd struct {
	Addr     string `help:"Listen address (overrides the config file)"`
	JSONLogs bool   `name:"json-logs" help:"Write logs as JSON lines"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(os.Stderr, cfg.Log.Level, g.Debug)
	if c.JSONLogs {
		logger = shared.SetupStructuredLogger(os.Stderr, g.Debug)
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	seed := randutil.Seed(g.Seed)
	if g.Seed != nil {
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		logger.Info("Using random seed", "seed", seed)
	}

	s := server.NewServer(addr, logger,
		server.WithRules(cfg.GameRules()),
		server.WithSeed(seed),
		server.WithIdleTimeout(cfg.IdleTimeout()),
	)

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	return s.Serve(ctx)
}
