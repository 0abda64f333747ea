package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack-survival/cmd/blackjack/shared"
	"github.com/lox/blackjack-survival/internal/game"
	"github.com/lox/blackjack-survival/internal/randutil"
	"github.com/lox/blackjack-survival/internal/tui"
)

// PlayCmd runs an interactive game in the terminal
type PlayCmd struct {
	NoColor bool   `help:"Disable colours"`
	LogFile string `type:"path" help:"Debug log file (overrides the config file)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// The TUI owns the terminal, so logs go to a file
	logPath := cfg.Log.File
	if c.LogFile != "" {
		logPath = c.LogFile
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := shared.SetupLogger(logFile, cfg.Log.Level, g.Debug)

	stats, err := g.statsStore(cfg, logger)
	if err != nil {
		return err
	}

	seed := randutil.Seed(g.Seed)
	logger.Info("Starting game", "seed", seed, "stats_file", stats.Path())

	session := game.NewSession(randutil.New(seed),
		game.WithRules(cfg.GameRules()),
		game.WithLogger(logger),
		game.WithStats(stats.Load()),
		game.WithStatsListener(stats),
	)

	model := tui.NewTUIModel(session, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	final := session.Stats()
	fmt.Printf("Games played: %d  Best run: %d hands  Most chips: %d\n",
		final.GamesPlayed, final.BestRun, final.MostChips)
	return nil
}
