package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-survival/internal/config"
	"github.com/lox/blackjack-survival/internal/store"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config    string `short:"c" default:"blackjack.hcl" type:"path" help:"HCL configuration file (optional)"`
	Debug     bool   `help:"Enable debug logging"`
	StatsFile string `type:"path" help:"Statistics file (defaults to the user config directory)"`
	Seed      *int64 `help:"Deterministic RNG seed (optional)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve games over WebSocket"`
	Stats    StatsCmd         `cmd:"" help:"Show lifetime statistics"`
	Simulate SimulateCmd      `cmd:"" help:"Play many games with a fixed strategy"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack Survival: keep your health above zero for as many hands as you can"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads and validates the configuration file
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", g.Config, err)
	}
	return cfg, nil
}

// statsStore opens the statistics file. The flag wins over the config file,
// which wins over the per-user default.
func (g *Globals) statsStore(cfg *config.Config, logger *log.Logger) (*store.FileStore, error) {
	path := g.StatsFile
	if path == "" {
		path = cfg.Storage.StatsFile
	}
	if path == "" {
		var err error
		if path, err = store.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return store.NewFileStore(path, store.WithLogger(logger)), nil
}
