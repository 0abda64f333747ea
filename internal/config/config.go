// Package config loads the HCL configuration shared by every command.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack-survival/internal/game"
)

const (
	DefaultAddress     = "localhost"
	DefaultPort        = 8080
	DefaultIdleTimeout = "10m"
	DefaultLogLevel    = "info"
	DefaultLogFile     = "blackjack.log"
)

// Config represents the complete configuration file. Every block is
// optional; Load fills in whatever the file leaves out.
type Config struct {
	Rules   *RulesConfig   `hcl:"rules,block"`
	Storage *StorageConfig `hcl:"storage,block"`
	Server  *ServerConfig  `hcl:"server,block"`
	Log     *LogConfig     `hcl:"log,block"`
}

// RulesConfig overrides selected game rules.
type RulesConfig struct {
	InitialHealth    int      `hcl:"initial_health,optional"`
	ShopFrequency    int      `hcl:"shop_frequency,optional"`
	HighStakesChance *float64 `hcl:"high_stakes_chance,optional"`
	RemovalCost      *int     `hcl:"removal_cost,optional"`
}

// StorageConfig controls where statistics are kept. An empty StatsFile means
// the per-user default location.
type StorageConfig struct {
	StatsFile string `hcl:"stats_file,optional"`
}

// ServerConfig contains WebSocket server settings
type ServerConfig struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file is not an error.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := game.DefaultRules()

	if c.Rules == nil {
		c.Rules = &RulesConfig{}
	}
	if c.Rules.InitialHealth == 0 {
		c.Rules.InitialHealth = defaults.MaxHealth
	}
	if c.Rules.ShopFrequency == 0 {
		c.Rules.ShopFrequency = defaults.ShopFrequency
	}
	if c.Rules.HighStakesChance == nil {
		chance := defaults.HighStakesChance
		c.Rules.HighStakesChance = &chance
	}
	if c.Rules.RemovalCost == nil {
		cost := defaults.RemovalCost
		c.Rules.RemovalCost = &cost
	}

	if c.Storage == nil {
		c.Storage = &StorageConfig{}
	}

	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.IdleTimeout == "" {
		c.Server.IdleTimeout = DefaultIdleTimeout
	}

	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Server.Port))
	}
	if d, err := time.ParseDuration(c.Server.IdleTimeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid idle timeout %q: %w", c.Server.IdleTimeout, err))
	} else if d <= 0 {
		errs = append(errs, fmt.Errorf("idle timeout must be positive, got %s", d))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}
	if err := c.GameRules().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}

	return errors.Join(errs...)
}

// GameRules returns the default rules with this configuration's overrides.
func (c *Config) GameRules() game.Rules {
	r := game.DefaultRules()
	r.MaxHealth = c.Rules.InitialHealth
	r.ShopFrequency = c.Rules.ShopFrequency
	r.HighStakesChance = *c.Rules.HighStakesChance
	r.RemovalCost = *c.Rules.RemovalCost
	return r
}

// ServerAddress returns the full listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTimeout returns the parsed idle timeout, falling back to the default
// when the configured value does not parse.
func (c *Config) IdleTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Server.IdleTimeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultIdleTimeout)
	return d
}
