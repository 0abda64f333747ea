package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/blackjack-survival/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, game.DefaultRules(), c.GameRules())
	assert.Equal(t, "localhost:8080", c.ServerAddress())
	assert.Equal(t, 10*time.Minute, c.IdleTimeout())
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "blackjack.log", c.Log.File)
	assert.Empty(t, c.Storage.StatsFile)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	c, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
rules {
  initial_health     = 80
  high_stakes_chance = 0
  removal_cost       = 40
}

storage {
  stats_file = "/tmp/bj/stats.json"
}

server {
  port         = 9090
  idle_timeout = "30s"
}

log {
  level = "debug"
}
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	rules := c.GameRules()
	assert.Equal(t, 80, rules.MaxHealth)
	assert.Equal(t, 5, rules.ShopFrequency, "unset values keep their defaults")
	assert.Zero(t, rules.HighStakesChance, "an explicit zero disables high stakes")
	assert.Equal(t, 40, rules.RemovalCost)

	assert.Equal(t, "/tmp/bj/stats.json", c.Storage.StatsFile)
	assert.Equal(t, "localhost:9090", c.ServerAddress())
	assert.Equal(t, 30*time.Second, c.IdleTimeout())
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, DefaultLogFile, c.Log.File)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, `rules { initial_health = `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")

	_, err = Load(writeConfig(t, `rules { lives = 3 }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "invalid port"},
		{"bad timeout", func(c *Config) { c.Server.IdleTimeout = "soon" }, "invalid idle timeout"},
		{"negative timeout", func(c *Config) { c.Server.IdleTimeout = "-1s" }, "idle timeout must be positive"},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }, "invalid log level"},
		{"bad chance", func(c *Config) { *c.Rules.HighStakesChance = 1.5 }, "high stakes chance"},
		{"bad health", func(c *Config) { c.Rules.InitialHealth = -5 }, "max health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
