package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/blackjack-survival/internal/statistics"
	"github.com/lox/blackjack-survival/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStats(t *testing.T) {
	t.Parallel()

	rec := store.Record{
		Stats: statistics.Stats{
			GamesPlayed:      4,
			BestRun:          31,
			MostChips:        640,
			TotalHands:       70,
			Perfect21Count:   9,
			TotalChipsEarned: 1200,
			TotalChipsSpent:  450,
		},
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, renderStats(&buf, "/tmp/stats.json", rec))

	out := buf.String()
	assert.Contains(t, out, "Games played")
	assert.Contains(t, out, "31 hands")
	assert.Contains(t, out, "17.5 hands")
	assert.Contains(t, out, "640")
	assert.Contains(t, out, "/tmp/stats.json")
	assert.NotContains(t, out, "never")
}

func TestRenderStatsEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, renderStats(&buf, "stats.json", store.Record{}))
	assert.Contains(t, buf.String(), "updated never")
}

func TestGlobalsStatsStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "blackjack.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
storage {
  stats_file = "`+filepath.Join(dir, "from-config.json")+`"
}
`), 0o644))

	g := &Globals{Config: cfgPath}
	cfg, err := g.loadConfig()
	require.NoError(t, err)

	st, err := g.statsStore(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "from-config.json"), st.Path())

	g.StatsFile = filepath.Join(dir, "from-flag.json")
	st, err = g.statsStore(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, g.StatsFile, st.Path())
}
