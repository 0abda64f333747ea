package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack-survival/internal/store"
)

var statsTitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// StatsCmd prints lifetime statistics
type StatsCmd struct {
	NoColor bool `help:"Disable colours"`
}

func (c *StatsCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	st, err := g.statsStore(cfg, log.NewWithOptions(io.Discard, log.Options{}))
	if err != nil {
		return err
	}
	rec, err := st.LoadRecord()
	if err != nil {
		return err
	}

	return renderStats(os.Stdout, st.Path(), rec)
}

func renderStats(w io.Writer, path string, rec store.Record) error {
	s := rec.Stats
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))).
		Headers("Statistic", "Value").
		Row("Games played", strconv.Itoa(s.GamesPlayed)).
		Row("Best run", fmt.Sprintf("%d hands", s.BestRun)).
		Row("Average run", fmt.Sprintf("%.1f hands", s.AverageRun())).
		Row("Most chips", strconv.Itoa(s.MostChips)).
		Row("Total hands", strconv.Itoa(s.TotalHands)).
		Row("Perfect 21s", strconv.Itoa(s.Perfect21Count)).
		Row("Chips earned", strconv.Itoa(s.TotalChipsEarned)).
		Row("Chips spent", strconv.Itoa(s.TotalChipsSpent))

	updated := "never"
	if !rec.UpdatedAt.IsZero() {
		updated = rec.UpdatedAt.Local().Format("2006-01-02 15:04")
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n",
		statsTitleStyle.Render(" ♠ ♥ Blackjack Survival ♦ ♣ "),
		t.Render(),
		lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("%s (updated %s)", path, updated)))
	return err
}
