// Package simulator plays many seeded sessions unattended and summarises how
// long runs last.
package simulator

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-survival/internal/game"
	"github.com/lox/blackjack-survival/internal/randutil"
	"github.com/lox/blackjack-survival/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxSteps bounds a single game so a broken strategy cannot spin
// forever.
const DefaultMaxSteps = 100_000

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Parallel int
	Seed     int64
	Rules    game.Rules
	Strategy Strategy
	MaxSteps int
	Logger   *log.Logger
}

// Result is the outcome of a simulation. Runs are in game order regardless
// of how many workers played them.
type Result struct {
	Stats    statistics.Stats
	Runs     []statistics.RunResult
	Duration time.Duration
}

// Simulator runs Blackjack Survival simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Parallel < 1 {
		config.Parallel = 1
	}
	if config.Strategy == nil {
		config.Strategy = DefaultStrategy()
	}
	if config.MaxSteps <= 0 {
		config.MaxSteps = DefaultMaxSteps
	}
	if config.Rules.MaxHealth == 0 {
		config.Rules = game.DefaultRules()
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

// Run plays every game and merges their statistics. Game i always uses the
// same derived seed, so results do not depend on Parallel.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	perGame := make([]statistics.Stats, s.config.Games)
	runs := make([]statistics.RunResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)
	for i := range s.config.Games {
		g.Go(func() error {
			stats, run, err := s.playGame(ctx, i)
			if err != nil {
				return err
			}
			perGame[i] = stats
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total statistics.Stats
	for _, st := range perGame {
		total.Merge(st)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	return &Result{Stats: total, Runs: runs, Duration: time.Since(start)}, nil
}

// playGame plays game i to the end
func (s *Simulator) playGame(ctx context.Context, i int) (statistics.Stats, statistics.RunResult, error) {
	seed := randutil.Derive(s.config.Seed, i)
	sess := game.NewSession(randutil.New(seed), game.WithRules(s.config.Rules))

	snap := sess.Snapshot()
	for step := 0; snap.Phase != game.Lost; step++ {
		if step >= s.config.MaxSteps {
			return statistics.Stats{}, statistics.RunResult{},
				fmt.Errorf("game %d did not finish within %d steps (seed: %d)", i, s.config.MaxSteps, seed)
		}
		if step%256 == 0 {
			if err := ctx.Err(); err != nil {
				return statistics.Stats{}, statistics.RunResult{}, err
			}
		}

		intent := s.config.Strategy.Decide(snap)
		if intent == nil {
			return statistics.Stats{}, statistics.RunResult{},
				fmt.Errorf("game %d: strategy gave up in phase %s (seed: %d)", i, snap.Phase, seed)
		}

		var err error
		snap, err = sess.Dispatch(intent)
		if err != nil {
			// Rejected intents leave the state alone; a strategy that keeps
			// repeating one would loop until MaxSteps.
			s.config.Logger.Debug("Intent rejected", "game", i, "intent", intent.Name(), "error", err)
			if snap.Phase == game.Shop {
				snap, _ = sess.Dispatch(game.CloseShop{})
			}
		}
	}

	run := statistics.RunResult{HandsCompleted: snap.HandsCompleted, Chips: snap.Chips}
	s.config.Logger.Debug("Game finished", "game", i, "seed", seed, "hands", run.HandsCompleted, "chips", run.Chips)
	return sess.Stats(), run, nil
}

// RunLengths summarises hands survived per run.
type RunLengths struct {
	Mean   float64
	Median float64
	StdDev float64
	P05    int
	P95    int
	Max    int
}

// Lengths computes the run length distribution.
func (r *Result) Lengths() RunLengths {
	if len(r.Runs) == 0 {
		return RunLengths{}
	}

	hands := make([]int, len(r.Runs))
	sum := 0
	for i, run := range r.Runs {
		hands[i] = run.HandsCompleted
		sum += run.HandsCompleted
	}
	slices.Sort(hands)

	n := float64(len(hands))
	mean := float64(sum) / n
	var sq float64
	for _, h := range hands {
		d := float64(h) - mean
		sq += d * d
	}

	median := float64(hands[len(hands)/2])
	if len(hands)%2 == 0 {
		median = float64(hands[len(hands)/2-1]+hands[len(hands)/2]) / 2
	}

	return RunLengths{
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(sq / n),
		P05:    percentile(hands, 0.05),
		P95:    percentile(hands, 0.95),
		Max:    hands[len(hands)-1],
	}
}

// percentile picks the nearest-rank value from sorted data
func percentile(sorted []int, p float64) int {
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	idx = min(max(idx, 0), len(sorted)-1)
	return sorted[idx]
}

// PrintSummary writes a human readable summary of the results
func PrintSummary(w io.Writer, r *Result) {
	st := r.Stats
	l := r.Lengths()

	fmt.Fprintf(w, "\n=== SIMULATION RESULTS ===\n")
	fmt.Fprintf(w, "Games played: %d in %s\n", st.GamesPlayed, r.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Hands played: %d\n", st.TotalHands)

	fmt.Fprintf(w, "\n=== RUN LENGTH ===\n")
	fmt.Fprintf(w, "Mean: %.2f hands\n", l.Mean)
	fmt.Fprintf(w, "Median: %.1f hands\n", l.Median)
	fmt.Fprintf(w, "Std Dev: %.2f hands\n", l.StdDev)
	fmt.Fprintf(w, "Percentiles: P5=%d, P95=%d, max=%d\n", l.P05, l.P95, l.Max)

	fmt.Fprintf(w, "\n=== ECONOMY ===\n")
	fmt.Fprintf(w, "Most chips: %d\n", st.MostChips)
	fmt.Fprintf(w, "Chips earned: %d, spent: %d, net: %d\n", st.TotalChipsEarned, st.TotalChipsSpent, st.NetChips())
	if st.TotalHands > 0 {
		fmt.Fprintf(w, "Perfect 21s: %d (%.1f%% of hands)\n",
			st.Perfect21Count, float64(st.Perfect21Count)/float64(st.TotalHands)*100)
	}
}
