// Package statistics holds the lifetime record that survives between runs.
package statistics

import (
	"errors"
	"fmt"
)

// Stats is the persisted lifetime record. Field names match the stored JSON.
type Stats struct {
	GamesPlayed      int `json:"gamesPlayed"`
	BestRun          int `json:"bestRun"`
	MostChips        int `json:"mostChips"`
	TotalHands       int `json:"totalHands"`
	Perfect21Count   int `json:"perfect21Count"`
	TotalChipsEarned int `json:"totalChipsEarned"`
	TotalChipsSpent  int `json:"totalChipsSpent"`
}

// RunResult is the outcome of a finished run.
type RunResult struct {
	HandsCompleted int
	Chips          int
}

// AddRun rolls a finished run into the record.
func (s *Stats) AddRun(r RunResult) {
	s.GamesPlayed++
	s.BestRun = max(s.BestRun, r.HandsCompleted)
	s.MostChips = max(s.MostChips, r.Chips)
	s.TotalHands += r.HandsCompleted
}

// AddPerfect21 counts a hand stood on exactly 21.
func (s *Stats) AddPerfect21() {
	s.Perfect21Count++
}

// AddEarned accumulates chips won from a hand.
func (s *Stats) AddEarned(chips int) {
	if chips > 0 {
		s.TotalChipsEarned += chips
	}
}

// AddSpent accumulates chips spent in the shop.
func (s *Stats) AddSpent(chips int) {
	if chips > 0 {
		s.TotalChipsSpent += chips
	}
}

// Merge adds another record into this one, keeping maxima for the best-of
// fields. Used by the simulator to combine per-worker results.
func (s *Stats) Merge(o Stats) {
	s.GamesPlayed += o.GamesPlayed
	s.BestRun = max(s.BestRun, o.BestRun)
	s.MostChips = max(s.MostChips, o.MostChips)
	s.TotalHands += o.TotalHands
	s.Perfect21Count += o.Perfect21Count
	s.TotalChipsEarned += o.TotalChipsEarned
	s.TotalChipsSpent += o.TotalChipsSpent
}

// AverageRun returns the mean number of hands per finished run
func (s Stats) AverageRun() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalHands) / float64(s.GamesPlayed)
}

// NetChips returns lifetime chips earned minus chips spent
func (s Stats) NetChips() int {
	return s.TotalChipsEarned - s.TotalChipsSpent
}

// Validate checks the record for values a real history cannot produce.
func (s Stats) Validate() error {
	var errs []error
	check := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s is negative: %d", name, v))
		}
	}
	check("gamesPlayed", s.GamesPlayed)
	check("bestRun", s.BestRun)
	check("mostChips", s.MostChips)
	check("totalHands", s.TotalHands)
	check("perfect21Count", s.Perfect21Count)
	check("totalChipsEarned", s.TotalChipsEarned)
	check("totalChipsSpent", s.TotalChipsSpent)

	if s.BestRun > s.TotalHands {
		errs = append(errs, fmt.Errorf("bestRun %d exceeds totalHands %d", s.BestRun, s.TotalHands))
	}
	return errors.Join(errs...)
}
