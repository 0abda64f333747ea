package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddRun(t *testing.T) {
	var s Stats
	s.AddRun(RunResult{HandsCompleted: 12, Chips: 300})
	s.AddRun(RunResult{HandsCompleted: 7, Chips: 450})

	assert.Equal(t, 2, s.GamesPlayed)
	assert.Equal(t, 12, s.BestRun)
	assert.Equal(t, 450, s.MostChips)
	assert.Equal(t, 19, s.TotalHands)
	assert.InDelta(t, 9.5, s.AverageRun(), 0.0001)
}

func TestAddRunLeavesIncrementalCountersAlone(t *testing.T) {
	s := Stats{Perfect21Count: 3, TotalChipsEarned: 500, TotalChipsSpent: 120}
	s.AddRun(RunResult{HandsCompleted: 4, Chips: 80})

	assert.Equal(t, 3, s.Perfect21Count)
	assert.Equal(t, 500, s.TotalChipsEarned)
	assert.Equal(t, 120, s.TotalChipsSpent)
}

func TestIncrementalCounters(t *testing.T) {
	var s Stats
	s.AddPerfect21()
	s.AddEarned(56)
	s.AddEarned(-10)
	s.AddSpent(25)
	s.AddSpent(0)

	assert.Equal(t, 1, s.Perfect21Count)
	assert.Equal(t, 56, s.TotalChipsEarned)
	assert.Equal(t, 25, s.TotalChipsSpent)
	assert.Equal(t, 31, s.NetChips())
}

func TestMerge(t *testing.T) {
	a := Stats{GamesPlayed: 1, BestRun: 5, MostChips: 100, TotalHands: 5, Perfect21Count: 1, TotalChipsEarned: 150, TotalChipsSpent: 50}
	b := Stats{GamesPlayed: 2, BestRun: 9, MostChips: 60, TotalHands: 14, Perfect21Count: 2, TotalChipsEarned: 300, TotalChipsSpent: 25}
	a.Merge(b)

	assert.Equal(t, Stats{GamesPlayed: 3, BestRun: 9, MostChips: 100, TotalHands: 19, Perfect21Count: 3, TotalChipsEarned: 450, TotalChipsSpent: 75}, a)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Stats{}.Validate())
	assert.NoError(t, Stats{GamesPlayed: 1, BestRun: 3, TotalHands: 3}.Validate())

	err := Stats{GamesPlayed: -1}.Validate()
	assert.ErrorContains(t, err, "gamesPlayed is negative")

	err = Stats{BestRun: 10, TotalHands: 2}.Validate()
	assert.ErrorContains(t, err, "bestRun 10 exceeds totalHands 2")
}

func TestAverageRunWithNoGames(t *testing.T) {
	assert.Zero(t, Stats{}.AverageRun())
}
