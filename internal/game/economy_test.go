package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettleStand(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	tests := []struct {
		name       string
		state      State
		want       Settlement
		wantHealth int
		wantChips  int
		wantStreak int
	}{
		{
			name:       "plain fifteen",
			state:      State{Health: 100, Hand: cards("10♠ 5♦")},
			want:       Settlement{Score: 15, Cards: 2, HealthLoss: 6, Health: 94, ChipsEarned: 25},
			wantHealth: 94,
			wantChips:  25,
		},
		{
			name:       "high stakes fifteen",
			state:      State{Health: 100, Hand: cards("10♠ 5♦"), HighStakes: true},
			want:       Settlement{Score: 15, Cards: 2, HighStakes: true, HealthLoss: 15, Health: 85, ChipsEarned: 50},
			wantHealth: 85,
			wantChips:  50,
		},
		{
			name:  "natural",
			state: State{Health: 80, Hand: cards("A♠ K♥")},
			want: Settlement{
				Score: 21, Cards: 2, Perfect21: true, Natural: true,
				HealthBonus: 5, Health: 85, ChipsEarned: 76, StreakBonus: 5, Streak: 1,
			},
			wantHealth: 85,
			wantChips:  76,
			wantStreak: 1,
		},
		{
			name:  "perfect 21 with streak",
			state: State{Health: 100, Streak: 2, Hand: cards("7♠ 7♦ 7♥")},
			want: Settlement{
				Score: 21, Cards: 3, Perfect21: true,
				HealthBonus: 5, Health: 100, ChipsEarned: 71, StreakBonus: 15, Streak: 3,
			},
			wantHealth: 100,
			wantChips:  71,
			wantStreak: 3,
		},
		{
			name:  "clubs bonus",
			state: State{Health: 100, Hand: cards("5♣ 6♣ 9♦"), PowerUps: []PowerUp{{ID: ClubsBonus}}},
			want: Settlement{
				Score: 20, Cards: 3, HealthLoss: 1, Health: 99, ChipsEarned: 40, ClubsBonus: 10,
			},
			wantHealth: 99,
			wantChips:  40,
		},
		{
			name:       "streak broken by any loss",
			state:      State{Health: 100, Streak: 4, Hand: cards("K♠ 9♦")},
			want:       Settlement{Score: 19, Cards: 2, HealthLoss: 2, Health: 98, ChipsEarned: 29},
			wantHealth: 98,
			wantChips:  29,
		},
		{
			name:       "health floors at zero",
			state:      State{Health: 5, Hand: cards("7♠ 5♦")},
			want:       Settlement{Score: 12, Cards: 2, HealthLoss: 9, Health: 0, ChipsEarned: 22},
			wantHealth: 0,
			wantChips:  22,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := tt.state.Clone()
			got := settleStand(rules, &s)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantHealth, s.Health)
			assert.Equal(t, tt.wantChips, s.Chips)
			assert.Equal(t, tt.wantStreak, s.Streak)
			assert.Equal(t, tt.state.HandsCompleted+1, s.HandsCompleted)
		})
	}
}

func TestSettleBust(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	t.Run("flat loss", func(t *testing.T) {
		t.Parallel()
		s := State{Health: 100, Streak: 3, Chips: 40, Hand: cards("K♠ Q♦ 5♣")}
		got := settleBust(rules, &s)

		assert.True(t, got.Bust)
		assert.Equal(t, 21, got.HealthLoss)
		assert.Equal(t, 79, s.Health)
		assert.Equal(t, 0, s.Streak)
		assert.Equal(t, 40, s.Chips, "busting earns nothing")
		assert.Equal(t, 1, s.HandsCompleted)
	})

	t.Run("high stakes rounds half away from zero", func(t *testing.T) {
		t.Parallel()
		s := State{Health: 100, HighStakes: true, Hand: cards("K♠ Q♦ 5♣")}
		got := settleBust(rules, &s)

		assert.Equal(t, 53, got.HealthLoss)
		assert.Equal(t, 47, s.Health)
	})

	t.Run("floors at zero", func(t *testing.T) {
		t.Parallel()
		s := State{Health: 10, Hand: cards("K♠ Q♦ 5♣")}
		settleBust(rules, &s)
		assert.Equal(t, 0, s.Health)
	})
}
