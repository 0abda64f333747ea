package game

import (
	"math"

	"github.com/lox/blackjack-survival/internal/deck"
)

// Settlement is the accounting of one finished hand.
type Settlement struct {
	Score       int  `json:"score"`
	Cards       int  `json:"cards"`
	Bust        bool `json:"bust"`
	HighStakes  bool `json:"highStakes"`
	Perfect21   bool `json:"perfect21"`
	Natural     bool `json:"natural"`
	HealthLoss  int  `json:"healthLoss"`
	HealthBonus int  `json:"healthBonus"`
	Health      int  `json:"health"` // health after the hand
	ChipsEarned int  `json:"chipsEarned"`
	ClubsBonus  int  `json:"clubsBonus"`
	StreakBonus int  `json:"streakBonus"`
	Streak      int  `json:"streak"` // streak after the hand
}

// settleStand applies the stand accounting to s and returns the settlement.
// It does not decide what happens next (shop, new hand, game over).
func settleStand(r Rules, s *State) Settlement {
	sc := Score(s.Hand)
	st := Settlement{
		Score:      sc,
		Cards:      len(s.Hand),
		HighStakes: s.HighStakes,
	}

	st.HealthLoss = 21 - sc
	if s.HighStakes {
		st.HealthLoss = highStakesLoss(r, st.HealthLoss)
	}

	if sc == 21 {
		st.Perfect21 = true
		st.HealthBonus = r.Perfect21HealthBonus
	}
	st.Health = clampHealth(r, s.Health-st.HealthLoss+st.HealthBonus)

	earned := r.BaseChips + sc
	if st.Perfect21 {
		earned += r.Perfect21ChipBonus
		if len(s.Hand) == 2 {
			st.Natural = true
			earned += r.NaturalChipBonus
		}
	}
	if s.HasPowerUp(ClubsBonus) {
		st.ClubsBonus = r.ClubChipBonus * countSuit(s.Hand, deck.Clubs)
		earned += st.ClubsBonus
	}

	if st.HealthLoss == 0 {
		st.Streak = s.Streak + 1
		st.StreakBonus = r.StreakChipBonus * st.Streak
		earned += st.StreakBonus
	}

	if s.HighStakes {
		earned *= r.HighStakesChipMultiplier
	}
	st.ChipsEarned = earned

	s.Health = st.Health
	s.Chips += earned
	s.Streak = st.Streak
	s.HandsCompleted++
	return st
}

// settleBust applies the flat bust penalty to s.
func settleBust(r Rules, s *State) Settlement {
	st := Settlement{
		Score:      Score(s.Hand),
		Cards:      len(s.Hand),
		Bust:       true,
		HighStakes: s.HighStakes,
		HealthLoss: r.BustLoss,
	}
	if s.HighStakes {
		st.HealthLoss = highStakesLoss(r, r.BustLoss)
	}
	st.Health = clampHealth(r, s.Health-st.HealthLoss)

	s.Health = st.Health
	s.Streak = 0
	s.HandsCompleted++
	return st
}

func highStakesLoss(r Rules, loss int) int {
	return int(math.Round(float64(loss) * r.HighStakesLossMultiplier))
}

func clampHealth(r Rules, h int) int {
	return min(max(h, 0), r.MaxHealth)
}

func countSuit(cards []deck.Card, suit deck.Suit) int {
	n := 0
	for _, c := range cards {
		if c.Suit == suit {
			n++
		}
	}
	return n
}
