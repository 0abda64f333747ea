package game

import (
	"slices"

	"github.com/lox/blackjack-survival/internal/deck"
)

// State is one immutable snapshot of a run. Transitions never modify the
// State they are given; they work on a clone and return it.
type State struct {
	Health         int
	Chips          int
	HandsCompleted int
	Streak         int
	HighStakes     bool
	Phase          Phase
	PowerUps       []PowerUp

	Hand    []deck.Card
	Deck    deck.Deck
	Offers  []deck.Card // cards on offer for removal while in the shop
	Removed []deck.Card // cards removed for the rest of the run

	LastSettlement *Settlement
	Message        string
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	c.PowerUps = slices.Clone(s.PowerUps)
	c.Hand = slices.Clone(s.Hand)
	c.Deck = s.Deck.Clone()
	c.Offers = slices.Clone(s.Offers)
	c.Removed = slices.Clone(s.Removed)
	if s.LastSettlement != nil {
		settled := *s.LastSettlement
		c.LastSettlement = &settled
	}
	return c
}

// HasPowerUp reports whether the run owns the given power-up.
func (s State) HasPowerUp(id PowerUpID) bool {
	return slices.ContainsFunc(s.PowerUps, func(p PowerUp) bool { return p.ID == id })
}

// Score returns the current hand's score.
func (s State) Score() int {
	return Score(s.Hand)
}

// IsOffered reports whether c is one of the shop's removal offers.
func (s State) IsOffered(c deck.Card) bool {
	return slices.Contains(s.Offers, c)
}

// PoolSize is the number of distinct cards a freshly built deck would hold.
func (s State) PoolSize() int {
	return deck.Size - len(s.Removed)
}
