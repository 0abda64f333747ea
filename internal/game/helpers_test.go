package game

import (
	"github.com/lox/blackjack-survival/internal/deck"
)

// fixedRand always picks index 0 and always rolls the same float, so tests
// can force or suppress high-stakes hands.
type fixedRand struct {
	roll float64
}

func (r fixedRand) IntN(int) int     { return 0 }
func (r fixedRand) Float64() float64 { return r.roll }

var (
	calm   = fixedRand{roll: 0.99}
	stakes = fixedRand{roll: 0}
)

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

func card(s string) deck.Card {
	c, err := deck.ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// playing returns a mid-run state holding hand with the given deck (top card
// last).
func playing(hand, pile string) State {
	return State{
		Health: 100,
		Phase:  Playing,
		Hand:   cards(hand),
		Deck:   deck.FromCards(cards(pile)...),
	}
}

// shopping returns a state parked in the shop with a full deck.
func shopping(chips, health int, offers string) State {
	return State{
		Health:         health,
		Chips:          chips,
		HandsCompleted: 5,
		Phase:          Shop,
		Hand:           cards("10♠ 9♦"),
		Deck:           deck.FromCards(deck.Standard()...),
		Offers:         cards(offers),
	}
}

func eventTypes(events []GameEvent) []EventType {
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return types
}
