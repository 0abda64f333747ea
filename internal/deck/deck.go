package deck

import (
	"errors"
	"slices"

	"github.com/lox/blackjack-survival/internal/randutil"
)

// Size is the number of cards in a full deck.
const Size = 52

// ErrEmptyDeck is returned when a draw needs more cards than remain.
var ErrEmptyDeck = errors.New("not enough cards in deck")

// Deck is an ordered pile of cards. The top of the deck is the last element.
// The zero value is an empty deck.
type Deck struct {
	cards []Card
}

// Standard returns the 52 cards in build order, skipping any excluded cards.
func Standard(exclude ...Card) []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			c := NewCard(suit, rank)
			if slices.Contains(exclude, c) {
				continue
			}
			cards = append(cards, c)
		}
	}
	return cards
}

// New builds a fresh deck without the excluded cards and shuffles it.
func New(rng randutil.Source, exclude ...Card) Deck {
	d := Deck{cards: Standard(exclude...)}
	d.Shuffle(rng)
	return d
}

// FromCards creates a deck in the given order; the last card is drawn first.
func FromCards(cards ...Card) Deck {
	return Deck{cards: slices.Clone(cards)}
}

// Shuffle randomizes the order of cards using Fisher-Yates
func (d *Deck) Shuffle(rng randutil.Source) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	top := len(d.cards) - 1
	card := d.cards[top]
	d.cards = d.cards[:top]
	return card, nil
}

// DrawN removes and returns the top n cards, first drawn first. It never
// returns a partial draw: if fewer than n cards remain the deck is untouched.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrEmptyDeck
	}
	drawn := make([]Card, 0, n)
	for range n {
		c, _ := d.Draw()
		drawn = append(drawn, c)
	}
	return drawn, nil
}

// Remove deletes every copy of c and returns how many were removed.
func (d *Deck) Remove(c Card) int {
	before := len(d.cards)
	d.cards = slices.DeleteFunc(d.cards, func(x Card) bool { return x == c })
	return before - len(d.cards)
}

// Contains reports whether c is still in the deck.
func (d Deck) Contains(c Card) bool {
	return slices.Contains(d.cards, c)
}

// Sample picks up to n distinct cards uniformly at random without removing
// them. Cards listed in exclude are never picked.
func (d Deck) Sample(rng randutil.Source, n int, exclude ...Card) []Card {
	pool := make([]Card, 0, len(d.cards))
	for _, c := range d.cards {
		if !slices.Contains(exclude, c) && !slices.Contains(pool, c) {
			pool = append(pool, c)
		}
	}
	if n > len(pool) {
		n = len(pool)
	}
	picked := make([]Card, 0, n)
	for range n {
		i := rng.IntN(len(pool))
		picked = append(picked, pool[i])
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return picked
}

// Len returns the number of cards left in the deck
func (d Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, top card last.
func (d Deck) Cards() []Card {
	return slices.Clone(d.cards)
}

// Clone returns an independent copy of the deck.
func (d Deck) Clone() Deck {
	return Deck{cards: slices.Clone(d.cards)}
}
