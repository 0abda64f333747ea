package game

import "github.com/lox/blackjack-survival/internal/deck"

// Score returns the blackjack total of cards. Aces count 11 and are demoted
// to 1, one at a time, while the total is over 21. The result may exceed 21.
func Score(cards []deck.Card) int {
	total, _ := score(cards)
	return total
}

// IsSoft reports whether the hand still counts an ace as 11.
func IsSoft(cards []deck.Card) bool {
	_, soft := score(cards)
	return soft > 0
}

// IsBust reports whether the hand is over 21.
func IsBust(cards []deck.Card) bool {
	return Score(cards) > 21
}

// IsNatural reports whether the hand is 21 with exactly two cards.
func IsNatural(cards []deck.Card) bool {
	return len(cards) == 2 && Score(cards) == 21
}

func score(cards []deck.Card) (total, softAces int) {
	for _, c := range cards {
		total += c.Rank.Value()
		if c.IsAce() {
			softAces++
		}
	}
	for total > 21 && softAces > 0 {
		total -= 10
		softAces--
	}
	return total, softAces
}
