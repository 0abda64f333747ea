package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/blackjack-survival/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowDeals bool // include dealt and drawn cards (for a running log)
}

// EventFormatter turns game events into player-facing text
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders one event. Events with nothing to say return "".
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case GameStartedEvent:
		return fmt.Sprintf("New game! You start with %d health.", e.Health)
	case HandDealtEvent:
		var parts []string
		if ef.opts.ShowDeals {
			parts = append(parts, "Dealt "+formatCards(e.Cards)+".")
		}
		if e.HighStakes {
			parts = append(parts, "High stakes hand! Losses x2.5, winnings x2.")
		}
		return strings.Join(parts, " ")
	case CardDrawnEvent:
		if !ef.opts.ShowDeals {
			return ""
		}
		return fmt.Sprintf("Drew %s (score %d).", e.Card, e.Score)
	case HeartHealedEvent:
		if e.Amount == 0 {
			return "Heart card played! Health already full."
		}
		return fmt.Sprintf("Heart card played! +%d health", e.Amount)
	case DeckReshuffledEvent:
		return "Reshuffling the deck..."
	case HandSettledEvent:
		return ef.formatSettlement(e.Settlement)
	case ShopOpenedEvent:
		return "The shop is open!"
	case ShopClosedEvent:
		return ""
	case PurchaseEvent:
		switch e.Kind {
		case PurchaseHealth:
			return fmt.Sprintf("Recovered %d health!", e.Amount)
		case PurchasePowerUp:
			return fmt.Sprintf("Purchased %s!", e.Item)
		default:
			return ""
		}
	case CardRemovedEvent:
		return fmt.Sprintf("Removed %s from the deck!", e.Card)
	case GameOverEvent:
		return fmt.Sprintf("Game over! You survived %d hands with %d chips.", e.HandsCompleted, e.Chips)
	default:
		return ""
	}
}

func (ef *EventFormatter) formatSettlement(s Settlement) string {
	if s.Bust {
		if s.Health == 0 {
			return "Bust! You lost all your health."
		}
		msg := fmt.Sprintf("Bust! Lost %d health.", s.HealthLoss)
		if s.HighStakes {
			msg += " (2.5x penalty)"
		}
		return msg
	}

	var b strings.Builder
	switch {
	case s.Natural:
		b.WriteString("Blackjack! ")
	case s.Perfect21:
		b.WriteString("Perfect 21! ")
	case s.HighStakes:
		b.WriteString("High stakes hand complete! ")
	default:
		b.WriteString("Hand complete! ")
	}

	fmt.Fprintf(&b, "You earned %d chips", s.ChipsEarned)
	if s.HighStakes {
		b.WriteString(" (2x bonus)")
	}
	if s.HealthBonus > 0 {
		fmt.Fprintf(&b, " and %d health", s.HealthBonus)
	}
	b.WriteString(".")

	if s.HealthLoss > 0 {
		fmt.Fprintf(&b, " Health lost: %d", s.HealthLoss)
		if s.HighStakes {
			b.WriteString(" (2.5x penalty)")
		}
		b.WriteString(".")
	}
	if s.ClubsBonus > 0 {
		fmt.Fprintf(&b, " Clubs bonus: +%d chips.", s.ClubsBonus)
	}
	if s.StreakBonus > 0 {
		fmt.Fprintf(&b, " Perfect streak x%d: +%d chips.", s.Streak, s.StreakBonus)
	}
	return b.String()
}

// Describe joins the messages of a transition's events into one line.
func Describe(events []GameEvent) string {
	ef := NewEventFormatter(FormattingOptions{})
	var parts []string
	for _, e := range events {
		if text := ef.Format(e); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// describeError turns a non-fatal transition error into a player message.
func describeError(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		detail := strings.TrimPrefix(err.Error(), ErrInsufficientFunds.Error())
		detail = strings.TrimPrefix(detail, ": ")
		if detail == "" {
			return "Not enough chips!"
		}
		return "Not enough chips! " + upperFirst(detail) + "."
	case errors.Is(err, ErrAlreadyOwned):
		return "You already own this power-up!"
	default:
		return upperFirst(err.Error()) + "."
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
