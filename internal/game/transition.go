package game

import (
	"fmt"

	"github.com/lox/blackjack-survival/internal/deck"
	"github.com/lox/blackjack-survival/internal/randutil"
)

// Result is the outcome of applying one intent.
type Result struct {
	State  State
	Events []GameEvent
	Err    error // non-fatal; State is the previous state with a new message
}

// transition accumulates the next state and the events produced on the way.
type transition struct {
	rules  Rules
	rng    randutil.Source
	state  State
	events []GameEvent
}

func (t *transition) emit(e GameEvent) {
	t.events = append(t.events, e)
}

// NewGame starts a fresh run: full health, no chips, a new shuffled deck and
// an initial two-card hand.
func NewGame(rules Rules, rng randutil.Source) Result {
	if rng == nil {
		panic("rng is required to start a game")
	}
	t := &transition{
		rules: rules,
		rng:   rng,
		state: State{
			Health: rules.MaxHealth,
			Phase:  Playing,
			Deck:   deck.New(rng),
		},
	}
	t.emit(GameStartedEvent{Health: rules.MaxHealth})
	t.dealHand()
	return t.result()
}

// Apply is the pure transition function. It never modifies s.
func Apply(rules Rules, s State, intent Intent, rng randutil.Source) Result {
	if rng == nil {
		panic("rng is required to apply an intent")
	}
	if _, ok := intent.(StartNewGame); ok {
		return NewGame(rules, rng)
	}

	t := &transition{rules: rules, rng: rng, state: s.Clone()}

	var err error
	switch in := intent.(type) {
	case Hit:
		err = t.requirePhase(Playing, in)
		if err == nil {
			t.hit()
		}
	case Stand:
		err = t.requirePhase(Playing, in)
		if err == nil {
			t.stand()
		}
	case BuyHealth:
		err = t.requirePhase(Shop, in)
		if err == nil {
			err = t.buyHealth(in)
		}
	case BuyPowerUp:
		err = t.requirePhase(Shop, in)
		if err == nil {
			err = t.buyPowerUp(in)
		}
	case RemoveCard:
		err = t.requirePhase(Shop, in)
		if err == nil {
			err = t.removeCard(in.Card)
		}
	case CloseShop:
		err = t.requirePhase(Shop, in)
		if err == nil {
			t.closeShop()
		}
	default:
		err = fmt.Errorf("%w: unknown intent %T", ErrWrongPhase, intent)
	}

	if err != nil {
		prev := s.Clone()
		prev.Message = describeError(err)
		return Result{State: prev, Err: err}
	}
	return t.result()
}

func (t *transition) result() Result {
	t.state.Message = Describe(t.events)
	return Result{State: t.state, Events: t.events}
}

func (t *transition) requirePhase(want Phase, in Intent) error {
	if t.state.Phase != want {
		return fmt.Errorf("%w: cannot %s while %s", ErrWrongPhase, in.Name(), t.state.Phase)
	}
	return nil
}

// ensureCards rebuilds the deck when fewer than n cards remain. Removed
// cards stay out of the rebuilt deck.
func (t *transition) ensureCards(n int) {
	if t.state.Deck.Len() >= n {
		return
	}
	t.state.Deck = deck.New(t.rng, t.state.Removed...)
	t.emit(DeckReshuffledEvent{Size: t.state.Deck.Len()})
}

// draw takes one card, reshuffling first if the deck is empty.
func (t *transition) draw() deck.Card {
	t.ensureCards(1)
	c, err := t.state.Deck.Draw()
	if err != nil {
		// A rebuilt deck always holds at least MinDeckSize cards.
		panic(fmt.Sprintf("draw after reshuffle: %v", err))
	}
	return c
}

// dealHand deals a fresh two-card hand and rolls the high-stakes flag.
func (t *transition) dealHand() {
	t.ensureCards(2)
	cards, err := t.state.Deck.DrawN(2)
	if err != nil {
		panic(fmt.Sprintf("deal after reshuffle: %v", err))
	}
	t.state.Hand = cards
	t.state.HighStakes = t.rng.Float64() < t.rules.HighStakesChance
	t.emit(HandDealtEvent{Cards: cards, HighStakes: t.state.HighStakes})
}

func (t *transition) hit() {
	c := t.draw()
	t.state.Hand = append(t.state.Hand, c)
	t.emit(CardDrawnEvent{Card: c, Score: Score(t.state.Hand)})

	if t.state.HasPowerUp(HeartsBonus) && c.Suit == deck.Hearts {
		before := t.state.Health
		t.state.Health = clampHealth(t.rules, before+t.rules.HeartHeal)
		t.emit(HeartHealedEvent{Amount: t.state.Health - before, Health: t.state.Health})
	}

	if IsBust(t.state.Hand) {
		t.bust()
	}
}

// bust settles a busted hand. Busting never opens the shop.
func (t *transition) bust() {
	st := settleBust(t.rules, &t.state)
	t.state.LastSettlement = &st
	t.emit(HandSettledEvent{Settlement: st})

	if t.state.Health == 0 {
		t.gameOver()
		return
	}
	t.dealHand()
}

func (t *transition) stand() {
	st := settleStand(t.rules, &t.state)
	t.state.LastSettlement = &st
	t.emit(HandSettledEvent{Settlement: st})

	switch {
	case t.state.Health == 0:
		t.gameOver()
	case t.state.HandsCompleted%t.rules.ShopFrequency == 0:
		t.openShop()
	default:
		t.dealHand()
	}
}

func (t *transition) gameOver() {
	t.state.Phase = Lost
	t.emit(GameOverEvent{
		HandsCompleted: t.state.HandsCompleted,
		Chips:          t.state.Chips,
	})
}
