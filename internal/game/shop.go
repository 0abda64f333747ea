package game

import (
	"fmt"
	"slices"

	"github.com/lox/blackjack-survival/internal/deck"
)

// openShop moves the run into the shop and picks the removal offers.
func (t *transition) openShop() {
	t.state.Phase = Shop
	t.ensureCards(t.rules.RemovalOffers)
	t.state.Offers = t.state.Deck.Sample(t.rng, t.rules.RemovalOffers)
	t.emit(ShopOpenedEvent{Offers: slices.Clone(t.state.Offers)})
}

func (t *transition) closeShop() {
	t.state.Phase = Playing
	t.state.Offers = nil
	t.emit(ShopClosedEvent{})
	t.dealHand()
}

func (t *transition) buyHealth(in BuyHealth) error {
	pack, ok := t.rules.healthPack(in.Amount, in.Cost)
	if !ok {
		return fmt.Errorf("%w: %d health for %d chips", ErrUnknownItem, in.Amount, in.Cost)
	}
	if t.state.Chips < pack.Cost {
		return fmt.Errorf("%w: %d health costs %d", ErrInsufficientFunds, pack.Amount, pack.Cost)
	}
	if pack.MaxHealthToBuy > 0 && t.state.Health > pack.MaxHealthToBuy {
		return fmt.Errorf("%w: the %d health pack needs health of %d or less", ErrNotEligible, pack.Amount, pack.MaxHealthToBuy)
	}

	before := t.state.Health
	t.state.Chips -= pack.Cost
	t.state.Health = clampHealth(t.rules, before+pack.Amount)
	t.emit(PurchaseEvent{
		Kind:   PurchaseHealth,
		Item:   fmt.Sprintf("%d health", pack.Amount),
		Amount: t.state.Health - before,
		Cost:   pack.Cost,
	})
	return nil
}

func (t *transition) buyPowerUp(in BuyPowerUp) error {
	p, ok := t.rules.powerUp(in.ID)
	if !ok {
		return fmt.Errorf("%w: power-up %q", ErrUnknownItem, in.ID)
	}
	if (in.Cost != 0 && in.Cost != p.Cost) || (in.Name != "" && in.Name != p.Name) {
		return fmt.Errorf("%w: %s costs %d", ErrUnknownItem, p.Name, p.Cost)
	}
	if t.state.Chips < p.Cost {
		return fmt.Errorf("%w: %s costs %d", ErrInsufficientFunds, p.Name, p.Cost)
	}
	if t.state.HasPowerUp(p.ID) {
		return ErrAlreadyOwned
	}

	t.state.Chips -= p.Cost
	t.state.PowerUps = append(t.state.PowerUps, p)
	t.emit(PurchaseEvent{Kind: PurchasePowerUp, Item: p.Name, Cost: p.Cost})
	return nil
}

// removeCard deletes every copy of c from the deck for the rest of the run
// and backfills the offers from the remaining deck.
func (t *transition) removeCard(c deck.Card) error {
	idx := slices.Index(t.state.Offers, c)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotOffered, c)
	}
	if t.state.Chips < t.rules.RemovalCost {
		return fmt.Errorf("%w: card removal costs %d", ErrInsufficientFunds, t.rules.RemovalCost)
	}
	if t.state.PoolSize()-1 < t.rules.MinDeckSize {
		return fmt.Errorf("%w: at least %d cards must remain", ErrDeckTooSmall, t.rules.MinDeckSize)
	}

	t.state.Chips -= t.rules.RemovalCost
	t.state.Deck.Remove(c)
	t.state.Removed = append(t.state.Removed, c)
	t.state.Offers = slices.Delete(t.state.Offers, idx, idx+1)

	var backfill *deck.Card
	if !t.state.Deck.IsEmpty() && len(t.state.Offers) < t.rules.RemovalOffers {
		if picked := t.state.Deck.Sample(t.rng, 1, t.state.Offers...); len(picked) == 1 {
			t.state.Offers = append(t.state.Offers, picked[0])
			backfill = &picked[0]
		}
	}

	t.emit(PurchaseEvent{Kind: PurchaseRemoval, Item: c.String(), Cost: t.rules.RemovalCost})
	t.emit(CardRemovedEvent{Card: c, Backfill: backfill})
	return nil
}
