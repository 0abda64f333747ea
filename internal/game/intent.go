package game

import "github.com/lox/blackjack-survival/internal/deck"

// Intent is a player request forwarded by a host into the state machine.
type Intent interface {
	Name() string
}

// Hit draws one more card.
type Hit struct{}

// Stand ends the hand and settles it.
type Stand struct{}

// BuyHealth buys the health pack with this amount and cost.
type BuyHealth struct {
	Amount int
	Cost   int
}

// BuyPowerUp buys a power-up. Name and Cost are optional; when set they
// must match the catalogue.
type BuyPowerUp struct {
	ID   PowerUpID
	Name string
	Cost int
}

// RemoveCard removes an offered card from the run.
type RemoveCard struct {
	Card deck.Card
}

// CloseShop leaves the shop and deals the next hand.
type CloseShop struct{}

// StartNewGame abandons the current run, if any, and starts a fresh one.
type StartNewGame struct{}

func (Hit) Name() string          { return "hit" }
func (Stand) Name() string        { return "stand" }
func (BuyHealth) Name() string    { return "buy health" }
func (BuyPowerUp) Name() string   { return "buy power-up" }
func (RemoveCard) Name() string   { return "remove card" }
func (CloseShop) Name() string    { return "close shop" }
func (StartNewGame) Name() string { return "start new game" }
