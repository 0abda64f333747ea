package simulator

import (
	"github.com/lox/blackjack-survival/internal/game"
)

// Strategy picks the next intent for a session.
type Strategy interface {
	Decide(snap game.Snapshot) game.Intent
}

// ThresholdStrategy hits below StandOn and stands otherwise. In the shop it
// buys the largest health pack it can once health drops to HealAt, then any
// affordable power-up, then leaves.
type ThresholdStrategy struct {
	StandOn     int
	HealAt      int
	BuyPowerUps bool
}

// DefaultStrategy stands on 17 and heals at 40.
func DefaultStrategy() ThresholdStrategy {
	return ThresholdStrategy{StandOn: 17, HealAt: 40, BuyPowerUps: true}
}

// Decide implements Strategy.
func (s ThresholdStrategy) Decide(snap game.Snapshot) game.Intent {
	switch snap.Phase {
	case game.Lost:
		return nil
	case game.Shop:
		return s.shop(snap)
	}
	if snap.Score < s.StandOn {
		return game.Hit{}
	}
	return game.Stand{}
}

func (s ThresholdStrategy) shop(snap game.Snapshot) game.Intent {
	shop := snap.Shop
	if shop == nil {
		return game.CloseShop{}
	}

	if snap.Health <= s.HealAt && snap.Health < snap.MaxHealth {
		var best *game.HealthPackView
		for i := range shop.HealthPacks {
			p := &shop.HealthPacks[i]
			if p.Affordable && p.Eligible && (best == nil || p.Amount > best.Amount) {
				best = p
			}
		}
		if best != nil {
			return game.BuyHealth{Amount: best.Amount, Cost: best.Cost}
		}
	}

	if s.BuyPowerUps {
		for _, p := range shop.PowerUps {
			if p.Affordable && !p.Owned {
				return game.BuyPowerUp{ID: p.ID, Name: p.Name, Cost: p.Cost}
			}
		}
	}
	return game.CloseShop{}
}
