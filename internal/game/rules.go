package game

import (
	"errors"
	"fmt"
)

// Rules holds every tunable number of the game. DefaultRules matches the
// classic game; hosts may override a few values from configuration.
type Rules struct {
	MaxHealth        int     // starting health and health cap
	ShopFrequency    int     // shop opens every N completed stands
	HighStakesChance float64 // probability a dealt hand is high-stakes

	HighStakesLossMultiplier float64
	HighStakesChipMultiplier int

	BustLoss             int
	BaseChips            int
	Perfect21HealthBonus int
	Perfect21ChipBonus   int
	NaturalChipBonus     int
	ClubChipBonus        int
	StreakChipBonus      int
	HeartHeal            int

	RemovalCost   int
	RemovalOffers int
	MinDeckSize   int // removals may not shrink the card pool below this

	HealthPacks []HealthPack
	PowerUps    []PowerUp
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		MaxHealth:                100,
		ShopFrequency:            5,
		HighStakesChance:         0.1,
		HighStakesLossMultiplier: 2.5,
		HighStakesChipMultiplier: 2,
		BustLoss:                 21,
		BaseChips:                10,
		Perfect21HealthBonus:     5,
		Perfect21ChipBonus:       25,
		NaturalChipBonus:         15,
		ClubChipBonus:            5,
		StreakChipBonus:          5,
		HeartHeal:                1,
		RemovalCost:              25,
		RemovalOffers:            3,
		MinDeckSize:              2,
		HealthPacks:              DefaultHealthPacks(),
		PowerUps:                 DefaultPowerUps(),
	}
}

// Validate rejects rule sets the state machine cannot run with.
func (r Rules) Validate() error {
	var errs []error
	if r.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("max health must be positive, got %d", r.MaxHealth))
	}
	if r.ShopFrequency <= 0 {
		errs = append(errs, fmt.Errorf("shop frequency must be positive, got %d", r.ShopFrequency))
	}
	if r.HighStakesChance < 0 || r.HighStakesChance > 1 {
		errs = append(errs, fmt.Errorf("high stakes chance must be within [0,1], got %g", r.HighStakesChance))
	}
	if r.RemovalCost < 0 {
		errs = append(errs, fmt.Errorf("removal cost must not be negative, got %d", r.RemovalCost))
	}
	if r.RemovalOffers < 0 {
		errs = append(errs, fmt.Errorf("removal offers must not be negative, got %d", r.RemovalOffers))
	}
	if r.MinDeckSize < 2 {
		errs = append(errs, fmt.Errorf("min deck size must be at least 2, got %d", r.MinDeckSize))
	}
	for _, p := range r.HealthPacks {
		if p.Amount <= 0 || p.Cost < 0 {
			errs = append(errs, fmt.Errorf("invalid health pack %+v", p))
		}
	}
	return errors.Join(errs...)
}

// healthPack finds the catalogued tier matching amount and cost exactly.
func (r Rules) healthPack(amount, cost int) (HealthPack, bool) {
	for _, p := range r.HealthPacks {
		if p.Amount == amount && p.Cost == cost {
			return p, true
		}
	}
	return HealthPack{}, false
}

func (r Rules) powerUp(id PowerUpID) (PowerUp, bool) {
	for _, p := range r.PowerUps {
		if p.ID == id {
			return p, true
		}
	}
	return PowerUp{}, false
}
