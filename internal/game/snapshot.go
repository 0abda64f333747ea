package game

import (
	"slices"

	"github.com/lox/blackjack-survival/internal/deck"
	"github.com/lox/blackjack-survival/internal/statistics"
)

// Snapshot is the read-only view a renderer receives after every transition.
type Snapshot struct {
	Phase          Phase            `json:"phase"`
	Health         int              `json:"health"`
	MaxHealth      int              `json:"maxHealth"`
	Chips          int              `json:"chips"`
	HandsCompleted int              `json:"handsCompleted"`
	Streak         int              `json:"streak"`
	HighStakes     bool             `json:"isHighStakes"`
	Hand           []deck.Card      `json:"hand"`
	Score          int              `json:"score"`
	Soft           bool             `json:"soft"`
	DeckSize       int              `json:"deckSize"`
	NextShopIn     int              `json:"nextShopIn"`
	PowerUps       []PowerUp        `json:"powerUps"`
	LastSettlement *Settlement      `json:"lastSettlement,omitempty"`
	Message        string           `json:"message"`
	Shop           *ShopView        `json:"shop,omitempty"`
	Stats          statistics.Stats `json:"stats"`
}

// ShopView lists what the shop offers and what the player can afford.
type ShopView struct {
	HealthPacks []HealthPackView `json:"healthPacks"`
	PowerUps    []PowerUpView    `json:"powerUps"`
	Offers      []deck.Card      `json:"offers"`
	RemovalCost int              `json:"removalCost"`
	CanRemove   bool             `json:"canRemove"`
}

// HealthPackView is a health tier annotated for the current state.
type HealthPackView struct {
	HealthPack
	Affordable bool `json:"affordable"`
	Eligible   bool `json:"eligible"`
}

// PowerUpView is a power-up annotated for the current state.
type PowerUpView struct {
	PowerUp
	Owned      bool `json:"owned"`
	Affordable bool `json:"affordable"`
}

// NewSnapshot builds the renderer view of s.
func NewSnapshot(rules Rules, s State, stats statistics.Stats) Snapshot {
	snap := Snapshot{
		Phase:          s.Phase,
		Health:         s.Health,
		MaxHealth:      rules.MaxHealth,
		Chips:          s.Chips,
		HandsCompleted: s.HandsCompleted,
		Streak:         s.Streak,
		HighStakes:     s.HighStakes,
		Hand:           slices.Clone(s.Hand),
		Score:          Score(s.Hand),
		Soft:           IsSoft(s.Hand),
		DeckSize:       s.Deck.Len(),
		NextShopIn:     rules.ShopFrequency - s.HandsCompleted%rules.ShopFrequency,
		PowerUps:       slices.Clone(s.PowerUps),
		Message:        s.Message,
		Stats:          stats,
	}
	if s.LastSettlement != nil {
		settled := *s.LastSettlement
		snap.LastSettlement = &settled
	}
	if s.Phase == Shop {
		snap.Shop = newShopView(rules, s)
	}
	return snap
}

func newShopView(rules Rules, s State) *ShopView {
	v := &ShopView{
		Offers:      slices.Clone(s.Offers),
		RemovalCost: rules.RemovalCost,
		CanRemove:   s.Chips >= rules.RemovalCost && s.PoolSize()-1 >= rules.MinDeckSize,
	}
	for _, p := range rules.HealthPacks {
		v.HealthPacks = append(v.HealthPacks, HealthPackView{
			HealthPack: p,
			Affordable: s.Chips >= p.Cost,
			Eligible:   p.MaxHealthToBuy == 0 || s.Health <= p.MaxHealthToBuy,
		})
	}
	for _, p := range rules.PowerUps {
		v.PowerUps = append(v.PowerUps, PowerUpView{
			PowerUp:    p,
			Owned:      s.HasPowerUp(p.ID),
			Affordable: s.Chips >= p.Cost,
		})
	}
	return v
}
