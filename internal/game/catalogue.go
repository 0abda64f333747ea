package game

// PowerUpID identifies a shop power-up.
type PowerUpID string

const (
	HeartsBonus PowerUpID = "heartsBonus"
	ClubsBonus  PowerUpID = "clubsBonus"
)

// PowerUp is a one-per-game passive upgrade bought in the shop.
type PowerUp struct {
	ID          PowerUpID `json:"id"`
	Name        string    `json:"name"`
	Cost        int       `json:"cost"`
	Description string    `json:"description,omitempty"`
}

// HealthPack is a health purchase tier. MaxHealthToBuy, when non-zero, is the
// highest current health at which the pack may be bought.
type HealthPack struct {
	Amount         int `json:"amount"`
	Cost           int `json:"cost"`
	MaxHealthToBuy int `json:"maxHealthToBuy,omitempty"`
}

// DefaultPowerUps returns the standard power-up catalogue.
func DefaultPowerUps() []PowerUp {
	return []PowerUp{
		{ID: HeartsBonus, Name: "Hearts Bonus", Cost: 100, Description: "+1 health whenever you draw a heart"},
		{ID: ClubsBonus, Name: "Clubs Bonus", Cost: 150, Description: "+5 chips per club in a hand you stand on"},
	}
}

// DefaultHealthPacks returns the standard health tiers.
func DefaultHealthPacks() []HealthPack {
	return []HealthPack{
		{Amount: 5, Cost: 50},
		{Amount: 15, Cost: 120},
		{Amount: 30, Cost: 200, MaxHealthToBuy: 30},
	}
}
