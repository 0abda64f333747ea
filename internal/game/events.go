package game

import (
	"github.com/lox/blackjack-survival/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for everything a transition can report
const (
	EventTypeGameStarted    EventType = "game_started"
	EventTypeHandDealt      EventType = "hand_dealt"
	EventTypeCardDrawn      EventType = "card_drawn"
	EventTypeHeartHealed    EventType = "heart_healed"
	EventTypeDeckReshuffled EventType = "deck_reshuffled"
	EventTypeHandSettled    EventType = "hand_settled"
	EventTypeShopOpened     EventType = "shop_opened"
	EventTypeShopClosed     EventType = "shop_closed"
	EventTypePurchase       EventType = "purchase"
	EventTypeCardRemoved    EventType = "card_removed"
	EventTypeGameOver       EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything a transition reports happened.
type GameEvent interface {
	EventType() EventType
}

// GameStartedEvent is published when a new run begins
type GameStartedEvent struct {
	Health int
}

func (e GameStartedEvent) EventType() EventType { return EventTypeGameStarted }

// HandDealtEvent is published when a fresh two-card hand is dealt
type HandDealtEvent struct {
	Cards      []deck.Card
	HighStakes bool
}

func (e HandDealtEvent) EventType() EventType { return EventTypeHandDealt }

// CardDrawnEvent is published when the player hits
type CardDrawnEvent struct {
	Card  deck.Card
	Score int
}

func (e CardDrawnEvent) EventType() EventType { return EventTypeCardDrawn }

// HeartHealedEvent is published when the hearts power-up heals the player
type HeartHealedEvent struct {
	Amount int
	Health int
}

func (e HeartHealedEvent) EventType() EventType { return EventTypeHeartHealed }

// DeckReshuffledEvent is published when the deck ran short and was rebuilt
type DeckReshuffledEvent struct {
	Size int
}

func (e DeckReshuffledEvent) EventType() EventType { return EventTypeDeckReshuffled }

// HandSettledEvent is published when a hand ends by standing or busting
type HandSettledEvent struct {
	Settlement Settlement
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }

// ShopOpenedEvent is published when the shop opens
type ShopOpenedEvent struct {
	Offers []deck.Card
}

func (e ShopOpenedEvent) EventType() EventType { return EventTypeShopOpened }

// ShopClosedEvent is published when the player leaves the shop
type ShopClosedEvent struct{}

func (e ShopClosedEvent) EventType() EventType { return EventTypeShopClosed }

// PurchaseKind distinguishes shop purchases.
type PurchaseKind string

const (
	PurchaseHealth  PurchaseKind = "health"
	PurchasePowerUp PurchaseKind = "power_up"
	PurchaseRemoval PurchaseKind = "removal"
)

// PurchaseEvent is published for every successful shop purchase
type PurchaseEvent struct {
	Kind   PurchaseKind
	Item   string
	Amount int // health gained, for health packs
	Cost   int
}

func (e PurchaseEvent) EventType() EventType { return EventTypePurchase }

// CardRemovedEvent is published when a card leaves the run for good
type CardRemovedEvent struct {
	Card     deck.Card
	Backfill *deck.Card // replacement offer, if one was available
}

func (e CardRemovedEvent) EventType() EventType { return EventTypeCardRemoved }

// GameOverEvent is published when health reaches zero
type GameOverEvent struct {
	HandsCompleted int
	Chips          int
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber.
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f.
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers cannot be compared and so cannot be unsubscribed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
