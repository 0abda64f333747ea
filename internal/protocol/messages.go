// Package protocol defines the JSON messages exchanged over the WebSocket
// connection.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lox/blackjack-survival/internal/deck"
	"github.com/lox/blackjack-survival/internal/game"
)

// MessageType identifies the type of message
type MessageType string

const (
	// Client -> Server
	TypeHit        MessageType = "hit"
	TypeStand      MessageType = "stand"
	TypeBuyHealth  MessageType = "buy_health"
	TypeBuyPowerUp MessageType = "buy_power_up"
	TypeRemoveCard MessageType = "remove_card"
	TypeCloseShop  MessageType = "close_shop"
	TypeNewGame    MessageType = "new_game"

	// Server -> Client
	TypeSnapshot MessageType = "snapshot"
	TypeError    MessageType = "error"
)

// Error codes carried by error messages.
const (
	CodeInvalidMessage = "invalid_message"
	CodeUnknownType    = "unknown_message_type"
)

var (
	ErrInvalidMessage     = errors.New("invalid message")
	ErrUnknownMessageType = errors.New("unknown message type")
)

// Client -> Server Messages

// Command is sent by the client to play. Only the fields relevant to Type
// are set.
type Command struct {
	Type      MessageType    `json:"type"`
	Amount    int            `json:"amount,omitempty"`
	Cost      int            `json:"cost,omitempty"`
	ID        game.PowerUpID `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Card      *deck.Card     `json:"card,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
}

// DecodeCommand parses a client message.
func DecodeCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if cmd.Type == "" {
		return Command{}, fmt.Errorf("%w: missing type", ErrInvalidMessage)
	}
	return cmd, nil
}

// Intent converts the command into a game intent.
func (c Command) Intent() (game.Intent, error) {
	switch c.Type {
	case TypeHit:
		return game.Hit{}, nil
	case TypeStand:
		return game.Stand{}, nil
	case TypeBuyHealth:
		if c.Amount <= 0 {
			return nil, fmt.Errorf("%w: buy_health needs a positive amount", ErrInvalidMessage)
		}
		return game.BuyHealth{Amount: c.Amount, Cost: c.Cost}, nil
	case TypeBuyPowerUp:
		if c.ID == "" {
			return nil, fmt.Errorf("%w: buy_power_up needs an id", ErrInvalidMessage)
		}
		return game.BuyPowerUp{ID: c.ID, Name: c.Name, Cost: c.Cost}, nil
	case TypeRemoveCard:
		if c.Card == nil {
			return nil, fmt.Errorf("%w: remove_card needs a card", ErrInvalidMessage)
		}
		return game.RemoveCard{Card: *c.Card}, nil
	case TypeCloseShop:
		return game.CloseShop{}, nil
	case TypeNewGame:
		return game.StartNewGame{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, c.Type)
	}
}

// NewCommand builds the client message for an intent.
func NewCommand(intent game.Intent) (Command, error) {
	switch in := intent.(type) {
	case game.Hit:
		return Command{Type: TypeHit}, nil
	case game.Stand:
		return Command{Type: TypeStand}, nil
	case game.BuyHealth:
		return Command{Type: TypeBuyHealth, Amount: in.Amount, Cost: in.Cost}, nil
	case game.BuyPowerUp:
		return Command{Type: TypeBuyPowerUp, ID: in.ID, Name: in.Name, Cost: in.Cost}, nil
	case game.RemoveCard:
		c := in.Card
		return Command{Type: TypeRemoveCard, Card: &c}, nil
	case game.CloseShop:
		return Command{Type: TypeCloseShop}, nil
	case game.StartNewGame:
		return Command{Type: TypeNewGame}, nil
	default:
		return Command{}, fmt.Errorf("%w: %T", ErrUnknownMessageType, intent)
	}
}

// Server -> Client Messages

// Snapshot is sent on connect and after every command. Error is set when
// the game rejected the command; the snapshot message explains why.
type Snapshot struct {
	Type      MessageType   `json:"type"`
	Session   string        `json:"session"`
	Snapshot  game.Snapshot `json:"snapshot"`
	Error     string        `json:"error,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewSnapshot wraps a game snapshot for the wire.
func NewSnapshot(session string, snap game.Snapshot, rejected error, now time.Time) Snapshot {
	msg := Snapshot{
		Type:      TypeSnapshot,
		Session:   session,
		Snapshot:  snap,
		Timestamp: now,
	}
	if rejected != nil {
		msg.Error = rejected.Error()
	}
	return msg
}

// Error is sent for messages the server could not understand.
type Error struct {
	Type      MessageType `json:"type"`
	Code      string      `json:"code"`
	Error     string      `json:"error"`
	RequestID string      `json:"requestId,omitempty"`
}

// NewError builds an error message, picking the code from err.
func NewError(err error) Error {
	code := CodeInvalidMessage
	if errors.Is(err, ErrUnknownMessageType) {
		code = CodeUnknownType
	}
	return Error{Type: TypeError, Code: code, Error: err.Error()}
}
