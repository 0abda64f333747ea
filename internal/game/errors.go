package game

import "errors"

// Non-fatal transition errors. A transition that fails with one of these
// returns the previous state unchanged apart from its message.
var (
	ErrInsufficientFunds = errors.New("not enough chips")
	ErrAlreadyOwned      = errors.New("you already own this power-up")
	ErrNotEligible       = errors.New("not eligible for this purchase")
	ErrUnknownItem       = errors.New("no such item in the shop")
	ErrNotOffered        = errors.New("that card is not offered for removal")
	ErrDeckTooSmall      = errors.New("the deck cannot get any smaller")
	ErrWrongPhase        = errors.New("action not available right now")
)
