// Package game implements the Blackjack Survival rules engine.
//
// A run is a sequence of single-player blackjack hands played against a
// health pool rather than a dealer. Standing costs the gap between the hand's
// score and 21 in health and pays out chips; busting costs a flat amount.
// Every few hands a shop opens where chips buy health, power-ups and the
// removal of cards from the deck.
//
// The engine is a pure transition function. Apply takes the current State,
// an Intent and a random source and returns the next State together with the
// events produced on the way. Session wraps Apply with the lifetime
// statistics and an EventBus for hosts such as the terminal UI, the
// WebSocket server and the simulator.
//
// # Basic Usage
//
//	sess := game.NewSession(randutil.New(42))
//	snap, err := sess.Dispatch(game.Hit{})
//	if errors.Is(err, game.ErrWrongPhase) {
//	    // snap.Message explains what went wrong
//	}
//
// # Deterministic Testing
//
// All randomness flows through a randutil.Source, so a fixed seed replays a
// run exactly. Tests that need specific cards build a State with
// deck.FromCards and pass it to Apply or WithState.
package game
