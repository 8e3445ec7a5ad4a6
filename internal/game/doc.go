// Package game implements the authoritative rules engine for a Texas
// Hold'em hand: blind posting, turn order, bet and raise legality, pot
// and side-pot accounting, and showdown settlement under standard
// tournament conventions.
//
// The main types are Hand, which owns all mutable state for a single
// hand, and Game, which carries stacks and the dealer button across
// hands. Both are driven one action at a time:
//
//	g := game.NewGame(randutil.New(42), []string{"alice", "bob"}, 5, 10)
//	g.StartHand()
//	for g.InProgress() {
//	    st, _ := g.PrivateState(actor)
//	    settlement, err := g.ApplyAction(actor, decide(st), amount)
//	    ...
//	}
//
// Illegal actions are rejected with typed errors and leave the state
// untouched. Invariant violations (chip conservation, phase order) are
// programming defects and panic.
//
// Neither type is internally synchronized: a caller exposing a game to
// concurrent requests must serialize StartHand and ApplyAction per
// game instance. Snapshots returned by PublicState and PrivateState are
// copies and safe to hold.
package game
