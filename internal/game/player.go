package game

import "github.com/cardroom/holdem/poker"

// Status is a player's standing within the current hand.
type Status int

const (
	// StatusActive players are in the hand and may act.
	StatusActive Status = iota
	// StatusFolded players have given up their claim on every pot
	// formed after the fold. They never act again in the hand.
	StatusFolded
	// StatusAllIn players have their whole stack committed and take no
	// further actions, but contest the pots they are eligible for.
	StatusAllIn
	// StatusOut players are eliminated: zero chips, not dealt in.
	StatusOut
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "allin"
	case StatusOut:
		return "out"
	default:
		return "unknown"
	}
}

// Player is one seat at the table. It is owned exclusively by the hand
// state machine for the duration of a hand; the stack persists across
// hands.
type Player struct {
	Seat      int
	Name      string
	Chips     int
	HoleCards []poker.Card
	Bet       int // chips committed in the current betting round
	TotalBet  int // chips committed since the hand started
	Status    Status
}

// InHand reports whether the player still contests the hand.
func (p *Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

// CanAct reports whether the player may still take actions.
func (p *Player) CanAct() bool {
	return p.Status == StatusActive
}

// commit moves up to n chips from the stack into the current-round bet
// and returns the amount actually moved. The player is marked all-in
// when the stack empties.
func (p *Player) commit(n int) int {
	if n > p.Chips {
		n = p.Chips
	}
	p.Chips -= n
	p.Bet += n
	p.TotalBet += n
	if p.Chips == 0 && p.Status == StatusActive {
		p.Status = StatusAllIn
	}
	return n
}

// resetForHand clears per-hand state. Players without chips sit out.
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Bet = 0
	p.TotalBet = 0
	if p.Chips > 0 {
		p.Status = StatusActive
	} else {
		p.Status = StatusOut
	}
}
