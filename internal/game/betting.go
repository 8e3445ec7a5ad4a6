package game

import (
	"fmt"

	"github.com/cardroom/holdem/internal/rules"
)

// Street represents the phase of a hand
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
	Complete
)

// String returns the string representation of a street
func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown", "complete"}[s]
}

// boardSize returns the number of community cards the street calls for.
func (s Street) boardSize() int {
	switch s {
	case Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	default:
		return 5
	}
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

// String returns the string representation of an action
func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

// ParseAction parses the wire name of an action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	case "allin", "all_in", "all-in":
		return AllIn, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// ActionRecord is one applied action, kept per betting round to detect
// round completion and exposed as hand history.
type ActionRecord struct {
	Seat      int
	Action    Action
	Amount    int // total bet-to amount after the action
	Increment int // raise increment over the previous bet level, if any
	AllIn     bool
	Street    Street
}

// bettingRound tracks the state of the active betting round.
type bettingRound struct {
	CurrentBet    int    // highest total round-bet outstanding
	LastFullRaise int    // last full raise increment
	ShortAllInSum int    // consecutive short all-in increments since the last full raise
	BigBlind      int
	Acted         []bool // per seat: acted since the last full raise
	Records       []ActionRecord
}

func newBettingRound(numSeats, bigBlind int) *bettingRound {
	return &bettingRound{
		BigBlind: bigBlind,
		Acted:    make([]bool, numSeats),
	}
}

// reset prepares the round state for a fresh street.
func (br *bettingRound) reset() {
	br.CurrentBet = 0
	br.LastFullRaise = 0
	br.ShortAllInSum = 0
	br.Records = br.Records[:0]
	for i := range br.Acted {
		br.Acted[i] = false
	}
}

// minRaiseTo returns the minimum legal total raise-to amount.
func (br *bettingRound) minRaiseTo() int {
	return rules.MinRaiseTo(br.CurrentBet, br.LastFullRaise, br.BigBlind)
}

// reopen clears the acted flags so every player gets to act again,
// keeping only the raiser's.
func (br *bettingRound) reopen(raiser int) {
	for i := range br.Acted {
		br.Acted[i] = false
	}
	br.Acted[raiser] = true
}

// complete reports whether the betting round is finished: every player
// who can still act has matched the current bet level and has acted at
// least once since the last full raise. Blind posts do not count as
// acting, which gives the big blind its preflop option.
func (br *bettingRound) complete(players []*Player) bool {
	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		if !br.Acted[p.Seat] || p.Bet != br.CurrentBet {
			return false
		}
	}
	return true
}
