package game

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable input-error class. They are
// returned to the caller with the hand state untouched.
var (
	ErrNotYourTurn       = errors.New("not your turn")
	ErrHandNotInProgress = errors.New("no hand in progress")
	ErrHandInProgress    = errors.New("hand already in progress")
	ErrNotEnoughPlayers  = errors.New("need at least 2 players with chips")
	ErrNoSuchSeat        = errors.New("no such seat")
)

// IllegalActionError reports an action that is not legal in the current
// state: a check while owing chips, a raise below the minimum, an
// ineligible seat. The hand state is unchanged and the caller may retry
// with a legal action.
type IllegalActionError struct {
	Seat   int
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal %s from seat %d: %s", e.Action, e.Seat, e.Reason)
}

func illegalf(seat int, action Action, format string, args ...any) error {
	return &IllegalActionError{Seat: seat, Action: action, Reason: fmt.Sprintf(format, args...)}
}
