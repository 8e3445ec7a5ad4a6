// Package bot provides policy agents that decide actions from the
// engine's snapshot API. The engine only validates and applies the
// actions agents choose; no agent reaches engine internals.
package bot

import (
	rand "math/rand/v2"

	"github.com/cardroom/holdem/internal/game"
)

// Agent picks an action from a seat's private snapshot. The returned
// amount is the total raise-to amount and is only meaningful for Raise.
type Agent interface {
	Act(st *game.PrivateState) (game.Action, int)
}

// Random plays a uniformly random legal action, raising to a random
// amount within the legal bounds. Useful for simulations and for
// exercising the engine.
type Random struct {
	rng *rand.Rand

	// FoldBias skews the random choice away from folding when another
	// action is available, expressed as extra weight on non-fold
	// actions. Zero means uniform.
	FoldBias int
}

// NewRandom creates a random agent with its own decision source.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng, FoldBias: 2}
}

// Act implements Agent.
func (r *Random) Act(st *game.PrivateState) (game.Action, int) {
	actions := st.LegalActions
	if len(actions) == 0 {
		return game.Fold, 0
	}

	weights := make([]int, len(actions))
	total := 0
	for i, a := range actions {
		weights[i] = 1
		if a != game.Fold {
			weights[i] += r.FoldBias
		}
		total += weights[i]
	}

	pick := r.rng.IntN(total)
	var action game.Action
	for i, w := range weights {
		if pick < w {
			action = actions[i]
			break
		}
		pick -= w
	}

	if action != game.Raise {
		return action, 0
	}
	if st.MaxRaiseTo <= st.MinRaiseTo {
		return game.Raise, st.MaxRaiseTo
	}
	return game.Raise, st.MinRaiseTo + r.rng.IntN(st.MaxRaiseTo-st.MinRaiseTo+1)
}

// CallingStation checks when it can and calls when it must. It never
// folds and never raises, which makes hands terminate quickly.
type CallingStation struct{}

// Act implements Agent.
func (CallingStation) Act(st *game.PrivateState) (game.Action, int) {
	for _, a := range st.LegalActions {
		if a == game.Check {
			return game.Check, 0
		}
	}
	for _, a := range st.LegalActions {
		if a == game.Call {
			return game.Call, 0
		}
	}
	// Calling costs the whole stack.
	for _, a := range st.LegalActions {
		if a == game.AllIn {
			return game.AllIn, 0
		}
	}
	return game.Fold, 0
}

// New returns the named built-in agent, defaulting to Random.
func New(strategy string, rng *rand.Rand) Agent {
	switch strategy {
	case "caller", "calling-station":
		return CallingStation{}
	default:
		return NewRandom(rng)
	}
}
