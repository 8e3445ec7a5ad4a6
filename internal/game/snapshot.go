package game

import "github.com/cardroom/holdem/poker"

// SeatState is the public view of one seat.
type SeatState struct {
	Seat       int          `json:"seat"`
	Name       string       `json:"name"`
	Stack      int          `json:"stack"`
	Bet        int          `json:"bet"`
	TotalBet   int          `json:"total_bet"`
	Status     string       `json:"status"`
	Dealer     bool         `json:"dealer"`
	SmallBlind bool         `json:"small_blind"`
	BigBlind   bool         `json:"big_blind"`
	HoleCards  []poker.Card `json:"-"`
}

// PublicState is a snapshot of everything visible to all observers.
// All slices are copies; holders cannot reach engine-internal state.
type PublicState struct {
	HandNum    int          `json:"hand_num"`
	Street     string       `json:"street"`
	Board      []poker.Card `json:"board"`
	Pot        int          `json:"pot"`
	CurrentBet int          `json:"current_bet"`
	Actor      int          `json:"actor"` // -1 when no seat is to act
	Seats      []SeatState  `json:"seats"`
}

// RaisePreset is a pot-relative raise-to suggestion. It is only usable
// when Valid: at least the minimum raise and within the seat's stack.
type RaisePreset struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	Valid  bool   `json:"valid"`
}

// PrivateState extends the public snapshot with everything one seat is
// entitled to see: its hole cards, its legal actions and raise bounds.
type PrivateState struct {
	PublicState
	Seat         int           `json:"seat"`
	HoleCards    []poker.Card  `json:"hole_cards"`
	LegalActions []Action      `json:"-"`
	ToCall       int           `json:"to_call"`
	MinRaiseTo   int           `json:"min_raise_to"`
	MaxRaiseTo   int           `json:"max_raise_to"`
	Presets      []RaisePreset `json:"presets"`
}

// PublicState returns a snapshot of the hand visible to all observers.
func (h *Hand) PublicState() *PublicState {
	seats := make([]SeatState, len(h.Players))
	for i, p := range h.Players {
		seats[i] = SeatState{
			Seat:       p.Seat,
			Name:       p.Name,
			Stack:      p.Chips,
			Bet:        p.Bet,
			TotalBet:   p.TotalBet,
			Status:     p.Status.String(),
			Dealer:     p.Seat == h.Dealer,
			SmallBlind: p.Seat == h.SBSeat,
			BigBlind:   p.Seat == h.BBSeat,
		}
	}

	return &PublicState{
		HandNum:    h.Num,
		Street:     h.Street.String(),
		Board:      append([]poker.Card{}, h.Board...),
		Pot:        potTotal(h.Players),
		CurrentBet: h.betting.CurrentBet,
		Actor:      h.Actor,
		Seats:      seats,
	}
}

// PrivateState returns the snapshot for one seat, including hole cards,
// the legal action set and raise bounds as if the seat were to act now.
func (h *Hand) PrivateState(seat int) (*PrivateState, error) {
	if seat < 0 || seat >= len(h.Players) {
		return nil, ErrNoSuchSeat
	}
	p := h.Players[seat]

	minTo, maxTo := h.RaiseBounds(seat)
	owed := h.betting.CurrentBet - p.Bet
	if owed < 0 {
		owed = 0
	}

	return &PrivateState{
		PublicState:  *h.PublicState(),
		Seat:         seat,
		HoleCards:    append([]poker.Card{}, p.HoleCards...),
		LegalActions: h.LegalActions(seat),
		ToCall:       owed,
		MinRaiseTo:   minTo,
		MaxRaiseTo:   maxTo,
		Presets:      h.raisePresets(seat),
	}, nil
}

// LegalActions returns the actions the seat could take if it were to
// act now, or nil if the seat cannot act.
func (h *Hand) LegalActions(seat int) []Action {
	p := h.Players[seat]
	if !h.InProgress() || !p.CanAct() {
		return nil
	}

	br := h.betting
	owed := br.CurrentBet - p.Bet

	if owed >= p.Chips && owed > 0 {
		// Calling costs the whole stack: push or fold.
		return []Action{Fold, AllIn}
	}

	actions := []Action{Fold}
	if owed == 0 {
		actions = append(actions, Check)
	} else {
		actions = append(actions, Call)
	}

	// Raising is closed for a seat that already acted since the last
	// full raise (a short all-in did not reopen the betting).
	if !br.Acted[seat] && p.Chips > owed {
		if p.Chips+p.Bet >= br.minRaiseTo() {
			actions = append(actions, Raise)
		}
		actions = append(actions, AllIn)
	}
	return actions
}

// RaiseBounds returns the minimum and maximum legal total raise-to
// amounts for the seat. The maximum is the seat's all-in total.
func (h *Hand) RaiseBounds(seat int) (minTo, maxTo int) {
	p := h.Players[seat]
	maxTo = p.Chips + p.Bet
	minTo = h.betting.minRaiseTo()
	if minTo > maxTo {
		minTo = maxTo
	}
	return minTo, maxTo
}

// raisePresets computes the standard pot-relative raise-to amounts.
func (h *Hand) raisePresets(seat int) []RaisePreset {
	p := h.Players[seat]
	br := h.betting

	owed := br.CurrentBet - p.Bet
	if owed < 0 {
		owed = 0
	}
	effectivePot := potTotal(h.Players) + owed
	minTo := br.minRaiseTo()
	maxTo := p.Chips + p.Bet

	fractions := []struct {
		name     string
		num, den int
	}{
		{"1/3 pot", 1, 3},
		{"1/2 pot", 1, 2},
		{"pot", 1, 1},
		{"2x pot", 2, 1},
	}

	presets := make([]RaisePreset, 0, len(fractions))
	for _, f := range fractions {
		amount := br.CurrentBet + effectivePot*f.num/f.den
		presets = append(presets, RaisePreset{
			Name:   f.name,
			Amount: amount,
			Valid:  amount >= minTo && amount <= maxTo,
		})
	}
	return presets
}
