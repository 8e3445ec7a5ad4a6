package game

import (
	"reflect"
	"testing"
)

func TestLegalActionsFacingBet(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{1000, 1000, 1000}, 0, 1)

	// Under the gun facing the big blind.
	want := []Action{Fold, Call, Raise, AllIn}
	if got := h.LegalActions(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("LegalActions(0) = %v, want %v", got, want)
	}

	// Seats not in the hand or not to act still get their hypothetical
	// set; folded seats get none.
	apply(t, h, 0, Fold, 0)
	if got := h.LegalActions(0); got != nil {
		t.Fatalf("LegalActions after folding = %v, want nil", got)
	}
}

func TestLegalActionsPushOrFold(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{1000, 1000, 1000}, 0, 1)

	// A raise to the full stack leaves the next player only push or fold.
	apply(t, h, 0, Raise, 1000)
	want := []Action{Fold, AllIn}
	if got := h.LegalActions(1); !reflect.DeepEqual(got, want) {
		t.Fatalf("LegalActions(1) = %v, want %v", got, want)
	}
}

func TestPublicStateHidesHoleCards(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{1000, 1000}, 0, 1)
	st := h.PublicState()

	for _, seat := range st.Seats {
		if len(seat.HoleCards) != 0 {
			t.Fatalf("public snapshot leaks hole cards for seat %d", seat.Seat)
		}
	}
	if st.Pot != 15 {
		t.Fatalf("pot = %d, want 15", st.Pot)
	}
	if st.Actor != 0 {
		t.Fatalf("actor = %d, want 0", st.Actor)
	}
}

func TestPrivateState(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{1000, 1000, 1000}, 0, 1)

	ps, err := h.PrivateState(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(ps.HoleCards) != 2 {
		t.Fatalf("private snapshot has %d hole cards, want 2", len(ps.HoleCards))
	}
	if ps.ToCall != 10 {
		t.Fatalf("to call = %d, want 10", ps.ToCall)
	}
	if ps.MinRaiseTo != 20 || ps.MaxRaiseTo != 1000 {
		t.Fatalf("raise bounds (%d, %d), want (20, 1000)", ps.MinRaiseTo, ps.MaxRaiseTo)
	}

	if _, err := h.PrivateState(17); err == nil {
		t.Fatal("PrivateState for a bad seat succeeded, want error")
	}
}

func TestRaisePresets(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{1000, 1000, 1000}, 0, 1)

	ps, err := h.PrivateState(0)
	if err != nil {
		t.Fatal(err)
	}

	// Pot 15, call 10: effective pot 25 once the call is in.
	want := []RaisePreset{
		{Name: "1/3 pot", Amount: 18, Valid: false}, // below the minimum raise
		{Name: "1/2 pot", Amount: 22, Valid: true},
		{Name: "pot", Amount: 35, Valid: true},
		{Name: "2x pot", Amount: 60, Valid: true},
	}
	if !reflect.DeepEqual(ps.Presets, want) {
		t.Fatalf("presets = %+v, want %+v", ps.Presets, want)
	}
}

func TestRaisePresetsCappedByStack(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{1000, 1000, 45}, 0, 1)

	ps, err := h.PrivateState(0)
	if err != nil {
		t.Fatal(err)
	}
	// Seat 0 is deep; every preset within its stack stays valid.
	for _, p := range ps.Presets {
		if p.Amount > ps.MaxRaiseTo && p.Valid {
			t.Fatalf("preset %+v marked valid beyond the stack", p)
		}
	}

	// The short stack cannot use presets beyond its all-in total.
	apply(t, h, 0, Raise, 200)
	apply(t, h, 1, Call, 0)
	short, err := h.PrivateState(2)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range short.Presets {
		if p.Valid && p.Amount > 45 {
			t.Fatalf("short stack preset %+v exceeds the stack", p)
		}
	}
}

func TestSeatStateRoles(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{1000, 1000, 1000}, 1, 1)
	st := h.PublicState()

	for _, seat := range st.Seats {
		wantDealer := seat.Seat == 1
		wantSB := seat.Seat == 2
		wantBB := seat.Seat == 0
		if seat.Dealer != wantDealer || seat.SmallBlind != wantSB || seat.BigBlind != wantBB {
			t.Fatalf("seat %d roles = dealer %v sb %v bb %v", seat.Seat, seat.Dealer, seat.SmallBlind, seat.BigBlind)
		}
	}
}
