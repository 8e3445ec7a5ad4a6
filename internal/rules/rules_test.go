package rules

import (
	"reflect"
	"testing"
)

func TestBlindPositions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		numPlayers int
		dealer     int
		sb, bb     int
	}{
		{"heads-up dealer posts small blind", 2, 0, 0, 1},
		{"heads-up dealer seat 1", 2, 1, 1, 0},
		{"three-handed", 3, 0, 1, 2},
		{"three-handed wraps", 3, 2, 0, 1},
		{"six-handed", 6, 2, 3, 4},
		{"six-handed wraps", 6, 5, 0, 1},
	}
	for _, tc := range cases {
		sb, bb := BlindPositions(tc.numPlayers, tc.dealer)
		if sb != tc.sb || bb != tc.bb {
			t.Errorf("%s: BlindPositions(%d, %d) = (%d, %d), want (%d, %d)",
				tc.name, tc.numPlayers, tc.dealer, sb, bb, tc.sb, tc.bb)
		}
	}
}

func TestFirstToAct(t *testing.T) {
	t.Parallel()

	// Heads-up the dealer opens preflop and closes postflop.
	if got := FirstToActPreflop(2, 0); got != 0 {
		t.Errorf("FirstToActPreflop(2, 0) = %d, want 0", got)
	}
	if got := FirstToActPostflop(2, 0); got != 1 {
		t.Errorf("FirstToActPostflop(2, 0) = %d, want 1", got)
	}

	// Multiway: under the gun preflop, left of the dealer postflop.
	if got := FirstToActPreflop(6, 2); got != 5 {
		t.Errorf("FirstToActPreflop(6, 2) = %d, want 5", got)
	}
	if got := FirstToActPreflop(3, 1); got != 1 {
		t.Errorf("FirstToActPreflop(3, 1) = %d, want 1", got)
	}
	if got := FirstToActPostflop(6, 5); got != 0 {
		t.Errorf("FirstToActPostflop(6, 5) = %d, want 0", got)
	}
}

func TestMinRaise(t *testing.T) {
	t.Parallel()

	// Opening round: minimum raise is one big blind over the current bet.
	if got := MinRaiseTo(10, 10, 10); got != 20 {
		t.Errorf("MinRaiseTo(10, 10, 10) = %d, want 20", got)
	}
	// After a raise from 20 to 60 the increment is 40, so the next
	// minimum raise is to 100.
	if got := MinRaiseTo(60, 40, 10); got != 100 {
		t.Errorf("MinRaiseTo(60, 40, 10) = %d, want 100", got)
	}
	// The increment never drops below the big blind.
	if got := MinRaiseIncrement(5, 10); got != 10 {
		t.Errorf("MinRaiseIncrement(5, 10) = %d, want 10", got)
	}
}

func TestReopensAction(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		increment     int
		isAllIn       bool
		minIncrement  int
		shortAllInSum int
		reopens       bool
		newSum        int
	}{
		{"full raise reopens", 40, false, 20, 0, true, 0},
		{"full all-in raise reopens", 20, true, 20, 0, true, 0},
		{"full raise clears accumulator", 25, false, 20, 15, true, 0},
		{"short all-in does not reopen", 15, true, 20, 0, false, 15},
		{"second short all-in accumulates", 10, true, 20, 5, false, 15},
		{"accumulated short all-ins reopen", 10, true, 20, 15, true, 0},
	}
	for _, tc := range cases {
		reopens, newSum := ReopensAction(tc.increment, tc.isAllIn, tc.minIncrement, tc.shortAllInSum)
		if reopens != tc.reopens || newSum != tc.newSum {
			t.Errorf("%s: ReopensAction(%d, %v, %d, %d) = (%v, %d), want (%v, %d)",
				tc.name, tc.increment, tc.isAllIn, tc.minIncrement, tc.shortAllInSum,
				reopens, newSum, tc.reopens, tc.newSum)
		}
	}
}

func TestRemainderSeats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		winners    []int
		dealer     int
		numPlayers int
		remainder  int
		want       []int
	}{
		{"no remainder", []int{1, 2}, 0, 6, 0, nil},
		{"single odd chip to first winner after dealer", []int{3, 5}, 0, 6, 1, []int{3}},
		{"wraps past seat zero", []int{0, 4}, 4, 6, 1, []int{0}},
		{"two chips to two winners", []int{2, 4, 5}, 3, 6, 2, []int{4, 5}},
		{"more chips than winners cycles", []int{1, 3}, 0, 4, 3, []int{1, 3, 1}},
	}
	for _, tc := range cases {
		got := RemainderSeats(tc.winners, tc.dealer, tc.numPlayers, tc.remainder)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: RemainderSeats(%v, %d, %d, %d) = %v, want %v",
				tc.name, tc.winners, tc.dealer, tc.numPlayers, tc.remainder, got, tc.want)
		}
	}
}
