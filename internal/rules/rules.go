// Package rules holds the pure, state-free table rules for Texas
// Hold'em: blind and action positions, minimum raise sizing, the
// incomplete-all-in reopening rule and odd-chip assignment. All seat
// arguments and results are positions among the seats dealt into the
// hand; callers map them onto physical seats and skip ineligible ones.
package rules

// BlindPositions returns the small and big blind positions for a hand.
// Heads-up is special-cased: the dealer posts the small blind and the
// other player the big blind.
func BlindPositions(numPlayers, dealer int) (sb, bb int) {
	if numPlayers == 2 {
		return dealer, (dealer + 1) % numPlayers
	}
	return (dealer + 1) % numPlayers, (dealer + 2) % numPlayers
}

// FirstToActPreflop returns the position that opens the preflop betting
// round. Heads-up the dealer (small blind) acts first; otherwise the
// seat after the big blind.
func FirstToActPreflop(numPlayers, dealer int) int {
	if numPlayers == 2 {
		return dealer
	}
	return (dealer + 3) % numPlayers
}

// FirstToActPostflop returns the position that opens every postflop
// betting round: the seat after the dealer, for any player count.
func FirstToActPostflop(numPlayers, dealer int) int {
	return (dealer + 1) % numPlayers
}

// MinRaiseIncrement returns the minimum legal raise increment: the last
// full raise this round, but never less than the big blind.
func MinRaiseIncrement(lastFullRaise, bigBlind int) int {
	if lastFullRaise > bigBlind {
		return lastFullRaise
	}
	return bigBlind
}

// MinRaiseTo returns the minimum legal total raise-to amount.
func MinRaiseTo(currentBet, lastFullRaise, bigBlind int) int {
	return currentBet + MinRaiseIncrement(lastFullRaise, bigBlind)
}

// ReopensAction decides whether a raise reopens the betting for players
// who have already acted this round, and returns the updated running
// sum of consecutive short all-in increments.
//
// A raise of at least the minimum increment always reopens and clears
// the accumulator. An all-in below the minimum does not reopen by
// itself, but consecutive short all-ins accumulate; once their sum
// reaches the minimum increment the action reopens and the accumulator
// resets. A non-all-in raise below the minimum is illegal and must be
// rejected before this point.
func ReopensAction(increment int, isAllIn bool, minIncrement, shortAllInSum int) (reopens bool, newSum int) {
	if increment >= minIncrement {
		return true, 0
	}
	if !isAllIn {
		return false, shortAllInSum
	}
	newSum = shortAllInSum + increment
	if newSum >= minIncrement {
		return true, 0
	}
	return false, newSum
}

// RemainderSeats assigns the odd chips of a split pot: one chip at a
// time, in seating order starting immediately clockwise of the dealer,
// to winning seats only. The returned slice holds one seat per
// remainder chip.
func RemainderSeats(winners []int, dealer, numPlayers, remainder int) []int {
	if remainder <= 0 || len(winners) == 0 {
		return nil
	}

	isWinner := make(map[int]bool, len(winners))
	for _, seat := range winners {
		isWinner[seat] = true
	}

	seats := make([]int, 0, remainder)
	for i := 0; len(seats) < remainder; i++ {
		seat := (dealer + 1 + i) % numPlayers
		if isWinner[seat] {
			seats = append(seats, seat)
		}
	}
	return seats
}
