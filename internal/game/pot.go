package game

import "sort"

// Pot is a main or side pot: an amount and the seats eligible to win
// it. Pots are derived from total contributions, never mutated
// independently.
type Pot struct {
	Amount   int
	Eligible []int // seats still in the hand at this contribution level
}

// computePots partitions all contributions into a main pot and side
// pots by contribution level. Distinct total contributions of in-hand
// players, ascending, define the levels; each level's pot collects the
// increment between it and the previous level from every contributor,
// and is contested by the in-hand players committed at least that much.
// Folded contributions are dead money in the pots their level reaches.
func computePots(players []*Player) []Pot {
	levelSet := map[int]bool{}
	for _, p := range players {
		if p.InHand() && p.TotalBet > 0 {
			levelSet[p.TotalBet] = true
		}
	}
	if len(levelSet) == 0 {
		return nil
	}

	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			if p.TotalBet > prev {
				contribution := min(p.TotalBet, level) - prev
				pot.Amount += contribution
			}
			if p.InHand() && p.TotalBet >= level {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		pots = append(pots, pot)
		prev = level
	}

	// A folded player can have contributed beyond the deepest in-hand
	// level; that excess stays with the deepest pot.
	excess := 0
	for _, p := range players {
		if p.TotalBet > prev {
			excess += p.TotalBet - prev
		}
	}
	if excess > 0 {
		pots[len(pots)-1].Amount += excess
	}

	return pots
}

// potTotal is the sum of all contributions this hand, collected or not.
func potTotal(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.TotalBet
	}
	return total
}
