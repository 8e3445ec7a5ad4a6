package main

import (
	"fmt"

	"github.com/cardroom/holdem/internal/randutil"
	"github.com/cardroom/holdem/poker"
)

// OddsCmd estimates win/tie equity for a hole hand by Monte Carlo
// rollout against random opponent hands.
type OddsCmd struct {
	Hole       string `kong:"arg,help='Hole cards, e.g. \"As Kd\"'"`
	Board      string `kong:"help='Known board cards, e.g. \"2c 7h Jd\"'"`
	Opponents  int    `kong:"default='1',help='Number of opponents'"`
	Iterations int    `kong:"default='10000',help='Rollouts to run'"`
	Seed       int64  `kong:"default='1',help='RNG seed'"`
}

func (c *OddsCmd) Run() error {
	hole, err := poker.ParseCards(c.Hole)
	if err != nil {
		return err
	}
	if len(hole) != 2 {
		return fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}
	board, err := poker.ParseCards(c.Board)
	if err != nil {
		return err
	}
	if len(board) > 5 {
		return fmt.Errorf("board has %d cards, at most 5 allowed", len(board))
	}
	if c.Opponents < 1 || c.Opponents > 9 {
		return fmt.Errorf("opponents must be 1-9, got %d", c.Opponents)
	}

	known := map[poker.Card]bool{}
	for _, card := range append(append([]poker.Card{}, hole...), board...) {
		if known[card] {
			return fmt.Errorf("duplicate card %s", card.Short())
		}
		known[card] = true
	}

	var stub []poker.Card
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			if card := poker.NewCard(rank, suit); !known[card] {
				stub = append(stub, card)
			}
		}
	}

	rng := randutil.New(c.Seed)
	wins, ties := 0, 0

	for iter := 0; iter < c.Iterations; iter++ {
		// Partial Fisher-Yates: only the cards this rollout consumes.
		need := 2*c.Opponents + (5 - len(board))
		for i := 0; i < need; i++ {
			j := i + rng.IntN(len(stub)-i)
			stub[i], stub[j] = stub[j], stub[i]
		}
		draw := stub[:need]

		fullBoard := append(append([]poker.Card{}, board...), draw[2*c.Opponents:]...)
		hero, err := poker.Evaluate(append(append([]poker.Card{}, hole...), fullBoard...))
		if err != nil {
			return err
		}

		best := hero
		heroBest, tied := true, false
		for opp := 0; opp < c.Opponents; opp++ {
			villainHole := draw[2*opp : 2*opp+2]
			villain, err := poker.Evaluate(append(append([]poker.Card{}, villainHole...), fullBoard...))
			if err != nil {
				return err
			}
			if villain > best {
				best, heroBest = villain, false
			} else if villain == hero {
				tied = true
			}
		}
		if heroBest {
			if tied {
				ties++
			} else {
				wins++
			}
		}
	}

	total := float64(c.Iterations)
	fmt.Printf("%s vs %d opponent(s)", c.Hole, c.Opponents)
	if len(board) > 0 {
		fmt.Printf(" on %s", c.Board)
	}
	fmt.Printf("\nwin %.1f%%  tie %.1f%%  lose %.1f%%  (%d rollouts)\n",
		100*float64(wins)/total,
		100*float64(ties)/total,
		100*float64(c.Iterations-wins-ties)/total,
		c.Iterations)
	return nil
}
