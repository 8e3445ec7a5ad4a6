package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cardroom/holdem/cmd/cardroom/shared"
	"github.com/cardroom/holdem/internal/bot"
	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/randutil"
)

// SimCmd plays bot-vs-bot games without a network in between. Useful
// for soak-testing the engine and measuring hand throughput.
type SimCmd struct {
	Players    int    `kong:"default='6',help='Players per table'"`
	Tables     int    `kong:"default='4',help='Tables to run concurrently'"`
	Hands      int    `kong:"default='1000',help='Hands to play per table'"`
	SmallBlind int    `kong:"default='5',help='Small blind amount'"`
	BigBlind   int    `kong:"default='10',help='Big blind amount'"`
	BuyIn      int    `kong:"default='1000',help='Starting chip count'"`
	Policy     string `kong:"default='random',help='Bot policy (random, caller)'"`
	Seed       int64  `kong:"default='1',help='RNG seed'"`
	LogLevel   string `kong:"name='log-level',default='warn',help='Log level'"`
}

func (c *SimCmd) Run() error {
	if c.Players < 2 || c.Players > 10 {
		return fmt.Errorf("players must be 2-10, got %d", c.Players)
	}
	logger := shared.SetupLogger(c.LogLevel)

	var handsPlayed atomic.Int64
	start := time.Now()

	var g errgroup.Group
	for table := 0; table < c.Tables; table++ {
		table := table
		g.Go(func() error {
			rng := randutil.New(c.Seed + int64(table))
			agent := bot.New(c.Policy, rng)

			names := make([]string, c.Players)
			for i := range names {
				names[i] = fmt.Sprintf("t%d-p%d", table, i)
			}
			gm := game.NewGame(rng, names, c.SmallBlind, c.BigBlind,
				game.WithBuyIn(c.BuyIn), game.WithLogger(logger))

			for hand := 0; hand < c.Hands && gm.CanContinue(); hand++ {
				if _, err := gm.StartHand(); err != nil {
					return fmt.Errorf("table %d hand %d: %w", table, hand, err)
				}
				for gm.InProgress() {
					st, err := gm.PublicState()
					if err != nil {
						return err
					}
					ps, err := gm.PrivateState(st.Actor)
					if err != nil {
						return err
					}
					action, amount := agent.Act(ps)
					if _, err := gm.ApplyAction(st.Actor, action, amount); err != nil {
						return fmt.Errorf("table %d hand %d seat %d: %w", table, hand, st.Actor, err)
					}
				}
				handsPlayed.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	total := handsPlayed.Load()
	fmt.Printf("Played %d hands across %d tables in %s (%.0f hands/sec)\n",
		total, c.Tables, elapsed.Round(time.Millisecond),
		float64(total)/elapsed.Seconds())
	return nil
}
