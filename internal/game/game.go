package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/poker"
)

// Game holds a set of seats across consecutive hands: stacks persist,
// the dealer button rotates and busted players sit out. There is no
// hidden global state; the caller owns the Game and drives it one
// action at a time. All mutation goes through StartHand and
// ApplyAction, which is where the invariants are enforced.
type Game struct {
	players    []*Player
	dealer     int // -1 before the first hand
	handNum    int
	smallBlind int
	bigBlind   int
	rng        *rand.Rand
	hand       *Hand
	logger     *log.Logger
}

// GameOption configures a Game during creation.
type GameOption func(*gameConfig)

type gameConfig struct {
	chipCounts []int
	startChips int
	logger     *log.Logger
}

// WithStacks sets individual starting stacks, matching the player count.
func WithStacks(chipCounts []int) GameOption {
	return func(c *gameConfig) {
		c.chipCounts = chipCounts
	}
}

// WithBuyIn sets a uniform starting stack (default 1000).
func WithBuyIn(chips int) GameOption {
	return func(c *gameConfig) {
		c.startChips = chips
		c.chipCounts = nil
	}
}

// WithLogger sets the logger used by the game and its hands.
func WithLogger(logger *log.Logger) GameOption {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// NewGame creates a game for the named players. The RNG drives every
// shuffle, so a game created from the same seed replays identically.
func NewGame(rng *rand.Rand, names []string, smallBlind, bigBlind int, opts ...GameOption) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}
	if len(names) < 2 {
		panic("at least 2 players required")
	}

	cfg := &gameConfig{startChips: 1000}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.chipCounts != nil && len(cfg.chipCounts) != len(names) {
		panic("chip counts must match number of players")
	}
	if cfg.logger == nil {
		cfg.logger = log.Default()
	}

	players := make([]*Player, len(names))
	for i, name := range names {
		chips := cfg.startChips
		if cfg.chipCounts != nil {
			chips = cfg.chipCounts[i]
		}
		players[i] = &Player{Seat: i, Name: name, Chips: chips, Status: StatusOut}
	}

	return &Game{
		players:    players,
		dealer:     -1,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		rng:        rng,
		logger:     cfg.logger,
	}
}

// InProgress reports whether a hand is currently accepting actions.
func (g *Game) InProgress() bool {
	return g.hand != nil && g.hand.InProgress()
}

// CanContinue reports whether another hand can be dealt: at least two
// players still hold chips.
func (g *Game) CanContinue() bool {
	funded := 0
	for _, p := range g.players {
		if p.Chips > 0 {
			funded++
		}
	}
	return funded >= 2
}

// HandNum returns the number of hands started.
func (g *Game) HandNum() int {
	return g.handNum
}

// StartHand rotates the dealer to the next seat with chips and deals a
// new hand.
func (g *Game) StartHand() (*PublicState, error) {
	if g.InProgress() {
		return nil, ErrHandInProgress
	}
	if !g.CanContinue() {
		return nil, ErrNotEnoughPlayers
	}

	for _, p := range g.players {
		p.resetForHand()
	}
	g.dealer = g.nextFundedSeat(g.dealer + 1)
	g.handNum++

	g.hand = newHand(g.players, poker.NewDeck(g.rng), g.dealer, g.smallBlind, g.bigBlind, g.logger)
	g.hand.Num = g.handNum
	return g.hand.PublicState(), nil
}

func (g *Game) nextFundedSeat(from int) int {
	n := len(g.players)
	for i := 0; i < n; i++ {
		seat := ((from+i)%n + n) % n
		if g.players[seat].Chips > 0 {
			return seat
		}
	}
	return 0
}

// ApplyAction forwards one action into the current hand. When the hand
// completes, the settlement is returned.
func (g *Game) ApplyAction(seat int, action Action, amount int) (*Settlement, error) {
	if g.hand == nil {
		return nil, ErrHandNotInProgress
	}
	return g.hand.ApplyAction(seat, action, amount)
}

// PublicState returns the snapshot visible to all observers.
func (g *Game) PublicState() (*PublicState, error) {
	if g.hand == nil {
		return nil, ErrHandNotInProgress
	}
	return g.hand.PublicState(), nil
}

// PrivateState returns the snapshot for one seat, including hole cards
// and the currently legal actions.
func (g *Game) PrivateState(seat int) (*PrivateState, error) {
	if g.hand == nil {
		return nil, ErrHandNotInProgress
	}
	return g.hand.PrivateState(seat)
}

// Result returns the settlement of the last completed hand, or nil.
func (g *Game) Result() *Settlement {
	if g.hand == nil {
		return nil
	}
	return g.hand.Result()
}

// Seat returns the seat index for a player name, or -1.
func (g *Game) Seat(name string) int {
	for _, p := range g.players {
		if p.Name == name {
			return p.Seat
		}
	}
	return -1
}

// Stacks returns the current stack per seat.
func (g *Game) Stacks() []int {
	stacks := make([]int, len(g.players))
	for i, p := range g.players {
		stacks[i] = p.Chips
	}
	return stacks
}
