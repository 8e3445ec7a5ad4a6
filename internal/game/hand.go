package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/rules"
	"github.com/cardroom/holdem/poker"
)

// Hand owns all mutable state for one hand: dealing, blind posting,
// betting rounds, phase advancement, showdown and settlement. It is
// advanced strictly one action at a time through ApplyAction and is not
// internally synchronized; callers exposing it to concurrent requests
// must serialize access per hand.
type Hand struct {
	Num     int
	Players []*Player
	Dealer  int
	SBSeat  int
	BBSeat  int
	Street  Street
	Board   []poker.Card
	Actor   int // seat to act, -1 when none
	Pots    []Pot
	History []ActionRecord

	deck       *poker.Deck
	betting    *bettingRound
	smallBlind int
	bigBlind   int

	startStacks []int // per seat, at hand start, for settlement
	startTotal  int   // table chip total, for conservation checks
	settlement  *Settlement
	logger      *log.Logger
}

// PotAward records how one pot was settled.
type PotAward struct {
	Pot     Pot
	Winners []int
}

// PlayerResult is one seat's outcome of a completed hand.
type PlayerResult struct {
	Seat     int
	Name     string
	Net      int // win/loss for the hand
	Stack    int // final stack
	HandDesc string
}

// Settlement is returned when a hand reaches Complete: per-player net
// win/loss and final stacks, plus the pot awards for presentation.
type Settlement struct {
	Awards  []PotAward
	Results []PlayerResult
}

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

type handConfig struct {
	chipCounts []int
	startChips int
	deck       *poker.Deck
	logger     *log.Logger
}

// WithUniformChips sets the same starting stack for all players.
func WithUniformChips(chips int) HandOption {
	return func(c *handConfig) {
		c.startChips = chips
		c.chipCounts = nil
	}
}

// WithChips sets individual starting stacks. The length must match the
// number of players.
func WithChips(chipCounts []int) HandOption {
	return func(c *handConfig) {
		c.chipCounts = chipCounts
	}
}

// WithDeck sets a pre-shuffled deck, overriding the RNG for dealing.
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck
	}
}

// WithHandLogger sets the logger used for per-hand debug logging.
func WithHandLogger(logger *log.Logger) HandOption {
	return func(c *handConfig) {
		c.logger = logger
	}
}

// NewHand creates and deals a single hand. The RNG is required so that
// shuffles are explicit and reproducible.
func NewHand(rng *rand.Rand, names []string, dealer, smallBlind, bigBlind int, opts ...HandOption) *Hand {
	if len(names) < 2 {
		panic("at least 2 players required")
	}
	if dealer < 0 || dealer >= len(names) {
		panic("dealer seat out of range")
	}

	cfg := &handConfig{startChips: 1000}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.chipCounts != nil && len(cfg.chipCounts) != len(names) {
		panic("chip counts must match number of players")
	}

	players := make([]*Player, len(names))
	for i, name := range names {
		chips := cfg.startChips
		if cfg.chipCounts != nil {
			chips = cfg.chipCounts[i]
		}
		players[i] = &Player{Seat: i, Name: name, Chips: chips}
		players[i].resetForHand()
	}

	deck := cfg.deck
	if deck == nil {
		if rng == nil {
			panic("rng is required for hand creation")
		}
		deck = poker.NewDeck(rng)
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.Default()
	}

	return newHand(players, deck, dealer, smallBlind, bigBlind, logger)
}

// newHand deals a hand over existing seats. Stacks are read as-is;
// statuses must already be reset for the hand.
func newHand(players []*Player, deck *poker.Deck, dealer, smallBlind, bigBlind int, logger *log.Logger) *Hand {
	h := &Hand{
		Players:     players,
		Dealer:      dealer,
		Street:      Preflop,
		Actor:       -1,
		deck:        deck,
		betting:     newBettingRound(len(players), bigBlind),
		smallBlind:  smallBlind,
		bigBlind:    bigBlind,
		startStacks: make([]int, len(players)),
		logger:      logger,
	}
	for i, p := range players {
		h.startStacks[i] = p.Chips
		h.startTotal += p.Chips
	}

	dealt := h.dealtSeats()
	if len(dealt) < 2 {
		panic("hand dealt with fewer than 2 players")
	}

	h.dealHoleCards(dealt)
	h.postBlinds(dealt)

	h.logger.Debug("hand started",
		"players", len(dealt), "dealer", h.Dealer, "sb", h.SBSeat, "bb", h.BBSeat)

	dealerIdx := indexOf(dealt, h.Dealer)
	first := dealt[rules.FirstToActPreflop(len(dealt), dealerIdx)]
	h.Actor = h.nextToAct(first)
	if h.Actor == -1 {
		// Blinds put everyone all-in; run the board out immediately.
		h.endRound()
	}
	return h
}

// dealtSeats returns the seats dealt into this hand, in seat order.
func (h *Hand) dealtSeats() []int {
	seats := make([]int, 0, len(h.Players))
	for _, p := range h.Players {
		if p.Status != StatusOut {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

func indexOf(seats []int, seat int) int {
	for i, s := range seats {
		if s == seat {
			return i
		}
	}
	return 0
}

func (h *Hand) dealHoleCards(dealt []int) {
	for _, seat := range dealt {
		cards, err := h.deck.DrawN(2)
		if err != nil {
			panic(fmt.Sprintf("dealing hole cards: %v", err))
		}
		h.Players[seat].HoleCards = cards
	}
}

func (h *Hand) postBlinds(dealt []int) {
	dealerIdx := indexOf(dealt, h.Dealer)
	sbIdx, bbIdx := rules.BlindPositions(len(dealt), dealerIdx)
	h.SBSeat, h.BBSeat = dealt[sbIdx], dealt[bbIdx]

	h.Players[h.SBSeat].commit(h.smallBlind)
	h.Players[h.BBSeat].commit(h.bigBlind)

	// The full big blind is the bet level to match even when the big
	// blind is all-in for less.
	h.betting.CurrentBet = h.bigBlind
	h.betting.LastFullRaise = h.bigBlind
}

// InProgress reports whether the hand still accepts actions.
func (h *Hand) InProgress() bool {
	return h.Street < Showdown
}

// Result returns the settlement of a completed hand, or nil.
func (h *Hand) Result() *Settlement {
	return h.settlement
}

// ApplyAction validates and applies one action for the given seat. The
// amount is the total bet-to amount and is only meaningful for Raise.
// On any validation failure the hand state is unchanged. When the
// action completes the hand, the settlement is returned.
func (h *Hand) ApplyAction(seat int, action Action, amount int) (*Settlement, error) {
	if !h.InProgress() {
		return nil, ErrHandNotInProgress
	}
	if seat < 0 || seat >= len(h.Players) {
		return nil, ErrNoSuchSeat
	}
	if seat != h.Actor {
		return nil, ErrNotYourTurn
	}

	p := h.Players[seat]
	br := h.betting
	owed := br.CurrentBet - p.Bet
	maxTo := p.Chips + p.Bet

	// Validate fully before touching any state.
	switch action {
	case Fold:
	case Check:
		if owed != 0 {
			return nil, illegalf(seat, action, "must call %d or fold", owed)
		}
	case Call:
		if owed <= 0 {
			return nil, illegalf(seat, action, "nothing to call, check instead")
		}
	case Raise:
		if amount <= br.CurrentBet {
			return nil, illegalf(seat, action, "raise-to %d does not exceed current bet %d", amount, br.CurrentBet)
		}
		if amount > maxTo {
			return nil, illegalf(seat, action, "raise-to %d exceeds stack of %d", amount, maxTo)
		}
		if br.Acted[seat] {
			return nil, illegalf(seat, action, "betting is not reopened")
		}
		// An all-in below the minimum must be declared as all-in.
		if amount < br.minRaiseTo() {
			return nil, illegalf(seat, action, "minimum raise is to %d", br.minRaiseTo())
		}
	case AllIn:
		if maxTo > br.CurrentBet && br.Acted[seat] {
			return nil, illegalf(seat, action, "betting is not reopened")
		}
	default:
		return nil, illegalf(seat, action, "unknown action")
	}

	record := ActionRecord{Seat: seat, Action: action, Street: h.Street}

	switch action {
	case Fold:
		p.Status = StatusFolded
	case Check:
	case Call:
		p.commit(owed)
		record.Amount = p.Bet
	case Raise:
		increment := amount - br.CurrentBet
		p.commit(amount - p.Bet)
		h.applyRaise(seat, increment, p.Status == StatusAllIn)
		record.Amount, record.Increment = p.Bet, increment
	case AllIn:
		increment := maxTo - br.CurrentBet
		p.commit(p.Chips)
		if increment > 0 {
			h.applyRaise(seat, increment, true)
			record.Increment = increment
		}
		record.Amount = p.Bet
	}
	record.AllIn = p.Status == StatusAllIn
	br.Acted[seat] = true
	br.Records = append(br.Records, record)
	h.History = append(h.History, record)

	h.logger.Debug("action applied",
		"seat", seat, "action", action, "bet", p.Bet, "street", h.Street)

	if h.inHandCount() == 1 {
		return h.settleUncontested(), nil
	}
	if br.complete(h.Players) {
		h.endRound()
		return h.settlement, nil
	}
	h.Actor = h.nextToAct(seat + 1)
	if h.Actor == -1 {
		h.endRound()
		return h.settlement, nil
	}
	return nil, nil
}

// applyRaise updates the bet level, the last full raise increment and
// the short all-in accumulator, reopening the betting when the rules
// say so.
func (h *Hand) applyRaise(seat, increment int, isAllIn bool) {
	br := h.betting
	minIncrement := rules.MinRaiseIncrement(br.LastFullRaise, br.BigBlind)
	reopens, newSum := rules.ReopensAction(increment, isAllIn, minIncrement, br.ShortAllInSum)
	if reopens {
		if increment >= minIncrement {
			br.LastFullRaise = increment
		} else {
			// Consecutive short all-ins added up to a full raise.
			br.LastFullRaise = br.ShortAllInSum + increment
		}
		br.ShortAllInSum = 0
		br.reopen(seat)
	} else {
		br.ShortAllInSum = newSum
	}
	br.CurrentBet += increment
}

// nextToAct scans clockwise from the given seat for the next player who
// may act, or -1 if none can.
func (h *Hand) nextToAct(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if h.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

func (h *Hand) inHandCount() int {
	count := 0
	for _, p := range h.Players {
		if p.InHand() {
			count++
		}
	}
	return count
}

// endRound collects the round's bets into pots and advances the phase,
// dealing the board out with no further betting once at most one
// contender still holds chips.
func (h *Hand) endRound() {
	h.collectBets()

	for {
		if h.Street == River {
			h.showdown()
			return
		}
		h.Street++
		h.dealBoard()
		h.logger.Debug("street dealt", "street", h.Street, "board", h.Board, "pot", potTotal(h.Players))

		canAct := 0
		for _, p := range h.Players {
			if p.CanAct() {
				canAct++
			}
		}
		if canAct > 1 {
			h.betting.reset()
			h.Actor = h.nextToAct((h.Dealer + 1) % len(h.Players))
			return
		}
		// All remaining contenders are all-in: keep dealing.
	}
}

// collectBets folds the current-round bets into the derived pots and
// verifies chip conservation. A mismatch is a programming defect and
// fatal.
func (h *Hand) collectBets() {
	for _, p := range h.Players {
		p.Bet = 0
	}
	h.Actor = -1
	h.Pots = computePots(h.Players)

	collected := 0
	for _, pot := range h.Pots {
		collected += pot.Amount
	}
	stacks := 0
	for _, p := range h.Players {
		stacks += p.Chips
	}
	if stacks+collected != h.startTotal {
		panic(fmt.Sprintf("chip conservation violated: stacks %d + pots %d != %d",
			stacks, collected, h.startTotal))
	}
}

func (h *Hand) dealBoard() {
	want := h.Street.boardSize()
	for len(h.Board) < want {
		card, err := h.deck.Draw()
		if err != nil {
			panic(fmt.Sprintf("dealing board: %v", err))
		}
		h.Board = append(h.Board, card)
	}
}

// showdown evaluates every remaining hand and settles each pot: best
// hand among the pot's eligible players wins, ties split evenly with
// odd chips assigned clockwise from the dealer.
func (h *Hand) showdown() {
	h.Street = Showdown

	ranks := make(map[int]poker.HandRank)
	for _, p := range h.Players {
		if !p.InHand() {
			continue
		}
		rank, err := poker.Evaluate(append(append([]poker.Card{}, p.HoleCards...), h.Board...))
		if err != nil {
			panic(fmt.Sprintf("showdown evaluation: %v", err))
		}
		ranks[p.Seat] = rank
	}

	awards := make([]PotAward, 0, len(h.Pots))
	for _, pot := range h.Pots {
		var winners []int
		var best poker.HandRank
		for _, seat := range pot.Eligible {
			switch rank := ranks[seat]; {
			case len(winners) == 0 || rank > best:
				winners, best = []int{seat}, rank
			case rank == best:
				winners = append(winners, seat)
			}
		}
		h.awardPot(pot, winners)
		awards = append(awards, PotAward{Pot: pot, Winners: winners})
	}

	h.finish(awards, ranks)
}

// awardPot splits a pot evenly among the winners and assigns the odd
// chips per the table rules.
func (h *Hand) awardPot(pot Pot, winners []int) {
	if len(winners) == 0 {
		panic("pot with no winners")
	}
	share := pot.Amount / len(winners)
	for _, seat := range winners {
		h.Players[seat].Chips += share
	}
	remainder := pot.Amount % len(winners)
	for _, seat := range rules.RemainderSeats(winners, h.Dealer, len(h.Players), remainder) {
		h.Players[seat].Chips++
	}
}

// settleUncontested awards everything to the last player standing
// without evaluating hands.
func (h *Hand) settleUncontested() *Settlement {
	h.collectBets()
	h.Street = Showdown

	var winner *Player
	for _, p := range h.Players {
		if p.InHand() {
			winner = p
			break
		}
	}

	awards := make([]PotAward, 0, len(h.Pots))
	for _, pot := range h.Pots {
		winner.Chips += pot.Amount
		awards = append(awards, PotAward{Pot: pot, Winners: []int{winner.Seat}})
	}

	h.logger.Debug("pot awarded uncontested", "seat", winner.Seat, "amount", potTotal(h.Players))
	h.finish(awards, nil)
	return h.settlement
}

// finish builds the settlement from already-credited awards and checks
// that the table total survived the hand intact.
func (h *Hand) finish(awards []PotAward, ranks map[int]poker.HandRank) {
	stacks := 0
	for _, p := range h.Players {
		stacks += p.Chips
	}
	if stacks != h.startTotal {
		panic(fmt.Sprintf("chip conservation violated at settlement: %d != %d", stacks, h.startTotal))
	}

	results := make([]PlayerResult, len(h.Players))
	for i, p := range h.Players {
		results[i] = PlayerResult{
			Seat:  p.Seat,
			Name:  p.Name,
			Net:   p.Chips - h.startStacks[i],
			Stack: p.Chips,
		}
		if rank, ok := ranks[p.Seat]; ok {
			results[i].HandDesc = rank.Describe()
		}
	}

	h.Street = Complete
	h.Actor = -1
	h.settlement = &Settlement{Awards: awards, Results: results}
	h.logger.Debug("hand complete", "pots", len(awards))
}
