package server

import (
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/holdem/internal/bot"
	"github.com/cardroom/holdem/internal/game"
)

// Table errors returned to clients.
var (
	ErrTableFull    = fmt.Errorf("table is full")
	ErrTableRunning = fmt.Errorf("table already has a game in progress")
	ErrNotSeated    = fmt.Errorf("player is not seated at this table")
	ErrNameTaken    = fmt.Errorf("player name already taken at this table")
)

const nextHandDelay = 2 * time.Second

// occupant binds a seat to either a connection or a local agent. A seat
// whose connection drops keeps its agent-less occupant; its turns are
// resolved with the default action until the player reconnects.
type occupant struct {
	name  string
	seat  int
	conn  *Connection
	agent bot.Agent
}

// Table owns one game and serializes every engine call behind its
// mutex: connection goroutines, timer callbacks and the auto-deal
// callback all funnel through it. The engine itself is single-threaded.
type Table struct {
	name        string
	cfg         TableConfig
	turnTimeout time.Duration
	logger      *log.Logger
	clock       quartz.Clock
	rng         *rand.Rand

	mu        sync.Mutex
	occupants []*occupant
	g         *game.Game

	// seq increments on every applied action and hand boundary. Timer
	// and auto-deal callbacks capture it and abort when it has moved on.
	seq   int
	timer *quartz.Timer
}

// NewTable creates a table from its configuration. Configured bots are
// seated immediately; humans take the remaining seats as they join.
func NewTable(cfg TableConfig, settings ServerSettings, logger *log.Logger, clock quartz.Clock, rng *rand.Rand) *Table {
	t := &Table{
		name:        cfg.Name,
		cfg:         cfg,
		turnTimeout: time.Duration(settings.TurnTimeoutSec) * time.Second,
		logger:      logger.WithPrefix("table").With("table", cfg.Name),
		clock:       clock,
		rng:         rng,
	}
	for i := 0; i < cfg.Bots; i++ {
		t.occupants = append(t.occupants, &occupant{
			name:  fmt.Sprintf("bot-%d", i+1),
			seat:  len(t.occupants),
			agent: bot.New(cfg.BotPolicy, rng),
		})
	}
	return t
}

// Info returns the lobby listing entry for this table.
func (t *Table) Info() TableInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	status := "waiting"
	if t.g != nil {
		status = "playing"
	}
	return TableInfo{
		Name:        t.name,
		PlayerCount: len(t.occupants),
		MaxPlayers:  t.cfg.MaxPlayers,
		Stakes:      fmt.Sprintf("%d/%d", t.cfg.SmallBlind, t.cfg.BigBlind),
		Status:      status,
	}
}

// PlayerNames returns the seated names in seat order.
func (t *Table) PlayerNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, len(t.occupants))
	for i, occ := range t.occupants {
		names[i] = occ.name
	}
	return names
}

// Join seats a player, or reattaches a disconnected player to their old
// seat. The roster is locked once the first hand is dealt.
func (t *Table) Join(name string, conn *Connection) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, occ := range t.occupants {
		if occ.name != name {
			continue
		}
		if occ.agent == nil && occ.conn == nil {
			occ.conn = conn
			t.logger.Info("Player reconnected", "player", name, "seat", occ.seat)
			t.sendPrivateState(occ)
			return occ.seat, nil
		}
		return 0, ErrNameTaken
	}

	if t.g != nil {
		return 0, ErrTableRunning
	}
	if len(t.occupants) >= t.cfg.MaxPlayers {
		return 0, ErrTableFull
	}

	occ := &occupant{name: name, seat: len(t.occupants), conn: conn}
	t.occupants = append(t.occupants, occ)
	t.logger.Info("Player joined", "player", name, "seat", occ.seat)

	if t.cfg.AutoDeal {
		t.maybeStart()
	}
	return occ.seat, nil
}

// Leave detaches a player's connection. Before the first deal the seat
// is freed; afterwards the seat stays and plays the default action.
func (t *Table) Leave(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	occ := t.occupantByName(name)
	if occ == nil || occ.agent != nil {
		return ErrNotSeated
	}
	occ.conn = nil
	t.logger.Info("Player left", "player", name, "seat", occ.seat)

	if t.g == nil {
		t.occupants = append(t.occupants[:occ.seat], t.occupants[occ.seat+1:]...)
		for i, o := range t.occupants {
			o.seat = i
		}
		return nil
	}

	// If it was their turn, resolve it now rather than waiting for the
	// turn timer.
	if st, err := t.g.PublicState(); err == nil && t.g.InProgress() && st.Actor == occ.seat {
		t.stopTimer()
		t.applyDefault(occ.seat)
		t.advance()
	}
	return nil
}

// Detach handles a dropped connection by name-independent lookup.
func (t *Table) Detach(conn *Connection) {
	t.mu.Lock()
	name := ""
	for _, occ := range t.occupants {
		if occ.conn == conn {
			name = occ.name
			break
		}
	}
	t.mu.Unlock()
	if name != "" {
		_ = t.Leave(name)
	}
}

// Deal starts the next hand when the table is configured for manual
// dealing.
func (t *Table) Deal() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maybeStart()
}

// HandleAction applies a player's action to the game.
func (t *Table) HandleAction(name string, actionName string, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	occ := t.occupantByName(name)
	if occ == nil {
		return ErrNotSeated
	}
	if t.g == nil || !t.g.InProgress() {
		return game.ErrHandNotInProgress
	}
	st, err := t.g.PublicState()
	if err != nil {
		return err
	}
	if st.Actor != occ.seat {
		return game.ErrNotYourTurn
	}

	action, err := game.ParseAction(actionName)
	if err != nil {
		return err
	}

	t.stopTimer()
	if err := t.apply(occ.seat, action, amount); err != nil {
		// The turn is still theirs, but a bad action does not buy time:
		// the clock restarts rather than resumes.
		t.armTimer()
		return err
	}
	t.advance()
	return nil
}

// State returns the private snapshot for a seated player.
func (t *Table) State(name string) (*game.PrivateState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	occ := t.occupantByName(name)
	if occ == nil {
		return nil, ErrNotSeated
	}
	if t.g == nil {
		return nil, game.ErrHandNotInProgress
	}
	return t.g.PrivateState(occ.seat)
}

func (t *Table) occupantByName(name string) *occupant {
	for _, occ := range t.occupants {
		if occ.name == name {
			return occ
		}
	}
	return nil
}

// maybeStart deals a hand if one can be dealt. Caller holds the lock.
func (t *Table) maybeStart() error {
	if t.g != nil && t.g.InProgress() {
		return game.ErrHandInProgress
	}

	if t.g == nil {
		humans := 0
		for _, occ := range t.occupants {
			if occ.agent == nil {
				humans++
			}
		}
		if len(t.occupants) < 2 || humans == 0 {
			return game.ErrNotEnoughPlayers
		}
		names := make([]string, len(t.occupants))
		for i, occ := range t.occupants {
			names[i] = occ.name
		}
		t.g = game.NewGame(t.rng, names, t.cfg.SmallBlind, t.cfg.BigBlind,
			game.WithBuyIn(t.cfg.BuyIn), game.WithLogger(t.logger))
	}

	if !t.g.CanContinue() {
		return game.ErrNotEnoughPlayers
	}

	st, err := t.g.StartHand()
	if err != nil {
		return err
	}
	t.seq++
	t.logger.Info("Hand dealt", "hand", st.HandNum, "dealer", findDealer(st))

	t.broadcast(MessageTypeHandStart, HandStartData{
		Table:      t.name,
		HandNum:    st.HandNum,
		SmallBlind: t.cfg.SmallBlind,
		BigBlind:   t.cfg.BigBlind,
		State:      st,
	})
	for _, occ := range t.occupants {
		t.sendPrivateState(occ)
	}

	t.advance()
	return nil
}

// advance plays out agent and vacated seats until the game needs input
// from a connected player or the hand completes. Caller holds the lock.
func (t *Table) advance() {
	for t.g.InProgress() {
		st, err := t.g.PublicState()
		if err != nil {
			return
		}
		occ := t.occupants[st.Actor]

		if occ.conn != nil {
			t.requestAction(occ)
			return
		}
		if occ.agent == nil {
			t.applyDefault(occ.seat)
			continue
		}

		ps, err := t.g.PrivateState(occ.seat)
		if err != nil {
			return
		}
		action, amount := occ.agent.Act(ps)
		if err := t.apply(occ.seat, action, amount); err != nil {
			t.logger.Error("Agent played an illegal action, folding",
				"player", occ.name, "action", action, "error", err)
			t.applyDefault(occ.seat)
		}
	}

	t.finishHand()
}

// requestAction notifies the acting player and arms the turn timer.
// Caller holds the lock.
func (t *Table) requestAction(occ *occupant) {
	ps, err := t.g.PrivateState(occ.seat)
	if err != nil {
		return
	}
	t.send(occ, MessageTypeActionRequired, ActionRequiredData{
		Table:          t.name,
		Seat:           occ.seat,
		LegalActions:   actionNames(ps.LegalActions),
		State:          ps,
		TimeoutSeconds: int(t.turnTimeout / time.Second),
	})
	t.armTimer()
}

func (t *Table) armTimer() {
	t.stopTimer()
	seq := t.seq
	t.timer = t.clock.AfterFunc(t.turnTimeout, func() {
		t.onTimeout(seq)
	})
}

func (t *Table) stopTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// onTimeout fires when the acting player ran out of time. The captured
// sequence number discards timers made stale by a raced action.
func (t *Table) onTimeout(seq int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq != t.seq || t.g == nil || !t.g.InProgress() {
		return
	}
	st, err := t.g.PublicState()
	if err != nil {
		return
	}
	occ := t.occupants[st.Actor]
	t.logger.Warn("Turn timeout", "player", occ.name, "seat", occ.seat)

	action := t.defaultAction(occ.seat)
	t.broadcast(MessageTypePlayerTimeout, PlayerTimeoutData{
		Table:  t.name,
		Seat:   occ.seat,
		Player: occ.name,
		Action: action.String(),
	})
	if err := t.apply(occ.seat, action, 0); err != nil {
		t.logger.Error("Failed to apply timeout action", "error", err)
		return
	}
	t.advance()
}

// defaultAction is what the table plays on a seat's behalf: check when
// free, otherwise fold.
func (t *Table) defaultAction(seat int) game.Action {
	if t.g == nil {
		return game.Fold
	}
	ps, err := t.g.PrivateState(seat)
	if err != nil {
		return game.Fold
	}
	for _, a := range ps.LegalActions {
		if a == game.Check {
			return game.Check
		}
	}
	return game.Fold
}

func (t *Table) applyDefault(seat int) {
	if err := t.apply(seat, t.defaultAction(seat), 0); err != nil {
		t.logger.Error("Failed to apply default action", "seat", seat, "error", err)
	}
}

// apply forwards one action into the engine and broadcasts the result.
// Caller holds the lock.
func (t *Table) apply(seat int, action game.Action, amount int) error {
	if _, err := t.g.ApplyAction(seat, action, amount); err != nil {
		return err
	}
	t.seq++

	st, err := t.g.PublicState()
	if err != nil {
		return nil
	}
	t.broadcast(MessageTypePlayerAction, PlayerActionData{
		Table:  t.name,
		Seat:   seat,
		Player: t.occupants[seat].name,
		Action: action.String(),
		Amount: amount,
		State:  st,
	})
	return nil
}

// finishHand broadcasts the settlement and schedules the next deal.
// Caller holds the lock.
func (t *Table) finishHand() {
	settlement := t.g.Result()
	if settlement == nil {
		return
	}
	st, err := t.g.PublicState()
	if err != nil {
		return
	}
	t.seq++
	t.logger.Info("Hand complete", "hand", st.HandNum, "awards", len(settlement.Awards))

	t.broadcast(MessageTypeHandEnd, HandEndData{
		Table:      t.name,
		HandNum:    st.HandNum,
		Settlement: settlement,
		State:      st,
	})

	if !t.cfg.AutoDeal || !t.g.CanContinue() {
		return
	}
	seq := t.seq
	t.clock.AfterFunc(nextHandDelay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if seq != t.seq {
			return
		}
		if err := t.maybeStart(); err != nil {
			t.logger.Error("Failed to deal next hand", "error", err)
		}
	})
}

func (t *Table) sendPrivateState(occ *occupant) {
	if occ.conn == nil || t.g == nil {
		return
	}
	ps, err := t.g.PrivateState(occ.seat)
	if err != nil {
		return
	}
	t.send(occ, MessageTypeTableState, TableStateData{Table: t.name, State: ps})
}

func (t *Table) send(occ *occupant, mt MessageType, data interface{}) {
	if occ.conn == nil {
		return
	}
	msg, err := NewMessage(mt, data)
	if err != nil {
		t.logger.Error("Failed to create message", "type", mt, "error", err)
		return
	}
	if err := occ.conn.SendMessage(msg); err != nil {
		t.logger.Debug("Failed to send message", "player", occ.name, "error", err)
	}
}

func (t *Table) broadcast(mt MessageType, data interface{}) {
	msg, err := NewMessage(mt, data)
	if err != nil {
		t.logger.Error("Failed to create message", "type", mt, "error", err)
		return
	}
	for _, occ := range t.occupants {
		if occ.conn == nil {
			continue
		}
		if err := occ.conn.SendMessage(msg); err != nil {
			t.logger.Debug("Failed to send message", "player", occ.name, "error", err)
		}
	}
}

func findDealer(st *game.PublicState) int {
	for _, s := range st.Seats {
		if s.Dealer {
			return s.Seat
		}
	}
	return -1
}
