package server

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/randutil"
)

func testTableConfig() TableConfig {
	return TableConfig{
		Name:       "test",
		MaxPlayers: 4,
		SmallBlind: 5,
		BigBlind:   10,
		BuyIn:      500,
		BotPolicy:  "caller",
		AutoDeal:   true,
	}
}

func testSettings() ServerSettings {
	return ServerSettings{TurnTimeoutSec: 30}
}

// newTestConn builds a connection that collects outgoing messages on
// its send channel without a real socket behind it.
func newTestConn() *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		send:   make(chan *Message, 256),
		logger: log.New(io.Discard),
		ctx:    ctx,
		cancel: cancel,
	}
}

// drain empties the connection's outbox and returns the message types
// received, in order.
func drain(c *Connection) []MessageType {
	var types []MessageType
	for {
		select {
		case msg := <-c.send:
			types = append(types, msg.Type)
		default:
			return types
		}
	}
}

func countType(types []MessageType, mt MessageType) int {
	n := 0
	for _, t := range types {
		if t == mt {
			n++
		}
	}
	return n
}

func newTestTable(t *testing.T, cfg TableConfig) (*Table, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	table := NewTable(cfg, testSettings(), log.New(io.Discard), clock, randutil.New(1))
	return table, clock
}

func TestTableJoinAndAutoDeal(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable(t, testTableConfig())
	alice, bob := newTestConn(), newTestConn()

	seat, err := table.Join("alice", alice)
	if err != nil || seat != 0 {
		t.Fatalf("Join(alice) = (%d, %v), want (0, nil)", seat, err)
	}
	seat, err = table.Join("bob", bob)
	if err != nil || seat != 1 {
		t.Fatalf("Join(bob) = (%d, %v), want (1, nil)", seat, err)
	}

	// Two players seated: the hand deals itself. Heads-up the dealer
	// (seat 0) opens, so alice gets the action request.
	aliceTypes := drain(alice)
	if countType(aliceTypes, MessageTypeHandStart) != 1 {
		t.Fatalf("alice messages %v missing hand_start", aliceTypes)
	}
	if countType(aliceTypes, MessageTypeActionRequired) != 1 {
		t.Fatalf("alice messages %v missing action_required", aliceTypes)
	}
	bobTypes := drain(bob)
	if countType(bobTypes, MessageTypeHandStart) != 1 {
		t.Fatalf("bob messages %v missing hand_start", bobTypes)
	}
	if countType(bobTypes, MessageTypeActionRequired) != 0 {
		t.Fatalf("bob got an action request out of turn: %v", bobTypes)
	}
}

func TestTableActionRouting(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable(t, testTableConfig())
	alice, bob := newTestConn(), newTestConn()
	mustJoin(t, table, "alice", alice)
	mustJoin(t, table, "bob", bob)

	if err := table.HandleAction("nobody", "call", 0); !errors.Is(err, ErrNotSeated) {
		t.Fatalf("unseated action: %v, want ErrNotSeated", err)
	}
	if err := table.HandleAction("bob", "check", 0); !errors.Is(err, game.ErrNotYourTurn) {
		t.Fatalf("out-of-turn action: %v, want ErrNotYourTurn", err)
	}
	if err := table.HandleAction("alice", "levitate", 0); err == nil {
		t.Fatal("unknown action name succeeded, want error")
	}

	// A rejected action keeps the turn.
	if err := table.HandleAction("alice", "check", 0); err == nil {
		t.Fatal("check while owing the blind succeeded, want error")
	}
	if err := table.HandleAction("alice", "call", 0); err != nil {
		t.Fatal(err)
	}

	drain(alice)
	bobTypes := drain(bob)
	if countType(bobTypes, MessageTypeActionRequired) != 1 {
		t.Fatalf("bob messages %v missing action_required after alice called", bobTypes)
	}
}

func TestTableTurnTimeoutFoldsAndRedeals(t *testing.T) {
	t.Parallel()

	table, clock := newTestTable(t, testTableConfig())
	alice, bob := newTestConn(), newTestConn()
	mustJoin(t, table, "alice", alice)
	mustJoin(t, table, "bob", bob)
	drain(alice)
	drain(bob)

	// Alice owes the blind and times out; the table folds for her and
	// bob wins the pot.
	ctx := context.Background()
	clock.Advance(30 * time.Second).MustWait(ctx)

	bobTypes := drain(bob)
	if countType(bobTypes, MessageTypePlayerTimeout) != 1 {
		t.Fatalf("bob messages %v missing player_timeout", bobTypes)
	}
	if countType(bobTypes, MessageTypeHandEnd) != 1 {
		t.Fatalf("bob messages %v missing hand_end", bobTypes)
	}

	// The next hand deals itself after the inter-hand delay.
	clock.Advance(nextHandDelay).MustWait(ctx)
	bobTypes = drain(bob)
	if countType(bobTypes, MessageTypeHandStart) != 1 {
		t.Fatalf("bob messages %v missing the next hand_start", bobTypes)
	}
}

func TestTableRosterRules(t *testing.T) {
	t.Parallel()

	cfg := testTableConfig()
	cfg.MaxPlayers = 2
	cfg.AutoDeal = false
	table, _ := newTestTable(t, cfg)

	mustJoin(t, table, "alice", newTestConn())
	if _, err := table.Join("alice", newTestConn()); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("duplicate join: %v, want ErrNameTaken", err)
	}
	mustJoin(t, table, "bob", newTestConn())
	if _, err := table.Join("carol", newTestConn()); !errors.Is(err, ErrTableFull) {
		t.Fatalf("join past capacity: %v, want ErrTableFull", err)
	}

	// Leaving before the deal frees the seat.
	if err := table.Leave("bob"); err != nil {
		t.Fatal(err)
	}
	if seat, err := table.Join("carol", newTestConn()); err != nil || seat != 1 {
		t.Fatalf("Join(carol) after a leave = (%d, %v), want (1, nil)", seat, err)
	}
}

func TestTableManualDeal(t *testing.T) {
	t.Parallel()

	cfg := testTableConfig()
	cfg.AutoDeal = false
	table, _ := newTestTable(t, cfg)

	if err := table.Deal(); !errors.Is(err, game.ErrNotEnoughPlayers) {
		t.Fatalf("Deal with no players: %v, want ErrNotEnoughPlayers", err)
	}

	alice := newTestConn()
	mustJoin(t, table, "alice", alice)
	mustJoin(t, table, "bob", newTestConn())
	if types := drain(alice); len(types) != 0 {
		t.Fatalf("hand dealt without Deal: %v", types)
	}

	if err := table.Deal(); err != nil {
		t.Fatal(err)
	}
	if types := drain(alice); countType(types, MessageTypeHandStart) != 1 {
		t.Fatalf("messages %v missing hand_start", types)
	}
	if err := table.Deal(); !errors.Is(err, game.ErrHandInProgress) {
		t.Fatalf("Deal during a hand: %v, want ErrHandInProgress", err)
	}
}

func TestTableBotsPlayTheirTurns(t *testing.T) {
	t.Parallel()

	cfg := testTableConfig()
	cfg.Bots = 1
	table, _ := newTestTable(t, cfg)

	// One human plus the configured bot is enough to deal. The bot has
	// seat 0 and the dealer button, so it acts first and the action
	// lands on the human without any clock movement.
	human := newTestConn()
	mustJoin(t, table, "dave", human)

	types := drain(human)
	if countType(types, MessageTypeHandStart) != 1 {
		t.Fatalf("messages %v missing hand_start", types)
	}
	if countType(types, MessageTypePlayerAction) == 0 {
		t.Fatalf("messages %v missing the bot's action", types)
	}
	if countType(types, MessageTypeActionRequired) != 1 {
		t.Fatalf("messages %v missing action_required", types)
	}
}

func TestTableDisconnectedSeatPlaysDefault(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable(t, testTableConfig())
	alice, bob := newTestConn(), newTestConn()
	mustJoin(t, table, "alice", alice)
	mustJoin(t, table, "bob", bob)
	drain(alice)
	drain(bob)

	// Alice disconnects while it is her turn: the table folds for her
	// immediately and the hand settles.
	if err := table.Leave("alice"); err != nil {
		t.Fatal(err)
	}
	bobTypes := drain(bob)
	if countType(bobTypes, MessageTypeHandEnd) != 1 {
		t.Fatalf("bob messages %v missing hand_end after the fold", bobTypes)
	}

	// Reconnecting reclaims the original seat.
	alice2 := newTestConn()
	seat, err := table.Join("alice", alice2)
	if err != nil || seat != 0 {
		t.Fatalf("rejoin = (%d, %v), want (0, nil)", seat, err)
	}
}

func mustJoin(t *testing.T, table *Table, name string, conn *Connection) {
	t.Helper()
	if _, err := table.Join(name, conn); err != nil {
		t.Fatalf("Join(%s): %v", name, err)
	}
}
