package poker

import (
	"testing"

	"github.com/cardroom/holdem/internal/randutil"
)

func TestDeckHasAllCards(t *testing.T) {
	t.Parallel()

	deck := NewDeck(randutil.New(1))
	seen := map[Card]bool{}
	for i := 0; i < 52; i++ {
		card, err := deck.Draw()
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if seen[card] {
			t.Fatalf("duplicate card %v", card)
		}
		seen[card] = true
	}
	if len(seen) != 52 {
		t.Fatalf("drew %d distinct cards, want 52", len(seen))
	}
}

func TestDeckExhaustion(t *testing.T) {
	t.Parallel()

	deck := NewDeck(randutil.New(1))
	if _, err := deck.DrawN(52); err != nil {
		t.Fatal(err)
	}
	if deck.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", deck.Remaining())
	}
	if _, err := deck.Draw(); err != ErrDeckExhausted {
		t.Fatalf("Draw on empty deck = %v, want ErrDeckExhausted", err)
	}
	if _, err := deck.DrawN(1); err != ErrDeckExhausted {
		t.Fatalf("DrawN on empty deck = %v, want ErrDeckExhausted", err)
	}
}

func TestDeckDeterministic(t *testing.T) {
	t.Parallel()

	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	for i := 0; i < 52; i++ {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			t.Fatalf("card %d differs: %v vs %v", i, ca, cb)
		}
	}
}

func TestDeckShuffleRewinds(t *testing.T) {
	t.Parallel()

	deck := NewDeck(randutil.New(7))
	if _, err := deck.DrawN(30); err != nil {
		t.Fatal(err)
	}
	deck.Shuffle()
	if deck.Remaining() != 52 {
		t.Fatalf("Remaining() after reshuffle = %d, want 52", deck.Remaining())
	}
}
