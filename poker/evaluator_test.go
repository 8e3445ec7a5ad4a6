package poker

import "testing"

func mustRank(t *testing.T, cards string) HandRank {
	t.Helper()
	parsed, err := ParseCards(cards)
	if err != nil {
		t.Fatalf("parsing %q: %v", cards, err)
	}
	rank, err := Evaluate(parsed)
	if err != nil {
		t.Fatalf("evaluating %q: %v", cards, err)
	}
	return rank
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		cards string
		want  Category
	}{
		{"high card", "As Kd 9h 5c 2s", HighCard},
		{"one pair", "As Ad 9h 5c 2s", OnePair},
		{"two pair", "As Ad 9h 9c 2s", TwoPair},
		{"trips", "As Ad Ah 9c 2s", ThreeOfAKind},
		{"straight", "9s 8d 7h 6c 5s", Straight},
		{"wheel", "As 2d 3h 4c 5s", Straight},
		{"broadway", "As Kd Qh Jc Ts", Straight},
		{"flush", "As Ks 9s 5s 2s", Flush},
		{"full house", "As Ad Ah 9c 9s", FullHouse},
		{"quads", "As Ad Ah Ac 9s", FourOfAKind},
		{"straight flush", "9s 8s 7s 6s 5s", StraightFlush},
		{"steel wheel", "As 2s 3s 4s 5s", StraightFlush},
		{"royal", "As Ks Qs Js Ts", StraightFlush},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := mustRank(t, tc.cards).Category(); got != tc.want {
				t.Errorf("Category(%s) = %v, want %v", tc.cards, got, tc.want)
			}
		})
	}
}

func TestEvaluateOrdering(t *testing.T) {
	t.Parallel()

	// Each hand must rank strictly above the next.
	ladder := []struct {
		name  string
		cards string
	}{
		{"royal flush", "As Ks Qs Js Ts"},
		{"king-high straight flush", "Ks Qs Js Ts 9s"},
		{"quad aces", "As Ad Ah Ac 9s"},
		{"quad kings", "Ks Kd Kh Kc As"},
		{"aces full", "As Ad Ah 9c 9s"},
		{"nines full", "9h 9c 9s Ad As"},
		{"ace-high flush", "As Ks 9s 5s 2s"},
		{"king-high flush", "Ks Qs 9s 5s 2s"},
		{"broadway straight", "As Kd Qh Jc Ts"},
		{"six-high straight", "6s 5d 4h 3c 2s"},
		{"wheel", "As 2d 3h 4c 5s"},
		{"trip aces", "As Ad Ah 9c 2s"},
		{"aces up", "As Ad Kh Kc 2s"},
		{"nines and fives", "9s 9d 5h 5c As"},
		{"pair of aces", "As Ad 9h 5c 2s"},
		{"pair of deuces", "2s 2d Ah Kc 9s"},
		{"ace high", "As Kd 9h 5c 2s"},
		{"seven high", "7s 5d 4h 3c 2s"},
	}
	for i := 1; i < len(ladder); i++ {
		hi := mustRank(t, ladder[i-1].cards)
		lo := mustRank(t, ladder[i].cards)
		if hi <= lo {
			t.Errorf("%s (%#x) should outrank %s (%#x)",
				ladder[i-1].name, uint32(hi), ladder[i].name, uint32(lo))
		}
	}
}

func TestEvaluateKickers(t *testing.T) {
	t.Parallel()

	// Same pair, better kicker.
	better := mustRank(t, "As Ad Kh 5c 2s")
	worse := mustRank(t, "As Ad Qh 5c 2s")
	if better <= worse {
		t.Error("AAK52 should outrank AAQ52")
	}

	// Identical hands across suits tie exactly.
	a := mustRank(t, "As Ad Kh 5c 2s")
	b := mustRank(t, "Ah Ac Kd 5s 2d")
	if a != b {
		t.Errorf("suit-permuted hands differ: %#x vs %#x", uint32(a), uint32(b))
	}
}

func TestEvaluateSevenCards(t *testing.T) {
	t.Parallel()

	// The best five of seven: two hole cards plus a board making a flush
	// that beats the board's straight.
	rank := mustRank(t, "As Ks Qs Js 9s 8d 7c")
	if rank.Category() != Flush {
		t.Errorf("Category = %v, want Flush", rank.Category())
	}

	// Board pair plus pocket pair makes two pair, not one.
	rank = mustRank(t, "9h 9c As Ad 5s 3d 2c")
	if rank.Category() != TwoPair {
		t.Errorf("Category = %v, want TwoPair", rank.Category())
	}
}

func TestEvaluateArgErrors(t *testing.T) {
	t.Parallel()

	cards, _ := ParseCards("As Kd 9h 5c")
	if _, err := Evaluate(cards); err == nil {
		t.Error("Evaluate with 4 cards succeeded, want error")
	}
	cards, _ = ParseCards("As Kd 9h 5c 2s 3s 4s 6s")
	if _, err := Evaluate(cards); err == nil {
		t.Error("Evaluate with 8 cards succeeded, want error")
	}
}

func TestHandRankStrings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cards string
		str   string
		desc  string
	}{
		{"As Ks Qs Js Ts", "Royal Flush", "Royal Flush"},
		{"9s 8s 7s 6s 5s", "Straight Flush", "Straight Flush, Nine high"},
		{"As Ad Ah Ac 9s", "Four of a Kind", "Four of a Kind, Aces"},
		{"As Ad Ah 9c 9s", "Full House", "Full House, Aces full of Nines"},
		{"As Ks 9s 5s 2s", "Flush", "Flush, Ace high"},
		{"As 2d 3h 4c 5s", "Straight", "Straight, Five high"},
		{"As Ad Ah 9c 2s", "Three of a Kind", "Three of a Kind, Aces"},
		{"As Ad Kh Kc 2s", "Two Pair", "Two Pair, Aces and Kings"},
		{"As Ad 9h 5c 2s", "One Pair", "Pair of Aces"},
		{"As Kd 9h 5c 2s", "High Card", "High Card, Ace"},
	}
	for _, tc := range cases {
		rank := mustRank(t, tc.cards)
		if got := rank.String(); got != tc.str {
			t.Errorf("String(%s) = %q, want %q", tc.cards, got, tc.str)
		}
		if got := rank.Describe(); got != tc.desc {
			t.Errorf("Describe(%s) = %q, want %q", tc.cards, got, tc.desc)
		}
	}
}
