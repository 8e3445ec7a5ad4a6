package poker

import (
	"fmt"
	"sort"
)

// Category is the class of a 5-card poker hand.
type Category int

// Categories from weakest to strongest. A royal flush is the ace-high
// straight flush, not a category of its own.
const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank is a totally ordered hand strength score. The category sits
// in the bits above 20 and up to five 4-bit tie-break ranks below, so a
// strictly better hand always compares strictly greater and equal ranks
// denote an exact tie.
type HandRank uint32

const (
	categoryShift = 20
	tiebreakMask  = 1<<categoryShift - 1
)

// Category returns the hand's category.
func (hr HandRank) Category() Category {
	return Category(hr >> categoryShift)
}

// tiebreak returns the i-th (0-based, most significant first) 4-bit
// tie-break rank.
func (hr HandRank) tiebreak(i int) Rank {
	return Rank(hr >> (16 - 4*i) & 0xF)
}

// String returns the category name, reporting the ace-high straight
// flush as "Royal Flush".
func (hr HandRank) String() string {
	if hr.Category() == StraightFlush && hr.tiebreak(0) == Ace {
		return "Royal Flush"
	}
	return hr.Category().String()
}

// Describe returns a presentation string like "Two Pair, Kings and Fives".
func (hr HandRank) Describe() string {
	switch hr.Category() {
	case StraightFlush:
		if hr.tiebreak(0) == Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", rankName(hr.tiebreak(0)))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %ss", rankName(hr.tiebreak(0)))
	case FullHouse:
		return fmt.Sprintf("Full House, %ss full of %ss", rankName(hr.tiebreak(0)), rankName(hr.tiebreak(1)))
	case Flush:
		return fmt.Sprintf("Flush, %s high", rankName(hr.tiebreak(0)))
	case Straight:
		return fmt.Sprintf("Straight, %s high", rankName(hr.tiebreak(0)))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %ss", rankName(hr.tiebreak(0)))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %ss and %ss", rankName(hr.tiebreak(0)), rankName(hr.tiebreak(1)))
	case OnePair:
		return fmt.Sprintf("Pair of %ss", rankName(hr.tiebreak(0)))
	case HighCard:
		return fmt.Sprintf("High Card, %s", rankName(hr.tiebreak(0)))
	default:
		return "Unknown"
	}
}

func rankName(r Rank) string {
	switch r {
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Seven:
		return "Seven"
	case Eight:
		return "Eight"
	case Nine:
		return "Nine"
	case Ten:
		return "Ten"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	default:
		return "?"
	}
}

// Evaluate scores a set of 5 to 7 cards. For 6 or 7 cards every 5-card
// combination is evaluated and the best score returned.
func Evaluate(cards []Card) (HandRank, error) {
	switch {
	case len(cards) < 5 || len(cards) > 7:
		return 0, fmt.Errorf("evaluate needs 5-7 cards, got %d", len(cards))
	case len(cards) == 5:
		var hand [5]Card
		copy(hand[:], cards)
		return evaluate5(hand), nil
	}

	var best HandRank
	var combo [5]Card
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo[0], combo[1], combo[2], combo[3], combo[4] =
							cards[a], cards[b], cards[c], cards[d], cards[e]
						if hr := evaluate5(combo); hr > best {
							best = hr
						}
					}
				}
			}
		}
	}
	return best, nil
}

// pack builds a HandRank from a category and up to five tie-break
// ranks, most significant first.
func pack(cat Category, ranks ...Rank) HandRank {
	hr := HandRank(cat) << categoryShift
	for i, r := range ranks {
		hr |= HandRank(r) << (16 - 4*i)
	}
	return hr
}

func evaluate5(cards [5]Card) HandRank {
	ranks := make([]Rank, 5)
	flush := true
	for i, c := range cards {
		ranks[i] = c.Rank
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	straightHigh := straightHighCard(ranks)

	if flush && straightHigh != 0 {
		return pack(StraightFlush, straightHigh)
	}

	// Group ranks by multiplicity: higher count first, then higher rank.
	// The grouped order is exactly the kicker order for every category.
	counts := map[Rank]int{}
	for _, r := range ranks {
		counts[r]++
	}
	grouped := make([]Rank, 0, len(counts))
	for r := range counts {
		grouped = append(grouped, r)
	}
	sort.Slice(grouped, func(i, j int) bool {
		if counts[grouped[i]] != counts[grouped[j]] {
			return counts[grouped[i]] > counts[grouped[j]]
		}
		return grouped[i] > grouped[j]
	})

	switch len(grouped) {
	case 2:
		if counts[grouped[0]] == 4 {
			return pack(FourOfAKind, grouped...)
		}
		return pack(FullHouse, grouped...)
	case 3:
		if counts[grouped[0]] == 3 {
			return pack(ThreeOfAKind, grouped...)
		}
		return pack(TwoPair, grouped...)
	case 4:
		return pack(OnePair, grouped...)
	}

	if flush {
		return pack(Flush, ranks...)
	}
	if straightHigh != 0 {
		return pack(Straight, straightHigh)
	}
	return pack(HighCard, ranks...)
}

// straightHighCard returns the high card of a straight formed by the
// given descending distinct-or-not ranks, or 0 if there is none. The
// wheel A-2-3-4-5 counts as a 5-high straight.
func straightHighCard(desc []Rank) Rank {
	for i := 1; i < len(desc); i++ {
		if desc[i] == desc[i-1] {
			return 0
		}
	}
	if desc[0]-desc[4] == 4 {
		return desc[0]
	}
	if desc[0] == Ace && desc[1] == Five && desc[1]-desc[4] == 3 {
		return Five
	}
	return 0
}
