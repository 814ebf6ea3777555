package evaluator

import (
	"sort"

	"github.com/lox/holdem-engine/internal/deck"
)

// HandSize is the number of cards in a ranked hand
const HandSize = 5

// rankCounts returns how many times each rank appears
func rankCounts(hand []deck.Card) map[deck.Rank]int {
	counts := make(map[deck.Rank]int, len(hand))
	for _, c := range hand {
		counts[c.Rank]++
	}
	return counts
}

// groups returns how many ranks appear exactly n times
func groups(hand []deck.Card, n int) int {
	found := 0
	for _, count := range rankCounts(hand) {
		if count == n {
			found++
		}
	}
	return found
}

// IsPair reports whether some rank appears exactly twice
func IsPair(hand []deck.Card) bool {
	return groups(hand, 2) >= 1
}

// IsTwoPair reports whether two distinct ranks each appear exactly twice
func IsTwoPair(hand []deck.Card) bool {
	return groups(hand, 2) >= 2
}

// IsThreeOfAKind reports whether some rank appears exactly three times
func IsThreeOfAKind(hand []deck.Card) bool {
	return groups(hand, 3) >= 1
}

// IsFourOfAKind reports whether some rank appears four times
func IsFourOfAKind(hand []deck.Card) bool {
	return groups(hand, 4) >= 1
}

// IsFullHouse reports a three of a kind plus a pair of another rank
func IsFullHouse(hand []deck.Card) bool {
	return IsThreeOfAKind(hand) && IsPair(hand)
}

// IsFlush reports whether all cards share a suit
func IsFlush(hand []deck.Card) bool {
	if len(hand) == 0 {
		return false
	}
	for _, c := range hand[1:] {
		if c.Suit != hand[0].Suit {
			return false
		}
	}
	return true
}

// IsStraight reports five distinct consecutive ranks. The ace plays low
// only in the wheel (A-2-3-4-5).
func IsStraight(hand []deck.Card) bool {
	counts := rankCounts(hand)
	if len(counts) != HandSize || len(hand) != HandSize {
		return false
	}

	idx := make([]int, 0, HandSize)
	for r := range counts {
		idx = append(idx, r.Index())
	}
	sort.Ints(idx)

	if idx[HandSize-1]-idx[0] == HandSize-1 {
		return true
	}
	// Wheel: 2,3,4,5 plus the ace at index 12
	return idx[0] == 0 && idx[1] == 1 && idx[2] == 2 && idx[3] == 3 && idx[4] == deck.Ace.Index()
}

// IsStraightFlush reports a straight in a single suit
func IsStraightFlush(hand []deck.Card) bool {
	return IsStraight(hand) && IsFlush(hand)
}

// IsRoyalFlush reports the ten-to-ace straight flush
func IsRoyalFlush(hand []deck.Card) bool {
	if !IsStraightFlush(hand) {
		return false
	}
	for _, c := range hand {
		if c.Rank < deck.Ten {
			return false
		}
	}
	return true
}

// Categorize returns the highest category the hand satisfies
func Categorize(hand []deck.Card) Category {
	switch {
	case IsRoyalFlush(hand):
		return RoyalFlush
	case IsStraightFlush(hand):
		return StraightFlush
	case IsFourOfAKind(hand):
		return FourOfAKind
	case IsFullHouse(hand):
		return FullHouse
	case IsFlush(hand):
		return Flush
	case IsStraight(hand):
		return Straight
	case IsThreeOfAKind(hand):
		return ThreeOfAKind
	case IsTwoPair(hand):
		return TwoPair
	case IsPair(hand):
		return Pair
	default:
		return HighCard
	}
}
