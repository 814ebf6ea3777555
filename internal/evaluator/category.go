// Package evaluator ranks poker hands by category. Only the category is
// compared: two flushes tie regardless of their kickers.
package evaluator

import "fmt"

// Category is a hand category. Higher values beat lower ones and the value
// doubles as the category's point score.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
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
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Points returns the score of the category, 1 for high card up to 10 for a
// royal flush.
func (c Category) Points() int {
	return int(c)
}

// Explain describes a category for display, e.g. "Flush (6 points)"
func Explain(c Category) string {
	return fmt.Sprintf("%s (%d points)", c, c.Points())
}
