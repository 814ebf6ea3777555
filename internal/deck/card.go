package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in canonical order
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the symbol for a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the long suit name used at the wire boundary ("Hearts")
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the short form of a rank ("T" for ten)
func (r Rank) String() string {
	if r == Ten {
		return "T"
	}
	return r.Label()
}

// Label returns the rank as written on the card face ("10", "J", "A")
func (r Rank) Label() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprint(int(r))
	}
	return "?"
}

// Index returns the zero-based position of the rank in the ace-high
// sequence: 2 is 0 and A is 12.
func (r Rank) Index() int {
	return int(r - Two)
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Short returns the two-character ASCII form ("Ah", "Td")
func (c Card) Short() string {
	return c.Rank.String() + strings.ToLower(c.Suit.Name()[:1])
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Less orders cards by rank, then suit
func (c Card) Less(o Card) bool {
	if c.Rank != o.Rank {
		return c.Rank < o.Rank
	}
	return c.Suit < o.Suit
}

// Valid reports whether the card is one of the 52 canonical cards
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit >= Hearts && c.Suit <= Spades
}

// Value returns the boundary rank label ("10", "J")
func (c Card) Value() string {
	return c.Rank.Label()
}

// SuitName returns the boundary suit label ("Hearts")
func (c Card) SuitName() string {
	return c.Suit.Name()
}
