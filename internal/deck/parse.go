package deck

import (
	"fmt"
	"strings"
)

var rankLabels = map[string]Rank{
	"2": Two, "3": Three, "4": Four, "5": Five, "6": Six, "7": Seven, "8": Eight,
	"9": Nine, "10": Ten, "T": Ten, "J": Jack, "Q": Queen, "K": King, "A": Ace,
}

// ParseRank parses "2".."10", "T", "J", "Q", "K" or "A" (case insensitive)
func ParseRank(s string) (Rank, error) {
	r, ok := rankLabels[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("invalid rank %q", s)
	}
	return r, nil
}

// ParseSuit accepts the long name ("Hearts"), its initial ("h") or the symbol ("♥")
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hearts", "h", "♥":
		return Hearts, nil
	case "diamonds", "d", "♦":
		return Diamonds, nil
	case "clubs", "c", "♣":
		return Clubs, nil
	case "spades", "s", "♠":
		return Spades, nil
	}
	return 0, fmt.Errorf("invalid suit %q", s)
}

// ParseCard converts the boundary pair representation ({"value": "10",
// "suit": "Hearts"}) into a Card.
func ParseCard(value, suit string) (Card, error) {
	r, err := ParseRank(value)
	if err != nil {
		return Card{}, err
	}
	s, err := ParseSuit(suit)
	if err != nil {
		return Card{}, err
	}
	return NewCard(r, s), nil
}

// ParseShort parses a single card in short notation: "Ah", "Td" or "10d"
func ParseShort(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	return ParseCard(s[:len(s)-1], s[len(s)-1:])
}

// ParseCards parses a run of two-character cards such as "AsKsQs"
func ParseCards(s string) ([]Card, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string %q: odd length", s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseShort(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
