package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "mixed suits",
			input: "AhKdQcJs9s",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Nine},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "AsKx",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !cardsEqual(got, tt.expected) {
				t.Errorf("ParseCards() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseCardBoundaryForm(t *testing.T) {
	tests := []struct {
		value, suit string
		want        Card
	}{
		{"10", "Hearts", Card{Rank: Ten, Suit: Hearts}},
		{"A", "Spades", Card{Rank: Ace, Suit: Spades}},
		{"j", "diamonds", Card{Rank: Jack, Suit: Diamonds}},
		{"2", "♣", Card{Rank: Two, Suit: Clubs}},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.value, tt.suit)
		if err != nil {
			t.Fatalf("ParseCard(%q, %q) unexpected error: %v", tt.value, tt.suit, err)
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q, %q) = %v, want %v", tt.value, tt.suit, got, tt.want)
		}
		// Round trip through the boundary labels
		back, err := ParseCard(got.Rank.Label(), got.Suit.Name())
		if err != nil || back != got {
			t.Errorf("round trip of %v failed: %v, %v", got, back, err)
		}
	}

	if _, err := ParseCard("1", "Hearts"); err == nil {
		t.Error("expected error for rank 1")
	}
	if _, err := ParseCard("A", "Stars"); err == nil {
		t.Error("expected error for unknown suit")
	}
}

func TestParseShortTen(t *testing.T) {
	c, err := ParseShort("10d")
	if err != nil {
		t.Fatal(err)
	}
	if c != (Card{Rank: Ten, Suit: Diamonds}) {
		t.Errorf("got %v", c)
	}
	if c.Short() != "Td" {
		t.Errorf("Short() = %q, want Td", c.Short())
	}
}

func TestCardEqualityIsByValue(t *testing.T) {
	a := NewCard(Queen, Clubs)
	b := NewCard(Queen, Clubs)
	if a != b {
		t.Error("cards with equal rank and suit should be equal")
	}
	if a == NewCard(Jack, Spades) {
		t.Error("different cards compared equal")
	}
	if !NewCard(Two, Spades).Less(NewCard(Three, Hearts)) {
		t.Error("rank should dominate ordering")
	}
	if !NewCard(Two, Hearts).Less(NewCard(Two, Spades)) {
		t.Error("suit should break rank ties")
	}
}

func TestMustParseCards(t *testing.T) {
	cards := MustParseCards("AsKs")
	expected := []Card{
		{Suit: Spades, Rank: Ace},
		{Suit: Spades, Rank: King},
	}
	if !cardsEqual(cards, expected) {
		t.Errorf("MustParseCards() = %v, want %v", cards, expected)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseCards() should panic on invalid input")
		}
	}()
	MustParseCards("invalid")
}

func cardsEqual(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
