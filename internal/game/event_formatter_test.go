package game

import (
	"testing"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/stretchr/testify/assert"
)

func TestEventFormatter(t *testing.T) {
	alice := NewPlayer(0, "Alice", 100)
	ef := NewEventFormatter(nil)

	tests := []struct {
		name     string
		event    GameEvent
		expected string
	}{
		{"fold", NewPlayerActionEvent(1, alice, Fold, 0, Flop, 100), "Alice: folds"},
		{"check", NewPlayerActionEvent(1, alice, Check, 0, Flop, 100), "Alice: checks"},
		{"free call", NewPlayerActionEvent(1, alice, Call, 0, Flop, 100), "Alice: checks"},
		{"call", NewPlayerActionEvent(1, alice, Call, 20, PreFlop, 120), "Alice: calls $20 (pot now: $120)"},
		{"bet", NewPlayerActionEvent(1, alice, Bet, 40, Turn, 160), "Alice: bets $40 (pot now: $160)"},
		{"raise", NewPlayerActionEvent(1, alice, Raise, 60, River, 220), "Alice: raises $60 (pot now: $220)"},
		{"flop", NewPhaseChangeEvent(1, Flop, deck.MustParseCards("Ah7c2d"), 30), "*** FLOP *** [A♥ 7♣ 2♦]"},
		{"empty board", NewPhaseChangeEvent(1, Showdown, nil, 0), "*** SHOWDOWN ***"},
		{"hand start", NewHandStartEvent(4, humans(3, 100), 5, 10, 15), "Hand #4: 3 players, blinds $5/$10"},
		{"hand end", NewHandEndEvent(4, alice, 50, true, "Alice wins with Flush (6 points)!", nil), "Alice wins $50: Alice wins with Flush (6 points)!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ef.Format(tt.event))
		})
	}
}

func TestEventFormatterCustomCards(t *testing.T) {
	ef := NewEventFormatter(deck.Card.Short)
	assert.Equal(t, "[Ah Td]", ef.FormatCards(deck.MustParseCards("AhTd")))
}
