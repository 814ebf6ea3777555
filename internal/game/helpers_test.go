package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/stretchr/testify/require"
)

var testNames = []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank"}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func humans(n, chips int) []*Player {
	players := make([]*Player, n)
	for i := range players {
		players[i] = NewPlayer(i, testNames[i], chips)
	}
	return players
}

// stackedDeck returns a full deck that deals the given cards first, in
// order: two hole cards per seat, then flop, turn and river.
func stackedDeck(t *testing.T, dealOrder string) *deck.Deck {
	t.Helper()
	dealt := deck.MustParseCards(dealOrder)
	used := make(map[deck.Card]bool, len(dealt))
	for _, c := range dealt {
		require.False(t, used[c], "card %v stacked twice", c)
		used[c] = true
	}

	cards := make([]deck.Card, 0, deck.Size)
	for _, c := range deck.New(nil).Cards() {
		if !used[c] {
			cards = append(cards, c)
		}
	}
	for i := len(dealt) - 1; i >= 0; i-- {
		cards = append(cards, dealt[i])
	}
	return deck.FromCards(cards)
}

func newTestGame(t *testing.T, players []*Player, button int, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	g, err := New(randutil.New(42), players, button, 5, 10, opts...)
	require.NoError(t, err)
	return g
}

func mustAct(t *testing.T, g *Game, seat int, action Action, amount int) string {
	t.Helper()
	msg, err := g.ExecuteTurn(seat, action, amount)
	require.NoError(t, err, "seat %d %s %d", seat, action, amount)
	return msg
}

func cardsDealt(g *Game) int {
	n := len(g.Community())
	for _, p := range g.Seats() {
		n += len(p.HoleCards)
	}
	return n
}
