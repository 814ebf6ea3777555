package deck

import (
	"errors"
	"testing"

	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueCards(t *testing.T, cards []Card) map[Card]bool {
	t.Helper()
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		require.True(t, c.Valid(), "invalid card %v", c)
		require.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	return seen
}

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New(randutil.New(1))
	require.Equal(t, Size, d.Len())
	assert.Len(t, uniqueCards(t, d.Cards()), Size)
}

func TestShufflePreservesMultiset(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		d := New(randutil.New(seed))
		before := d.Cards()
		d.Shuffle()
		after := d.Cards()

		require.Len(t, after, Size)
		assert.Equal(t, uniqueCards(t, before), uniqueCards(t, after))
		assert.NotEqual(t, before, after, "seed %d left the deck in canonical order", seed)
	}
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	a := NewShuffled(randutil.New(99))
	b := NewShuffled(randutil.New(99))
	assert.Equal(t, a.Cards(), b.Cards())
}

func TestDrawExhaustsDeck(t *testing.T) {
	d := NewShuffled(randutil.New(5))
	seen := make(map[Card]bool)
	for i := 0; i < Size; i++ {
		c, err := d.Draw()
		require.NoError(t, err)
		require.False(t, seen[c], "card %v drawn twice", c)
		seen[c] = true
	}
	assert.True(t, d.IsEmpty())

	_, err := d.Draw()
	assert.True(t, errors.Is(err, ErrEmptyDeck))
}

func TestDrawTakesFromTheEnd(t *testing.T) {
	d := FromCards(MustParseCards("2h3h4h"))
	c, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Four, Hearts), c)
	assert.Equal(t, MustParseCards("2h3h"), d.Cards())
}

func TestDrawNAllOrNothing(t *testing.T) {
	d := FromCards(MustParseCards("2h3h"))
	_, err := d.DrawN(3)
	assert.ErrorIs(t, err, ErrEmptyDeck)
	assert.Equal(t, 2, d.Len())

	cards, err := d.DrawN(2)
	require.NoError(t, err)
	assert.Equal(t, MustParseCards("3h2h"), cards)
}

func TestResetRefills(t *testing.T) {
	d := NewShuffled(randutil.New(3))
	_, err := d.DrawN(10)
	require.NoError(t, err)
	d.Reset()
	assert.Equal(t, Size, d.Len())
	uniqueCards(t, d.Cards())
}
