package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
// Given the 52-card invariant a well-behaved hand never sees it.
var ErrEmptyDeck = errors.New("deck is empty")

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents a deck of playing cards. Cards are drawn from the end of
// the slice, so the deck behaves as a stack.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a standard 52-card deck in canonical order. Call Shuffle
// before drawing.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	d.fill()
	return d
}

// NewShuffled creates a deck and shuffles it
func NewShuffled(rng *rand.Rand) *Deck {
	d := New(rng)
	d.Shuffle()
	return d
}

// FromCards builds a deck holding exactly the given cards. The last card in
// the slice is drawn first. Used to stack the deck in tests.
func FromCards(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
}

// Shuffle randomizes the order of cards in the deck using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top (last) card
func (d *Deck) Draw() (Card, error) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card, nil
}

// DrawN draws n cards. Nothing is removed when fewer than n remain.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrEmptyDeck
	}
	cards := make([]Card, 0, n)
	for range n {
		card, _ := d.Draw()
		cards = append(cards, card)
	}
	return cards, nil
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, bottom first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Reset restores the deck to a full 52-card deck and shuffles it
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}
