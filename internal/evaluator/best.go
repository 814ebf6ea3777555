package evaluator

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-engine/internal/deck"
)

// ErrTooFewCards is returned when fewer than five cards are available
var ErrTooFewCards = errors.New("at least 5 cards are required")

// Hand is a chosen five-card hand and its category
type Hand struct {
	Cards    []deck.Card
	Category Category
}

// String returns e.g. "Flush [A♥ K♥ 9♥ 7♥ 2♥]"
func (h Hand) String() string {
	return fmt.Sprintf("%s %v", h.Category, h.Cards)
}

// BestHand picks the highest-category five-card subset of cards. All C(n,5)
// subsets are visited in lexicographic index order and the first one with
// the maximum category wins.
func BestHand(cards []deck.Card) (Hand, error) {
	if len(cards) < HandSize {
		return Hand{}, fmt.Errorf("best hand of %d cards: %w", len(cards), ErrTooFewCards)
	}

	best := Hand{}
	subset := make([]deck.Card, HandSize)
	eachCombination(len(cards), HandSize, func(idx []int) {
		for i, j := range idx {
			subset[i] = cards[j]
		}
		if cat := Categorize(subset); cat > best.Category {
			best.Category = cat
			best.Cards = append(best.Cards[:0], subset...)
		}
	})
	return best, nil
}

// CategoryOf is shorthand for the category of BestHand. Fewer than five
// cards yields zero.
func CategoryOf(cards []deck.Card) Category {
	h, err := BestHand(cards)
	if err != nil {
		return 0
	}
	return h.Category
}

// eachCombination calls fn with every k-subset of [0,n) in lexicographic order
func eachCombination(n, k int, fn func([]int)) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
