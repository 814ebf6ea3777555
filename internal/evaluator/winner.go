package evaluator

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/deck"
)

// Outcome is the result of a heads-up comparison from the player's side
type Outcome int

const (
	Tie Outcome = iota
	Win
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "tie"
	}
}

// Result describes a heads-up showdown
type Result struct {
	Outcome          Outcome
	PlayerCategory   Category
	OpponentCategory Category
	Message          string
}

// DetermineWinner compares the best hands of player and opponent sharing the
// community cards.
func DetermineWinner(player, opponent, community []deck.Card) (Result, error) {
	ph, err := BestHand(join(player, community))
	if err != nil {
		return Result{}, fmt.Errorf("player hand: %w", err)
	}
	oh, err := BestHand(join(opponent, community))
	if err != nil {
		return Result{}, fmt.Errorf("opponent hand: %w", err)
	}
	return Compare(ph.Category, oh.Category), nil
}

// Compare builds the heads-up result for two categories. The message depends
// only on the categories.
func Compare(player, opponent Category) Result {
	r := Result{PlayerCategory: player, OpponentCategory: opponent}
	switch {
	case player > opponent:
		r.Outcome = Win
		r.Message = fmt.Sprintf("Player wins with %s!", Explain(player))
	case opponent > player:
		r.Outcome = Lose
		r.Message = fmt.Sprintf("Opponent wins with %s!", Explain(opponent))
	default:
		r.Outcome = Tie
		r.Message = "It's a tie!"
	}
	return r
}

// ShowdownWinner returns the index of the winning category. Ties go to the
// lowest index, i.e. the first seat in seat order. Returns -1 when empty.
func ShowdownWinner(categories []Category) int {
	winner := -1
	for i, c := range categories {
		if winner < 0 || c > categories[winner] {
			winner = i
		}
	}
	return winner
}

func join(a, b []deck.Card) []deck.Card {
	out := make([]deck.Card, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
