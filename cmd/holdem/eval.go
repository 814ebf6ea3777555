package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

// EvalCmd prints the best five-card hand among the given cards. With
// --opponent the first two cards are the player's hole cards and the rest
// the board.
type EvalCmd struct {
	Cards    []string `arg:"" help:"Cards such as Ah Kh Qh Jh Th 2c 3d, or AhKhQhJhTh"`
	Opponent string   `help:"Opponent hole cards, e.g. 2c3d"`
}

func (c *EvalCmd) Run(g *Globals) error {
	return c.eval(os.Stdout)
}

func (c *EvalCmd) eval(w io.Writer) error {
	cards, err := parseCardArgs(c.Cards)
	if err != nil {
		return err
	}

	if c.Opponent == "" {
		hand, err := evaluator.BestHand(cards)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Best hand: %v\n", hand.Cards)
		fmt.Fprintln(w, evaluator.Explain(hand.Category))
		return nil
	}

	opponent, err := deck.ParseCards(c.Opponent)
	if err != nil {
		return fmt.Errorf("opponent: %w", err)
	}
	if len(opponent) != 2 || len(cards) < 2 {
		return fmt.Errorf("need two hole cards each")
	}
	for _, oc := range opponent {
		for _, c := range cards {
			if c == oc {
				return fmt.Errorf("duplicate card %s", c.Short())
			}
		}
	}
	result, err := evaluator.DetermineWinner(cards[:2], opponent, cards[2:])
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Player:   %s\n", evaluator.Explain(result.PlayerCategory))
	fmt.Fprintf(w, "Opponent: %s\n", evaluator.Explain(result.OpponentCategory))
	fmt.Fprintln(w, result.Message)
	return nil
}

// parseCardArgs accepts one card per argument ("10d" included) or several
// run together ("AhKh")
func parseCardArgs(args []string) ([]deck.Card, error) {
	var cards []deck.Card
	seen := make(map[deck.Card]bool)
	for _, arg := range args {
		parsed, err := deck.ParseCards(arg)
		if err != nil {
			c, serr := deck.ParseShort(arg)
			if serr != nil {
				return nil, err
			}
			parsed = []deck.Card{c}
		}
		for _, c := range parsed {
			if seen[c] {
				return nil, fmt.Errorf("duplicate card %s", c.Short())
			}
			seen[c] = true
			cards = append(cards, c)
		}
	}
	return cards, nil
}
