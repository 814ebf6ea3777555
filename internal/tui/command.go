package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-engine/internal/game"
)

// Command is one line typed into the action box
type Command struct {
	Action game.Action
	Amount int
	Quit   bool
	Next   bool // empty line or "next": deal the next hand
}

// ParseCommand parses "check", "call", "fold", "bet N", "raise N", "next"
// and "quit". An empty line means next.
func ParseCommand(input string) (Command, error) {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return Command{Next: true}, nil
	}

	switch parts[0] {
	case "q", "quit", "exit":
		return Command{Quit: true}, nil
	case "n", "next":
		return Command{Next: true}, nil
	}

	action, err := game.ParseAction(parts[0])
	if err != nil {
		return Command{}, err
	}

	cmd := Command{Action: action}
	switch action {
	case game.Bet, game.Raise:
		if len(parts) != 2 {
			return Command{}, fmt.Errorf("usage: %s <amount>", action)
		}
		amount, err := strconv.Atoi(strings.TrimPrefix(parts[1], "$"))
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", game.ErrInvalidAmount, parts[1])
		}
		cmd.Amount = amount
	default:
		if len(parts) > 1 {
			return Command{}, fmt.Errorf("%s takes no amount", action)
		}
	}
	return cmd, nil
}
