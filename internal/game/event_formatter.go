package game

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/internal/deck"
)

// CardFormatter renders a single card. The TUI passes a styled renderer.
type CardFormatter func(deck.Card) string

// EventFormatter turns events into one-line log entries
type EventFormatter struct {
	card CardFormatter
}

// NewEventFormatter creates a formatter. A nil card formatter uses Card.String.
func NewEventFormatter(card CardFormatter) *EventFormatter {
	if card == nil {
		card = deck.Card.String
	}
	return &EventFormatter{card: card}
}

// Format dispatches on the event type
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case PlayerActionEvent:
		return ef.FormatPlayerAction(e)
	case PhaseChangeEvent:
		return ef.FormatPhaseChange(e)
	case HandStartEvent:
		return ef.FormatHandStart(e)
	case HandEndEvent:
		return ef.FormatHandEnd(e)
	default:
		return string(event.EventType())
	}
}

// FormatPlayerAction formats e.g. "Alice: raises $40 (pot now: $70)"
func (ef *EventFormatter) FormatPlayerAction(e PlayerActionEvent) string {
	switch e.Action {
	case Fold:
		return fmt.Sprintf("%s: folds", e.Player)
	case Check:
		return fmt.Sprintf("%s: checks", e.Player)
	case Call:
		if e.Amount == 0 {
			return fmt.Sprintf("%s: checks", e.Player)
		}
		return fmt.Sprintf("%s: calls $%d (pot now: $%d)", e.Player, e.Amount, e.PotAfter)
	case Bet:
		return fmt.Sprintf("%s: bets $%d (pot now: $%d)", e.Player, e.Amount, e.PotAfter)
	case Raise:
		return fmt.Sprintf("%s: raises $%d (pot now: $%d)", e.Player, e.Amount, e.PotAfter)
	default:
		return fmt.Sprintf("%s: %s $%d", e.Player, e.Action, e.Amount)
	}
}

// FormatPhaseChange formats e.g. "*** FLOP *** [A♥ 7♣ 2♦]"
func (ef *EventFormatter) FormatPhaseChange(e PhaseChangeEvent) string {
	header := fmt.Sprintf("*** %s ***", strings.ToUpper(e.Phase.String()))
	if len(e.Community) == 0 {
		return header
	}
	return header + " " + ef.FormatCards(e.Community)
}

// FormatHandStart formats the hand header
func (ef *EventFormatter) FormatHandStart(e HandStartEvent) string {
	return fmt.Sprintf("Hand #%d: %d players, blinds $%d/$%d", e.HandNumber, len(e.Players), e.SmallBlind, e.BigBlind)
}

// FormatHandEnd formats the result line
func (ef *EventFormatter) FormatHandEnd(e HandEndEvent) string {
	if e.Explanation == "" {
		return fmt.Sprintf("%s wins $%d", e.Winner, e.Pot)
	}
	return fmt.Sprintf("%s wins $%d: %s", e.Winner, e.Pot, e.Explanation)
}

// FormatCards renders cards as "[A♥ K♥]"
func (ef *EventFormatter) FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = ef.card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
