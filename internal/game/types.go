package game

import (
	"fmt"
	"strings"
)

// Phase is a stage of a hand. Phases only move forward and Showdown is
// terminal.
type Phase int

const (
	PreFlop Phase = iota
	Flop
	Turn
	River
	Showdown
)

// String returns the phase name as shown to clients
func (p Phase) String() string {
	switch p {
	case PreFlop:
		return "pre-flop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// communityCount is the number of community cards visible in each phase
func (p Phase) communityCount() int {
	switch p {
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Showdown:
		return 5
	default:
		return 0
	}
}

// Action represents a player action
type Action int

const (
	Check Action = iota
	Call
	Bet
	Raise
	Fold
)

// Actions lists every action in display order
var Actions = []Action{Check, Call, Bet, Raise, Fold}

// String returns the lowercase action name used on the wire
func (a Action) String() string {
	switch a {
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case Fold:
		return "fold"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction converts a name such as "raise" into an Action
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	case "fold":
		return Fold, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Role is the forced-bet role a seat holds for the current hand
type Role int

const (
	NoRole Role = iota
	SmallBlind
	BigBlind
)

func (r Role) String() string {
	switch r {
	case SmallBlind:
		return "small blind"
	case BigBlind:
		return "big blind"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Phase) UnmarshalText(text []byte) error {
	for ph := PreFlop; ph <= Showdown; ph++ {
		if ph.String() == string(text) {
			*p = ph
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
