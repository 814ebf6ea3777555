package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
)

// SeatConfig describes one seat at a table
type SeatConfig struct {
	Name    string
	Human   bool
	BotType BotType
	Chips   int // 0 uses the table's starting chips
}

// TableConfig holds the configuration for a table
type TableConfig struct {
	SmallBlind    int
	BigBlind      int
	StartingChips int
	Seats         []SeatConfig
}

// Table is a multi-hand session: a roster whose chip stacks carry from hand
// to hand, and a button that moves one funded seat per hand.
type Table struct {
	cfg     TableConfig
	rng     *rand.Rand
	logger  *log.Logger
	events  EventBus
	players []*Player
	button  int // seat id of the button, -1 before the first hand
	hands   int
	current *Game
}

// NewTable seats the configured players. Seat ids follow config order.
func NewTable(cfg TableConfig, rng *rand.Rand, logger *log.Logger) (*Table, error) {
	if rng == nil {
		return nil, fmt.Errorf("rng is required")
	}
	if len(cfg.Seats) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if cfg.SmallBlind <= 0 || cfg.BigBlind <= cfg.SmallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", cfg.SmallBlind, cfg.BigBlind)
	}

	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	t := &Table{
		cfg:    cfg,
		rng:    rng,
		logger: logger.WithPrefix("table"),
		events: NewEventBus(),
		button: -1,
	}
	for i, sc := range cfg.Seats {
		chips := sc.Chips
		if chips == 0 {
			chips = cfg.StartingChips
		}
		if sc.Human {
			t.players = append(t.players, NewPlayer(i, sc.Name, chips))
		} else {
			t.players = append(t.players, NewBot(i, sc.Name, chips, sc.BotType, rng))
		}
	}
	return t, nil
}

// Events returns the bus every hand at this table publishes to
func (t *Table) Events() EventBus {
	return t.events
}

// Players returns the roster in seat order
func (t *Table) Players() []*Player {
	return slices.Clone(t.players)
}

// HandsPlayed returns how many hands have been dealt
func (t *Table) HandsPlayed() int {
	return t.hands
}

// Game returns the hand in progress or most recently finished, or nil
func (t *Table) Game() *Game {
	return t.current
}

// TotalChips returns the chips on the table including any pot in play
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.players {
		total += p.Chips
	}
	if t.current != nil {
		total += t.current.Pot()
	}
	return total
}

// NewGame moves the button and deals a new hand to every seat with chips
func (t *Table) NewGame() (*Game, error) {
	if t.current != nil && !t.current.IsComplete() {
		return nil, fmt.Errorf("hand %d: %w", t.current.HandNumber(), ErrHandInProgress)
	}

	var funded []*Player
	for _, p := range t.players {
		if p.Chips > 0 {
			funded = append(funded, p)
		}
	}
	if len(funded) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	t.button = t.nextButton(funded)
	button := slices.IndexFunc(funded, func(p *Player) bool { return p.ID == t.button })

	g, err := New(t.rng, funded, button, t.cfg.SmallBlind, t.cfg.BigBlind,
		WithLogger(t.logger),
		WithEventBus(t.events),
		WithHandNumber(t.hands+1))
	if err != nil {
		return nil, err
	}
	t.hands++
	t.current = g
	return g, nil
}

// nextButton returns the first funded seat after the current button
func (t *Table) nextButton(funded []*Player) int {
	if t.button < 0 {
		return funded[0].ID
	}
	for _, p := range funded {
		if p.ID > t.button {
			return p.ID
		}
	}
	return funded[0].ID
}
