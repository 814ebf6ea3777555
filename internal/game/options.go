package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/deck"
)

// Option configures a Game during creation.
type Option func(*gameConfig)

// gameConfig holds the optional configuration for a hand
type gameConfig struct {
	logger     *log.Logger
	events     EventBus
	deck       *deck.Deck // If provided, used as is instead of a fresh shuffled deck
	handNumber int
}

func defaultConfig() *gameConfig {
	return &gameConfig{
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
		events:     nopBus{},
		handNumber: 1,
	}
}

// WithLogger sets the logger; the game logs under the "game" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEventBus publishes hand events to bus.
func WithEventBus(bus EventBus) Option {
	return func(c *gameConfig) {
		if bus != nil {
			c.events = bus
		}
	}
}

// WithDeck sets a specific deck. It is not shuffled again, so tests can
// stack it with deck.FromCards.
func WithDeck(d *deck.Deck) Option {
	return func(c *gameConfig) {
		c.deck = d
	}
}

// WithHandNumber sets the number reported in snapshots and events.
func WithHandNumber(n int) Option {
	return func(c *gameConfig) {
		c.handNumber = n
	}
}
