package game

import (
	"slices"

	"github.com/lox/holdem-engine/internal/deck"
)

// Player is a seat at the table. Chips persist across hands; everything else
// is reset when a new hand starts. A bot seat carries a non-nil Bot.
type Player struct {
	ID             int
	Name           string
	Chips          int
	HoleCards      []deck.Card
	RoundBet       int // chips committed in the current betting round
	HasActed       bool
	Folded         bool
	Role           Role
	Aggressiveness float64

	Bot *Bot
}

// NewPlayer creates a human seat
func NewPlayer(id int, name string, chips int) *Player {
	return &Player{ID: id, Name: name, Chips: chips}
}

// IsBot reports whether the seat is driven by a bot policy
func (p *Player) IsBot() bool {
	return p.Bot != nil
}

// AddCard gives the player a card it does not already hold
func (p *Player) AddCard(c deck.Card) {
	if !p.HasCard(c) {
		p.HoleCards = append(p.HoleCards, c)
	}
}

// RemoveCard removes a card if the player holds it
func (p *Player) RemoveCard(c deck.Card) {
	if i := slices.Index(p.HoleCards, c); i >= 0 {
		p.HoleCards = slices.Delete(p.HoleCards, i, i+1)
	}
}

// HasCard reports whether the player holds a card equal to c
func (p *Player) HasCard(c deck.Card) bool {
	return slices.Contains(p.HoleCards, c)
}

// BetChips commits amount from the stack and returns what was committed.
// Amounts of zero or less, or more than the stack, commit nothing.
func (p *Player) BetChips(amount int) int {
	if amount <= 0 || amount > p.Chips {
		return 0
	}
	p.Chips -= amount
	p.RoundBet += amount
	return amount
}

// AddChips credits the stack
func (p *Player) AddChips(amount int) {
	p.Chips += amount
}

func (p *Player) ResetHasActed() {
	p.HasActed = false
}

func (p *Player) SetHasActed() {
	p.HasActed = true
}

// IncreaseAggressiveness bumps the aggressiveness score by one. It never
// decreases.
func (p *Player) IncreaseAggressiveness() {
	p.Aggressiveness++
}

// resetForHand clears per-hand state, keeping chips and aggressiveness
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.RoundBet = 0
	p.HasActed = false
	p.Folded = false
	p.Role = NoRole
}

// resetForRound clears per-round betting state
func (p *Player) resetForRound() {
	p.RoundBet = 0
	p.HasActed = false
}
