package game

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

// BotType selects a bot's decision table
type BotType int

const (
	Aggressive BotType = iota
	Conservative
	Bluffer
	Tight
	Loose
	Passive
	Maniac
	CallingStation
)

// BotTypes lists every bot type
var BotTypes = []BotType{Aggressive, Conservative, Bluffer, Tight, Loose, Passive, Maniac, CallingStation}

func (t BotType) String() string {
	switch t {
	case Aggressive:
		return "aggressive"
	case Conservative:
		return "conservative"
	case Bluffer:
		return "bluffer"
	case Tight:
		return "tight"
	case Loose:
		return "loose"
	case Passive:
		return "passive"
	case Maniac:
		return "maniac"
	case CallingStation:
		return "calling_station"
	default:
		return "unknown"
	}
}

// ParseBotType parses names such as "aggressive" or "calling-station"
func ParseBotType(s string) (BotType, error) {
	norm := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range BotTypes {
		if t.String() == norm {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown bot type %q", s)
}

// Decision is one entry in a bot's action history
type Decision struct {
	Phase  Phase
	Action Action
	Amount int
}

// Bot is the decision-making half of a bot seat
type Bot struct {
	Type    BotType
	history []Decision
}

// History returns a copy of the decisions the bot has made
func (b *Bot) History() []Decision {
	return append([]Decision(nil), b.history...)
}

// NewBot creates a bot seat. Its aggressiveness is seeded uniformly in
// [0.1, 0.9).
func NewBot(id int, name string, chips int, botType BotType, rng *rand.Rand) *Player {
	return &Player{
		ID:             id,
		Name:           name,
		Chips:          chips,
		Aggressiveness: 0.1 + 0.8*rng.Float64(),
		Bot:            &Bot{Type: botType},
	}
}

// View is what a bot can see when deciding
type View struct {
	Community  []deck.Card
	Pot        int
	CurrentBet int
	// Aggressiveness of every live seat, including the bot itself
	Aggressiveness []float64
	Position       string
}

const (
	minBotAmount = 10
	maxBotAmount = 100
)

type ruleKind int

const (
	// fires when hand strength or pot odds reach the row's minimums
	whenStrong ruleKind = iota
	// fires with the row's probability
	withChance
	always
)

type rule struct {
	kind    ruleKind
	minRank evaluator.Category
	minOdds float64
	chance  float64
	action  Action
	// bump aggressiveness when the rule fires
	bump bool
}

type policy struct {
	rules    []rule
	fallback Action
}

func strong(rank evaluator.Category, odds float64, a Action) rule {
	return rule{kind: whenStrong, minRank: rank, minOdds: odds, action: a}
}

func chance(p float64, a Action) rule {
	return rule{kind: withChance, chance: p, action: a}
}

func otherwise(a Action) rule {
	return rule{kind: always, action: a}
}

func bumping(r rule) rule {
	r.bump = true
	return r
}

var preFlopPolicies = map[BotType]policy{
	Aggressive:     {rules: []rule{bumping(strong(3, 1.0, Raise)), chance(0.3, Bet)}, fallback: Fold},
	Conservative:   {rules: []rule{strong(5, 1.5, Call), chance(0.2, Raise)}, fallback: Fold},
	Bluffer:        {rules: []rule{chance(0.4, Raise)}, fallback: Fold},
	Tight:          {rules: []rule{strong(6, 2.0, Call)}, fallback: Fold},
	Loose:          {rules: []rule{bumping(strong(2, 1.0, Raise)), chance(0.5, Call)}, fallback: Fold},
	Passive:        {rules: []rule{strong(4, 1.5, Call), otherwise(Check)}, fallback: Fold},
	Maniac:         {rules: []rule{bumping(otherwise(Raise))}, fallback: Fold},
	CallingStation: {rules: []rule{otherwise(Call)}, fallback: Fold},
}

var postFlopPolicies = map[BotType]policy{
	Aggressive:     {rules: []rule{bumping(strong(4, 1.5, Raise)), chance(0.4, Bet)}, fallback: Check},
	Conservative:   {rules: []rule{strong(6, 2.0, Call), chance(0.3, Raise)}, fallback: Check},
	Bluffer:        {rules: []rule{chance(0.5, Raise)}, fallback: Check},
	Tight:          {rules: []rule{strong(6, 2.0, Call)}, fallback: Check},
	Loose:          {rules: []rule{bumping(strong(2, 1.0, Raise)), chance(0.5, Call)}, fallback: Check},
	Passive:        {rules: []rule{strong(4, 1.5, Call), otherwise(Check)}, fallback: Check},
	Maniac:         {rules: []rule{bumping(otherwise(Raise))}, fallback: Check},
	CallingStation: {rules: []rule{otherwise(Call)}, fallback: Check},
}

// HandStrength is the category of the best five of hole and community
// cards, or 0 when fewer than five are known.
func HandStrength(hole, community []deck.Card) evaluator.Category {
	cards := make([]deck.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)
	return evaluator.CategoryOf(cards)
}

// PotOdds is pot divided by the current bet, or 0 with no bet
func PotOdds(pot, currentBet int) float64 {
	if currentBet <= 0 {
		return 0
	}
	return float64(pot) / float64(currentBet)
}

// OpponentBehavior counts seats with positive aggressiveness
func OpponentBehavior(aggressiveness []float64) int {
	n := 0
	for _, a := range aggressiveness {
		if a > 0 {
			n++
		}
	}
	return n
}

// decide runs the bot's decision table for p and records the result.
// Strength is the category of the best five cards, or 0 preflop when fewer
// than five cards are known.
func (b *Bot) decide(p *Player, view View, phase Phase, rng *rand.Rand) (Action, int) {
	strength := HandStrength(p.HoleCards, view.Community)
	odds := PotOdds(view.Pot, view.CurrentBet)

	table := postFlopPolicies
	if phase == PreFlop {
		table = preFlopPolicies
	}
	pol := table[b.Type]

	// The amount is always drawn first so the random stream is the same
	// whichever rule fires.
	amount := minBotAmount + rng.IntN(maxBotAmount-minBotAmount+1)

	action := pol.fallback
	for _, r := range pol.rules {
		if r.matches(strength, odds, rng) {
			action = r.action
			if r.bump {
				p.IncreaseAggressiveness()
			}
			break
		}
	}

	switch action {
	case Check, Fold:
		amount = 0
	case Call:
		// the engine computes what a call owes
	case Bet, Raise:
		if amount <= 0 {
			action, amount = Fold, 0
		}
	}

	b.history = append(b.history, Decision{Phase: phase, Action: action, Amount: amount})
	return action, amount
}

func (r rule) matches(strength evaluator.Category, odds float64, rng *rand.Rand) bool {
	switch r.kind {
	case whenStrong:
		return strength >= r.minRank || odds >= r.minOdds
	case withChance:
		return rng.Float64() < r.chance
	default:
		return true
	}
}

// TablePosition names a seat's position relative to the button
func TablePosition(seatIndex, buttonIndex, numSeats int) string {
	if numSeats <= 0 {
		return ""
	}
	rel := ((seatIndex-buttonIndex)%numSeats + numSeats) % numSeats
	switch {
	case rel == 0:
		return "button"
	case rel == 1:
		return "small blind"
	case rel == 2:
		return "big blind"
	case rel <= numSeats/3:
		return "early"
	case rel <= 2*numSeats/3:
		return "middle"
	default:
		return "late"
	}
}
