package game

import "github.com/lox/holdem-engine/internal/deck"

// CardView is the boundary form of a card: {"value": "10", "suit": "Hearts"}
type CardView struct {
	Value string `json:"value"`
	Suit  string `json:"suit"`
}

// NewCardView converts a card to its boundary form
func NewCardView(c deck.Card) CardView {
	return CardView{Value: c.Value(), Suit: c.SuitName()}
}

// Card converts the view back into a card
func (v CardView) Card() (deck.Card, error) {
	return deck.ParseCard(v.Value, v.Suit)
}

// CardViews converts a slice of cards
func CardViews(cards []deck.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = NewCardView(c)
	}
	return out
}

// SeatView is the public state of one seat. Cards are only filled in for the
// viewer's own seat and, after a contested showdown, for every live seat.
type SeatView struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Chips    int        `json:"chips"`
	RoundBet int        `json:"round_bet"`
	Folded   bool       `json:"folded"`
	Bot      bool       `json:"bot"`
	BotType  string     `json:"bot_type,omitempty"`
	Role     string     `json:"role,omitempty"`
	Cards    []CardView `json:"cards,omitempty"`
	Hand     string     `json:"hand,omitempty"`
}

// Snapshot is a read-only copy of a game's public state
type Snapshot struct {
	HandNumber  int        `json:"hand_number"`
	Phase       Phase      `json:"phase"`
	Pot         int        `json:"pot"`
	CurrentBet  int        `json:"current_bet"`
	Community   []CardView `json:"community_cards"`
	Seats       []SeatView `json:"seats"`
	CurrentTurn int        `json:"current_turn"` // seat id, -1 once the hand is over
	Winner      *int       `json:"winner,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
}

// NoSeat is used as a viewer for snapshots that reveal no hole cards
const NoSeat = -1

// Snapshot returns the public state with no hole cards for live hands
func (g *Game) Snapshot() Snapshot {
	return g.SnapshotFor(NoSeat)
}

// SnapshotFor returns the public state plus the hole cards of viewer
func (g *Game) SnapshotFor(viewer int) Snapshot {
	s := Snapshot{
		HandNumber:  g.handNumber,
		Phase:       g.phase,
		Pot:         g.pot,
		CurrentBet:  g.tableBet,
		Community:   CardViews(g.community),
		Seats:       make([]SeatView, len(g.seats)),
		CurrentTurn: NoSeat,
	}
	if cur := g.Current(); cur != nil {
		s.CurrentTurn = cur.ID
	}

	for i, p := range g.seats {
		sv := SeatView{
			ID:       p.ID,
			Name:     p.Name,
			Chips:    p.Chips,
			RoundBet: p.RoundBet,
			Folded:   p.Folded,
			Bot:      p.IsBot(),
			Role:     p.Role.String(),
		}
		if p.IsBot() {
			sv.BotType = p.Bot.Type.String()
		}
		h, shown := g.hands[p.ID]
		if p.ID == viewer || shown {
			sv.Cards = CardViews(p.HoleCards)
		}
		if shown {
			sv.Hand = h.Category.String()
		}
		s.Seats[i] = sv
	}

	if g.phase == Showdown && g.winner != nil {
		id := g.winner.ID
		s.Winner = &id
		s.Explanation = g.explanation
	}
	return s
}
