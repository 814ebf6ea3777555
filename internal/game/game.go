package game

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

// ActionRecord is one accepted action in the hand's action log
type ActionRecord struct {
	Seat   int
	Player string
	Phase  Phase
	Action Action
	Amount int // chips committed
}

// Game is the state of a single hand. It is not safe for concurrent use;
// callers serialise access per game.
type Game struct {
	rng    *rand.Rand
	logger *log.Logger
	events EventBus

	deck       *deck.Deck
	seats      []*Player // every dealt-in seat, in seat order
	turns      *TurnManager
	community  []deck.Card
	pot        int
	tableBet   int
	phase      Phase
	button     int
	smallBlind int
	bigBlind   int
	handNumber int
	actions    []ActionRecord

	winner      *Player
	explanation string
	hands       map[int]evaluator.Hand
}

// New deals a hand to players. The button is an index into players; with
// two players the button posts the small blind, otherwise the two seats
// after it post the blinds. The rng shuffles the deck and drives bots.
//
//	g, err := game.New(randutil.New(42), players, 0, 5, 10,
//	    game.WithLogger(logger))
func New(rng *rand.Rand, players []*Player, button int, smallBlind, bigBlind int, opts ...Option) (*Game, error) {
	if rng == nil {
		return nil, fmt.Errorf("rng is required")
	}
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if button < 0 || button >= len(players) {
		return nil, fmt.Errorf("button position %d out of range", button)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	d := cfg.deck
	if d == nil {
		d = deck.NewShuffled(rng)
	}

	g := &Game{
		rng:        rng,
		logger:     cfg.logger.WithPrefix("game"),
		events:     cfg.events,
		deck:       d,
		seats:      slices.Clone(players),
		phase:      PreFlop,
		button:     button,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		handNumber: cfg.handNumber,
		hands:      make(map[int]evaluator.Hand),
	}

	for _, p := range g.seats {
		p.resetForHand()
	}
	if err := g.dealHoleCards(); err != nil {
		return nil, err
	}
	g.postBlinds()
	g.turns = NewTurnManager(g.seats)

	g.logger.Debug("Hand started",
		"hand", g.handNumber,
		"players", len(g.seats),
		"button", g.seats[button].Name,
		"pot", g.pot)
	g.events.Publish(NewHandStartEvent(g.handNumber, g.seats, smallBlind, bigBlind, g.pot))

	return g, nil
}

func (g *Game) dealHoleCards() error {
	for _, p := range g.seats {
		cards, err := g.deck.DrawN(2)
		if err != nil {
			return fmt.Errorf("dealing to %s: %w", p.Name, err)
		}
		for _, c := range cards {
			p.AddCard(c)
		}
	}
	return nil
}

func (g *Game) blindSeats() (sb, bb int) {
	n := len(g.seats)
	if n == 2 {
		return g.button, (g.button + 1) % n
	}
	return (g.button + 1) % n, (g.button + 2) % n
}

func (g *Game) postBlinds() {
	sbIdx, bbIdx := g.blindSeats()
	sb, bb := g.seats[sbIdx], g.seats[bbIdx]
	sb.Role = SmallBlind
	bb.Role = BigBlind

	// A stack shorter than its blind posts everything it has and is all-in.
	sbPosted := sb.BetChips(min(g.smallBlind, sb.Chips))
	bbPosted := bb.BetChips(min(g.bigBlind, bb.Chips))
	g.pot += sbPosted + bbPosted
	g.tableBet = max(sbPosted, bbPosted)
}

// ExecuteTurn applies an action for the seat whose turn it is and returns a
// short description of what happened. Rejected actions leave the game
// unchanged. Accepted actions advance the turn and, once every remaining
// seat has acted, the phase.
func (g *Game) ExecuteTurn(seatID int, action Action, amount int) (string, error) {
	if g.phase == Showdown {
		return "", ErrHandComplete
	}
	p := g.Seat(seatID)
	if p == nil {
		return "", fmt.Errorf("%w: %d", ErrUnknownSeat, seatID)
	}
	if cur := g.turns.Current(); cur.ID != seatID {
		return "", fmt.Errorf("%w: seat %d acted, waiting on %s", ErrOutOfTurn, seatID, cur.Name)
	}
	if amount < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	var (
		committed int
		msg       string
	)
	switch action {
	case Fold:
		return g.fold(p)
	case Check:
		msg = fmt.Sprintf("%s checks", p.Name)
	case Call:
		owed := g.tableBet - p.RoundBet
		if owed <= 0 {
			msg = fmt.Sprintf("%s checks", p.Name)
			break
		}
		if committed = p.BetChips(owed); committed == 0 {
			return "", fmt.Errorf("%w: %s cannot call %d with %d", ErrInsufficientChips, p.Name, owed, p.Chips)
		}
		msg = fmt.Sprintf("%s calls %d", p.Name, committed)
	case Bet:
		if amount <= 0 {
			return "", fmt.Errorf("%w: bet of %d", ErrInvalidAmount, amount)
		}
		if committed = p.BetChips(amount); committed == 0 {
			return "", fmt.Errorf("%w: %s cannot bet %d with %d", ErrInsufficientChips, p.Name, amount, p.Chips)
		}
		g.tableBet = amount
		msg = fmt.Sprintf("%s bets %d", p.Name, committed)
	case Raise:
		if amount <= 0 || amount <= g.tableBet {
			return "", fmt.Errorf("%w: raise to %d with table bet %d", ErrInvalidAmount, amount, g.tableBet)
		}
		increment := amount - g.tableBet
		if committed = p.BetChips(increment); committed == 0 {
			return "", fmt.Errorf("%w: %s cannot raise %d with %d", ErrInsufficientChips, p.Name, increment, p.Chips)
		}
		g.tableBet += increment
		msg = fmt.Sprintf("%s raises to %d", p.Name, g.tableBet)
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidAction, action)
	}

	g.pot += committed
	p.SetHasActed()
	g.record(p, action, committed)
	g.turns.NextTurn()

	if g.CheckPhaseEnd() {
		if err := g.NextPhase(); err != nil {
			return msg, err
		}
	}
	return msg, nil
}

func (g *Game) fold(p *Player) (string, error) {
	p.Folded = true
	p.SetHasActed()
	g.turns.Remove(p)
	g.record(p, Fold, 0)
	msg := fmt.Sprintf("%s folds", p.Name)

	if g.turns.Len() == 1 {
		return msg, g.EvaluateHands()
	}
	if g.CheckPhaseEnd() {
		return msg, g.NextPhase()
	}
	return msg, nil
}

func (g *Game) record(p *Player, action Action, committed int) {
	g.actions = append(g.actions, ActionRecord{
		Seat:   p.ID,
		Player: p.Name,
		Phase:  g.phase,
		Action: action,
		Amount: committed,
	})
	g.logger.Debug("Player action",
		"player", p.Name,
		"action", action,
		"amount", committed,
		"phase", g.phase,
		"pot", g.pot)
	g.events.Publish(NewPlayerActionEvent(g.handNumber, p, action, committed, g.phase, g.pot))
}

// CheckPhaseEnd reports whether the betting round is over: every remaining
// seat has acted, or only one seat is left.
func (g *Game) CheckPhaseEnd() bool {
	if g.phase == Showdown {
		return false
	}
	return g.turns.Len() <= 1 || g.turns.AllActed()
}

// NextPhase moves to the next phase, dealing 3, 1 and 1 community cards on
// the flop, turn and river. Entering the showdown evaluates the hands.
func (g *Game) NextPhase() error {
	var draw int
	switch g.phase {
	case PreFlop:
		draw = 3
	case Flop, Turn:
		draw = 1
	case River:
		return g.EvaluateHands()
	default:
		return ErrHandComplete
	}

	cards, err := g.deck.DrawN(draw)
	if err != nil {
		return fmt.Errorf("dealing %s: %w", g.phase+1, err)
	}
	g.community = append(g.community, cards...)
	g.phase++

	for _, p := range g.turns.Players() {
		p.resetForRound()
	}
	g.tableBet = 0
	g.turns.ResetToBigBlind()

	g.logger.Debug("Phase change", "phase", g.phase, "community", g.community, "pot", g.pot)
	g.events.Publish(NewPhaseChangeEvent(g.handNumber, g.phase, g.community, g.pot))
	return nil
}

// EvaluateHands ends the hand. Each remaining seat's best five cards are
// ranked by category and the pot goes to the winner; equal categories go to
// the first such seat in seat order.
func (g *Game) EvaluateHands() error {
	live := g.turns.Players()
	if len(live) == 0 {
		return fmt.Errorf("no players left to award the pot")
	}
	g.phase = Showdown

	showdown := len(live) > 1
	winner := live[0]
	if showdown {
		categories := make([]evaluator.Category, len(live))
		for i, p := range live {
			cards := make([]deck.Card, 0, len(p.HoleCards)+len(g.community))
			cards = append(cards, p.HoleCards...)
			cards = append(cards, g.community...)
			h, err := evaluator.BestHand(cards)
			if err != nil {
				return fmt.Errorf("evaluating %s: %w", p.Name, err)
			}
			g.hands[p.ID] = h
			categories[i] = h.Category
		}
		w := evaluator.ShowdownWinner(categories)
		winner = live[w]
		g.explanation = explainShowdown(winner, categories, w)
	} else {
		g.explanation = fmt.Sprintf("%s wins, everyone else folded", winner.Name)
	}

	pot := g.pot
	g.winner = winner
	g.DistributeWinnings(winner)

	g.logger.Info("Hand complete",
		"hand", g.handNumber,
		"winner", winner.Name,
		"pot", pot,
		"showdown", showdown,
		"explanation", g.explanation)
	g.events.Publish(NewPhaseChangeEvent(g.handNumber, Showdown, g.community, 0))
	g.events.Publish(NewHandEndEvent(g.handNumber, winner, pot, showdown, g.explanation, g.community))
	return nil
}

func explainShowdown(winner *Player, categories []evaluator.Category, w int) string {
	best := categories[w]
	tied := 0
	for _, c := range categories {
		if c == best {
			tied++
		}
	}
	if tied > 1 {
		return fmt.Sprintf("It's a tie! %s takes the pot with %s", winner.Name, evaluator.Explain(best))
	}
	return fmt.Sprintf("%s wins with %s!", winner.Name, evaluator.Explain(best))
}

// DistributeWinnings moves the whole pot to winner
func (g *Game) DistributeWinnings(winner *Player) {
	winner.AddChips(g.pot)
	g.pot = 0
}

// Seat returns the player with the given id, or nil
func (g *Game) Seat(id int) *Player {
	for _, p := range g.seats {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Seats returns every dealt-in seat in seat order
func (g *Game) Seats() []*Player { return slices.Clone(g.seats) }

// Current returns the seat whose turn it is, or nil after the showdown
func (g *Game) Current() *Player {
	if g.phase == Showdown {
		return nil
	}
	return g.turns.Current()
}

func (g *Game) Phase() Phase { return g.phase }
func (g *Game) Pot() int { return g.pot }
func (g *Game) CurrentBet() int { return g.tableBet }
func (g *Game) HandNumber() int { return g.handNumber }
func (g *Game) Winner() *Player { return g.winner }
func (g *Game) Explanation() string { return g.explanation }
func (g *Game) DeckLen() int { return g.deck.Len() }
func (g *Game) IsComplete() bool { return g.phase == Showdown }
func (g *Game) Actions() []ActionRecord { return slices.Clone(g.actions) }

// Community returns a copy of the community cards
func (g *Game) Community() []deck.Card { return slices.Clone(g.community) }

// BestHand returns the evaluated hand of a seat after a contested showdown
func (g *Game) BestHand(seatID int) (evaluator.Hand, bool) {
	h, ok := g.hands[seatID]
	return h, ok
}

// Position names a seat's position relative to this hand's button, or ""
// for a seat that was not dealt in
func (g *Game) Position(seatID int) string {
	idx := slices.IndexFunc(g.seats, func(p *Player) bool { return p.ID == seatID })
	if idx < 0 {
		return ""
	}
	return TablePosition(idx, g.button, len(g.seats))
}

// ExecuteValidTurn is ExecuteTurn for seats played by people: an action
// outside ValidActions, such as checking while a bet is owed, is rejected
// with ErrInvalidAction and changes nothing.
func (g *Game) ExecuteValidTurn(seatID int, action Action, amount int) (string, error) {
	if cur := g.Current(); cur != nil && cur.ID == seatID && !slices.Contains(g.ValidActions(seatID), action) {
		return "", fmt.Errorf("%w: cannot %s now", ErrInvalidAction, action)
	}
	return g.ExecuteTurn(seatID, action, amount)
}

// ValidActions lists the actions that make sense for a seat right now.
// ExecuteTurn accepts any known action; this is for interfaces that want to
// hide checking into a bet and similar moves.
func (g *Game) ValidActions(seatID int) []Action {
	cur := g.Current()
	if cur == nil || cur.ID != seatID {
		return nil
	}
	owed := g.tableBet - cur.RoundBet
	var actions []Action
	switch {
	case owed > 0:
		if cur.Chips >= owed {
			actions = append(actions, Call)
		}
		if cur.Chips > owed {
			actions = append(actions, Raise)
		}
	case g.tableBet > 0:
		actions = append(actions, Check)
		if cur.Chips > 0 {
			actions = append(actions, Raise)
		}
	default:
		actions = append(actions, Check)
		if cur.Chips > 0 {
			actions = append(actions, Bet)
		}
	}
	return append(actions, Fold)
}
