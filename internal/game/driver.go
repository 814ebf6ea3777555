package game

import (
	"errors"
	"fmt"
)

// maxBotSteps bounds PlayBots. A hand of ten seats needs at most forty.
const maxBotSteps = 100

// BotDecision asks a bot seat what it would do now. The decision is recorded
// in the bot's history but not applied.
func (g *Game) BotDecision(seatID int) (Action, int, error) {
	if g.phase == Showdown {
		return 0, 0, ErrHandComplete
	}
	p := g.Seat(seatID)
	if p == nil {
		return 0, 0, fmt.Errorf("%w: %d", ErrUnknownSeat, seatID)
	}
	if !p.IsBot() {
		return 0, 0, fmt.Errorf("%w: %s", ErrNotBot, p.Name)
	}

	view := g.view(p)
	action, amount := p.Bot.decide(p, view, g.phase, g.rng)

	g.logger.Debug("Bot decision",
		"player", p.Name,
		"type", p.Bot.Type,
		"phase", g.phase,
		"strength", HandStrength(p.HoleCards, view.Community),
		"potOdds", PotOdds(view.Pot, view.CurrentBet),
		"opponents", OpponentBehavior(view.Aggressiveness),
		"position", view.Position,
		"action", action,
		"amount", amount)
	return action, amount, nil
}

func (g *Game) view(p *Player) View {
	live := g.turns.Players()
	aggr := make([]float64, len(live))
	for i, o := range live {
		aggr[i] = o.Aggressiveness
	}
	seatIdx := 0
	for i, s := range g.seats {
		if s.ID == p.ID {
			seatIdx = i
		}
	}
	return View{
		Community:      g.Community(),
		Pot:            g.pot,
		CurrentBet:     g.tableBet,
		Aggressiveness: aggr,
		Position:       TablePosition(seatIdx, g.button, len(g.seats)),
	}
}

// AdvanceTurn plays the current seat if it is a bot. For a human seat it
// changes nothing and says who the game is waiting on.
func (g *Game) AdvanceTurn() (string, error) {
	if g.phase == Showdown {
		return "", ErrHandComplete
	}
	p := g.turns.Current()
	if !p.IsBot() {
		return fmt.Sprintf("Waiting for %s to act", p.Name), nil
	}
	return g.playBot(p)
}

// PlayBots plays bot seats until a human must act or the hand is over
func (g *Game) PlayBots() ([]string, error) {
	var msgs []string
	for range maxBotSteps {
		if g.phase == Showdown {
			return msgs, nil
		}
		p := g.turns.Current()
		if !p.IsBot() {
			return msgs, nil
		}
		msg, err := g.playBot(p)
		if err != nil {
			return msgs, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, fmt.Errorf("bots still acting after %d steps", maxBotSteps)
}

// playBot applies a bot's decision. A decision the engine rejects for its
// amount falls back to checking when nothing is owed and folding otherwise.
func (g *Game) playBot(p *Player) (string, error) {
	action, amount, err := g.BotDecision(p.ID)
	if err != nil {
		return "", err
	}
	msg, err := g.ExecuteTurn(p.ID, action, amount)
	if errors.Is(err, ErrInsufficientChips) || errors.Is(err, ErrInvalidAmount) {
		fallback := Fold
		if g.tableBet-p.RoundBet <= 0 {
			fallback = Check
		}
		g.logger.Warn("Bot action rejected, falling back",
			"player", p.Name,
			"action", action,
			"amount", amount,
			"fallback", fallback,
			"error", err)
		return g.ExecuteTurn(p.ID, fallback, 0)
	}
	return msg, err
}
