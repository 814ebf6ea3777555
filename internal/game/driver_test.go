package game

import (
	"testing"

	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func humanVsBot(botType BotType, botChips int) []*Player {
	return []*Player{
		NewPlayer(0, "Alice", 1000),
		NewBot(1, "Bot", botChips, botType, randutil.New(9)),
	}
}

func TestAdvanceTurnWaitsForHuman(t *testing.T) {
	g := newTestGame(t, humanVsBot(CallingStation, 1000), 0)

	msg, err := g.AdvanceTurn()
	require.NoError(t, err)
	assert.Equal(t, "Waiting for Alice to act", msg)
	assert.Equal(t, 15, g.Pot())

	msgs, err := g.PlayBots()
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestPlayBotsStopsAtHuman(t *testing.T) {
	g := newTestGame(t, humanVsBot(CallingStation, 1000), 0)

	mustAct(t, g, 0, Call, 0)
	msgs, err := g.PlayBots()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bot checks"}, msgs)
	assert.Equal(t, Flop, g.Phase())
	assert.Equal(t, 0, g.Current().ID)
}

func TestPlayBotsFinishesBotOnlyHand(t *testing.T) {
	rng := randutil.New(5)
	players := []*Player{
		NewBot(0, "A", 1000, CallingStation, rng),
		NewBot(1, "B", 1000, CallingStation, rng),
		NewBot(2, "C", 1000, CallingStation, rng),
	}
	g := newTestGame(t, players, 0)

	msgs, err := g.PlayBots()
	require.NoError(t, err)
	assert.Equal(t, Showdown, g.Phase())
	assert.Len(t, msgs, 12)
	assert.NotNil(t, g.Winner())

	total := 0
	for _, p := range players {
		total += p.Chips
	}
	assert.Equal(t, 3000, total)
}

func TestBotFallsBackWhenBroke(t *testing.T) {
	// The bot's whole stack goes in as the big blind, so every raise fails.
	players := humanVsBot(Maniac, 10)
	g := newTestGame(t, players, 0)
	require.Zero(t, players[1].Chips)

	mustAct(t, g, 0, Call, 0)
	msg, err := g.AdvanceTurn()
	require.NoError(t, err)
	assert.Equal(t, "Bot checks", msg)
	assert.Equal(t, Flop, g.Phase())

	history := players[1].Bot.History()
	require.Len(t, history, 1)
	assert.Equal(t, Raise, history[0].Action)
}

func TestBotFoldsWhenItCannotCall(t *testing.T) {
	players := []*Player{
		NewBot(0, "Bot", 1000, CallingStation, randutil.New(1)),
		NewPlayer(1, "Alice", 1000),
	}
	players[0].Chips = 8
	g := newTestGame(t, players, 0)
	// Bot posted 5 of its 8 chips and owes 5 more
	require.Equal(t, 3, players[0].Chips)

	msg, err := g.AdvanceTurn()
	require.NoError(t, err)
	assert.Equal(t, "Bot folds", msg)
	assert.Equal(t, Showdown, g.Phase())
	assert.Same(t, players[1], g.Winner())
}

func TestBotDecision(t *testing.T) {
	players := humanVsBot(CallingStation, 1000)
	g := newTestGame(t, players, 0)

	_, _, err := g.BotDecision(0)
	assert.ErrorIs(t, err, ErrNotBot)
	_, _, err = g.BotDecision(7)
	assert.ErrorIs(t, err, ErrUnknownSeat)

	action, _, err := g.BotDecision(1)
	require.NoError(t, err)
	assert.Equal(t, Call, action)
	assert.Len(t, players[1].Bot.History(), 1)
	assert.Equal(t, 15, g.Pot(), "decision is not applied")
}
