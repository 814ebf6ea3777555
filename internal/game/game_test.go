package game

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGamePostsBlinds(t *testing.T) {
	t.Run("heads up button posts small blind", func(t *testing.T) {
		players := humans(2, 1000)
		g := newTestGame(t, players, 0)

		assert.Equal(t, SmallBlind, players[0].Role)
		assert.Equal(t, BigBlind, players[1].Role)
		assert.Equal(t, 995, players[0].Chips)
		assert.Equal(t, 990, players[1].Chips)
		assert.Equal(t, 15, g.Pot())
		assert.Equal(t, 10, g.CurrentBet())
		assert.Same(t, players[0], g.Current())
		assert.Equal(t, PreFlop, g.Phase())
		assert.Equal(t, 48, g.DeckLen())
	})

	t.Run("three handed blinds follow the button", func(t *testing.T) {
		players := humans(3, 1000)
		g := newTestGame(t, players, 0)

		assert.Equal(t, NoRole, players[0].Role)
		assert.Equal(t, SmallBlind, players[1].Role)
		assert.Equal(t, BigBlind, players[2].Role)
		assert.Same(t, players[0], g.Current())
		for _, p := range players {
			assert.Len(t, p.HoleCards, 2)
		}
		assert.Equal(t, deck.Size, g.DeckLen()+cardsDealt(g))

		assert.Equal(t, "button", g.Position(players[0].ID))
		assert.Equal(t, "small blind", g.Position(players[1].ID))
		assert.Equal(t, "big blind", g.Position(players[2].ID))
		assert.Empty(t, g.Position(99))
	})

	t.Run("button wraps", func(t *testing.T) {
		players := humans(3, 1000)
		g := newTestGame(t, players, 2)

		assert.Equal(t, SmallBlind, players[0].Role)
		assert.Equal(t, BigBlind, players[1].Role)
		assert.Same(t, players[2], g.Current())
	})

	t.Run("needs two players", func(t *testing.T) {
		_, err := New(randutil.New(1), humans(1, 100), 0, 5, 10)
		assert.ErrorIs(t, err, ErrNotEnoughPlayers)
	})
}

func TestPhaseSequence(t *testing.T) {
	players := humans(2, 1000)
	d := stackedDeck(t, "AhKh2c7dQhJh3h9c4d")
	g := newTestGame(t, players, 0, WithDeck(d))

	assert.Equal(t, deck.MustParseCards("AhKh"), players[0].HoleCards)
	assert.Equal(t, deck.MustParseCards("2c7d"), players[1].HoleCards)

	wantPhases := []Phase{PreFlop, Flop, Turn, River}
	wantCommunity := []int{0, 3, 4, 5}
	for i, phase := range wantPhases {
		require.Equal(t, phase, g.Phase())
		require.Len(t, g.Community(), wantCommunity[i])
		require.Equal(t, deck.Size, g.DeckLen()+cardsDealt(g))

		first := g.Current()
		if phase == PreFlop {
			mustAct(t, g, first.ID, Call, 0)
		} else {
			assert.Zero(t, g.CurrentBet())
			assert.Same(t, players[0], first, "seat after the big blind opens each round")
			mustAct(t, g, first.ID, Check, 0)
		}
		mustAct(t, g, g.Current().ID, Check, 0)
	}

	require.Equal(t, Showdown, g.Phase())
	assert.Equal(t, deck.MustParseCards("QhJh3h9c4d"), g.Community())
	assert.Same(t, players[0], g.Winner())
	assert.Equal(t, "Alice wins with Flush (6 points)!", g.Explanation())
	assert.Zero(t, g.Pot())
	assert.Equal(t, 1010, players[0].Chips)
	assert.Equal(t, 990, players[1].Chips)
	assert.Nil(t, g.Current())

	_, err := g.ExecuteTurn(0, Check, 0)
	assert.ErrorIs(t, err, ErrHandComplete)
	assert.ErrorIs(t, g.NextPhase(), ErrHandComplete)
}

func TestFoldToOneSeat(t *testing.T) {
	players := humans(3, 1000)
	g := newTestGame(t, players, 0)

	assert.Equal(t, "Alice folds", mustAct(t, g, 0, Fold, 0))
	assert.True(t, players[0].Folded)
	assert.Same(t, players[1], g.Current())
	assert.Equal(t, PreFlop, g.Phase())

	mustAct(t, g, 1, Fold, 0)

	assert.Equal(t, Showdown, g.Phase())
	assert.Empty(t, g.Community())
	assert.Same(t, players[2], g.Winner())
	assert.Equal(t, "Carol wins, everyone else folded", g.Explanation())
	assert.Equal(t, 1005, players[2].Chips)
	assert.Equal(t, 995, players[1].Chips)
	assert.Zero(t, g.Pot())
}

func TestRoyalBoardTieGoesToFirstSeat(t *testing.T) {
	players := humans(2, 1000)
	d := stackedDeck(t, "2c3d4s5cAhKhQhJhTh")
	g := newTestGame(t, players, 0, WithDeck(d))

	for g.Phase() != Showdown {
		mustAct(t, g, g.Current().ID, Call, 0)
	}

	assert.Same(t, players[0], g.Winner())
	assert.Equal(t, "It's a tie! Alice takes the pot with Royal Flush (10 points)", g.Explanation())
	for _, p := range players {
		h, ok := g.BestHand(p.ID)
		require.True(t, ok)
		assert.Equal(t, "Royal Flush", h.Category.String())
	}
}

func TestExecuteTurnRejections(t *testing.T) {
	tests := []struct {
		name   string
		seat   int
		action Action
		amount int
		err    error
	}{
		{"out of turn", 1, Check, 0, ErrOutOfTurn},
		{"unknown seat", 9, Check, 0, ErrUnknownSeat},
		{"unknown action", 0, Action(42), 0, ErrInvalidAction},
		{"negative amount", 0, Call, -1, ErrInvalidAmount},
		{"zero bet", 0, Bet, 0, ErrInvalidAmount},
		{"raise not above table bet", 0, Raise, 10, ErrInvalidAmount},
		{"bet over stack", 0, Bet, 5000, ErrInsufficientChips},
		{"raise over stack", 0, Raise, 5000, ErrInsufficientChips},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := humans(2, 1000)
			g := newTestGame(t, players, 0)

			_, err := g.ExecuteTurn(tt.seat, tt.action, tt.amount)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)

			assert.Equal(t, 15, g.Pot())
			assert.Equal(t, 995, players[0].Chips)
			assert.False(t, players[0].HasActed)
			assert.Same(t, players[0], g.Current())
			assert.Empty(t, g.Actions())
		})
	}
}

func TestCallShortStackIsRejected(t *testing.T) {
	players := humans(2, 1000)
	players[0].Chips = 7
	g := newTestGame(t, players, 0)

	require.Equal(t, 2, players[0].Chips)
	_, err := g.ExecuteTurn(0, Call, 0)
	assert.ErrorIs(t, err, ErrInsufficientChips)
	assert.Equal(t, 2, players[0].Chips)
}

func TestExecuteValidTurn(t *testing.T) {
	tests := []struct {
		name   string
		seat   int
		action Action
		amount int
		err    error
	}{
		{"check while owing", 0, Check, 0, ErrInvalidAction},
		{"bet into a bet", 0, Bet, 50, ErrInvalidAction},
		{"out of turn", 1, Check, 0, ErrOutOfTurn},
		{"unknown seat", 9, Fold, 0, ErrUnknownSeat},
		{"raise not above table bet", 0, Raise, 10, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := humans(2, 1000)
			g := newTestGame(t, players, 0)

			_, err := g.ExecuteValidTurn(tt.seat, tt.action, tt.amount)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			assert.Equal(t, 15, g.Pot())
			assert.Equal(t, 10, g.CurrentBet())
			assert.Equal(t, 995, players[0].Chips)
			assert.False(t, players[0].HasActed)
			assert.Same(t, players[0], g.Current())
			assert.Empty(t, g.Actions())
		})
	}

	t.Run("short call is not offered", func(t *testing.T) {
		players := humans(2, 1000)
		players[0].Chips = 7
		g := newTestGame(t, players, 0)

		_, err := g.ExecuteValidTurn(0, Call, 0)
		assert.ErrorIs(t, err, ErrInvalidAction)
		assert.Equal(t, 2, players[0].Chips)
	})

	t.Run("valid actions go through", func(t *testing.T) {
		players := humans(2, 1000)
		g := newTestGame(t, players, 0)

		msg, err := g.ExecuteValidTurn(0, Call, 0)
		require.NoError(t, err)
		assert.Equal(t, "Alice calls 5", msg)

		msg, err = g.ExecuteValidTurn(1, Check, 0)
		require.NoError(t, err)
		assert.Equal(t, "Bob checks", msg)
		assert.Equal(t, Flop, g.Phase())
	})
}

func TestShortStackPostsPartialBlind(t *testing.T) {
	t.Run("big blind", func(t *testing.T) {
		players := humans(2, 1000)
		players[1].Chips = 4
		g := newTestGame(t, players, 0)

		assert.Equal(t, 0, players[1].Chips)
		assert.Equal(t, 4, players[1].RoundBet)
		assert.Equal(t, 9, g.Pot())
		assert.Equal(t, 5, g.CurrentBet(), "the small blind is the larger bet")
		assert.Contains(t, g.ValidActions(0), Check)
	})

	t.Run("small blind", func(t *testing.T) {
		players := humans(2, 1000)
		players[0].Chips = 3
		g := newTestGame(t, players, 0)

		assert.Equal(t, 0, players[0].Chips)
		assert.Equal(t, 3, players[0].RoundBet)
		assert.Equal(t, 990, players[1].Chips)
		assert.Equal(t, 13, g.Pot())
		assert.Equal(t, 10, g.CurrentBet())
	})
}

func TestBetAndRaiseAccounting(t *testing.T) {
	players := humans(2, 1000)
	g := newTestGame(t, players, 0)

	assert.Equal(t, "Alice raises to 30", mustAct(t, g, 0, Raise, 30))
	assert.Equal(t, 30, g.CurrentBet())
	assert.Equal(t, 25, players[0].RoundBet)
	assert.Equal(t, 975, players[0].Chips)
	assert.Equal(t, 35, g.Pot())

	assert.Equal(t, "Bob calls 20", mustAct(t, g, 1, Call, 0))
	assert.Equal(t, 55, g.Pot())
	require.Equal(t, Flop, g.Phase())

	assert.Equal(t, "Alice bets 40", mustAct(t, g, 0, Bet, 40))
	assert.Equal(t, 40, g.CurrentBet())
	assert.Equal(t, 95, g.Pot())

	records := g.Actions()
	require.Len(t, records, 3)
	assert.Equal(t, ActionRecord{Seat: 0, Player: "Alice", Phase: Flop, Action: Bet, Amount: 40}, records[2])
}

func TestValidActions(t *testing.T) {
	players := humans(2, 1000)
	g := newTestGame(t, players, 0)

	assert.Equal(t, []Action{Call, Raise, Fold}, g.ValidActions(0))
	assert.Nil(t, g.ValidActions(1))

	mustAct(t, g, 0, Call, 0)
	assert.Equal(t, []Action{Check, Raise, Fold}, g.ValidActions(1))

	mustAct(t, g, 1, Check, 0)
	assert.Equal(t, []Action{Check, Bet, Fold}, g.ValidActions(0))
}

func TestSnapshot(t *testing.T) {
	players := humans(2, 1000)
	d := stackedDeck(t, "AhKh2c7dQhJh3h9c4d")
	g := newTestGame(t, players, 0, WithDeck(d), WithHandNumber(3))

	s := g.SnapshotFor(0)
	assert.Equal(t, 3, s.HandNumber)
	assert.Equal(t, PreFlop, s.Phase)
	assert.Equal(t, 15, s.Pot)
	assert.Equal(t, 10, s.CurrentBet)
	assert.Equal(t, 0, s.CurrentTurn)
	assert.Nil(t, s.Winner)
	assert.Empty(t, s.Explanation)
	require.Len(t, s.Seats, 2)
	assert.Equal(t, []CardView{{"A", "Hearts"}, {"K", "Hearts"}}, s.Seats[0].Cards)
	assert.Empty(t, s.Seats[1].Cards)
	assert.Equal(t, "small blind", s.Seats[0].Role)
	assert.Empty(t, g.Snapshot().Seats[0].Cards)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "pre-flop", decoded["phase"])

	var roundTrip Snapshot
	require.NoError(t, json.Unmarshal(raw, &roundTrip))
	assert.Equal(t, s, roundTrip)

	for g.Phase() != Showdown {
		mustAct(t, g, g.Current().ID, Call, 0)
	}
	s = g.Snapshot()
	assert.Equal(t, Showdown, s.Phase)
	assert.Equal(t, NoSeat, s.CurrentTurn)
	require.NotNil(t, s.Winner)
	assert.Equal(t, 0, *s.Winner)
	assert.Equal(t, "Alice wins with Flush (6 points)!", s.Explanation)
	assert.Equal(t, CardView{Value: "10", Suit: "Hearts"}, NewCardView(deck.NewCard(deck.Ten, deck.Hearts)))
	assert.Equal(t, "High Card", s.Seats[1].Hand)
	assert.Len(t, s.Seats[1].Cards, 2)
}

func TestCardViewRoundTrip(t *testing.T) {
	for _, c := range deck.New(nil).Cards() {
		back, err := NewCardView(c).Card()
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}
}

func TestEventsPublished(t *testing.T) {
	bus := NewEventBus()
	var got []GameEvent
	bus.Subscribe(EventSubscriberFunc(func(e GameEvent) { got = append(got, e) }))

	players := humans(2, 1000)
	g := newTestGame(t, players, 0, WithEventBus(bus))
	mustAct(t, g, 0, Fold, 0)

	require.Len(t, got, 4)
	assert.Equal(t, EventTypeHandStart, got[0].EventType())
	assert.Equal(t, EventTypePlayerAction, got[1].EventType())
	assert.Equal(t, EventTypePhaseChange, got[2].EventType())
	end, ok := got[3].(HandEndEvent)
	require.True(t, ok)
	assert.Equal(t, "Bob", end.Winner)
	assert.Equal(t, 15, end.Pot)
	assert.False(t, end.Showdown)
	assert.False(t, end.Timestamp().IsZero())
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	sub := &countingSubscriber{n: &calls}
	bus.Subscribe(sub)
	bus.Publish(NewPhaseChangeEvent(1, Flop, nil, 0))
	bus.Unsubscribe(sub)
	bus.Publish(NewPhaseChangeEvent(1, Turn, nil, 0))
	assert.Equal(t, 1, calls)
}

type countingSubscriber struct{ n *int }

func (c *countingSubscriber) OnEvent(GameEvent) { *c.n++ }
