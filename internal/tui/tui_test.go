package tui

import (
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

func TestMain(m *testing.M) {
	// Plain text so assertions can match rendered output
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestModel(t *testing.T, humanChips int) *Model {
	t.Helper()
	table, err := game.NewTable(game.TableConfig{
		SmallBlind:    5,
		BigBlind:      10,
		StartingChips: 1000,
		Seats: []game.SeatConfig{
			{Name: "You", Human: true, Chips: humanChips},
			{Name: "Fish", BotType: game.CallingStation},
		},
	}, randutil.New(1), quietLogger())
	require.NoError(t, err)

	m, err := NewModel(table, quietLogger())
	require.NoError(t, err)
	m.Update(dealMsg{})
	return m
}

func typeLine(m *Model, line string) tea.Cmd {
	m.actionInput.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func logContains(m *Model, s string) bool {
	for _, entry := range m.Log() {
		if strings.Contains(entry, s) {
			return true
		}
	}
	return false
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		want    Command
		wantErr bool
	}{
		{"", Command{Next: true}, false},
		{"next", Command{Next: true}, false},
		{"quit", Command{Quit: true}, false},
		{"Q", Command{Quit: true}, false},
		{"check", Command{Action: game.Check}, false},
		{"CALL", Command{Action: game.Call}, false},
		{"fold", Command{Action: game.Fold}, false},
		{"bet 20", Command{Action: game.Bet, Amount: 20}, false},
		{"raise $40", Command{Action: game.Raise, Amount: 40}, false},
		{"raise", Command{}, true},
		{"bet lots", Command{}, true},
		{"call 10", Command{}, true},
		{"dance", Command{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCommand("dance")
	assert.ErrorIs(t, err, game.ErrInvalidAction)
	_, err = ParseCommand("bet lots")
	assert.ErrorIs(t, err, game.ErrInvalidAmount)
}

func TestRenderCards(t *testing.T) {
	cards := deck.MustParseCards("AhKs")
	assert.Equal(t, "A♥", RenderCard(cards[0]))
	assert.Equal(t, "[A♥ K♠]", RenderCards(cards))
}

func TestModelPlaysAHand(t *testing.T) {
	m := newTestModel(t, 0)
	g := m.table.Game()
	require.NotNil(t, g)

	assert.True(t, logContains(m, "Hand #1: 2 players, blinds $5/$10"))
	assert.True(t, logContains(m, "Your cards: ["))
	require.Equal(t, 0, g.Current().ID, "the human holds the button and acts first")

	typeLine(m, "dance")
	assert.Contains(t, m.Status(), "invalid action")

	typeLine(m, "raise 5")
	assert.Contains(t, m.Status(), "invalid amount")
	assert.Equal(t, 15, g.Pot(), "rejected actions change nothing")

	typeLine(m, "next")
	assert.Contains(t, m.Status(), "Waiting for You to act")

	typeLine(m, "fold")
	assert.True(t, g.IsComplete())
	assert.True(t, logContains(m, "You: folds"))
	assert.True(t, logContains(m, "Fish wins $15"))
	assert.Contains(t, m.Status(), "Press Enter for the next hand")

	typeLine(m, "call")
	assert.Contains(t, m.Status(), "Hand is over")

	typeLine(m, "")
	assert.Equal(t, 2, m.table.HandsPlayed())
	assert.True(t, logContains(m, "Hand #2"))
}

func TestModelRejectsCheckWhileOwing(t *testing.T) {
	m := newTestModel(t, 0)
	g := m.table.Game()
	require.NotNil(t, g)
	require.Equal(t, 0, g.Current().ID)

	typeLine(m, "check")
	assert.Contains(t, m.Status(), "invalid action")
	assert.Equal(t, 15, g.Pot())
	assert.Equal(t, 10, g.CurrentBet())
	assert.Equal(t, 0, g.Current().ID)
	assert.Empty(t, g.Actions())

	typeLine(m, "bet 50")
	assert.Contains(t, m.Status(), "invalid action")
	assert.Equal(t, 15, g.Pot())
	assert.Equal(t, 0, g.Current().ID)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, 0)

	cmd := typeLine(m, "quit")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.Empty(t, m.View())
}

func TestModelGameOverWhenHumanIsBroke(t *testing.T) {
	m := newTestModel(t, 5)

	// Posting the small blind uses the whole stack
	assert.Equal(t, 0, m.humanPlayer().Chips)
	typeLine(m, "fold")
	require.True(t, m.table.Game().IsComplete())

	typeLine(m, "")
	assert.Equal(t, 1, m.table.HandsPlayed())
	assert.True(t, logContains(m, "You are out of chips"))
	assert.Contains(t, m.Status(), "Press Enter to exit")

	cmd := typeLine(m, "")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, 0)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()

	assert.Contains(t, view, "Hand #1")
	assert.Contains(t, view, "Pot: $15")
	assert.Contains(t, view, "Actions:")
	assert.Contains(t, view, "[call $5]")
	assert.Contains(t, view, "Fish $990")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "Log focused")
}

func TestNewModelNeedsHuman(t *testing.T) {
	table, err := game.NewTable(game.TableConfig{
		SmallBlind:    5,
		BigBlind:      10,
		StartingChips: 100,
		Seats: []game.SeatConfig{
			{Name: "A", BotType: game.Tight},
			{Name: "B", BotType: game.Loose},
		},
	}, randutil.New(1), quietLogger())
	require.NoError(t, err)

	_, err = NewModel(table, quietLogger())
	assert.Error(t, err)
}
