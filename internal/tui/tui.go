// Package tui is a terminal front end for playing one human seat against
// bots at a local table.
package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

const (
	focusLog = iota
	focusInput
)

// dealMsg asks the model to deal the next hand
type dealMsg struct{}

// Model is the Bubble Tea model for a local game. The engine is driven
// synchronously from Update, so no locking is needed.
type Model struct {
	table     *game.Table
	human     int
	logger    *log.Logger
	formatter *game.EventFormatter

	logViewport viewport.Model
	actionInput textinput.Model

	gameLog     []string
	status      string
	focusedPane int
	gameOver    bool
	quitting    bool

	width       int
	height      int
	initialized bool
}

// NewModel creates a model for table. The first human seat is the one
// played from the keyboard.
func NewModel(table *game.Table, logger *log.Logger) (*Model, error) {
	human := -1
	for _, p := range table.Players() {
		if !p.IsBot() {
			human = p.ID
			break
		}
	}
	if human < 0 {
		return nil, errors.New("table has no human seat")
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "check, call, fold, bet 20, raise 40"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(focusedBorder).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		table:       table,
		human:       human,
		logger:      logger.WithPrefix("tui"),
		formatter:   game.NewEventFormatter(RenderCard),
		logViewport: vp,
		actionInput: ti,
		focusedPane: focusInput,
	}
	table.Events().Subscribe(game.EventSubscriberFunc(m.onEvent))
	return m, nil
}

// Init deals the first hand
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return dealMsg{} })
}

func (m *Model) onEvent(event game.GameEvent) {
	entry := m.formatter.Format(event)
	if start, ok := event.(game.HandStartEvent); ok {
		entry = HeaderStyle.Render(" "+entry+" ") + "\n" + m.holeCardsLine(start)
	}
	m.addLogEntry(entry)
}

// holeCardsLine shows the human's cards, if they were dealt in
func (m *Model) holeCardsLine(start game.HandStartEvent) string {
	p := m.humanPlayer()
	if slices.Contains(start.Players, p.Name) {
		return HandInfoStyle.Render("Your cards: ") + RenderCards(p.HoleCards)
	}
	return InfoStyle.Render("You are sitting this hand out")
}

func (m *Model) humanPlayer() *game.Player {
	return m.table.Players()[m.human]
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case dealMsg:
		m.deal()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == focusLog {
				m.focusedPane = focusInput
				m.actionInput.Focus()
			} else {
				m.focusedPane = focusLog
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == focusInput {
				input := m.actionInput.Value()
				m.actionInput.SetValue("")
				if m.submit(input) {
					m.quitting = true
					return m, tea.Quit
				}
			}
		case "up", "k":
			if m.focusedPane == focusLog {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == focusLog {
				m.logViewport.ScrollDown(1)
			}
		case "home", "g":
			if m.focusedPane == focusLog {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == focusLog {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == focusInput {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit applies one typed line and reports whether the program should exit
func (m *Model) submit(input string) bool {
	m.status = ""

	cmd, err := ParseCommand(input)
	if err != nil {
		m.status = ErrorStyle.Render(err.Error())
		return false
	}
	if cmd.Quit {
		return true
	}
	if m.gameOver {
		return cmd.Next
	}

	g := m.table.Game()
	if cmd.Next {
		if g == nil || g.IsComplete() {
			m.deal()
		} else {
			m.status = WarningStyle.Render(m.waitingOn(g))
		}
		return false
	}

	if g == nil || g.IsComplete() {
		m.status = WarningStyle.Render("Hand is over, press Enter for the next one")
		return false
	}
	if _, err := g.ExecuteValidTurn(m.human, cmd.Action, cmd.Amount); err != nil {
		m.logger.Debug("Action rejected", "action", cmd.Action, "amount", cmd.Amount, "error", err)
		m.status = ErrorStyle.Render(err.Error())
		return false
	}
	m.playBots(g)
	return false
}

// deal starts the next hand and plays bots until the human is due to act
func (m *Model) deal() {
	if m.table.HandsPlayed() > 0 && m.humanPlayer().Chips == 0 {
		m.gameOver = true
		m.addLogEntry(HeaderStyle.Render(" Game over ") + " You are out of chips")
		m.status = InfoStyle.Render("Press Enter to exit")
		return
	}

	g, err := m.table.NewGame()
	if errors.Is(err, game.ErrNotEnoughPlayers) {
		m.gameOver = true
		m.addLogEntry(HeaderStyle.Render(" Game over ") + " " + m.chipLeader() + " has all the chips")
		m.status = InfoStyle.Render("Press Enter to exit")
		return
	}
	if err != nil {
		m.status = ErrorStyle.Render(err.Error())
		return
	}
	m.playBots(g)
}

func (m *Model) playBots(g *game.Game) {
	if _, err := g.PlayBots(); err != nil {
		m.logger.Error("Bots failed to act", "error", err)
		m.status = ErrorStyle.Render(err.Error())
		return
	}
	if g.IsComplete() {
		m.status = InfoStyle.Render("Press Enter for the next hand")
	}
}

func (m *Model) waitingOn(g *game.Game) string {
	if cur := g.Current(); cur != nil {
		return fmt.Sprintf("Waiting for %s to act", cur.Name)
	}
	return "Hand is over"
}

func (m *Model) chipLeader() string {
	var leader *game.Player
	for _, p := range m.table.Players() {
		if leader == nil || p.Chips > leader.Chips {
			leader = p
		}
	}
	return leader.Name
}

func (m *Model) addLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns the entries written so far
func (m *Model) Log() []string {
	return m.gameLog
}

// Status returns the message shown above the input
func (m *Model) Status() string {
	return m.status
}

// RenderCard renders a card in its suit colour
func RenderCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// RenderCards renders cards as "[A♥ K♠]"
func RenderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = RenderCard(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
