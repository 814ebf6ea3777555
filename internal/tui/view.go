package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/game"
)

const sidebarWidth = 30

// View renders the log on the left, the table on the right and the input
// below
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.border(focusInput)).
		Width(max(m.width-2, 1)).
		Render(actionContent)

	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurredBorder).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(m.renderSidebar())

	m.logViewport.Width = max(m.width-sidebarWidth-4, 1)
	m.logViewport.Height = paneHeight
	if !m.initialized && m.logViewport.Width > 1 && m.logViewport.Height > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.border(focusLog)).
		Width(m.logViewport.Width).
		Height(paneHeight).
		Render(m.logViewport.View())

	top := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Left, top, actionPane)
}

func (m *Model) border(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return focusedBorder
	}
	return blurredBorder
}

// renderSidebar shows the board, the pot and every seat
func (m *Model) renderSidebar() string {
	var b strings.Builder

	g := m.table.Game()
	if g == nil {
		b.WriteString(InfoStyle.Render("Dealing..."))
		return b.String()
	}

	b.WriteString(HeaderStyle.Render(fmt.Sprintf(" Hand #%d ", g.HandNumber())))
	b.WriteString(" " + g.Phase().String() + "\n\n")

	b.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: $%d", g.Pot())))
	if g.CurrentBet() > 0 {
		b.WriteString(" | " + WarningStyle.Render(fmt.Sprintf("Bet: $%d", g.CurrentBet())))
	}
	b.WriteString("\n")
	if board := g.Community(); len(board) > 0 {
		b.WriteString("Board: " + RenderCards(board) + "\n")
	}
	b.WriteString("\n")

	snap := g.SnapshotFor(m.human)
	for _, seat := range snap.Seats {
		marker := "  "
		if seat.ID == snap.CurrentTurn {
			marker = "▶ "
		}
		line := fmt.Sprintf("%s%s $%d", marker, seat.Name, seat.Chips)
		switch {
		case seat.Folded:
			line = InfoStyle.Render(line + " (folded)")
		case seat.Role != "":
			line += " " + InfoStyle.Render(seat.Role)
		}
		b.WriteString(line + "\n")
		if len(seat.Cards) > 0 && seat.ID != m.human {
			b.WriteString("    " + renderCardViews(seat.Cards) + " " + seat.Hand + "\n")
		}
	}
	return b.String()
}

// renderActionPane shows the human's cards, what they can do and the input
func (m *Model) renderActionPane() string {
	var b strings.Builder

	if g := m.table.Game(); g != nil && !m.gameOver {
		if cur := g.Current(); cur != nil && cur.ID == m.human {
			p := m.humanPlayer()
			owed := g.CurrentBet() - p.RoundBet
			b.WriteString(HandInfoStyle.Render("Hand: ") + RenderCards(p.HoleCards))
			if owed > 0 {
				b.WriteString(fmt.Sprintf("  to call: $%d", owed))
			}
			b.WriteString("\n")
			b.WriteString(renderActions(g.ValidActions(m.human), owed))
			b.WriteString("\n")
		} else if g.IsComplete() {
			b.WriteString(SuccessStyle.Render(g.Explanation()))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.actionInput.View())
	b.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == focusLog {
		help = "Log focused: ↑↓ scroll, Home/End, Tab to input"
	}
	b.WriteString(InfoStyle.Render(help))
	return b.String()
}

func renderActions(actions []game.Action, owed int) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		switch a {
		case game.Fold:
			parts = append(parts, ErrorStyle.Render("[fold]"))
		case game.Call:
			parts = append(parts, SuccessStyle.Render(fmt.Sprintf("[call $%d]", owed)))
		case game.Check:
			parts = append(parts, SuccessStyle.Render("[check]"))
		default:
			parts = append(parts, WarningStyle.Render("["+a.String()+" N]"))
		}
	}
	return ActionsStyle.Render("Actions: ") + strings.Join(parts, " ")
}

func renderCardViews(views []game.CardView) string {
	parts := make([]string, 0, len(views))
	for _, v := range views {
		c, err := v.Card()
		if err != nil {
			continue
		}
		parts = append(parts, RenderCard(c))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
