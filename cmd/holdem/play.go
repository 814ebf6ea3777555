package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/tui"
)

// PlayCmd plays the first human seat in the terminal
type PlayCmd struct {
	Seed    *int64 `help:"Deterministic shuffle seed (overrides table.seed)"`
	LogFile string `default:"holdem.log" help:"Where to write logs while the terminal UI is running"`
	NoColor bool   `help:"Disable colours"`
	History string `help:"Write the session's hands to this file in PHH format on exit"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if cfg.HumanSeats() == 0 {
		return fmt.Errorf("%s has no human seat, try simulate", g.Config)
	}
	if c.Seed != nil {
		cfg.Table.Seed = c.Seed
	}
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	logger := g.logger(logFile, cfg)

	tc, err := cfg.TableConfig()
	if err != nil {
		return err
	}
	rng, seed := randutil.Seeded(cfg.Table.Seed)
	logger.Info("Starting game", "seed", seed, "seats", len(tc.Seats))

	table, err := game.NewTable(tc, rng, logger)
	if err != nil {
		return err
	}
	rec := history.NewRecorder(table, "play")
	model, err := tui.NewModel(table, logger)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	for _, p := range table.Players() {
		fmt.Printf("%-12s $%d\n", p.Name, p.Chips)
	}
	fmt.Printf("%d hands played, seed %d\n", table.HandsPlayed(), seed)

	if c.History != "" {
		if err := history.WriteFile(c.History, rec.Hands()); err != nil {
			return fmt.Errorf("failed to write hand history: %w", err)
		}
		fmt.Printf("Hand history written to %s\n", c.History)
	}
	return nil
}
