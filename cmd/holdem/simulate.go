package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/sim"
	"github.com/lox/holdem-engine/internal/statistics"
)

// SimulateCmd plays bot-only hands in parallel. Human seats are played as
// calling stations.
type SimulateCmd struct {
	Hands   int    `short:"n" default:"1000" help:"Number of hands to play"`
	Workers int    `short:"w" default:"0" help:"Parallel tables (0 uses GOMAXPROCS)"`
	Seed    *int64 `help:"Deterministic seed (overrides table.seed)"`
	History string `help:"Write every hand to this file in PHH format"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Table.Seed = c.Seed
	}
	logger := g.logger(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []sim.Option{sim.WithLogger(logger)}
	if c.History != "" {
		opts = append(opts, sim.WithHistory())
	}

	start := time.Now()
	report, err := sim.Run(ctx, cfg, c.Hands, c.Workers, opts...)
	if err != nil {
		return err
	}
	logger.Info("Finished", "elapsed", time.Since(start).Round(time.Millisecond))

	if c.History != "" {
		if err := history.WriteFile(c.History, report.History); err != nil {
			return fmt.Errorf("failed to write hand history: %w", err)
		}
		logger.Info("Wrote hand history", "file", c.History, "hands", len(report.History))
	}

	renderReport(os.Stdout, report)
	return nil
}

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

func renderReport(w io.Writer, r *sim.Report) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d hands on %d tables, seed %d", r.Hands, r.Tables, r.Seed)))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Seat", "Bot", "Hands", "Wins", "Showdown", "Fold", "bb/hand", "95% CI", "Chips")
	for _, s := range r.Seats {
		low, high := s.Stats.ConfidenceInterval95()
		t.Row(
			s.Name,
			s.BotType,
			fmt.Sprint(s.Stats.Hands),
			fmt.Sprintf("%d (%.1f%%)", s.Stats.Wins, 100*s.Stats.WinRate()),
			fmt.Sprint(s.Stats.ShowdownWins),
			fmt.Sprint(s.Stats.FoldWins),
			fmt.Sprintf("%+.2f", s.Stats.Mean()),
			fmt.Sprintf("[%+.2f, %+.2f]", low, high),
			fmt.Sprint(s.FinalChips),
		)
	}
	fmt.Fprintln(w, t.String())

	best, worst := spread(r.Seats)
	if best == worst {
		return
	}
	c, err := statistics.Compare(best.Stats, worst.Stats)
	if err != nil {
		return
	}
	verdict := "not significant"
	if c.Significant() {
		verdict = "significant"
	}
	fmt.Fprintf(w, "%s vs %s: %+.2f bb/hand [%+.2f, %+.2f], p=%.3f (%s)\n",
		best.Name, worst.Name, c.Difference, c.CI95Low, c.CI95High, c.PValue, verdict)
}

// spread returns the seats with the highest and lowest mean result
func spread(seats []sim.SeatReport) (best, worst *sim.SeatReport) {
	for i := range seats {
		s := &seats[i]
		if best == nil || s.Stats.Mean() > best.Stats.Mean() {
			best = s
		}
		if worst == nil || s.Stats.Mean() < worst.Stats.Mean() {
			worst = s
		}
	}
	return best, worst
}
