// Package sim plays bot-only hands on independent tables in parallel and
// reports how each seat fared.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/statistics"
)

// SeatReport is one seat's results summed over every table
type SeatReport struct {
	Seat       int
	Name       string
	BotType    string
	FinalChips int // chips left on each worker's last table, summed
	Stats      *statistics.Statistics
}

// Report is the outcome of a simulation run
type Report struct {
	Hands   int
	Workers int
	Tables  int // tables dealt, including fresh tables after a bust
	Seed    int64
	Seats   []SeatReport
	History []*history.HandHistory // every hand, when recorded
}

// Option configures a run
type Option func(*runConfig)

type runConfig struct {
	logger  *log.Logger
	history bool
}

// WithLogger sets the logger for the run
func WithLogger(logger *log.Logger) Option {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithHistory records every hand into Report.History, worker by worker
func WithHistory() Option {
	return func(c *runConfig) {
		c.history = true
	}
}

// Run plays the given number of bot-only hands split across worker tables. Human seats
// in cfg are played as calling stations. Each worker owns one table and a
// PRNG derived from the configured seed, so a run is reproducible for a
// given seed and worker count. A table where only one seat has chips left
// is replaced by a fresh one.
func Run(ctx context.Context, cfg *config.Config, hands, workers int, opts ...Option) (*Report, error) {
	rc := &runConfig{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(rc)
	}
	logger := rc.logger.WithPrefix("sim")

	if hands <= 0 {
		return nil, fmt.Errorf("hands must be positive: %d", hands)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, hands)

	bots := cfg.BotsOnly()
	if err := bots.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	tc, err := bots.TableConfig()
	if err != nil {
		return nil, err
	}
	_, seed := randutil.Seeded(cfg.Table.Seed)

	logger.Info("Starting simulation", "hands", hands, "workers", workers, "seed", seed)

	results := make([]*workerResult, workers)
	g, ctx := errgroup.WithContext(ctx)
	perWorker, remainder := hands/workers, hands%workers
	for w := range workers {
		n := perWorker
		if w < remainder {
			n++
		}
		g.Go(func() error {
			wc := workerConfig{
				id:      w,
				table:   tc,
				hands:   n,
				history: rc.history,
				logger:  logger.With("worker", w),
			}
			res, err := runWorker(ctx, wc, randutil.Derive(seed, w))
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Hands: hands, Workers: workers, Seed: seed}
	for i, sc := range tc.Seats {
		report.Seats = append(report.Seats, SeatReport{
			Seat:    i,
			Name:    sc.Name,
			BotType: sc.BotType.String(),
			Stats:   &statistics.Statistics{},
		})
	}
	for _, res := range results {
		report.Tables += res.tables
		report.History = append(report.History, res.history...)
		for i := range report.Seats {
			report.Seats[i].Stats.Merge(res.stats[i])
			report.Seats[i].FinalChips += res.chips[i]
		}
	}

	logger.Info("Simulation complete", "hands", hands, "tables", report.Tables)
	return report, nil
}

type workerConfig struct {
	id      int
	table   game.TableConfig
	hands   int
	history bool
	logger  *log.Logger
}

type workerResult struct {
	stats   []*statistics.Statistics
	chips   []int
	tables  int
	history []*history.HandHistory
}

func runWorker(ctx context.Context, wc workerConfig, rng *rand.Rand) (*workerResult, error) {
	tc, logger := wc.table, wc.logger
	res := &workerResult{
		stats: make([]*statistics.Statistics, len(tc.Seats)),
		chips: make([]int, len(tc.Seats)),
	}
	for i := range res.stats {
		res.stats[i] = &statistics.Statistics{}
	}

	var (
		table *game.Table
		rec   *history.Recorder
		pot   int
	)
	keepHistory := func() {
		if rec != nil {
			res.history = append(res.history, rec.Hands()...)
			rec.Close()
			rec = nil
		}
	}
	for played := 0; played < wc.hands; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if table == nil {
			t, err := game.NewTable(tc, rng, tableLogger(logger))
			if err != nil {
				return nil, err
			}
			table = t
			table.Events().Subscribe(game.EventSubscriberFunc(func(e game.GameEvent) {
				if end, ok := e.(game.HandEndEvent); ok {
					pot = end.Pot
				}
			}))
			res.tables++
			if wc.history {
				rec = history.NewRecorder(table, fmt.Sprintf("sim-w%d-t%d", wc.id, res.tables))
			}
		}

		before := make([]int, len(tc.Seats))
		for i, p := range table.Players() {
			before[i] = p.Chips
		}

		g, err := table.NewGame()
		if errors.Is(err, game.ErrNotEnoughPlayers) {
			logger.Debug("Table busted, dealing a fresh one", "hands", table.HandsPlayed())
			keepHistory()
			table = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		if _, err := g.PlayBots(); err != nil {
			return nil, fmt.Errorf("hand %d: %w", g.HandNumber(), err)
		}
		if !g.IsComplete() {
			return nil, fmt.Errorf("hand %d stopped in %s", g.HandNumber(), g.Phase())
		}

		record(res, g, table.Players(), before, pot, tc.BigBlind)
		played++
	}

	keepHistory()
	if table != nil {
		for i, p := range table.Players() {
			res.chips[i] = p.Chips
		}
	}
	return res, nil
}

// record adds one finished hand to the per-seat statistics. Seats without
// chips at the start of the hand were not dealt in and are skipped.
func record(res *workerResult, g *game.Game, players []*game.Player, before []int, pot, bigBlind int) {
	winner := g.Winner()
	for i, p := range players {
		if before[i] == 0 {
			continue
		}
		_, showdown := g.BestHand(p.ID)
		res.stats[i].Add(statistics.HandResult{
			NetBB:          float64(p.Chips-before[i]) / float64(bigBlind),
			Won:            winner != nil && winner.ID == p.ID,
			WentToShowdown: showdown,
			Position:       g.Position(p.ID),
			FinalPot:       pot,
			BigBlind:       bigBlind,
		})
	}
}

// tableLogger keeps per-hand logging out of the output unless debugging
func tableLogger(logger *log.Logger) *log.Logger {
	tl := logger.With()
	if logger.GetLevel() > log.DebugLevel {
		tl.SetLevel(log.WarnLevel)
	}
	return tl
}
