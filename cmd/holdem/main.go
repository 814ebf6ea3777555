package main

import (
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config string `short:"c" default:"holdem.hcl" help:"HCL configuration file (defaults apply when missing)"`
	Debug  bool   `help:"Enable debug logging"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play against bots in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve games over HTTP and websockets"`
	Simulate SimulateCmd      `cmd:"" help:"Play bot-only hands and report per-seat results"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate cards and print the best five-card hand"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em round engine with bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads and validates the configuration file
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logger builds the root logger. --debug wins over the configured level.
func (g *Globals) logger(w io.Writer, cfg *config.Config) *log.Logger {
	level := log.InfoLevel
	if cfg != nil {
		level = cfg.Server.Level()
	}
	if g.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

