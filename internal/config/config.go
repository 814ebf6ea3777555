// Package config loads table, seat and server settings from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/holdem-engine/internal/game"
)

const (
	MinSeats = 2
	MaxSeats = 10
)

// Config represents the complete configuration
type Config struct {
	Table  *TableSettings  `hcl:"table,block"`
	Seats  []SeatSettings  `hcl:"seat,block"`
	Server *ServerSettings `hcl:"server,block"`
}

// TableSettings contains blinds, stacks and the shuffle seed
type TableSettings struct {
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	Seed          *int64 `hcl:"seed,optional"`
}

// SeatSettings defines one seat. Seats without human = true are bots.
type SeatSettings struct {
	Name    string `hcl:"name,label"`
	Human   bool   `hcl:"human,optional"`
	BotType string `hcl:"bot_type,optional"`
	Chips   int    `hcl:"chips,optional"`
}

// ServerSettings contains HTTP server configuration
type ServerSettings struct {
	Address    string `hcl:"address,optional"`
	LogLevel   string `hcl:"log_level,optional"`
	SessionTTL string `hcl:"session_ttl,optional"`
}

// Default returns the configuration used when no file is given: one human
// against three bots.
func Default() *Config {
	c := &Config{
		Seats: []SeatSettings{
			{Name: "You", Human: true},
			{Name: "Ace", BotType: game.Aggressive.String()},
			{Name: "Rock", BotType: game.Tight.String()},
			{Name: "Fish", BotType: game.CallingStation.String()},
		},
	}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	return decode(file, diags)
}

// Parse decodes configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	return decode(file, diags)
}

func decode(file *hcl.File, diags hcl.Diagnostics) (*Config, error) {
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(config.Seats) == 0 {
		config.Seats = Default().Seats
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = 5
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = c.Table.SmallBlind * 2
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = 1000
	}

	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "localhost:8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.SessionTTL == "" {
		c.Server.SessionTTL = "30m"
	}

	for i := range c.Seats {
		if !c.Seats[i].Human && c.Seats[i].BotType == "" {
			c.Seats[i].BotType = game.CallingStation.String()
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive: %d", c.Table.SmallBlind)
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("big blind (%d) must be greater than small blind (%d)", c.Table.BigBlind, c.Table.SmallBlind)
	}
	if c.Table.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive: %d", c.Table.StartingChips)
	}

	if len(c.Seats) < MinSeats || len(c.Seats) > MaxSeats {
		return fmt.Errorf("need between %d and %d seats, got %d", MinSeats, MaxSeats, len(c.Seats))
	}
	names := make(map[string]bool)
	for _, s := range c.Seats {
		if s.Name == "" {
			return fmt.Errorf("seat name cannot be empty")
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate seat name: %s", s.Name)
		}
		names[s.Name] = true
		if s.Chips < 0 {
			return fmt.Errorf("seat %s: chips cannot be negative", s.Name)
		}
		if !s.Human {
			if _, err := game.ParseBotType(s.BotType); err != nil {
				return fmt.Errorf("seat %s: %w", s.Name, err)
			}
		}
	}

	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}
	if _, err := c.Server.TTL(); err != nil {
		return err
	}
	return nil
}

// TTL parses the session time-to-live
func (s *ServerSettings) TTL() (time.Duration, error) {
	d, err := time.ParseDuration(s.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid session_ttl %q: %w", s.SessionTTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("session_ttl must be positive: %s", s.SessionTTL)
	}
	return d, nil
}

// Level returns the configured log level, falling back to info
func (s *ServerSettings) Level() log.Level {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// HumanSeats counts seats played by a person
func (c *Config) HumanSeats() int {
	n := 0
	for _, s := range c.Seats {
		if s.Human {
			n++
		}
	}
	return n
}

// TableConfig converts the settings into a game.TableConfig. Call Validate
// first.
func (c *Config) TableConfig() (game.TableConfig, error) {
	tc := game.TableConfig{
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
		StartingChips: c.Table.StartingChips,
	}
	for _, s := range c.Seats {
		sc := game.SeatConfig{Name: s.Name, Human: s.Human, Chips: s.Chips}
		if !s.Human {
			bt, err := game.ParseBotType(s.BotType)
			if err != nil {
				return game.TableConfig{}, fmt.Errorf("seat %s: %w", s.Name, err)
			}
			sc.BotType = bt
		}
		tc.Seats = append(tc.Seats, sc)
	}
	return tc, nil
}

// BotsOnly returns a copy with every seat turned into a bot, for simulation.
// Human seats become calling stations.
func (c *Config) BotsOnly() *Config {
	cp := *c
	cp.Seats = make([]SeatSettings, len(c.Seats))
	for i, s := range c.Seats {
		if s.Human {
			s.Human = false
			s.BotType = game.CallingStation.String()
		}
		cp.Seats[i] = s
	}
	return &cp
}
