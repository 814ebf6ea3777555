package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
table {
  small_blind    = 10
  big_blind      = 20
  starting_chips = 2000
  seed           = 42
}

seat "You" {
  human = true
}

seat "Bot1" {
  bot_type = "aggressive"
}

seat "Bot2" {
  bot_type = "calling-station"
  chips    = 500
}

server {
  address     = "0.0.0.0:9000"
  log_level   = "debug"
  session_ttl = "5m"
}
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample), "holdem.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.Table.SmallBlind)
	assert.Equal(t, 20, cfg.Table.BigBlind)
	assert.Equal(t, 2000, cfg.Table.StartingChips)
	require.NotNil(t, cfg.Table.Seed)
	assert.Equal(t, int64(42), *cfg.Table.Seed)

	require.Len(t, cfg.Seats, 3)
	assert.Equal(t, "You", cfg.Seats[0].Name)
	assert.True(t, cfg.Seats[0].Human)
	assert.Equal(t, 1, cfg.HumanSeats())

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
	assert.Equal(t, log.DebugLevel, cfg.Server.Level())
	ttl, err := cfg.Server.TTL()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)

	tc, err := cfg.TableConfig()
	require.NoError(t, err)
	assert.Equal(t, game.Aggressive, tc.Seats[1].BotType)
	assert.Equal(t, game.CallingStation, tc.Seats[2].BotType)
	assert.Equal(t, 500, tc.Seats[2].Chips)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.Table.SmallBlind)
	assert.Equal(t, 10, cfg.Table.BigBlind)
	assert.Equal(t, 1000, cfg.Table.StartingChips)
	assert.Nil(t, cfg.Table.Seed)
	assert.Equal(t, "localhost:8080", cfg.Server.Address)
	assert.Len(t, cfg.Seats, 4)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Seats, 3)
}

func TestDefaultsForPartialFile(t *testing.T) {
	cfg, err := Parse([]byte(`
table {
  small_blind = 25
}
seat "A" {}
seat "B" { human = true }
`), "partial.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50, cfg.Table.BigBlind)
	assert.Equal(t, "calling_station", cfg.Seats[0].BotType)
	assert.Equal(t, "30m", cfg.Server.SessionTTL)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`table {`), "broken.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`table { small_blind = "lots" }`), "typed.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero small blind", func(c *Config) { c.Table.SmallBlind = -1 }},
		{"big blind not above small", func(c *Config) { c.Table.BigBlind = c.Table.SmallBlind }},
		{"no chips", func(c *Config) { c.Table.StartingChips = -5 }},
		{"one seat", func(c *Config) { c.Seats = c.Seats[:1] }},
		{"too many seats", func(c *Config) {
			for i := 0; i < MaxSeats; i++ {
				c.Seats = append(c.Seats, SeatSettings{Name: string(rune('a' + i)), BotType: "tight"})
			}
		}},
		{"duplicate names", func(c *Config) { c.Seats[1].Name = c.Seats[0].Name }},
		{"empty name", func(c *Config) { c.Seats[1].Name = "" }},
		{"unknown bot", func(c *Config) { c.Seats[1].BotType = "shark" }},
		{"bad log level", func(c *Config) { c.Server.LogLevel = "loud" }},
		{"bad ttl", func(c *Config) { c.Server.SessionTTL = "soon" }},
		{"negative ttl", func(c *Config) { c.Server.SessionTTL = "-1m" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestBotsOnly(t *testing.T) {
	cfg := Default()
	bots := cfg.BotsOnly()
	assert.Zero(t, bots.HumanSeats())
	assert.Equal(t, 1, cfg.HumanSeats(), "original untouched")
	require.NoError(t, bots.Validate())
}
