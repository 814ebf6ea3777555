package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/holdem-engine/internal/server"
)

// ServeCmd runs the HTTP and websocket server
type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.address)"`
	Seed *int64 `help:"Deterministic shuffle seed for new games (overrides table.seed)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Seed != nil {
		cfg.Table.Seed = c.Seed
	}
	logger := g.logger(os.Stderr, cfg)

	s, err := server.NewServer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := s.Start(cfg.Server.Address); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
