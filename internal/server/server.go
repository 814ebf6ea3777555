package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/gameid"
)

// DefaultReapInterval is how often idle sessions are checked for expiry
const DefaultReapInterval = time.Minute

// Server hosts game sessions over HTTP and streams them over websockets
type Server struct {
	cfg          *config.Config
	logger       *log.Logger
	clock        quartz.Clock
	ids          *gameid.Generator
	ttl          time.Duration
	reapInterval time.Duration
	upgrader     websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*session

	ctx        context.Context
	cancel     context.CancelFunc
	reaper     quartz.Waiter
	httpServer *http.Server
}

// Option configures a Server
type Option func(*Server)

// WithClock replaces the wall clock, mostly for tests
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithIDGenerator sets the generator used for session ids
func WithIDGenerator(g *gameid.Generator) Option {
	return func(s *Server) {
		s.ids = g
	}
}

// WithReapInterval sets how often idle sessions are checked
func WithReapInterval(d time.Duration) Option {
	return func(s *Server) {
		s.reapInterval = d
	}
}

// NewServer creates a server for tables described by cfg and starts the
// session reaper. Call Shutdown to stop it.
func NewServer(cfg *config.Config, logger *log.Logger, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ttl, err := cfg.Server.TTL()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:          cfg,
		logger:       logger.WithPrefix("server"),
		clock:        quartz.NewReal(),
		ids:          gameid.NewGenerator(nil),
		ttl:          ttl,
		reapInterval: DefaultReapInterval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local play only
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*session),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.reaper = s.clock.TickerFunc(ctx, s.reapInterval, func() error {
		s.reap()
		return nil
	}, "reaper")
	return s, nil
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /games", s.handleCreateGame)
	mux.HandleFunc("GET /games/{id}", s.handleGetGame)
	mux.HandleFunc("POST /games/{id}/actions", s.handleAction)
	mux.HandleFunc("POST /games/{id}/advance", s.handleAdvance)
	mux.HandleFunc("POST /games/{id}/next-hand", s.handleNextHand)
	mux.HandleFunc("POST /games/{id}/bots/{seat}/decision", s.handleBotDecision)
	mux.HandleFunc("GET /games/{id}/history", s.handleHistory)
	mux.HandleFunc("GET /games/{id}/ws", s.handleWebSocket)
	return mux
}

// Start serves HTTP on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("Starting server", "addr", addr, "session_ttl", s.ttl)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the reaper, closes every stream and drains the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for id, sess := range s.sessions {
		sess.close()
		delete(s.sessions, id)
	}
	srv := s.httpServer
	s.mu.Unlock()

	if s.reaper != nil {
		if err := s.reaper.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("Reaper stopped with error", "error", err)
		}
	}
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// SessionCount returns the number of live sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
