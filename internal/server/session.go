package server

import (
	"errors"
	"sync"
	"time"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/randutil"
)

var errUnknownSession = errors.New("unknown session")

// session is one table being played through the API. All access to the
// table and its current game happens under mu.
type session struct {
	id       string
	seed     int64
	mu       sync.Mutex
	table    *game.Table
	history  *history.Recorder
	viewer   int
	lastSeen time.Time
	streams  map[*stream]struct{}
}

func (s *Server) createSession(seed *int64) (*session, []string, error) {
	tc, err := s.cfg.TableConfig()
	if err != nil {
		return nil, nil, err
	}
	if seed == nil {
		seed = s.cfg.Table.Seed
	}
	rng, used := randutil.Seeded(seed)

	id := s.ids.Generate()
	table, err := game.NewTable(tc, rng, s.logger.With("game", id))
	if err != nil {
		return nil, nil, err
	}

	sess := &session{
		id:       id,
		seed:     used,
		table:    table,
		history:  history.NewRecorder(table, id),
		viewer:   game.NoSeat,
		lastSeen: s.clock.Now(),
		streams:  make(map[*stream]struct{}),
	}
	for _, p := range table.Players() {
		if !p.IsBot() {
			sess.viewer = p.ID
			break
		}
	}

	msgs, err := sess.deal()
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Info("Created game", "game", id, "seed", used, "seats", len(tc.Seats))
	return sess, msgs, nil
}

// lookup returns a session and marks it as seen
func (s *Server) lookup(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errUnknownSession
	}

	sess.mu.Lock()
	sess.lastSeen = s.clock.Now()
	sess.mu.Unlock()
	return sess, nil
}

// reap drops sessions idle for at least the session ttl
func (s *Server) reap() {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastSeen)
		sess.mu.Unlock()
		if idle < s.ttl {
			continue
		}
		sess.close()
		delete(s.sessions, id)
		s.logger.Info("Reaped idle game", "game", id, "idle", idle)
	}
}

// deal starts the next hand and plays bots up to the first human decision.
// Callers hold mu, except during creation.
func (sess *session) deal() ([]string, error) {
	g, err := sess.table.NewGame()
	if err != nil {
		return nil, err
	}
	return g.PlayBots()
}

// current returns the hand in play or the last finished one
func (sess *session) current() (*game.Game, error) {
	g := sess.table.Game()
	if g == nil {
		return nil, game.ErrHandComplete
	}
	return g, nil
}

func (sess *session) snapshot(viewer int) game.Snapshot {
	g := sess.table.Game()
	if viewer == game.NoSeat {
		viewer = sess.viewer
	}
	return g.SnapshotFor(viewer)
}

// broadcast pushes the current snapshot to every stream. Callers hold mu.
func (sess *session) broadcast() {
	if len(sess.streams) == 0 {
		return
	}
	snap := sess.snapshot(game.NoSeat)
	for st := range sess.streams {
		st.push(streamMessage{Type: messageTypeSnapshot, Snapshot: &snap})
	}
}

// attach subscribes st to the session and queues the current snapshot
func (sess *session) attach(st *stream) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.streams[st] = struct{}{}
	sess.table.Events().Subscribe(st)

	snap := sess.snapshot(game.NoSeat)
	st.push(streamMessage{Type: messageTypeSnapshot, Snapshot: &snap})
}

func (sess *session) detach(st *stream) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	delete(sess.streams, st)
	sess.table.Events().Unsubscribe(st)
}

// close ends every stream attached to the session and stops recording
func (sess *session) close() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.history.Close()
	for st := range sess.streams {
		sess.table.Events().Unsubscribe(st)
		st.close()
	}
	clear(sess.streams)
}
