package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/history"
)

type createRequest struct {
	Seed *int64 `json:"seed,omitempty"`
}

type actionRequest struct {
	Seat   int    `json:"seat"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

// gameResponse is returned by every route that reads or changes a game
type gameResponse struct {
	ID           string        `json:"id"`
	Seed         int64         `json:"seed"`
	Messages     []string      `json:"messages,omitempty"`
	ValidActions []game.Action `json:"valid_actions,omitempty"`
	State        game.Snapshot `json:"state"`
}

type decisionResponse struct {
	Seat   int         `json:"seat"`
	Action game.Action `json:"action"`
	Amount int         `json:"amount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	sess, msgs, err := s.createSession(req.Seed)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.writeJSON(w, http.StatusCreated, sess.response(msgs, game.NoSeat))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	viewer := game.NoSeat
	if v := r.URL.Query().Get("seat"); v != "" {
		seat, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, fmt.Errorf("%w: seat %q", errBadRequest, v))
			return
		}
		viewer = seat
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.writeJSON(w, http.StatusOK, sess.response(nil, viewer))
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	action, err := game.ParseAction(req.Action)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	g, err := sess.current()
	if err != nil {
		s.writeError(w, err)
		return
	}
	msg, err := g.ExecuteValidTurn(req.Seat, action, req.Amount)
	if err != nil {
		s.logger.Debug("Action rejected", "game", sess.id, "seat", req.Seat, "action", action, "amount", req.Amount, "error", err)
		s.writeError(w, err)
		return
	}

	msgs := []string{msg}
	bots, err := g.PlayBots()
	msgs = append(msgs, bots...)
	sess.broadcast()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess.response(msgs, game.NoSeat))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	g, err := sess.current()
	if err != nil {
		s.writeError(w, err)
		return
	}
	msg, err := g.AdvanceTurn()
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess.broadcast()
	s.writeJSON(w, http.StatusOK, sess.response([]string{msg}, game.NoSeat))
}

func (s *Server) handleNextHand(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	msgs, err := sess.deal()
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess.broadcast()
	s.writeJSON(w, http.StatusOK, sess.response(msgs, game.NoSeat))
}

func (s *Server) handleBotDecision(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	seat, err := strconv.Atoi(r.PathValue("seat"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: seat %q", errBadRequest, r.PathValue("seat")))
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	g, err := sess.current()
	if err != nil {
		s.writeError(w, err)
		return
	}
	action, amount, err := g.BotDecision(seat)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, decisionResponse{Seat: seat, Action: action, Amount: amount})
}

// handleHistory returns the session's finished hands as a PHHS document
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := history.EncodeAll(&buf, sess.history.Hands()); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/toml")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("Failed to write history", "game", sess.id, "error", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	st := newStream(conn, s.logger)
	sess.attach(st)
	s.logger.Debug("Stream attached", "game", sess.id)

	go st.writePump()
	go func() {
		st.readPump()
		sess.detach(st)
		s.logger.Debug("Stream detached", "game", sess.id)
	}()
}

// response builds the API view of the session. Callers hold sess.mu.
func (sess *session) response(msgs []string, viewer int) gameResponse {
	resp := gameResponse{
		ID:       sess.id,
		Seed:     sess.seed,
		Messages: msgs,
		State:    sess.snapshot(viewer),
	}
	if g := sess.table.Game(); g != nil {
		if cur := g.Current(); cur != nil && !cur.IsBot() {
			resp.ValidActions = g.ValidActions(cur.ID)
		}
	}
	return resp
}

var errBadRequest = errors.New("bad request")

// statusFor maps engine errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, game.ErrInvalidAction),
		errors.Is(err, game.ErrInvalidAmount),
		errors.Is(err, game.ErrNotBot):
		return http.StatusBadRequest
	case errors.Is(err, errUnknownSession),
		errors.Is(err, game.ErrUnknownSeat):
		return http.StatusNotFound
	case errors.Is(err, game.ErrOutOfTurn),
		errors.Is(err, game.ErrHandComplete),
		errors.Is(err, game.ErrHandInProgress),
		errors.Is(err, game.ErrNotEnoughPlayers):
		return http.StatusConflict
	case errors.Is(err, game.ErrInsufficientChips):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}
