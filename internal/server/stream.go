package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-engine/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames
	maxMessageSize = 512
)

const messageTypeSnapshot = "snapshot"

// streamMessage is one frame sent to a websocket client: either a formatted
// game event or a full snapshot after the state changed.
type streamMessage struct {
	Type     string         `json:"type"`
	Text     string         `json:"text,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
}

// stream relays a session's events to one websocket client. It subscribes
// to the table's event bus, so OnEvent runs while the session lock is held
// and must never block.
type stream struct {
	conn      *websocket.Conn
	send      chan streamMessage
	done      chan struct{}
	closeOnce sync.Once
	formatter *game.EventFormatter
	logger    *log.Logger
}

func newStream(conn *websocket.Conn, logger *log.Logger) *stream {
	return &stream{
		conn:      conn,
		send:      make(chan streamMessage, 256),
		done:      make(chan struct{}),
		formatter: game.NewEventFormatter(nil),
		logger:    logger.WithPrefix("stream"),
	}
}

// OnEvent implements game.EventSubscriber
func (st *stream) OnEvent(event game.GameEvent) {
	st.push(streamMessage{
		Type: event.EventType().String(),
		Text: st.formatter.Format(event),
	})
}

func (st *stream) push(msg streamMessage) {
	select {
	case <-st.done:
		return
	default:
	}

	select {
	case st.send <- msg:
	case <-st.done:
	default:
		st.logger.Warn("Dropping message for slow client", "type", msg.Type)
	}
}

func (st *stream) close() {
	st.closeOnce.Do(func() {
		close(st.done)
	})
}

// readPump discards client frames and notices when the client goes away
func (st *stream) readPump() {
	defer st.close()

	st.conn.SetReadLimit(maxMessageSize)
	_ = st.conn.SetReadDeadline(time.Now().Add(pongWait))
	st.conn.SetPongHandler(func(string) error {
		_ = st.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := st.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				st.logger.Debug("WebSocket closed", "error", err)
			}
			return
		}
	}
}

// writePump sends queued messages and keeps the connection alive
func (st *stream) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = st.conn.Close()
	}()

	for {
		select {
		case msg := <-st.send:
			_ = st.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := st.conn.WriteJSON(msg); err != nil {
				st.logger.Debug("Failed to write message", "error", err)
				st.close()
				return
			}

		case <-ticker.C:
			_ = st.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := st.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				st.close()
				return
			}

		case <-st.done:
			_ = st.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = st.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
