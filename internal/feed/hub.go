package feed

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/chasedemo/internal/model"
)

const writeWait = 2 * time.Second

// Hub fans scene frames and commentary out to websocket spectators.
// Publishing never blocks: a client whose outbox is full misses the message.
type Hub struct {
	mu        sync.Mutex
	clients   map[*client]struct{}
	lastFrame []byte
	queueSize int
	closed    bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub with per-client outboxes of queueSize messages.
func NewHub(queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Hub{
		clients:   make(map[*client]struct{}),
		queueSize: queueSize,
	}
}

// Publish broadcasts a snapshot and keeps it for clients that join later.
func (h *Hub) Publish(s model.Snapshot) {
	data, err := json.Marshal(Frame{Type: typeFrame, Snapshot: s})
	if err != nil {
		slog.Error("marshaling feed frame", "tick", s.Tick, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastFrame = data
	h.broadcastLocked(data)
}

// Display broadcasts a commentary line. Implements commentary.Sink.
func (h *Hub) Display(text string) {
	data, err := json.Marshal(Comment{Type: typeComment, Text: text})
	if err != nil {
		slog.Error("marshaling feed comment", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(data)
}

func (h *Hub) broadcastLocked(data []byte) {
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// subscribe registers conn and primes its outbox with the latest frame.
// Returns nil once the hub is closed.
func (h *Hub) subscribe(conn *websocket.Conn) *client {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, h.queueSize),
	}
	if h.lastFrame != nil {
		c.send <- h.lastFrame
	}
	h.clients[c] = struct{}{}
	return c
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// writePump drains the outbox to the connection until the outbox closes.
func (c *client) writePump() {
	defer c.conn.Close()

	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Debug("feed write failed", "remote", c.conn.RemoteAddr(), "err", err)
			return
		}
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"))
}
