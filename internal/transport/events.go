package transport

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rpggio/cloneai/internal/coordinator"
)

const (
	eventWriteWait  = 5 * time.Second
	eventBufferSize = 16
)

// Event is the websocket message sent after every state change.
type Event struct {
	Phase           coordinator.Phase `json:"phase"`
	Error           string            `json:"error,omitempty"`
	InFlight        bool              `json:"in_flight"`
	View            coordinator.View  `json:"view"`
	ActiveProjectID string            `json:"active_project_id,omitempty"`
	ProjectCount    int               `json:"project_count"`
}

// EventFromSnapshot summarizes a snapshot without project bodies.
func EventFromSnapshot(s coordinator.Snapshot) Event {
	ev := Event{
		Phase:        s.Phase,
		Error:        s.Error,
		InFlight:     s.InFlight,
		View:         s.View,
		ProjectCount: len(s.Projects),
	}
	if s.Active != nil {
		ev.ActiveProjectID = s.Active.ID
	}
	return ev
}

var eventUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		return strings.Contains(origin, "://"+strings.TrimSpace(r.Host))
	},
}

type eventClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans state changes out to websocket clients. It implements
// coordinator.Notifier. A client whose buffer is full is dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*eventClient]struct{}
	logger  *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Hub{clients: make(map[*eventClient]struct{}), logger: logger}
}

// Notify broadcasts a snapshot summary without blocking.
func (h *Hub) Notify(s coordinator.Snapshot) {
	msg, err := json.Marshal(EventFromSnapshot(s))
	if err != nil {
		h.logger.Error("failed to encode event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("dropping slow event client")
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// ServeWS upgrades the request and streams events until the client leaves.
// initial is sent first so a fresh page sees the current state.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, initial coordinator.Snapshot) {
	conn, err := eventUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &eventClient{conn: conn, send: make(chan []byte, eventBufferSize)}
	if msg, err := json.Marshal(EventFromSnapshot(initial)); err == nil {
		c.send <- msg
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards client messages and unregisters on close.
func (h *Hub) readPump(c *eventClient) {
	defer func() {
		h.mu.Lock()
		if _, ok := h.clients[c]; ok {
			delete(h.clients, c)
			close(c.send)
		}
		h.mu.Unlock()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("event client closed", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *eventClient) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}
