package events

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Change notifications published by the services. Views subscribe over
// the WebSocket endpoint instead of probing each other for refreshes.
const (
	SubjectsChanged = "subjects_changed"
	TasksChanged    = "tasks_changed"
	SessionsChanged = "sessions_changed"
	ExamsChanged    = "exams_changed"
	DataCleared     = "data_cleared"
)

// Publisher is the notification contract services depend on.
type Publisher interface {
	Publish(event string)
}

// Noop discards events; used in tests.
type Noop struct{}

func (Noop) Publish(string) {}

type message struct {
	Type string `json:"type"`
	At   string `json:"at"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans change notifications out to every connected view.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()
	log.Printf("WebSocket connected (total: %d)", total)

	// Drain reads to detect disconnect
	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()
	delete(h.conns, conn)
	log.Printf("WebSocket disconnected (total: %d)", len(h.conns))
}

func (h *Hub) Publish(event string) {
	msg := message{Type: event, At: time.Now().UTC().Format(time.RFC3339)}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			h.unregister(conn)
		}
	}
}
