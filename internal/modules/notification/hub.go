package notification

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Hub tracks one websocket per dashboard session.
type Hub struct {
	connections map[string]*conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*conn),
	}
}

func (h *Hub) Register(sessionID string, ws *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[sessionID]; exists && old != nil {
		_ = old.ws.Close()
	}

	h.connections[sessionID] = &conn{ws: ws}
}

// Unregister drops the session's connection, but only if it is still ws.
func (h *Hub) Unregister(sessionID string, ws *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.connections[sessionID]; exists && c != nil && c.ws == ws {
		_ = c.ws.Close()
		delete(h.connections, sessionID)
	}
}

func (h *Hub) Send(sessionID string, message any) bool {
	h.mutex.RLock()
	c, exists := h.connections[sessionID]
	h.mutex.RUnlock()

	if !exists || c == nil {
		return false
	}

	if err := c.writeJSON(message); err != nil {
		h.Unregister(sessionID, c.ws)
		return false
	}
	return true
}

// Broadcast sends message to every connection and returns how many received it.
func (h *Hub) Broadcast(message any) int {
	h.mutex.RLock()
	ids := make([]string, 0, len(h.connections))
	for id := range h.connections {
		ids = append(ids, id)
	}
	h.mutex.RUnlock()

	sent := 0
	for _, id := range ids {
		if h.Send(id, message) {
			sent++
		}
	}
	return sent
}

func (h *Hub) ping(sessionID string) bool {
	h.mutex.RLock()
	c, exists := h.connections[sessionID]
	h.mutex.RUnlock()
	if !exists || c == nil {
		return false
	}
	return c.ping() == nil
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.connections {
		if c != nil {
			_ = c.ws.Close()
		}
		delete(h.connections, id)
	}
}
