package housekeeping

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans room and booking events out to connected housekeeping
// dashboards. Subscribers are keyed by an opaque connection id.
type Hub struct {
	connections map[int64]*websocket.Conn
	nextID      int64
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(conn *websocket.Conn) int64 {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.nextID++
	h.connections[h.nextID] = conn
	return h.nextID
}

func (h *Hub) Unregister(id int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[id]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, id)
	}
}

// Broadcast pushes one event to every subscriber. Connections that fail
// to take the write are dropped.
func (h *Hub) Broadcast(event any) {
	h.mutex.RLock()
	targets := make(map[int64]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		targets[id] = conn
	}
	h.mutex.RUnlock()

	for id, conn := range targets {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}
