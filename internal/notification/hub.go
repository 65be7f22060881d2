package notification

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks one websocket connection per renter email for realtime
// booking/payment pushes.
type Hub struct {
	connections map[string]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*websocket.Conn),
	}
}

func (h *Hub) Register(renterEmail string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[renterEmail]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[renterEmail] = conn
}

func (h *Hub) Unregister(renterEmail string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[renterEmail]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, renterEmail)
	}
}

func (h *Hub) SendToRenter(renterEmail string, message interface{}) bool {
	h.mutex.RLock()
	conn, exists := h.connections[renterEmail]
	h.mutex.RUnlock()

	if !exists || conn == nil {
		return false
	}

	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(renterEmail)
		return false
	}

	return true
}

func (h *Hub) IsOnline(renterEmail string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[renterEmail]
	return exists
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for email, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, email)
	}
}
