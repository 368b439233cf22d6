package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub owns the transient realtime state: the set of authenticated
// connections with their sessions, and per-chat rooms used as broadcast
// targets. Writes happen under the hub lock, so events for a chat reach
// room members in the order the originating operations committed.
type Hub struct {
	mu       sync.Mutex
	sessions map[*websocket.Conn]Session
	rooms    map[string]map[*websocket.Conn]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[*websocket.Conn]Session),
		rooms:    make(map[string]map[*websocket.Conn]bool),
	}
}

// Register records an authenticated connection.
func (h *Hub) Register(conn *websocket.Conn, session Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[conn] = session
}

// Unregister removes the connection from every room and drops its session,
// returning the session for teardown.
func (h *Hub) Unregister(conn *websocket.Conn) (Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	session, ok := h.sessions[conn]
	h.removeLocked(conn)
	return session, ok
}

// Session returns the session bound to the connection.
func (h *Hub) Session(conn *websocket.Conn) (Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	session, ok := h.sessions[conn]
	return session, ok
}

// JoinRoom adds the connection to a chat room.
func (h *Hub) JoinRoom(chatID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[chatID]; !ok {
		h.rooms[chatID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[chatID][conn] = true
}

// InRoom reports whether the connection joined the chat room.
func (h *Hub) InRoom(chatID string, conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[chatID][conn]
}

// BroadcastToRoom sends the event to every connection in the chat room.
func (h *Hub) BroadcastToRoom(chatID string, event ServerEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.writeLocked(h.rooms[chatID], event)
}

// BroadcastAll sends the event to every authenticated connection.
// Presence updates are global, not room-scoped.
func (h *Hub) BroadcastAll(event ServerEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := make(map[*websocket.Conn]bool, len(h.sessions))
	for conn := range h.sessions {
		conns[conn] = true
	}
	h.writeLocked(conns, event)
}

// SendTo delivers the event to a single connection. Used for direct error
// replies, which are never broadcast.
func (h *Hub) SendTo(conn *websocket.Conn, event ServerEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func (h *Hub) writeLocked(conns map[*websocket.Conn]bool, event ServerEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("websocket marshal error: %v", err)
		return
	}

	var dead []*websocket.Conn
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			dead = append(dead, conn)
		}
	}
	for _, conn := range dead {
		conn.Close()
		h.removeLocked(conn)
	}
}

func (h *Hub) removeLocked(conn *websocket.Conn) {
	delete(h.sessions, conn)
	for chatID, conns := range h.rooms {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, chatID)
		}
	}
}
