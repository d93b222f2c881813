// Package socket keeps the open dashboard websocket connections.
package socket

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	conn Conn
	mu   sync.Mutex // gorilla allows one concurrent writer per connection
}

func (c *client) write(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

// Hub manages every connected client, keyed by user id.
// A user reconnecting replaces their previous connection.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]*client),
		log:     log,
	}
}

func (h *Hub) Register(userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[userID]; ok {
		old.conn.Close()
	}
	h.clients[userID] = &client{conn: conn}
	h.log.Info("websocket client registered", zap.String("user_id", userID))
}

// Unregister removes the client only if conn is still the registered one.
func (h *Hub) Unregister(userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[userID]; ok && c.conn == conn {
		delete(h.clients, userID)
		h.log.Info("websocket client unregistered", zap.String("user_id", userID))
	}
}

// Send writes message to one user. An offline user is not an error.
func (h *Hub) Send(userID string, message []byte) error {
	h.mu.RLock()
	c, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		h.log.Debug("websocket client not connected", zap.String("user_id", userID))
		return nil
	}
	return c.write(message)
}

// Broadcast writes message to every connected client and returns how many
// received it. Failed writes are logged and skipped.
func (h *Hub) Broadcast(message []byte) int {
	h.mu.RLock()
	targets := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		targets[id] = c
	}
	h.mu.RUnlock()

	sent := 0
	for id, c := range targets {
		if err := c.write(message); err != nil {
			h.log.Warn("websocket broadcast failed", zap.String("user_id", id), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

// Len is the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
