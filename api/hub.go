package api

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Client is one dashboard WebSocket connection. Writes are serialized so
// the initial theme message and broadcasts never interleave.
type Client struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

// Send writes one JSON message to the client.
func (c *Client) Send(message any) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(message)
}

// Hub tracks dashboard clients for theme broadcasts.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Add registers a connection and returns its handle.
func (h *Hub) Add(conn *websocket.Conn) *Client {
	c := &Client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

// Remove unregisters a client and closes its connection. Removing a client
// twice is a no-op.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		_ = c.conn.Close()
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

// Broadcast sends message to every client and returns how many were
// dropped because the write failed.
func (h *Hub) Broadcast(message any) int {
	dropped := 0
	for _, c := range h.snapshot() {
		if err := c.Send(message); err != nil {
			h.Remove(c)
			dropped++
		}
	}
	return dropped
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	for _, c := range h.snapshot() {
		h.Remove(c)
	}
}
