package hub

import (
	"sync"

	"github.com/google/uuid"
)

// Role classifies a connection once at establishment and never changes
// for its lifetime.
type Role string

const (
	RoleDevice  Role = "device"
	RoleMonitor Role = "monitor"
)

// Envelope is the wire message format shared by both audiences.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Client is one live connection. Events enqueued for it are drained by
// the transport's writer; a client whose buffer is full is skipped
// (broadcast is fire-and-forget, at-most-once per connected peer).
type Client struct {
	ID   string
	Role Role
	send chan Envelope
}

// Events returns the channel the transport writer drains.
func (c *Client) Events() <-chan Envelope {
	return c.send
}

// Hub tracks live connections partitioned by role and fans typed
// events out to them. It holds no business logic.
type Hub struct {
	mu      sync.RWMutex
	clients map[Role]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[Role]map[*Client]struct{}),
	}
}

// Register adds a connection under the given role and returns the
// client and a cleanup function. Cleanup removes the client
// synchronously and closes its event channel.
func (h *Hub) Register(role Role) (*Client, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{
		ID:   uuid.NewString(),
		Role: role,
		send: make(chan Envelope, 16),
	}

	if h.clients[role] == nil {
		h.clients[role] = make(map[*Client]struct{})
	}
	h.clients[role][c] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.clients[role][c]; !ok {
			return
		}
		delete(h.clients[role], c)
		close(c.send)
		if len(h.clients[role]) == 0 {
			delete(h.clients, role)
		}
	}

	return c, cleanup
}

// Broadcast sends an event to every connection of one role.
func (h *Hub) Broadcast(role Role, event string, data any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[role] {
		select {
		case c.send <- Envelope{Event: event, Data: data}:
		default:
			// Skip clients with a full buffer; no retry, no queuing.
		}
	}
}

// BroadcastAll sends an event to every connection of every role.
func (h *Hub) BroadcastAll(event string, data any) {
	h.Broadcast(RoleDevice, event, data)
	h.Broadcast(RoleMonitor, event, data)
}

// Send pushes an event to a single connection, used to synchronize a
// late-joining device with the current mode.
func (h *Hub) Send(c *Client, event string, data any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[c.Role][c]; !ok {
		return
	}
	select {
	case c.send <- Envelope{Event: event, Data: data}:
	default:
	}
}

// Count returns the number of live connections for a role.
func (h *Hub) Count(role Role) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[role])
}
