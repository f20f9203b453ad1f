package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// EventPublisher is what services need from the hub.
// Services depend on this interface, not on *Hub, so tests can pass a fake.
type EventPublisher interface {
	BroadcastToAll(event Event)
}

// Hub tracks every live connection.
//
// Run serializes register/unregister through channels. A broadcast numbers
// and queues its event under the write lock, so every client sees seq in
// order and a joining client gets exactly the events after its ready frame.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	seq int64 // guarded by mu
	log zerolog.Logger
}

// NewHub creates a hub. Start it with `go hub.Run(ctx)`.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run is the hub's event loop. It returns, closing every connection, once
// ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case <-ctx.Done():
			h.shutdown()
			return
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	client.joinedAt <- h.seq
	h.log.Debug().Str("user_id", client.userID).Int("connections", len(h.clients)).Msg("client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.log.Debug().Str("user_id", client.userID).Int("connections", len(h.clients)).Msg("client disconnected")
	}
}

// BroadcastToAll queues event for every client.
// A client whose buffer is full is too slow to keep up and gets dropped.
func (h *Hub) BroadcastToAll(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	event.Seq = h.seq + 1
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("op", event.Op).Msg("failed to marshal broadcast event")
		return
	}
	h.seq = event.Seq

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			go h.drop(client)
		}
	}
}

// ClientCount is the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// join hands client to Run and returns the seq of the last event sent
// before the client was added. ok is false once the hub has stopped.
func (h *Hub) join(client *Client) (lastSeq int64, ok bool) {
	select {
	case h.register <- client:
		return <-client.joinedAt, true
	case <-h.done:
		return 0, false
	}
}

// drop hands client to Run for removal; a no-op once the hub has stopped.
func (h *Hub) drop(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
	}
	h.clients = make(map[*Client]bool)
	h.log.Info().Msg("hub shut down, all connections closed")
}
