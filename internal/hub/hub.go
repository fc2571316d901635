package hub

import (
	"encoding/json"
	"sync"

	"github.com/ishashanknigam/Peer-Connect/internal/config"
	pkglog "github.com/ishashanknigam/Peer-Connect/pkg/log"
)

// Hub tracks all live WebSocket connections by id. Room membership is
// not kept here; the relay owns it.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	config  config.WebSocketConfig
}

// NewHub creates a new Hub.
func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		config:  cfg,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	pkglog.L().Info().Str(pkglog.FieldClientID, client.ID).Msg("client registered")
}

// Unregister removes a client and closes its send queue. Safe to call
// more than once for the same client.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)
	}
	h.mu.Unlock()
	pkglog.L().Info().Str(pkglog.FieldClientID, client.ID).Msg("client unregistered")
}

// Send delivers a message to one client. Unknown ids are a silent
// drop: the wire protocol has no error-reply channel, so stale targets
// simply receive nothing. A client with a full send buffer is evicted.
func (h *Hub) Send(clientID string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.mu.RLock()
	client, ok := h.clients[clientID]
	h.mu.RUnlock()

	if !ok {
		return nil
	}

	select {
	case client.Send <- data:
	default:
		// Slow consumer; closing the connection makes its read pump
		// exit and run the normal disconnect path.
		go client.Conn.Close()
	}
	return nil
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
