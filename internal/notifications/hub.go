// Package notifications provides real-time notification delivery over WebSockets.
package notifications

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"

	"foodgram/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerUser = 8
	maxTotalConns   = 10000
)

// Hub tracks live websocket connections per user. A user may hold several
// connections at once (multiple tabs or devices), each capped.
type Hub struct {
	mu         sync.RWMutex
	byUser     map[uint]map[*Client]struct{}
	totalConns int
	shutdown   chan struct{}
	done       chan struct{}
}

// NewHub creates an empty connection registry.
func NewHub() *Hub {
	return &Hub{
		byUser:   make(map[uint]map[*Client]struct{}),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "notification hub" }

// Register adds a connection for userID, enforcing the per-user and global caps.
func (h *Hub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	set, ok := h.byUser[userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.byUser[userID] = set
	}
	if len(set) >= maxConnsPerUser {
		return nil, errors.New("user connection limit reached")
	}

	client := NewClient(h, conn, userID)
	set[client] = struct{}{}
	h.totalConns++
	observability.WebSocketConnectionsTotal.Inc()

	return client, nil
}

// UnregisterClient removes a client from the hub.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.byUser[client.UserID]
	if !ok {
		return
	}
	if _, exists := set[client]; exists {
		delete(set, client)
		h.totalConns--
		observability.WebSocketConnectionsTotal.Dec()
	}
	if len(set) == 0 {
		delete(h.byUser, client.UserID)
	}
}

// Broadcast delivers message to every connection held by userID.
func (h *Hub) Broadcast(userID uint, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for c := range h.byUser[userID] {
		c.TrySend(data)
	}
}

// BroadcastAll delivers message to every connected client.
func (h *Hub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for _, set := range h.byUser {
		for c := range set {
			c.TrySend(data)
		}
	}
}

// IsOnline reports whether a user currently has at least one active websocket connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID]) > 0
}

// StartWiring subscribes the hub to the notifier's Redis channels and routes
// each message to the owning user's connections, or to everyone for broadcasts.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		if channel == broadcastChannel {
			h.BroadcastAll(payload)
			return
		}
		raw, ok := strings.CutPrefix(channel, userChannelPrefix)
		if !ok {
			log.Printf("invalid notification channel: %s", channel)
			return
		}
		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Printf("invalid notification channel: %s", channel)
			return
		}
		h.Broadcast(uint(userID), payload)
	})
}

// Shutdown sends a close frame to every connection and clears the registry.
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	for userID, set := range h.byUser {
		for client := range set {
			if client.Conn == nil {
				continue
			}
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				log.Printf("failed to write close message for user %d: %v", userID, err)
			}
			if err := client.Conn.Close(); err != nil {
				log.Printf("failed to close websocket for user %d: %v", userID, err)
			}
		}
	}
	h.byUser = make(map[uint]map[*Client]struct{})
	h.totalConns = 0
	h.mu.Unlock()

	close(h.done)

	return nil
}
