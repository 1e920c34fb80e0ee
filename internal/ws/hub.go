package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// PresenceNotifier mirrors online/offline transitions into an external
// store for REST presence queries. The in-memory registry stays
// authoritative for event delivery; mirror failures are logged only.
type PresenceNotifier interface {
	UserOnline(ctx context.Context, userID string) error
	UserOffline(ctx context.Context, userID string) error
}

// Hub owns the connection registry and fans live events out to sockets.
// One hub per process; every component that needs relay or presence holds a
// reference to it rather than a package-level global.
type Hub struct {
	registry *ConnectionRegistry

	// clients by connection id, maintained by the run loop
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client

	presence PresenceNotifier

	ctx    context.Context
	cancel context.CancelFunc

	mu sync.RWMutex
}

func NewHub(presence PresenceNotifier) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		registry:   NewConnectionRegistry(),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		presence:   presence,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (h *Hub) Registry() *ConnectionRegistry {
	return h.registry
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-h.ctx.Done():
			slog.Info("websocket hub shutting down")
			return
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

// Register hands a new connection to the run loop and starts its pumps.
func (h *Hub) Register(client *Client) {
	h.register <- client
	go client.writePump()
	go client.readPump()
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()

	h.registry.Register(client.userID, client.id)
	slog.Info("client registered", "connectionId", client.id, "userId", client.userID)

	if h.presence != nil {
		if err := h.presence.UserOnline(h.ctx, client.userID); err != nil {
			slog.Error("failed to mirror user online", "userId", client.userID, "error", err)
		}
	}

	h.broadcastOnlineUsers()
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	_, known := h.clients[client.id]
	if known {
		delete(h.clients, client.id)
	}
	h.mu.Unlock()
	if !known {
		return
	}

	h.registry.Unregister(client.userID, client.id)
	client.closeSend()
	slog.Info("client unregistered", "connectionId", client.id, "userId", client.userID)

	if h.presence != nil && !h.registry.IsOnline(client.userID) {
		if err := h.presence.UserOffline(h.ctx, client.userID); err != nil {
			slog.Error("failed to mirror user offline", "userId", client.userID, "error", err)
		}
	}

	h.broadcastOnlineUsers()
}

// broadcastOnlineUsers pushes the full online snapshot to every connection
// after each connect or disconnect.
func (h *Hub) broadcastOnlineUsers() {
	if err := h.Broadcast(OnlineUsersEvent(h.registry.OnlineUserIDs())); err != nil {
		slog.Error("failed to broadcast online users", "error", err)
	}
}

// Emit delivers an event to every live connection of one user. A user with
// no connections is a silent no-op: there is no queue and no retry, clients
// resync from the store on their next fetch. A failed send on one
// connection never blocks delivery to the others.
func (h *Hub) Emit(userID string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	for _, connID := range h.registry.ConnectionsFor(userID) {
		h.mu.RLock()
		client := h.clients[connID]
		h.mu.RUnlock()
		if client == nil {
			continue
		}
		if err := client.enqueue(data); err != nil {
			slog.Warn("dropping event for slow connection", "connectionId", connID, "type", event.Type)
		}
	}
	return nil
}

// Broadcast delivers an event to every connection across all users.
func (h *Hub) Broadcast(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.enqueue(data); err != nil {
			slog.Warn("dropping broadcast for slow connection", "connectionId", client.id, "type", event.Type)
		}
	}
	return nil
}
