package websocket

import (
	"log/slog"
	"sync"
)

// Hub - live connections and the named groups they belong to.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client
	groups  map[string]map[string]*Client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]*Client),
		groups:  make(map[string]map[string]*Client),
	}
}

// Send - queues a message for one connection. Unknown connections are ignored.
func (that *Hub) Send(connID, action string, payload any) {
	data, err := encodeMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "action", action, "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	if client, ok := that.clients[connID]; ok {
		that.deliver(client, data)
	}
}

// Broadcast - queues the same encoded message for every member of group.
func (that *Hub) Broadcast(group, action string, payload any) {
	data, err := encodeMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "action", action, "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, client := range that.groups[group] {
		that.deliver(client, data)
	}
}

func (that *Hub) Join(connID, group string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	client, ok := that.clients[connID]
	if !ok {
		return
	}

	if that.groups[group] == nil {
		that.groups[group] = make(map[string]*Client)
	}

	that.groups[group][connID] = client
}

func (that *Hub) Leave(connID, group string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.leave(connID, group)
}

func (that *Hub) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

// Close - drops every connection. Their read loops run the usual disconnect path.
func (that *Hub) Close() {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, client := range that.clients {
		_ = client.conn.Close()
	}
}

func (that *Hub) register(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[client.id] = client
}

func (that *Hub) unregister(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.clients[client.id] != client {
		return
	}

	delete(that.clients, client.id)

	for group := range that.groups {
		that.leave(client.id, group)
	}

	client.closeSend()
}

// leave - must be called with mu held.
func (that *Hub) leave(connID, group string) {
	members, ok := that.groups[group]
	if !ok {
		return
	}

	delete(members, connID)

	if len(members) == 0 {
		delete(that.groups, group)
	}
}

// deliver - a client that cannot keep up is disconnected rather than fed stale state.
func (that *Hub) deliver(client *Client, data []byte) {
	if client.enqueue(data) {
		return
	}

	that.logger.Warn("send buffer full, closing connection", "conn_id", client.id)
	_ = client.conn.Close()
}
