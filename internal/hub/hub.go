// Package hub is the real-time fan-out channel server. Clients connect
// over a WebSocket, join per-order channels, and receive status and
// update events pushed by the order service. Membership lives and dies
// with the connection; nothing is queued for absent subscribers.
package hub

import (
	"encoding/json"
	"log"
	"sync"
)

// Message is the wire envelope in both directions.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub owns the channel-membership map. It is constructed once at process
// start and handed to everything that publishes; membership mutations and
// fan-out reads interleave freely, so every access goes through mu.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	channels map[string]map[*Client]struct{}
}

func New() *Hub {
	return &Hub{
		clients:  make(map[*Client]struct{}),
		channels: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// remove drops the connection from every channel it joined. Called once
// on disconnect.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for name, members := range h.channels {
		delete(members, c)
		if len(members) == 0 {
			delete(h.channels, name)
		}
	}
	close(c.send)
}

// subscribe adds the connection to the named channel. Idempotent.
func (h *Hub) subscribe(c *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*Client]struct{})
	}
	h.channels[channel][c] = struct{}{}
}

// PublishToOrder delivers the event to every member of the order's
// channel. A channel with no members drops the event silently.
func (h *Hub) PublishToOrder(orderID, event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		log.Printf("[Hub] Failed to encode %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.channels[orderID] {
		c.enqueue(data)
	}
}

// Broadcast delivers the event to every connected client.
func (h *Hub) Broadcast(event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		log.Printf("[Hub] Failed to encode %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.enqueue(data)
	}
}

func encode(event string, payload any) ([]byte, error) {
	msg := Message{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Data = data
	}
	return json.Marshal(msg)
}
