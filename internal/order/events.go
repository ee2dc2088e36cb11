package order

import (
	"encoding/json"
	"time"
)

// WebSocket events pushed through the notification hub.
const (
	// EventStatusUpdated goes to the order's own channel.
	EventStatusUpdated = "order_status_updated"
	// EventUpdated goes to the order's own channel with the applied delta.
	EventUpdated = "order_updated"
	// EventListChanged is the global refresh signal for admin dashboards.
	EventListChanged = "orderUpdated"
)

// Kafka event types mirrored for the notifier service.
const (
	EventTypePlaced        = "order_placed"
	EventTypeStatusUpdated = "order_status_updated"
	EventTypeDeleted       = "order_deleted"
)

// Event is the envelope written to the order events topic.
type Event struct {
	Type    string          `json:"type"`
	OrderID string          `json:"orderId"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type PlacedEvent struct {
	OrderID     string    `json:"orderId"`
	CustomerID  string    `json:"customerId"`
	Items       []Item    `json:"items"`
	TotalAmount float64   `json:"totalAmount"`
	PlacedAt    time.Time `json:"placedAt"`
}

type StatusUpdatedEvent struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
	Status     Status `json:"status"`
}

type DeletedEvent struct {
	OrderID string `json:"orderId"`
}
