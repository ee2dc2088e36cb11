// Package notification turns order events from the durable topic into
// customer emails. It runs in the notifier binary, decoupled from the
// API process.
package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/restaurant-orders/internal/email"
	"github.com/example/restaurant-orders/internal/menu"
	"github.com/example/restaurant-orders/internal/order"
	"github.com/example/restaurant-orders/internal/user"
)

// Handler processes order events for email notifications. Lookup or send
// failures are logged and swallowed: email is best-effort and must never
// wedge the consumer.
type Handler struct {
	emailService *email.Service
	users        *user.Store
	menus        *menu.Store
}

func NewHandler(emailSvc *email.Service, users *user.Store, menus *menu.Store) *Handler {
	return &Handler{emailService: emailSvc, users: users, menus: menus}
}

// HandleEvent processes one event from the topic.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event order.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	switch event.Type {
	case order.EventTypePlaced:
		return h.handlePlaced(ctx, event)
	case order.EventTypeStatusUpdated:
		return h.handleStatusUpdated(ctx, event)
	}
	return nil
}

func (h *Handler) handlePlaced(ctx context.Context, event order.Event) error {
	var e order.PlacedEvent
	if err := json.Unmarshal(event.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal %s event: %v", event.Type, err)
		return err
	}

	to, ok := h.customerEmail(ctx, e.CustomerID)
	if !ok {
		return nil
	}

	lines := make([]email.OrderLine, 0, len(e.Items))
	for _, item := range e.Items {
		name := item.MenuItemID
		if m, ok, _ := h.menus.Get(ctx, item.MenuItemID); ok {
			name = m.Name
		}
		lines = append(lines, email.OrderLine{Name: name, Quantity: item.Quantity})
	}

	if err := h.emailService.SendOrderConfirmation(to, e.OrderID, e.TotalAmount, lines); err != nil {
		log.Printf("[Notifier] Failed to send confirmation for order %s: %v", e.OrderID, err)
		return nil
	}
	log.Printf("[Notifier] Sent confirmation for order %s to %s", e.OrderID, to)
	return nil
}

func (h *Handler) handleStatusUpdated(ctx context.Context, event order.Event) error {
	var e order.StatusUpdatedEvent
	if err := json.Unmarshal(event.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal %s event: %v", event.Type, err)
		return err
	}

	to, ok := h.customerEmail(ctx, e.CustomerID)
	if !ok {
		return nil
	}

	if err := h.emailService.SendStatusUpdate(to, e.OrderID, string(e.Status)); err != nil {
		log.Printf("[Notifier] Failed to send status mail for order %s: %v", e.OrderID, err)
		return nil
	}
	log.Printf("[Notifier] Sent status mail for order %s (%s) to %s", e.OrderID, e.Status, to)
	return nil
}

func (h *Handler) customerEmail(ctx context.Context, customerID string) (string, bool) {
	u, ok, err := h.users.FindByID(ctx, customerID)
	if err != nil {
		log.Printf("[Notifier] Error looking up customer %s: %v", customerID, err)
		return "", false
	}
	if !ok {
		log.Printf("[Notifier] Customer not found: %s", customerID)
		return "", false
	}
	return u.Email, true
}
