package order

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/example/restaurant-orders/internal/menu"
	"github.com/example/restaurant-orders/internal/user"
)

// Publisher pushes real-time events to connected clients. Delivery is
// best-effort: the hub logs failures and never reports them back here.
type Publisher interface {
	// PublishToOrder delivers to every connection subscribed to the
	// order's channel.
	PublishToOrder(orderID, event string, payload any)
	// Broadcast delivers to every connected client.
	Broadcast(event string, payload any)
}

// EventSink mirrors order events onto a durable topic for downstream
// consumers (the email notifier). May be nil.
type EventSink interface {
	Publish(ctx context.Context, key string, event any) error
}

// Service executes order lifecycle operations against the store and
// fans notifications out after each committed change. The store write is
// authoritative; notification failures never roll it back.
type Service struct {
	store  *Store
	menus  menu.Catalog
	users  *user.Store
	pub    Publisher
	events EventSink
}

func NewService(store *Store, menus menu.Catalog, users *user.Store, pub Publisher, events EventSink) *Service {
	return &Service{store: store, menus: menus, users: users, pub: pub, events: events}
}

// Create places a new order for the customer. No real-time event is
// emitted: a just-created order has no subscribers yet.
func (s *Service) Create(ctx context.Context, customerID string, items []Item, totalAmount float64, address Address) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	if totalAmount < 0 {
		return nil, ErrInvalidAmount
	}

	o := &Order{
		CustomerID:    customerID,
		Items:         items,
		TotalAmount:   totalAmount,
		PaymentStatus: PaymentPending,
		OrderStatus:   StatusPlaced,
		Address:       address,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.store.Insert(ctx, o); err != nil {
		return nil, err
	}

	s.emit(ctx, o.ID, EventTypePlaced, PlacedEvent{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		Items:       o.Items,
		TotalAmount: o.TotalAmount,
		PlacedAt:    o.CreatedAt,
	})
	return o, nil
}

// ListForCustomer returns the customer's orders with menu item references
// resolved for display.
func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]*View, error) {
	orders, err := s.store.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, orders, false)
}

// ListAll returns every order with menu item and customer references
// resolved for the admin dashboard.
func (s *Service) ListAll(ctx context.Context) ([]*View, error) {
	orders, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, orders, true)
}

// SetStatus updates the fulfillment status. Any valid status value is
// accepted regardless of the current one: admins may freely correct
// mistakes, so the pipeline in nextStatuses is advisory only.
func (s *Service) SetStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, ok, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderNotFound
	}

	if o.OrderStatus != status && !o.OrderStatus.CanTransitionTo(status) {
		log.Printf("[Order] Unconventional status change for order %s: %s -> %s", orderID, o.OrderStatus, status)
	}

	o.OrderStatus = status
	if err := s.store.Update(ctx, o); err != nil {
		return nil, err
	}

	s.pub.PublishToOrder(orderID, EventStatusUpdated, map[string]any{
		"orderId": orderID,
		"status":  status,
	})
	s.pub.Broadcast(EventListChanged, nil)

	s.emit(ctx, orderID, EventTypeStatusUpdated, StatusUpdatedEvent{
		OrderID:    orderID,
		CustomerID: o.CustomerID,
		Status:     status,
	})
	return o, nil
}

// updatableFields is the admin-editable subset of an order. Anything else
// in an update request is dropped without error.
var updatableFields = map[string]struct{}{
	"totalAmount":   {},
	"items":         {},
	"paymentStatus": {},
	"orderStatus":   {},
	"address":       {},
}

// UpdateFields applies a partial admin update. It returns the updated
// order plus the delta that was actually applied, which is what goes out
// on the order's channel.
func (s *Service) UpdateFields(ctx context.Context, orderID string, updates map[string]json.RawMessage) (*Order, map[string]json.RawMessage, error) {
	o, ok, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrOrderNotFound
	}

	applied := make(map[string]json.RawMessage)
	for field, value := range updates {
		if _, allowed := updatableFields[field]; !allowed {
			continue
		}
		if err := applyField(o, field, value); err != nil {
			return nil, nil, err
		}
		applied[field] = value
	}

	if err := s.store.Update(ctx, o); err != nil {
		return nil, nil, err
	}

	s.pub.PublishToOrder(orderID, EventUpdated, map[string]any{
		"orderId": orderID,
		"updates": applied,
	})
	s.pub.Broadcast(EventListChanged, nil)
	return o, applied, nil
}

// Delete hard-deletes the order. Only the global refresh signal goes out;
// the order's own channel no longer has meaning.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	existed, err := s.store.Delete(ctx, orderID)
	if err != nil {
		return err
	}
	if !existed {
		return ErrOrderNotFound
	}

	s.pub.Broadcast(EventListChanged, nil)
	s.emit(ctx, orderID, EventTypeDeleted, DeletedEvent{OrderID: orderID})
	return nil
}

func applyField(o *Order, field string, value json.RawMessage) error {
	switch field {
	case "totalAmount":
		var amount float64
		if err := json.Unmarshal(value, &amount); err != nil {
			return ErrInvalidAmount
		}
		if amount < 0 {
			return ErrInvalidAmount
		}
		o.TotalAmount = amount
	case "items":
		var items []Item
		if err := json.Unmarshal(value, &items); err != nil || len(items) == 0 {
			return ErrEmptyOrder
		}
		for _, item := range items {
			if item.Quantity <= 0 {
				return ErrInvalidQuantity
			}
		}
		o.Items = items
	case "paymentStatus":
		var status PaymentStatus
		if err := json.Unmarshal(value, &status); err != nil || !status.Valid() {
			return ErrInvalidPayStatus
		}
		o.PaymentStatus = status
	case "orderStatus":
		var status Status
		if err := json.Unmarshal(value, &status); err != nil || !status.Valid() {
			return ErrInvalidStatus
		}
		o.OrderStatus = status
	case "address":
		var address Address
		if err := json.Unmarshal(value, &address); err != nil {
			return err
		}
		o.Address = address
	}
	return nil
}

// emit mirrors an event onto the durable topic, best-effort.
func (s *Service) emit(ctx context.Context, orderID, eventType string, payload any) {
	if s.events == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Order] Failed to marshal %s event for order %s: %v", eventType, orderID, err)
		return
	}
	event := Event{Type: eventType, OrderID: orderID, Data: data}
	if err := s.events.Publish(ctx, orderID, event); err != nil {
		log.Printf("[Order] Failed to publish %s event for order %s: %v", eventType, orderID, err)
	}
}
