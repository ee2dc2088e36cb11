package order

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/example/restaurant-orders/internal/infrastructure/store"
)

const collection = "orders"

// Store is the typed order collection over the document store. The
// Service is its only writer.
type Store struct {
	docs store.DocumentStore
}

func NewStore(docs store.DocumentStore) *Store {
	return &Store{docs: docs}
}

// Insert assigns a new id and persists the order.
func (s *Store) Insert(ctx context.Context, o *Order) (string, error) {
	o.ID = uuid.New().String()
	if err := s.docs.Put(ctx, collection, o.ID, o); err != nil {
		return "", err
	}
	return o.ID, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*Order, bool, error) {
	doc, ok, err := s.docs.Get(ctx, collection, id)
	if err != nil || !ok {
		return nil, false, err
	}
	var o Order
	if err := json.Unmarshal(doc, &o); err != nil {
		return nil, false, err
	}
	return &o, true, nil
}

func (s *Store) FindByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	docs, err := s.docs.FindByField(ctx, collection, "customerId", customerID)
	if err != nil {
		return nil, err
	}
	return decodeOrders(docs)
}

func (s *Store) FindAll(ctx context.Context) ([]*Order, error) {
	docs, err := s.docs.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	return decodeOrders(docs)
}

// Update replaces the persisted document. Partial-field semantics are
// handled by the Service via read-modify-write; the last write wins.
func (s *Store) Update(ctx context.Context, o *Order) error {
	return s.docs.Put(ctx, collection, o.ID, o)
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	return s.docs.Delete(ctx, collection, id)
}

func decodeOrders(docs []json.RawMessage) ([]*Order, error) {
	orders := make([]*Order, 0, len(docs))
	for _, doc := range docs {
		var o Order
		if err := json.Unmarshal(doc, &o); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}
