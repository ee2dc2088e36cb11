package menu

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/restaurant-orders/internal/infrastructure/store"
)

const collection = "menu_items"

var (
	ErrItemNotFound = errors.New("menu item not found")
	ErrInvalidItem  = errors.New("menu item requires a name and a price")
)

// Item is a dish or drink on the menu. ImageURL points at externally
// hosted media; uploads are not handled here.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Catalog is the read/write surface handlers and the order service use.
// Store implements it directly; Cache decorates it with Redis.
type Catalog interface {
	Insert(ctx context.Context, item *Item) (string, error)
	Get(ctx context.Context, id string) (*Item, bool, error)
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) (bool, error)
}

// NormalizeCategory maps free-form category input onto the fixed set the
// frontend renders: LUNCH, DINNER, DRINK, STARTERS, HAPPY HOUR, DESSERT.
func NormalizeCategory(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	aliases := map[string]string{
		"LUNCH":       "LUNCH",
		"DINNER":      "DINNER",
		"DRINK":       "DRINK",
		"DRINKS":      "DRINK",
		"BEVERAGE":    "DRINK",
		"BEVERAGES":   "DRINK",
		"STARTER":     "STARTERS",
		"STARTERS":    "STARTERS",
		"SNACK":       "STARTERS",
		"SNACKS":      "STARTERS",
		"HAPPY HOUR":  "HAPPY HOUR",
		"HAPPY":       "HAPPY HOUR",
		"DESSERT":     "DESSERT",
		"DESSERTS":    "DESSERT",
		"MAIN COURSE": "DINNER",
		"MAIN":        "DINNER",
	}
	if mapped, ok := aliases[s]; ok {
		return mapped
	}

	switch {
	case strings.Contains(s, "DRINK") || strings.Contains(s, "BEVERAGE"):
		return "DRINK"
	case strings.Contains(s, "START") || strings.Contains(s, "SNACK"):
		return "STARTERS"
	case strings.Contains(s, "HAPPY"):
		return "HAPPY HOUR"
	case strings.Contains(s, "DESSERT"):
		return "DESSERT"
	case strings.Contains(s, "LUNCH"):
		return "LUNCH"
	case strings.Contains(s, "DINNER") || strings.Contains(s, "MAIN"):
		return "DINNER"
	}
	return s
}

// Store is the typed menu collection over the document store.
type Store struct {
	docs store.DocumentStore
}

func NewStore(docs store.DocumentStore) *Store {
	return &Store{docs: docs}
}

func (s *Store) Insert(ctx context.Context, item *Item) (string, error) {
	if item.Name == "" || item.Price <= 0 {
		return "", ErrInvalidItem
	}
	item.ID = uuid.New().String()
	item.Category = NormalizeCategory(item.Category)
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := s.docs.Put(ctx, collection, item.ID, item); err != nil {
		return "", err
	}
	return item.ID, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Item, bool, error) {
	doc, ok, err := s.docs.Get(ctx, collection, id)
	if err != nil || !ok {
		return nil, false, err
	}
	var item Item
	if err := json.Unmarshal(doc, &item); err != nil {
		return nil, false, err
	}
	return &item, true, nil
}

func (s *Store) List(ctx context.Context) ([]*Item, error) {
	docs, err := s.docs.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	items := make([]*Item, 0, len(docs))
	for _, doc := range docs {
		var item Item
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}

func (s *Store) Update(ctx context.Context, item *Item) error {
	item.Category = NormalizeCategory(item.Category)
	item.UpdatedAt = time.Now().UTC()
	return s.docs.Put(ctx, collection, item.ID, item)
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	return s.docs.Delete(ctx, collection, id)
}
