package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/restaurant-orders/internal/infrastructure/store"
)

// ============================================
// Category normalization
// ============================================

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"exact lunch", "LUNCH", "LUNCH"},
		{"lowercase dinner", "dinner", "DINNER"},
		{"padded", "  Lunch  ", "LUNCH"},
		{"drinks plural", "Drinks", "DRINK"},
		{"beverages alias", "beverages", "DRINK"},
		{"starter singular", "starter", "STARTERS"},
		{"snacks alias", "Snacks", "STARTERS"},
		{"happy hour", "happy hour", "HAPPY HOUR"},
		{"happy shorthand", "HAPPY", "HAPPY HOUR"},
		{"desserts plural", "desserts", "DESSERT"},
		{"main course", "Main Course", "DINNER"},
		{"mains substring", "mains", "DINNER"},
		{"cold drinks substring", "cold drinks", "DRINK"},
		{"unknown passes through", "brunch special", "BRUNCH SPECIAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.in))
		})
	}
}

// ============================================
// Store CRUD
// ============================================

func newTestStore() *Store {
	return NewStore(store.NewMemoryStore())
}

func TestStore_InsertAndGet(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	item := &Item{Name: "Margherita", Price: 250, Category: "mains", Available: true}
	id, err := s.Insert(ctx, item)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, "DINNER", item.Category)
	assert.False(t, item.CreatedAt.IsZero())

	got, ok, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Margherita", got.Name)
	assert.Equal(t, 250.0, got.Price)
	assert.True(t, got.Available)
}

func TestStore_InsertValidation(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.Insert(ctx, &Item{Price: 100})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = s.Insert(ctx, &Item{Name: "Free Lunch"})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = s.Insert(ctx, &Item{Name: "Weird", Price: -5})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestStore_List(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.Insert(ctx, &Item{Name: "Margherita", Price: 250})
	require.NoError(t, err)
	_, err = s.Insert(ctx, &Item{Name: "Lemonade", Price: 80, Category: "drinks"})
	require.NoError(t, err)

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Margherita", items[0].Name)
	assert.Equal(t, "Lemonade", items[1].Name)
}

func TestStore_Update(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	item := &Item{Name: "Margherita", Price: 250}
	id, err := s.Insert(ctx, item)
	require.NoError(t, err)
	created := item.UpdatedAt

	item.Price = 280
	item.Category = "main"
	require.NoError(t, s.Update(ctx, item))

	got, ok, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 280.0, got.Price)
	assert.Equal(t, "DINNER", got.Category)
	assert.False(t, got.UpdatedAt.Before(created))
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, &Item{Name: "Margherita", Price: 250})
	require.NoError(t, err)

	ok, err := s.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, found, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)

	ok, err = s.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}
