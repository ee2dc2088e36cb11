package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
	Value int    `json:"value"`
}

func TestMemoryStore_PutAndGet(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	err := ms.Put(ctx, "docs", "d1", testDoc{ID: "d1", Owner: "alice", Value: 1})
	require.NoError(t, err)

	raw, ok, err := ms.Get(ctx, "docs", "d1")
	require.NoError(t, err)
	require.True(t, ok)

	var doc testDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "alice", doc.Owner)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	ms := NewMemoryStore()

	_, ok, err := ms.Get(context.Background(), "docs", "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, ms.Put(ctx, "docs", "d1", testDoc{ID: "d1", Value: 1}))
	require.NoError(t, ms.Put(ctx, "docs", "d1", testDoc{ID: "d1", Value: 2}))

	raw, ok, err := ms.Get(ctx, "docs", "d1")
	require.NoError(t, err)
	require.True(t, ok)

	var doc testDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 2, doc.Value)

	// Overwrite does not duplicate the listing entry
	docs, err := ms.List(ctx, "docs")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestMemoryStore_ListPreservesInsertionOrder(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("d%d", i)
		require.NoError(t, ms.Put(ctx, "docs", id, testDoc{ID: id, Value: i}))
	}

	docs, err := ms.List(ctx, "docs")
	require.NoError(t, err)
	require.Len(t, docs, 5)

	for i, raw := range docs {
		var doc testDoc
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, fmt.Sprintf("d%d", i), doc.ID)
	}
}

func TestMemoryStore_CollectionsAreIsolated(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, ms.Put(ctx, "orders", "d1", testDoc{ID: "d1"}))
	require.NoError(t, ms.Put(ctx, "menu_items", "d1", testDoc{ID: "d1"}))

	ok, err := ms.Delete(ctx, "orders", "d1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = ms.Get(ctx, "menu_items", "d1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_FindByField(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, ms.Put(ctx, "docs", "d1", testDoc{ID: "d1", Owner: "alice"}))
	require.NoError(t, ms.Put(ctx, "docs", "d2", testDoc{ID: "d2", Owner: "bob"}))
	require.NoError(t, ms.Put(ctx, "docs", "d3", testDoc{ID: "d3", Owner: "alice"}))

	docs, err := ms.FindByField(ctx, "docs", "owner", "alice")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	for _, raw := range docs {
		var doc testDoc
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, "alice", doc.Owner)
	}

	docs, err = ms.FindByField(ctx, "docs", "owner", "carol")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStore_Delete(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, ms.Put(ctx, "docs", "d1", testDoc{ID: "d1"}))

	ok, err := ms.Delete(ctx, "docs", "d1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Second delete reports the document is already gone
	ok, err = ms.Delete(ctx, "docs", "d1")
	require.NoError(t, err)
	assert.False(t, ok)

	docs, err := ms.List(ctx, "docs")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("d%d", n)
			_ = ms.Put(ctx, "docs", id, testDoc{ID: id, Value: n})
			_, _, _ = ms.Get(ctx, "docs", id)
			_, _ = ms.List(ctx, "docs")
		}(i)
	}
	wg.Wait()

	docs, err := ms.List(ctx, "docs")
	require.NoError(t, err)
	assert.Len(t, docs, 20)
}
