package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-memory DocumentStore used for tests and local
// development. Collections keep insertion order so listings are stable.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]map[string]json.RawMessage // collection -> id -> doc
	order map[string][]string                   // collection -> ids in insertion order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:  make(map[string]map[string]json.RawMessage),
		order: make(map[string][]string),
	}
}

func (ms *MemoryStore) Put(ctx context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.docs[collection] == nil {
		ms.docs[collection] = make(map[string]json.RawMessage)
	}
	if _, exists := ms.docs[collection][id]; !exists {
		ms.order[collection] = append(ms.order[collection], id)
	}
	ms.docs[collection][id] = data
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, collection, id string) (json.RawMessage, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	doc, ok := ms.docs[collection][id]
	return doc, ok, nil
}

func (ms *MemoryStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	ids := ms.order[collection]
	docs := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, ms.docs[collection][id])
	}
	return docs, nil
}

func (ms *MemoryStore) FindByField(ctx context.Context, collection, field, value string) ([]json.RawMessage, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var docs []json.RawMessage
	for _, id := range ms.order[collection] {
		doc := ms.docs[collection][id]
		var fields map[string]any
		if err := json.Unmarshal(doc, &fields); err != nil {
			continue
		}
		if s, ok := fields[field].(string); ok && s == value {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.docs[collection][id]; !ok {
		return false, nil
	}
	delete(ms.docs[collection], id)

	ids := ms.order[collection]
	for i, existing := range ids {
		if existing == id {
			ms.order[collection] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return true, nil
}
