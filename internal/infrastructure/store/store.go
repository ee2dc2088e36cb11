package store

import (
	"context"
	"encoding/json"
)

// DocumentStore is a collection-oriented document database. Documents are
// schemaless JSON keyed by (collection, id); typed access lives with the
// domain packages that wrap it.
type DocumentStore interface {
	// Put inserts or fully replaces the document under (collection, id).
	Put(ctx context.Context, collection, id string, doc any) error

	// Get retrieves a document by id. The second return is false when no
	// document exists.
	Get(ctx context.Context, collection, id string) (json.RawMessage, bool, error)

	// List retrieves every document in a collection, in storage order.
	List(ctx context.Context, collection string) ([]json.RawMessage, error)

	// FindByField retrieves documents whose top-level string field equals
	// the given value.
	FindByField(ctx context.Context, collection, field, value string) ([]json.RawMessage, error)

	// Delete removes a document. Returns true if a document existed.
	Delete(ctx context.Context, collection, id string) (bool, error)
}
