// Package docstore is the document store adapter: it owns the connection lifecycle and
// hands out collection handles for users, events, guests and reminders.
package docstore

import (
	"context"
	"errors"
)

// Collection names, one database namespace.
const (
	Users     = "users"
	Events    = "events"
	Guests    = "guests"
	Reminders = "reminders"
)

// KeyID is the store-assigned record identifier present on every document read back.
const KeyID = "_id"

var (
	// ErrNoDocuments is returned by FindOne when nothing matches.
	ErrNoDocuments = errors.New("docstore: no documents in result")
	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("docstore: duplicate key")
)

// Document is a schema-less record. Nested documents are map[string]any and arrays []any.
type Document = map[string]any

// Filter matches documents whose top-level fields equal every given value.
type Filter = map[string]any

// Collection is one named set of documents.
type Collection interface {
	// Find returns matching documents in insertion order. limit <= 0 means no cap.
	Find(ctx context.Context, filter Filter, limit int) ([]Document, error)
	FindOne(ctx context.Context, filter Filter) (Document, error)
	InsertOne(ctx context.Context, doc Document) error
	// UpdateOne overwrites the given fields of the first matching document and
	// reports how many documents matched (0 or 1).
	UpdateOne(ctx context.Context, filter Filter, set Document) (int64, error)
	// DeleteOne removes the first matching document and reports how many were removed.
	DeleteOne(ctx context.Context, filter Filter) (int64, error)
}

// Store is a connected document database.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	// Backend names the driver in use ("mongo", "postgres", "sqlite", "unavailable").
	Backend() string
}

// Indexer is implemented by stores that can create secondary indexes.
type Indexer interface {
	EnsureIndexes(ctx context.Context) error
}
