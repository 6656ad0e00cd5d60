// Package store persists uploaded JSON documents for the serve mode.
//
// Documents are stored with their raw bytes so re-analysis always works
// from the exact content the client uploaded. Two backends implement
// the [Store] interface:
//   - MemoryStore: in-process storage, the serve default
//   - MongoStore: MongoDB-backed storage for durable deployments
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/jsonlens/pkg/errors"
)

// Document is a stored JSON document.
type Document struct {
	// ID is a UUID assigned on insert.
	ID string `json:"id" bson:"_id"`

	// Name is a client-supplied label, e.g. a filename.
	Name string `json:"name" bson:"name"`

	// Content holds the raw JSON bytes as uploaded.
	Content []byte `json:"content" bson:"content"`

	// Hash is the SHA-256 content hash, shared with the cache layer.
	Hash string `json:"hash" bson:"hash"`

	// CreatedAt is the insert time in UTC.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for document backends.
type Store interface {
	// Put inserts a document and returns it with ID and timestamps set.
	Put(ctx context.Context, name string, content []byte, hash string) (*Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns stored documents ordered by creation time, newest
	// first. Content is omitted to keep listings small.
	List(ctx context.Context) ([]*Document, error)

	// Delete removes a document by ID.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// newID returns a fresh document ID.
func newID() string {
	return uuid.NewString()
}

// notFound builds the standard missing-document error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeDocumentNotFound, "document not found: %s", id)
}
