// Package store persists computed layouts so that API clients can fetch
// them later by ID.
//
// Two implementations are provided: MongoStore for server deployments and
// MemoryStore for tests and single-process usage. Both hand out records
// identified by UUIDs generated at save time.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forcelay/forcelay/pkg/errors"
	"github.com/forcelay/forcelay/pkg/graph"
)

// Record is a stored layout together with its identity and provenance.
type Record struct {
	ID        string       `json:"id" bson:"_id"`
	GraphHash string       `json:"graph_hash" bson:"graph_hash"`
	Layout    graph.Layout `json:"layout" bson:"layout"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}

// LayoutStore persists layout records.
type LayoutStore interface {
	// Save stores a layout and returns the record with its generated ID.
	Save(ctx context.Context, graphHash string, l graph.Layout) (*Record, error)

	// Get retrieves a record by ID. Returns an error with code
	// LAYOUT_NOT_FOUND when no such record exists.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a record by ID. Deleting a missing record is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close(ctx context.Context) error
}

// newRecord stamps a layout with a fresh UUID and creation time.
func newRecord(graphHash string, l graph.Layout) *Record {
	return &Record{
		ID:        uuid.NewString(),
		GraphHash: graphHash,
		Layout:    l,
		CreatedAt: time.Now().UTC(),
	}
}

// notFound builds the standard missing-record error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
}
