package store

import (
	"context"
	"sync"

	"github.com/forcelay/forcelay/pkg/graph"
)

// MemoryStore keeps layout records in process memory. It backs tests and
// server instances running without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Save stores a layout and returns the record with its generated ID.
func (s *MemoryStore) Save(ctx context.Context, graphHash string, l graph.Layout) (*Record, error) {
	rec := newRecord(graphHash, l)
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	return rec, nil
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return rec, nil
}

// Delete removes a record by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.records, id)
	s.mu.Unlock()
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements LayoutStore.
var _ LayoutStore = (*MemoryStore)(nil)
