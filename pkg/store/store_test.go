package store

import (
	"context"
	"testing"

	"github.com/forcelay/forcelay/pkg/errors"
	"github.com/forcelay/forcelay/pkg/graph"
)

func testLayout() graph.Layout {
	return graph.Layout{
		Algorithm: "spring",
		Dim:       2,
		Seed:      42,
		Positions: map[string][]float64{
			"a": {0.5, -0.5},
			"b": {-0.5, 0.5},
		},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec, err := s.Save(ctx, "hash123", testLayout())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Save should assign an ID")
	}
	if rec.GraphHash != "hash123" {
		t.Errorf("GraphHash = %s, want hash123", rec.GraphHash)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Layout.Algorithm != "spring" {
		t.Errorf("Layout.Algorithm = %s, want spring", got.Layout.Algorithm)
	}
	if len(got.Layout.Positions) != 2 {
		t.Errorf("got %d positions, want 2", len(got.Layout.Positions))
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	if err == nil {
		t.Fatal("expected error for missing record")
	}
	if !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("got code %s, want LAYOUT_NOT_FOUND", errors.GetCode(err))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec, err := s.Save(ctx, "hash", testLayout())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); err == nil {
		t.Error("deleted record should not be found")
	}

	// Deleting a missing record is not an error
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestSaveAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, _ := s.Save(ctx, "hash", testLayout())
	b, _ := s.Save(ctx, "hash", testLayout())
	if a.ID == b.ID {
		t.Error("records should get distinct IDs")
	}
}
