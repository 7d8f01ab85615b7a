package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/metrostudio/core/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.sqlite3")
	s, err := store.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutThenGetRoundTrips(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "proj-1", []byte(`{"id":"proj-1"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, "proj-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"id":"proj-1"}` {
		t.Fatalf("expected stored document to round-trip, got %q", got)
	}
}

func TestGetMissingKeyReturnsErrNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutOverwritesExistingKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "proj-1", []byte("v1")); err != nil {
		t.Fatalf("Put v1: %v", err)
	}
	if err := s.Put(ctx, "proj-1", []byte("v2")); err != nil {
		t.Fatalf("Put v2: %v", err)
	}
	got, err := s.Get(ctx, "proj-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v2" {
		t.Fatalf("expected overwrite to stick, got %q", got)
	}
}

func TestDeleteRemovesKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "proj-1", []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "proj-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "proj-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteMissingKeyIsNotAnError(t *testing.T) {
	s := openTestStore(t)
	if err := s.Delete(context.Background(), "never-existed"); err != nil {
		t.Fatalf("expected deleting a missing key to be a no-op, got %v", err)
	}
}

func TestListOrdersMostRecentlyUpdatedFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	if err := s.Put(ctx, "b", []byte("2")); err != nil {
		t.Fatalf("Put b: %v", err)
	}
	// Re-touch "a" so it becomes the most recently updated.
	if err := s.Put(ctx, "a", []byte("1-updated")); err != nil {
		t.Fatalf("Put a again: %v", err)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" {
		t.Fatalf("expected [a, b] with a most recent, got %v", ids)
	}
}
