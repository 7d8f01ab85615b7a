package watch_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/metrostudio/core/internal/watch"
)

func TestWatcherDetectsFileChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write initial file: %v", err)
	}

	var changes atomic.Int32
	w, err := watch.New(path,
		watch.WithDebounceDuration(20*time.Millisecond),
		watch.WithPollInterval(20*time.Millisecond),
		watch.WithOnChange(func() { changes.Add(1) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(30 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"changed":true}`), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for changes.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if changes.Load() == 0 {
		t.Fatal("expected at least one change notification")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write initial file: %v", err)
	}
	w, err := watch.New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop()
}
