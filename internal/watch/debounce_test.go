package watch_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/metrostudio/core/internal/watch"
)

func TestDebouncerCoalescesRapidTriggers(t *testing.T) {
	d := watch.NewDebouncer(50 * time.Millisecond)

	var callCount atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { callCount.Add(1) })
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if count := callCount.Load(); count != 1 {
		t.Errorf("expected 1 callback invocation, got %d", count)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := watch.NewDebouncer(50 * time.Millisecond)

	var called atomic.Bool
	d.Trigger(func() { called.Store(true) })
	d.Cancel()
	time.Sleep(100 * time.Millisecond)

	if called.Load() {
		t.Error("callback should not have been invoked after cancel")
	}
}

func TestDebouncerDefaultDuration(t *testing.T) {
	d := watch.NewDebouncer(0)
	if d.Duration() != watch.DefaultDebounceDuration {
		t.Errorf("expected default duration %v, got %v", watch.DefaultDebounceDuration, d.Duration())
	}
}
