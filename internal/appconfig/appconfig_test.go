package appconfig_test

import (
	"path/filepath"
	"testing"

	"github.com/metrostudio/core/internal/appconfig"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := appconfig.LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	want := appconfig.DefaultConfig()
	if cfg.OutputFormat != want.OutputFormat || cfg.LogLevel != want.LogLevel || cfg.MaxRecent != want.MaxRecent {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := appconfig.DefaultConfig()
	cfg.OutputFormat = "xml"
	cfg.Touch("/projects/metro.json", "2026-01-01T00:00:00Z")

	if err := appconfig.SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := appconfig.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.OutputFormat != "xml" {
		t.Fatalf("expected output format to round-trip, got %q", got.OutputFormat)
	}
	if len(got.Recent) != 1 || got.Recent[0].Path != "/projects/metro.json" {
		t.Fatalf("expected recent project to round-trip, got %+v", got.Recent)
	}
}

func TestTouchMovesExistingEntryToFront(t *testing.T) {
	cfg := appconfig.DefaultConfig()
	cfg.Touch("/a.json", "t1")
	cfg.Touch("/b.json", "t2")
	cfg.Touch("/a.json", "t3")

	if len(cfg.Recent) != 2 {
		t.Fatalf("expected touching an existing path not to duplicate it, got %+v", cfg.Recent)
	}
	if cfg.Recent[0].Path != "/a.json" || cfg.Recent[0].OpenedAt != "t3" {
		t.Fatalf("expected re-touched project to move to front with updated timestamp, got %+v", cfg.Recent[0])
	}
}

func TestTouchTrimsToMaxRecent(t *testing.T) {
	cfg := appconfig.DefaultConfig()
	cfg.MaxRecent = 2
	cfg.Touch("/a.json", "t1")
	cfg.Touch("/b.json", "t2")
	cfg.Touch("/c.json", "t3")

	if len(cfg.Recent) != 2 {
		t.Fatalf("expected recent list trimmed to MaxRecent=2, got %d entries", len(cfg.Recent))
	}
	if cfg.Recent[0].Path != "/c.json" || cfg.Recent[1].Path != "/b.json" {
		t.Fatalf("expected [c, b] after trimming oldest, got %+v", cfg.Recent)
	}
}

func TestHasRecentIsCaseInsensitive(t *testing.T) {
	cfg := appconfig.DefaultConfig()
	cfg.Touch("/Projects/Metro.json", "t1")
	if !cfg.HasRecent("/projects/metro.json") {
		t.Fatal("expected HasRecent to match case-insensitively")
	}
}
