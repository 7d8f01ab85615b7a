package optimizer_test

import (
	"testing"
	"time"

	"github.com/metrostudio/core/internal/applog"
	"github.com/metrostudio/core/internal/model"
	"github.com/metrostudio/core/internal/optimizer"
)

func twoStationLine() ([]model.Station, []model.Edge, []model.Line) {
	stations := []model.Station{
		{ID: "A", Lng: 0, Lat: 0, LineIDs: map[string]bool{"L": true}},
		{ID: "B", Lng: 1, Lat: 0, LineIDs: map[string]bool{"L": true}},
	}
	edges := []model.Edge{
		{ID: "e1", FromID: "A", ToID: "B", SharedByLines: map[string]bool{"L": true}},
	}
	lines := []model.Line{{ID: "L", EdgeIDs: []string{"e1"}}}
	return stations, edges, lines
}

func TestOptimizeSimpleLineSucceeds(t *testing.T) {
	stations, edges, lines := twoStationLine()
	resp := optimizer.Optimize(optimizer.OptimizeRequest{
		Stations:  stations,
		Edges:     edges,
		Lines:     lines,
		Config:    model.DefaultLayoutConfig(),
		RequestID: "req-1",
	})
	if !resp.Ok {
		t.Fatalf("expected ok, got error %q", resp.Error)
	}
	if resp.RequestID != "req-1" {
		t.Fatalf("expected request id to round-trip, got %q", resp.RequestID)
	}
	if len(resp.Stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(resp.Stations))
	}
	if resp.Score < 0 {
		t.Fatalf("expected non-negative score, got %g", resp.Score)
	}
	if resp.Breakdown.Total() != resp.Score {
		t.Fatalf("expected breakdown total %g to equal score %g", resp.Breakdown.Total(), resp.Score)
	}
	if resp.ElapsedMs < 0 {
		t.Fatalf("expected non-negative elapsed time, got %d", resp.ElapsedMs)
	}
}

func TestOptimizeRejectsInvalidInput(t *testing.T) {
	resp := optimizer.Optimize(optimizer.OptimizeRequest{
		Stations: []model.Station{{ID: "A"}, {ID: "A"}},
		Config:   model.DefaultLayoutConfig(),
	})
	if resp.Ok {
		t.Fatalf("expected duplicate station id to be rejected")
	}
	if resp.Error == "" {
		t.Fatalf("expected a non-empty error message")
	}
}

func TestOptimizeDegenerateEmptyProjectSucceedsWithZeroScore(t *testing.T) {
	resp := optimizer.Optimize(optimizer.OptimizeRequest{
		Config: model.DefaultLayoutConfig(),
	})
	if !resp.Ok {
		t.Fatalf("expected degenerate input to succeed, got error %q", resp.Error)
	}
	if resp.Score != 0 {
		t.Fatalf("expected zero score for degenerate input, got %g", resp.Score)
	}
	if len(resp.Stations) != 0 {
		t.Fatalf("expected no stations, got %d", len(resp.Stations))
	}
}

func TestOptimizeDegenerateKeepsStationPositionsUnchanged(t *testing.T) {
	stations := []model.Station{{ID: "A", Lng: 3, Lat: 4}}
	resp := optimizer.Optimize(optimizer.OptimizeRequest{
		Stations: stations,
		Config:   model.DefaultLayoutConfig(),
	})
	if !resp.Ok {
		t.Fatalf("expected ok, got error %q", resp.Error)
	}
	if resp.Stations[0].DisplayPos.X != 3 || resp.Stations[0].DisplayPos.Y != 4 {
		t.Fatalf("expected unchanged position (3,4), got %+v", resp.Stations[0].DisplayPos)
	}
}

func TestOptimizeIsDeterministic(t *testing.T) {
	stations, edges, lines := twoStationLine()
	cfg := model.DefaultLayoutConfig()
	first := optimizer.Optimize(optimizer.OptimizeRequest{Stations: stations, Edges: edges, Lines: lines, Config: cfg})
	second := optimizer.Optimize(optimizer.OptimizeRequest{Stations: stations, Edges: edges, Lines: lines, Config: cfg})
	if first.Score != second.Score {
		t.Fatalf("expected deterministic score, got %g vs %g", first.Score, second.Score)
	}
	for i := range first.Stations {
		if first.Stations[i].DisplayPos != second.Stations[i].DisplayPos {
			t.Fatalf("expected deterministic positions at index %d, got %+v vs %+v",
				i, first.Stations[i].DisplayPos, second.Stations[i].DisplayPos)
		}
	}
}

func TestWorkerSubmitDeliversResponseAsynchronously(t *testing.T) {
	stations, edges, lines := twoStationLine()
	w := optimizer.NewWorker(applog.New("optimizer-test", applog.LevelNone))
	ch := w.Submit(optimizer.OptimizeRequest{
		Stations: stations, Edges: edges, Lines: lines,
		Config: model.DefaultLayoutConfig(), RequestID: "async-1",
	})
	select {
	case resp := <-ch:
		if !resp.Ok {
			t.Fatalf("expected ok, got error %q", resp.Error)
		}
		if resp.RequestID != "async-1" {
			t.Fatalf("expected request id to round-trip, got %q", resp.RequestID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for worker response")
	}
	w.Wait()
}

func TestWorkerDiscardedChannelStillCompletes(t *testing.T) {
	stations, edges, lines := twoStationLine()
	w := optimizer.NewWorker(nil)
	_ = w.Submit(optimizer.OptimizeRequest{Stations: stations, Edges: edges, Lines: lines, Config: model.DefaultLayoutConfig()})
	// The caller never reads from the returned channel; Wait still
	// returns once the goroutine finishes, proving the request ran to
	// completion rather than being cancelled by caller disinterest.
	w.Wait()
}
