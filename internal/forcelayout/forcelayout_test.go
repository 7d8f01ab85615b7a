package forcelayout_test

import (
	"testing"

	"github.com/metrostudio/core/internal/forcelayout"
	"github.com/metrostudio/core/internal/model"
)

func straightLineProject() *model.Project {
	return &model.Project{
		Stations: []model.Station{
			{ID: "A", Lng: 0, Lat: 0},
			{ID: "B", Lng: 1, Lat: 0},
		},
		Edges: []model.Edge{
			{ID: "e1", FromID: "A", ToID: "B", SharedByLines: map[string]bool{"L": true}},
		},
		Lines: []model.Line{{ID: "L", EdgeIDs: []string{"e1"}}},
	}
}

func TestNormalizeSeedScalesToTargetSpan(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	p := straightLineProject()
	seed := forcelayout.NormalizeSeed(p.Stations, cfg)
	if len(seed) != 2 {
		t.Fatalf("expected 2 seed points, got %d", len(seed))
	}
	dist := seed[0].Dist(seed[1])
	wantSpan := cfg.NormalizeTargetSpan * cfg.GeoSeedScale
	if dist != wantSpan {
		t.Fatalf("expected seed span %g, got %g", wantSpan, dist)
	}
	if seed[0].X != 0 || seed[0].Y != 0 {
		t.Fatalf("expected min corner at origin, got %+v", seed[0])
	}
}

func TestNormalizeSeedEmptyStations(t *testing.T) {
	seed := forcelayout.NormalizeSeed(nil, model.DefaultLayoutConfig())
	if len(seed) != 0 {
		t.Fatalf("expected empty seed, got %d", len(seed))
	}
}

func TestBuildEdgesComputesDesiredLength(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	p := straightLineProject()
	seed := forcelayout.NormalizeSeed(p.Stations, cfg)
	idx := p.StationIndex()
	g := forcelayout.BuildEdges(p.Edges, idx, seed, cfg)
	if len(g.Edges) != 1 {
		t.Fatalf("expected 1 edge record, got %d", len(g.Edges))
	}
	rec := g.Edges[0]
	if rec.DesiredLength < cfg.MinEdgeLength || rec.DesiredLength > cfg.MaxEdgeLength {
		t.Fatalf("desired length %g out of bounds [%g, %g]", rec.DesiredLength, cfg.MinEdgeLength, cfg.MaxEdgeLength)
	}
	if g.Degree[rec.From] != 1 || g.Degree[rec.To] != 1 {
		t.Fatalf("expected degree 1 on both endpoints, got %d/%d", g.Degree[rec.From], g.Degree[rec.To])
	}
}

func TestBuildEdgesDropsSelfLoop(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	p := straightLineProject()
	p.Edges = append(p.Edges, model.Edge{ID: "loop", FromID: "A", ToID: "A", SharedByLines: map[string]bool{"L": true}})
	seed := forcelayout.NormalizeSeed(p.Stations, cfg)
	idx := p.StationIndex()
	g := forcelayout.BuildEdges(p.Edges, idx, seed, cfg)
	if len(g.Edges) != 1 {
		t.Fatalf("expected self-loop dropped, got %d edge records", len(g.Edges))
	}
}

func TestRelaxIsDeterministic(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	cfg.MaxIterations = 50
	p := straightLineProject()
	seed := forcelayout.NormalizeSeed(p.Stations, cfg)
	idx := p.StationIndex()
	g := forcelayout.BuildEdges(p.Edges, idx, seed, cfg)

	s1 := forcelayout.NewState(seed, g, cfg)
	forcelayout.Relax(s1, cfg)

	s2 := forcelayout.NewState(seed, g, cfg)
	forcelayout.Relax(s2, cfg)

	for i := range s1.Positions {
		if s1.Positions[i] != s2.Positions[i] {
			t.Fatalf("relax not deterministic at node %d: %+v vs %+v", i, s1.Positions[i], s2.Positions[i])
		}
	}
}

func TestRelaxRespectsDisplacementLimit(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	cfg.MaxIterations = 200
	p := straightLineProject()
	seed := forcelayout.NormalizeSeed(p.Stations, cfg)
	idx := p.StationIndex()
	g := forcelayout.BuildEdges(p.Edges, idx, seed, cfg)
	s := forcelayout.NewState(seed, g, cfg)
	forcelayout.Relax(s, cfg)
	for i, p := range s.Positions {
		if d := p.Dist(seed[i]); d > cfg.DisplacementLimit+1e-6 {
			t.Fatalf("node %d displaced %g beyond limit %g", i, d, cfg.DisplacementLimit)
		}
	}
}
