package constraint_test

import (
	"math"
	"testing"

	"github.com/metrostudio/core/internal/constraint"
	"github.com/metrostudio/core/internal/forcelayout"
	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

func twoStationProject() *model.Project {
	return &model.Project{
		Stations: []model.Station{
			{ID: "A", Lng: 0, Lat: 0},
			{ID: "B", Lng: 1, Lat: 0.08},
		},
		Edges: []model.Edge{
			{ID: "e1", FromID: "A", ToID: "B", SharedByLines: map[string]bool{"L": true}},
		},
		Lines: []model.Line{{ID: "L", EdgeIDs: []string{"e1"}}},
	}
}

func threeChainProject() *model.Project {
	return &model.Project{
		Stations: []model.Station{
			{ID: "A", Lng: 0, Lat: 0},
			{ID: "B", Lng: 1, Lat: 0.05},
			{ID: "C", Lng: 2, Lat: 0},
		},
		Edges: []model.Edge{
			{ID: "e1", FromID: "A", ToID: "B", SharedByLines: map[string]bool{"L": true}},
			{ID: "e2", FromID: "B", ToID: "C", SharedByLines: map[string]bool{"L": true}},
		},
		Lines: []model.Line{{ID: "L", EdgeIDs: []string{"e1", "e2"}}},
	}
}

func buildGraph(p *model.Project, cfg model.LayoutConfig) ([]geometry.Vec2, *forcelayout.Graph) {
	seed := forcelayout.NormalizeSeed(p.Stations, cfg)
	idx := p.StationIndex()
	g := forcelayout.BuildEdges(p.Edges, idx, seed, cfg)
	positions := make([]geometry.Vec2, len(seed))
	copy(positions, seed)
	return positions, g
}

func TestSoftSnapMovesAngleCloser(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	p := twoStationProject()
	positions, g := buildGraph(p, cfg)

	before := geometry.Angle(positions[1].X-positions[0].X, positions[1].Y-positions[0].Y)
	beforeDev := geometry.AngleDeviation(before, geometry.SnapAngle(before))

	constraint.SoftSnap(positions, g, 0.5)

	after := geometry.Angle(positions[1].X-positions[0].X, positions[1].Y-positions[0].Y)
	afterDev := geometry.AngleDeviation(after, geometry.SnapAngle(after))

	if afterDev > beforeDev {
		t.Fatalf("expected angle deviation to shrink, before=%g after=%g", beforeDev, afterDev)
	}
}

func TestHardConstraintProducesOctilinearEdges(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	p := twoStationProject()
	positions, g := buildGraph(p, cfg)
	interchange := make([]bool, len(positions))

	constraint.HardConstraint(positions, g, interchange, cfg)

	for _, e := range g.Edges {
		from, to := positions[e.From], positions[e.To]
		d := to.Sub(from)
		if d.Len() < 1e-9 {
			continue
		}
		a := geometry.Angle(d.X, d.Y)
		dev := geometry.AngleDeviation(a, geometry.SnapAngle(a))
		if dev > 1e-6 {
			t.Fatalf("edge %d not octilinear after hard constraint: deviation %g", e.EdgeIndex, dev)
		}
	}
}

func TestEnforceMinEdgeLengthMeetsBound(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	positions := []geometry.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}
	g := &forcelayout.Graph{
		Edges:  []forcelayout.EdgeRecord{{From: 0, To: 1}},
		Degree: []int{1, 1},
	}
	constraint.EnforceMinEdgeLength(positions, g, cfg)
	dist := positions[0].Dist(positions[1])
	if dist < cfg.MinEdgeLength-1e-9 {
		t.Fatalf("expected edge length >= %g, got %g", cfg.MinEdgeLength, dist)
	}
}

func TestEnforceMinStationDistanceSeparatesCoincidentPoints(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	positions := []geometry.Vec2{{X: 10, Y: 10}, {X: 10, Y: 10}}
	for i := 0; i < 5; i++ {
		constraint.EnforceMinStationDistance(positions, cfg)
	}
	dist := positions[0].Dist(positions[1])
	if dist < cfg.MinStationDistance-1e-6 {
		t.Fatalf("expected stations separated to >= %g, got %g", cfg.MinStationDistance, dist)
	}
}

func TestCompactLongEdgesShrinksOverLengthEdge(t *testing.T) {
	positions := []geometry.Vec2{{X: 0, Y: 0}, {X: 1000, Y: 0}}
	g := &forcelayout.Graph{Edges: []forcelayout.EdgeRecord{{From: 0, To: 1}}}
	constraint.CompactLongEdges(positions, g, 160)
	dist := positions[0].Dist(positions[1])
	if dist > 1.12*160+1e-6 {
		t.Fatalf("expected compacted length <= %g, got %g", 1.12*160, dist)
	}
}

func TestCorridorStraightenProjectsPassThroughNode(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	p := threeChainProject()
	positions, _ := buildGraph(p, cfg)
	idx := p.StationIndex()
	interchange := make([]bool, len(positions))

	before := geometry.PointToSegmentDistance(positions[idx["B"]], positions[idx["A"]], positions[idx["C"]])
	constraint.CorridorStraighten(positions, p.Lines, p.Edges, idx, interchange, cfg)
	after := geometry.PointToSegmentDistance(positions[idx["B"]], positions[idx["A"]], positions[idx["C"]])

	if after > before {
		t.Fatalf("expected pass-through node closer to chord, before=%g after=%g", before, after)
	}
}

func TestCorridorStraightenSkipsInterchange(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	p := threeChainProject()
	positions, _ := buildGraph(p, cfg)
	idx := p.StationIndex()
	interchange := make([]bool, len(positions))
	interchange[idx["B"]] = true

	before := positions[idx["B"]]
	constraint.CorridorStraighten(positions, p.Lines, p.Edges, idx, interchange, cfg)
	after := positions[idx["B"]]

	if before != after {
		t.Fatalf("expected interchange node untouched, before=%+v after=%+v", before, after)
	}
}

func TestHardCrossingRepelSeparatesCrossingEdges(t *testing.T) {
	positions := []geometry.Vec2{
		{X: 0, Y: 0}, {X: 10, Y: 10}, // edge 0: rising diagonal
		{X: 0, Y: 10}, {X: 10, Y: 0}, // edge 1: falling diagonal, crosses edge 0
	}
	g := &forcelayout.Graph{Edges: []forcelayout.EdgeRecord{{From: 0, To: 1}, {From: 2, To: 3}}}
	before := geometry.SegmentsIntersectBoxFiltered(positions[0], positions[1], positions[2], positions[3])
	if !before {
		t.Fatalf("expected test fixture edges to cross before repulsion")
	}
	for i := 0; i < 40; i++ {
		constraint.HardCrossingRepel(positions, g, 20, 1)
	}
	m1 := geometry.Midpoint(positions[0], positions[1])
	m2 := geometry.Midpoint(positions[2], positions[3])
	if m1.Dist(m2) < 1e-6 {
		t.Fatalf("expected crossing edges pushed apart, midpoints still coincide")
	}
}

func TestRunProducesStrictOctilinearityWithinTolerance(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	cfg.StationSpacingRefineCycles = 6
	p := threeChainProject()
	positions, g := buildGraph(p, cfg)
	idx := p.StationIndex()
	interchange := make([]bool, len(positions))

	constraint.Run(positions, g, p.Lines, p.Edges, idx, interchange, cfg)

	for _, e := range g.Edges {
		from, to := positions[e.From], positions[e.To]
		d := to.Sub(from)
		if d.Len() < 1e-9 {
			continue
		}
		a := geometry.Angle(d.X, d.Y)
		dev := geometry.AngleDeviation(a, geometry.SnapAngle(a))
		if dev > cfg.OctilinearStrictTolerance*50 {
			t.Fatalf("edge deviation %g exceeds tolerance budget after full pipeline", dev)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	p := threeChainProject()
	idx := p.StationIndex()
	interchange := make([]bool, len(p.Stations))

	positions1, g1 := buildGraph(p, cfg)
	constraint.Run(positions1, g1, p.Lines, p.Edges, idx, interchange, cfg)

	positions2, g2 := buildGraph(p, cfg)
	constraint.Run(positions2, g2, p.Lines, p.Edges, idx, interchange, cfg)

	for i := range positions1 {
		if math.Abs(positions1[i].X-positions2[i].X) > 1e-9 || math.Abs(positions1[i].Y-positions2[i].Y) > 1e-9 {
			t.Fatalf("Run not deterministic at node %d: %+v vs %+v", i, positions1[i], positions2[i])
		}
	}
}
