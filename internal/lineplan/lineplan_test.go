package lineplan_test

import (
	"testing"

	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/lineplan"
	"github.com/metrostudio/core/internal/model"
)

func straightLine() (model.Line, map[string]*model.Edge, map[string]int, []geometry.Vec2) {
	edges := map[string]*model.Edge{
		"e1": {ID: "e1", FromID: "A", ToID: "B"},
		"e2": {ID: "e2", FromID: "B", ToID: "C"},
	}
	stationIndex := map[string]int{"A": 0, "B": 1, "C": 2}
	positions := []geometry.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 200, Y: 0}}
	line := model.Line{ID: "L", EdgeIDs: []string{"e1", "e2"}}
	return line, edges, stationIndex, positions
}

func TestExtractChainsSimplePathIsOneChain(t *testing.T) {
	line, edges, stationIndex, _ := straightLine()
	chains := lineplan.ExtractChains(line, edges, stationIndex)
	if len(chains) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(chains))
	}
	c := chains[0]
	if c.IsCycle {
		t.Fatalf("expected non-cyclic chain")
	}
	if len(c.EdgeIDs) != 2 || len(c.NodePath) != 3 {
		t.Fatalf("expected chain spanning both edges, got %+v", c)
	}
}

func TestExtractChainsLoopIsSingleCycleChain(t *testing.T) {
	edges := map[string]*model.Edge{
		"e1": {ID: "e1", FromID: "A", ToID: "B"},
		"e2": {ID: "e2", FromID: "B", ToID: "C"},
		"e3": {ID: "e3", FromID: "C", ToID: "D"},
		"e4": {ID: "e4", FromID: "D", ToID: "A"},
	}
	stationIndex := map[string]int{"A": 0, "B": 1, "C": 2, "D": 3}
	line := model.Line{ID: "L", IsLoop: true, EdgeIDs: []string{"e1", "e2", "e3", "e4"}}

	chains := lineplan.ExtractChains(line, edges, stationIndex)
	if len(chains) != 1 {
		t.Fatalf("expected 1 chain for a loop, got %d", len(chains))
	}
	if !chains[0].IsCycle {
		t.Fatalf("expected loop chain marked IsCycle")
	}
	if len(chains[0].EdgeIDs) != 4 || len(chains[0].NodePath) != 4 {
		t.Fatalf("expected 4 edges and 4 nodes in loop chain, got %+v", chains[0])
	}
}

func TestExtractChainsSplitsAtBranchNode(t *testing.T) {
	// A-B, B-C, B-D: B has line-local degree 3, so every edge touching
	// it is its own chain boundary, producing 3 single-edge chains.
	edges := map[string]*model.Edge{
		"e1": {ID: "e1", FromID: "A", ToID: "B"},
		"e2": {ID: "e2", FromID: "B", ToID: "C"},
		"e3": {ID: "e3", FromID: "B", ToID: "D"},
	}
	stationIndex := map[string]int{"A": 0, "B": 1, "C": 2, "D": 3}
	line := model.Line{ID: "L", EdgeIDs: []string{"e1", "e2", "e3"}}

	chains := lineplan.ExtractChains(line, edges, stationIndex)
	if len(chains) != 3 {
		t.Fatalf("expected 3 chains at a branch node, got %d: %+v", len(chains), chains)
	}
	totalEdges := 0
	for _, c := range chains {
		totalEdges += len(c.EdgeIDs)
	}
	if totalEdges != 3 {
		t.Fatalf("expected all 3 edges covered across chains, got %d", totalEdges)
	}
}

func TestSolveChainAssignsEastOnStraightLine(t *testing.T) {
	line, edges, stationIndex, positions := straightLine()
	cfg := model.DefaultLayoutConfig()
	chains := lineplan.ExtractChains(line, edges, stationIndex)
	directions := lineplan.SolveChain(chains[0], positions, cfg)
	for i, d := range directions {
		if d != 0 {
			t.Fatalf("edge %d: expected east (0) on a due-east straight line, got %d", i, d)
		}
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	line, edgeByID, stationIndex, seed := straightLine()
	edges := make([]model.Edge, 0, len(edgeByID))
	for _, eid := range line.EdgeIDs {
		edges = append(edges, *edgeByID[eid])
	}
	cfg := model.DefaultLayoutConfig()
	degree := []int{1, 2, 1}
	interchange := []bool{false, false, false}

	positions1 := append([]geometry.Vec2(nil), seed...)
	dirs1 := lineplan.Plan([]model.Line{line}, edges, stationIndex, positions1, degree, interchange, cfg)

	positions2 := append([]geometry.Vec2(nil), seed...)
	dirs2 := lineplan.Plan([]model.Line{line}, edges, stationIndex, positions2, degree, interchange, cfg)

	for eid, d := range dirs1 {
		if dirs2[eid] != d {
			t.Fatalf("direction for edge %s not deterministic: %d vs %d", eid, d, dirs2[eid])
		}
	}
	for i := range positions1 {
		if positions1[i] != positions2[i] {
			t.Fatalf("position %d not deterministic: %+v vs %+v", i, positions1[i], positions2[i])
		}
	}
}

func TestPlanCoversEveryEdge(t *testing.T) {
	line, edgeByID, stationIndex, seed := straightLine()
	edges := make([]model.Edge, 0, len(edgeByID))
	for _, eid := range line.EdgeIDs {
		edges = append(edges, *edgeByID[eid])
	}
	cfg := model.DefaultLayoutConfig()
	degree := []int{1, 2, 1}
	interchange := []bool{false, false, false}
	positions := append([]geometry.Vec2(nil), seed...)

	dirs := lineplan.Plan([]model.Line{line}, edges, stationIndex, positions, degree, interchange, cfg)
	for _, eid := range line.EdgeIDs {
		if _, ok := dirs[eid]; !ok {
			t.Fatalf("expected direction assigned for edge %s", eid)
		}
	}
}
