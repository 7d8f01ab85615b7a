package forcelayout

import (
	"math"

	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

// EdgeRecord is the optimizer's working representation of one input
// edge: integer endpoint indices into the station arena, plus the
// derived length targets from spec §4.1.
type EdgeRecord struct {
	EdgeIndex      int // index into the original edges slice
	From, To       int // station indices
	BaseLength     float64
	DesiredLength  float64
}

// Neighbor is one entry of a node's adjacency list: which node, via which
// edge record.
type Neighbor struct {
	Node       int
	EdgeRecord int
}

// Graph is the derived adjacency/degree structure built once per request
// and shared read-only across the relaxation loop (spec §4.1 "Derived
// structures").
type Graph struct {
	Edges     []EdgeRecord
	Adjacency [][]Neighbor
	Degree    []int
}

// BuildEdges resolves endpoint ids to indices, drops self-loops (already
// rejected by validation but guarded here defensively since this package
// is also exercised directly in tests), and computes desiredLength per
// spec §4.1: clamp(34 + min(baseLength, 280) * 0.2, minEdgeLength, maxEdgeLength).
func BuildEdges(edges []model.Edge, stationIndex map[string]int, seed []geometry.Vec2, cfg model.LayoutConfig) *Graph {
	g := &Graph{
		Adjacency: make([][]Neighbor, len(seed)),
		Degree:    make([]int, len(seed)),
	}
	for i, e := range edges {
		from, fromOK := stationIndex[e.FromID]
		to, toOK := stationIndex[e.ToID]
		if !fromOK || !toOK || from == to {
			continue
		}
		base := seed[from].Dist(seed[to])
		desired := clamp(34+math.Min(base, 280)*0.2, cfg.MinEdgeLength, cfg.MaxEdgeLength)
		rec := EdgeRecord{
			EdgeIndex:     i,
			From:          from,
			To:            to,
			BaseLength:    base,
			DesiredLength: desired,
		}
		idx := len(g.Edges)
		g.Edges = append(g.Edges, rec)
		g.Adjacency[from] = append(g.Adjacency[from], Neighbor{Node: to, EdgeRecord: idx})
		g.Adjacency[to] = append(g.Adjacency[to], Neighbor{Node: from, EdgeRecord: idx})
		g.Degree[from]++
		g.Degree[to]++
	}
	return g
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
