package topology

import (
	"math"

	"github.com/metrostudio/core/internal/model"
)

// spurResult is the pre-fork/branch classification of one degree-3
// node's three incident edges (spec §4.9).
type spurResult struct {
	preFork          string
	branchA, branchB string
}

// resolveSpurs computes a spurResult for every degree-3 node in comp.
// Returns a non-empty reason if any degree-3 node is geometrically
// ambiguous.
func resolveSpurs(comp *component, stationByID map[string]model.Station) (map[string]spurResult, string) {
	spurs := make(map[string]spurResult)
	for _, id := range comp.stationIDs {
		entries := comp.sortedAdjacency(id)
		if len(entries) != 3 {
			continue
		}
		res, ok := classifySpur(id, entries, comp, stationByID)
		if !ok {
			return nil, "station " + id + " is a geometrically ambiguous degree-3 junction (near-symmetric fork)"
		}
		spurs[id] = res
	}
	return spurs, ""
}

// classifySpur computes the three outward tangent vectors at node,
// their pairwise angles, and decides the pre-fork/branch split per
// spec §4.9. Returns ok=false if the node is ambiguous.
func classifySpur(node string, entries []adjItem, comp *component, stationByID map[string]model.Station) (spurResult, bool) {
	type arm struct {
		edgeID string
		dx, dy float64
	}
	arms := make([]arm, 3)
	for i, e := range entries {
		dx, dy := outwardTangent(node, comp.edges[e.edgeID], stationByID)
		arms[i] = arm{edgeID: e.edgeID, dx: dx, dy: dy}
	}

	angleBetween := func(a, b arm) float64 {
		dot := a.dx*b.dx + a.dy*b.dy
		na := math.Hypot(a.dx, a.dy)
		nb := math.Hypot(b.dx, b.dy)
		if na < 1e-12 || nb < 1e-12 {
			return 0
		}
		cos := dot / (na * nb)
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		return math.Acos(cos) * 180 / math.Pi
	}

	type pair struct {
		i, j  int
		angle float64
	}
	pairs := []pair{
		{0, 1, angleBetween(arms[0], arms[1])},
		{0, 2, angleBetween(arms[0], arms[2])},
		{1, 2, angleBetween(arms[1], arms[2])},
	}

	// Sort descending by angle; stable so ties break by the fixed AB/AC/BC
	// declaration order above, keeping the result deterministic.
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairs[j].angle > pairs[j-1].angle; j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}

	// Resolvable iff exactly the two widest pairs clear the 115° threshold:
	// a near-symmetric 120/120/120 junction ties all three pairs above the
	// threshold, which leaves no single edge uniquely common to "the two
	// widest" and must be rejected rather than arbitrarily tie-broken.
	// The small epsilon keeps an angle of exactly 115° (up to acos
	// rounding) from counting as clearing the threshold.
	const threshold = 115 + 1e-9
	top1, top2, top3 := pairs[0], pairs[1], pairs[2]
	if top1.angle <= threshold || top2.angle <= threshold || top3.angle > threshold {
		return spurResult{}, false
	}

	// The edge index common to both of the two largest-angle pairs is the
	// pre-fork edge; the remaining index pair are the two branch edges.
	indices := map[int]int{}
	indices[top1.i]++
	indices[top1.j]++
	indices[top2.i]++
	indices[top2.j]++

	var preForkIdx int
	var branchIdx []int
	for idx, count := range indices {
		if count == 2 {
			preForkIdx = idx
		} else {
			branchIdx = append(branchIdx, idx)
		}
	}
	if len(branchIdx) != 2 {
		return spurResult{}, false
	}

	return spurResult{
		preFork: arms[preForkIdx].edgeID,
		branchA: arms[branchIdx[0]].edgeID,
		branchB: arms[branchIdx[1]].edgeID,
	}, true
}

// outwardTangent approximates edge e's tangent direction at node,
// pointing away from node, using the first/last waypoint segment, with
// a correction when the waypoint array is stored reversed relative to
// e's from/to labeling (spec §4.9 paragraph 2). Edges with fewer than
// two waypoints fall back to the straight line between endpoints, per
// the §3 Edge invariant.
func outwardTangent(node string, e rawEdge, stationByID map[string]model.Station) (dx, dy float64) {
	other := e.toID
	if node == e.toID {
		other = e.fromID
	}

	if len(e.waypoints) < 2 {
		a, aok := stationByID[node]
		b, bok := stationByID[other]
		if !aok || !bok {
			return 0, 0
		}
		return b.Lng - a.Lng, b.Lat - a.Lat
	}

	wp := e.waypoints
	from, fok := stationByID[e.fromID]
	to, tok := stationByID[e.toID]
	reversed := false
	if fok && tok {
		distToFrom := math.Hypot(wp[0].X-from.Lng, wp[0].Y-from.Lat)
		distToTo := math.Hypot(wp[0].X-to.Lng, wp[0].Y-to.Lat)
		reversed = distToTo < distToFrom
	}
	if reversed {
		wp = reverseWaypoints(wp)
	}

	n := len(wp)
	if node == e.fromID {
		return wp[1].X - wp[0].X, wp[1].Y - wp[0].Y
	}
	return wp[n-2].X - wp[n-1].X, wp[n-2].Y - wp[n-1].Y
}

func reverseWaypoints(wp []model.Point) []model.Point {
	out := make([]model.Point, len(wp))
	for i, p := range wp {
		out[len(wp)-1-i] = p
	}
	return out
}
