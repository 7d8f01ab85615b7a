package topology

import (
	"sort"
	"strconv"

	"github.com/metrostudio/core/internal/model"
)

// claims tracks which edges/intermediate stations have already been
// assigned to the trunk or a previously-extracted branch, enforcing the
// "branch exclusivity" invariant of spec §4.11.
type claims struct {
	edges    map[string]bool
	stations map[string]bool
}

func newClaims() *claims {
	return &claims{edges: map[string]bool{}, stations: map[string]bool{}}
}

// extractTrunkAndBranches walks the trunk from the first source, then
// pulls out hanging end-branches and closed interval branches, per spec
// §4.11.
func extractTrunkAndBranches(comp *component, o *orientedGraph) model.BranchTopologyResult {
	sources, sinks := sourcesAndSinks(comp, o)

	// A component with no degree-1 and no degree-3+ node is a pure cycle;
	// orientation starts its BFS at one of its nodes, which leaves that
	// node a source, so the cycle is detected from degrees as well.
	_, hasEnd := firstDegreeOneNode(comp)
	_, hasJunction := comp.findDegreeAtLeast(3)
	if len(sources) == 0 || (!hasEnd && !hasJunction) {
		return simpleLoopFastPath(comp)
	}

	trunkStations, trunkEdges := walkTrunk(o, sources[0])
	if len(trunkStations) < 2 {
		return model.Invalid("trunk has fewer than two stations")
	}

	trunkPos := make(map[string]int, len(trunkStations))
	for i, id := range trunkStations {
		trunkPos[id] = i
	}

	cl := newClaims()
	for _, id := range trunkEdges {
		cl.edges[id] = true
	}
	for _, id := range trunkStations {
		cl.stations[id] = true
	}

	var intervals []model.Interval
	var mids []model.MidHangingBranch

	trunkStart, trunkEnd := trunkStations[0], trunkStations[len(trunkStations)-1]

	for _, s := range sources {
		if s == trunkStart {
			continue
		}
		stations, edges, attach, ok := walkForwardToTrunk(o, s, trunkPos, cl)
		if !ok {
			return model.Invalid("hanging branch from source " + s + " could not reach the trunk or violates branch exclusivity")
		}
		intervals = append(intervals, model.Interval{
			FromStationID: "",
			ToStationID:   attach,
			FromIndex:     model.LeftOpenIndex,
			ToIndex:       float64(trunkPos[attach]),
			StationIDs:    stations,
			EdgeIDs:       edges,
		})
	}

	for _, s := range sinks {
		if s == trunkEnd {
			continue
		}
		stations, edges, attach, ok := walkBackwardToTrunk(o, s, trunkPos, cl)
		if !ok {
			return model.Invalid("hanging branch to sink " + s + " could not reach the trunk or violates branch exclusivity")
		}
		intervals = append(intervals, model.Interval{
			FromStationID: attach,
			ToStationID:   "",
			FromIndex:     float64(trunkPos[attach]),
			ToIndex:       model.RightOpenIndex,
			StationIDs:    stations,
			EdgeIDs:       edges,
		})
	}

	for p, trunkNode := range trunkStations {
		out := o.outEdges[trunkNode]
		if len(out) != 2 {
			continue
		}
		for _, e := range sortedEdgeIDs(out) {
			if cl.edges[e] {
				continue
			}
			interval, mid, reason := walkInterval(comp, o, trunkNode, e, p, trunkPos, cl)
			if reason != "" {
				return model.Invalid(reason)
			}
			if mid != nil {
				mids = append(mids, *mid)
			} else if interval != nil {
				intervals = append(intervals, *interval)
			}
		}
	}

	if reason := validateIntervalOverlap(intervals); reason != "" {
		return model.Invalid(reason)
	}

	return model.BranchTopologyResult{
		Valid:           true,
		TrunkStationIDs: trunkStations,
		TrunkEdgeIDs:    trunkEdges,
		Intervals:       intervals,
		MidBranches:     mids,
	}
}

func sourcesAndSinks(comp *component, o *orientedGraph) (sources, sinks []string) {
	for _, id := range comp.stationIDs {
		if len(o.inEdges[id]) == 0 {
			sources = append(sources, id)
		}
		if len(o.outEdges[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	sort.Strings(sources)
	sort.Strings(sinks)
	return sources, sinks
}

func sortedEdgeIDs(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

// walkTrunk follows the first unvisited outgoing edge at each node,
// starting from start, until it reaches a sink (spec §4.11 "Trunk walk").
func walkTrunk(o *orientedGraph, start string) (stations, edgeIDs []string) {
	stations = []string{start}
	cur := start
	for {
		out := o.outEdges[cur]
		if len(out) == 0 {
			break
		}
		next := sortedEdgeIDs(out)[0]
		dir := o.direction[next]
		edgeIDs = append(edgeIDs, next)
		cur = dir[1]
		stations = append(stations, cur)
	}
	return stations, edgeIDs
}

// walkForwardToTrunk walks forward from a non-trunk source until it
// reaches a trunk node, claiming the intermediate stations/edges.
func walkForwardToTrunk(o *orientedGraph, start string, trunkPos map[string]int, cl *claims) (stations, edges []string, attach string, ok bool) {
	cur := start
	for {
		out := o.outEdges[cur]
		if len(out) != 1 {
			return nil, nil, "", false
		}
		e := out[0]
		if cl.edges[e] {
			return nil, nil, "", false
		}
		cl.edges[e] = true
		edges = append(edges, e)

		next := o.direction[e][1]
		if _, isTrunk := trunkPos[next]; isTrunk {
			return stations, edges, next, true
		}
		if cl.stations[next] {
			return nil, nil, "", false
		}
		cl.stations[next] = true
		stations = append(stations, next)
		cur = next
	}
}

// walkBackwardToTrunk walks backward along incoming edges from a
// non-trunk sink until it reaches a trunk node.
func walkBackwardToTrunk(o *orientedGraph, start string, trunkPos map[string]int, cl *claims) (stations, edges []string, attach string, ok bool) {
	cur := start
	for {
		in := o.inEdges[cur]
		if len(in) != 1 {
			return nil, nil, "", false
		}
		e := in[0]
		if cl.edges[e] {
			return nil, nil, "", false
		}
		cl.edges[e] = true
		edges = append(edges, e)

		prev := o.direction[e][0]
		if _, isTrunk := trunkPos[prev]; isTrunk {
			reverse(stations)
			reverse(edges)
			return stations, edges, prev, true
		}
		if cl.stations[prev] {
			return nil, nil, "", false
		}
		cl.stations[prev] = true
		stations = append(stations, prev)
		cur = prev
	}
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// walkInterval follows a trunk fork point's non-trunk outgoing edge
// through degree-2-only intermediaries, producing either a closed
// Interval (rejoins the trunk) or a MidHangingBranch (dead end). Returns
// a non-empty reason on a degree-3+ intermediary or exclusivity
// violation (spec §4.11 "Interval (closed) branches").
func walkInterval(comp *component, o *orientedGraph, forkNode, firstEdge string, forkPos int, trunkPos map[string]int, cl *claims) (*model.Interval, *model.MidHangingBranch, string) {
	var stations, edges []string
	edges = append(edges, firstEdge)
	cl.edges[firstEdge] = true

	cur := o.direction[firstEdge][1]
	for {
		if p, isTrunk := trunkPos[cur]; isTrunk {
			if p <= forkPos {
				return nil, nil, "branch from trunk position " + strconv.Itoa(forkPos) + " rejoins the trunk at or before its own fork point"
			}
			return &model.Interval{
				FromStationID: forkNode,
				ToStationID:   cur,
				FromIndex:     float64(forkPos),
				ToIndex:       float64(p),
				StationIDs:    stations,
				EdgeIDs:       edges,
			}, nil, ""
		}

		if cl.stations[cur] {
			return nil, nil, "branch intermediary " + cur + " is already claimed by another branch or the trunk"
		}
		if comp.degree(cur) != 2 {
			return nil, nil, "branch intermediary " + cur + " has degree > 2, which an interval branch does not support"
		}

		cl.stations[cur] = true
		stations = append(stations, cur)

		out := o.outEdges[cur]
		if len(out) == 0 {
			return nil, &model.MidHangingBranch{AttachToStationID: forkNode, StationIDs: stations, EdgeIDs: edges}, ""
		}
		if len(out) != 1 {
			return nil, nil, "branch intermediary " + cur + " has unexpected out-degree"
		}
		next := out[0]
		if cl.edges[next] {
			return nil, nil, "branch edge " + next + " is already claimed"
		}
		cl.edges[next] = true
		edges = append(edges, next)
		cur = o.direction[next][1]
	}
}

// validateIntervalOverlap sorts intervals by FromIndex and requires
// adjacent open interiors to be disjoint (spec §4.11 "Interval overlap
// validation").
func validateIntervalOverlap(intervals []model.Interval) string {
	sorted := append([]model.Interval(nil), intervals...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FromIndex < sorted[j].FromIndex })
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.ToIndex > cur.FromIndex {
			return "overlapping branch intervals"
		}
	}
	return ""
}

// simpleLoopFastPath handles a component with no sources: if every node
// has degree exactly 2 and edgeCount == nodeCount, it is a simple cycle
// (spec §4.11 "Simple loop fast-path").
func simpleLoopFastPath(comp *component) model.BranchTopologyResult {
	for _, id := range comp.stationIDs {
		if comp.degree(id) != 2 {
			return model.Invalid("component has no source but is not a simple loop")
		}
	}
	if len(comp.edges) != len(comp.stationIDs) {
		return model.Invalid("component has no source but edge count does not match node count for a simple loop")
	}

	start := comp.stationIDs[0]
	stations := []string{start}
	var edgeIDs []string
	cur := start
	var cameFrom string
	for {
		entries := comp.sortedAdjacency(cur)
		var next adjItem
		found := false
		for _, e := range entries {
			if e.edgeID == cameFrom {
				continue
			}
			next = e
			found = true
			break
		}
		if !found {
			break
		}
		edgeIDs = append(edgeIDs, next.edgeID)
		cameFrom = next.edgeID
		cur = next.neighborID
		if cur == start {
			break
		}
		stations = append(stations, cur)
	}

	return model.BranchTopologyResult{
		Valid:           true,
		IsLoop:          true,
		TrunkStationIDs: stations,
		TrunkEdgeIDs:    edgeIDs,
	}
}
