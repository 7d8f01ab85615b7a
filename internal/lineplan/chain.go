// Package lineplan implements the direction-planning dynamic program of
// spec §4.5: per-line chain extraction, an 8-state Viterbi DP over
// octilinear direction indices, short-run smoothing, and blending the
// result back into the working positions.
package lineplan

import (
	"sort"

	"github.com/metrostudio/core/internal/model"
)

// Chain is a maximal run of a line's edges where every interior node has
// degree 2 within that line's own edge set. IsCycle marks a chain that
// closes back on its first node (NodePath has one entry per edge, not
// per edge+1, since the closing edge returns to NodePath[0]).
type Chain struct {
	NodePath []int
	EdgeIDs  []string
	IsCycle  bool
}

type adjEntry struct {
	node   int
	edgeID string
}

// ExtractChains builds a line-local undirected adjacency over the
// stations touched by line's edges and walks it into chains (spec §4.5
// paragraph 1). edgeByID must contain every id in line.EdgeIDs that
// resolves to valid endpoints; unresolvable edges are skipped.
func ExtractChains(line model.Line, edgeByID map[string]*model.Edge, stationIndex map[string]int) []Chain {
	if line.IsLoop {
		if c, ok := buildLoopChain(line, edgeByID, stationIndex); ok {
			return []Chain{c}
		}
	}

	adjacency := map[int][]adjEntry{}
	edgeNodes := map[string][2]int{}
	for _, eid := range line.EdgeIDs {
		e, ok := edgeByID[eid]
		if !ok {
			continue
		}
		fi, fok := stationIndex[e.FromID]
		ti, tok := stationIndex[e.ToID]
		if !fok || !tok || fi == ti {
			continue
		}
		adjacency[fi] = append(adjacency[fi], adjEntry{ti, eid})
		adjacency[ti] = append(adjacency[ti], adjEntry{fi, eid})
		edgeNodes[eid] = [2]int{fi, ti}
	}
	for node := range adjacency {
		sortAdjacency(adjacency[node])
	}

	visited := map[string]bool{}
	var chains []Chain

	var startNodes []int
	for node := range adjacency {
		startNodes = append(startNodes, node)
	}
	sort.Ints(startNodes)

	for _, start := range startNodes {
		if len(adjacency[start]) == 2 {
			continue
		}
		for _, nb := range adjacency[start] {
			if visited[nb.edgeID] {
				continue
			}
			chains = append(chains, walkOpenChain(start, nb, adjacency, visited))
		}
	}

	for _, eid := range line.EdgeIDs {
		if visited[eid] {
			continue
		}
		pair, ok := edgeNodes[eid]
		if !ok {
			continue
		}
		chains = append(chains, walkResidualCycle(pair[0], eid, adjacency, visited))
	}

	return chains
}

func sortAdjacency(entries []adjEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].edgeID < entries[j].edgeID })
}

func walkOpenChain(start int, first adjEntry, adjacency map[int][]adjEntry, visited map[string]bool) Chain {
	nodePath := []int{start}
	var edgeIDs []string
	next := first
	for {
		visited[next.edgeID] = true
		edgeIDs = append(edgeIDs, next.edgeID)
		nodePath = append(nodePath, next.node)
		cur := next.node
		if len(adjacency[cur]) != 2 {
			break
		}
		found := false
		for _, nb := range adjacency[cur] {
			if !visited[nb.edgeID] {
				next = nb
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return Chain{NodePath: nodePath, EdgeIDs: edgeIDs, IsCycle: false}
}

func walkResidualCycle(start int, firstEdge string, adjacency map[int][]adjEntry, visited map[string]bool) Chain {
	var next adjEntry
	for _, nb := range adjacency[start] {
		if nb.edgeID == firstEdge {
			next = nb
			break
		}
	}
	nodePath := []int{start}
	var edgeIDs []string
	cur := start
	for {
		visited[next.edgeID] = true
		edgeIDs = append(edgeIDs, next.edgeID)
		cur = next.node
		if cur == start {
			break
		}
		nodePath = append(nodePath, cur)
		found := false
		for _, nb := range adjacency[cur] {
			if !visited[nb.edgeID] {
				next = nb
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return Chain{NodePath: nodePath, EdgeIDs: edgeIDs, IsCycle: true}
}

// buildLoopChain handles the isLoop invariant case directly: the whole
// line is one simple cycle, and line.EdgeIDs is already in cycle order
// (spec §3 Line invariant), so the chain is read straight off it rather
// than rediscovered by adjacency walking.
func buildLoopChain(line model.Line, edgeByID map[string]*model.Edge, stationIndex map[string]int) (Chain, bool) {
	if len(line.EdgeIDs) == 0 {
		return Chain{}, false
	}
	first, ok := edgeByID[line.EdgeIDs[0]]
	if !ok {
		return Chain{}, false
	}
	startID := first.FromID
	cur := startID
	nodePath := make([]int, 0, len(line.EdgeIDs))
	edgeIDs := make([]string, 0, len(line.EdgeIDs))
	for _, eid := range line.EdgeIDs {
		e, ok := edgeByID[eid]
		if !ok {
			return Chain{}, false
		}
		var from, to string
		switch cur {
		case e.FromID:
			from, to = e.FromID, e.ToID
		case e.ToID:
			from, to = e.ToID, e.FromID
		default:
			return Chain{}, false
		}
		fi, fok := stationIndex[from]
		if !fok {
			return Chain{}, false
		}
		nodePath = append(nodePath, fi)
		edgeIDs = append(edgeIDs, eid)
		cur = to
	}
	if cur != startID {
		return Chain{}, false
	}
	return Chain{NodePath: nodePath, EdgeIDs: edgeIDs, IsCycle: true}, true
}

// NodeAt returns the station index at the from-end of edge i in the
// chain. It does not wrap; only NodeAfter wraps around a cycle.
func (c Chain) NodeAt(i int) int {
	return c.NodePath[i]
}

// NodeAfter returns the station index at the to-end of edge i.
func (c Chain) NodeAfter(i int) int {
	if c.IsCycle {
		return c.NodePath[(i+1)%len(c.NodePath)]
	}
	return c.NodePath[i+1]
}
