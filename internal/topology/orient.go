package topology

import "sort"

// orientedGraph is the result of orienting a component's edges into a
// directed flow (spec §4.10).
type orientedGraph struct {
	// direction[edgeID] = (tail, head): the edge flows tail -> head.
	direction map[string][2]string
	outEdges  map[string][]string // stationID -> outgoing edge ids
	inEdges   map[string][]string // stationID -> incoming edge ids
}

func newOrientedGraph() *orientedGraph {
	return &orientedGraph{
		direction: make(map[string][2]string),
		outEdges:  make(map[string][]string),
		inEdges:   make(map[string][]string),
	}
}

func (o *orientedGraph) set(edgeID, tail, head string) {
	if _, done := o.direction[edgeID]; done {
		return
	}
	o.direction[edgeID] = [2]string{tail, head}
	o.outEdges[tail] = append(o.outEdges[tail], edgeID)
	o.inEdges[head] = append(o.inEdges[head], edgeID)
}

func (o *orientedGraph) has(edgeID string) bool {
	_, ok := o.direction[edgeID]
	return ok
}

// orient builds a directed flow over comp's edges by BFS from a
// degree-1 node (or, absent one, a deterministic fallback start),
// resolving every degree-3 junction via spurs (spec §4.10), then
// validates the result.
func orient(comp *component, spurs map[string]spurResult) (*orientedGraph, string) {
	o := newOrientedGraph()
	visited := map[string]bool{}

	start, hasDegreeOne := firstDegreeOneNode(comp)
	if !hasDegreeOne {
		start = comp.stationIDs[0]
	}

	queue := []string{start}
	visited[start] = true
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		switch comp.degree(node) {
		case 1:
			for _, e := range comp.sortedAdjacency(node) {
				if o.has(e.edgeID) {
					continue
				}
				o.set(e.edgeID, node, e.neighborID)
				if !visited[e.neighborID] {
					visited[e.neighborID] = true
					queue = append(queue, e.neighborID)
				}
			}
		case 2:
			for _, e := range comp.sortedAdjacency(node) {
				if o.has(e.edgeID) {
					continue
				}
				o.set(e.edgeID, node, e.neighborID)
				if !visited[e.neighborID] {
					visited[e.neighborID] = true
					queue = append(queue, e.neighborID)
				}
			}
		case 3:
			spur, ok := spurs[node]
			if !ok {
				return nil, "station " + node + " has degree 3 but no spur classification"
			}
			arrivedVia := arrivalEdge(o, node)
			switch {
			case arrivedVia == "" || arrivedVia == spur.preFork:
				// Split: both branch edges point outward from the junction.
				for _, be := range []string{spur.branchA, spur.branchB} {
					if o.has(be) {
						continue
					}
					other := comp.otherEnd(be, node)
					o.set(be, node, other)
					if !visited[other] {
						visited[other] = true
						queue = append(queue, other)
					}
				}
			case arrivedVia == spur.branchA || arrivedVia == spur.branchB:
				otherBranch := spur.branchA
				if arrivedVia == spur.branchA {
					otherBranch = spur.branchB
				}
				if !o.has(spur.preFork) {
					other := comp.otherEnd(spur.preFork, node)
					o.set(spur.preFork, node, other)
					if !visited[other] {
						visited[other] = true
						queue = append(queue, other)
					}
				}
				if !o.has(otherBranch) {
					far := comp.otherEnd(otherBranch, node)
					o.set(otherBranch, far, node)
					if !visited[far] {
						visited[far] = true
						queue = append(queue, far)
					}
				}
			}
		}
	}

	orientRemainder(comp, o)

	if reason := validateOrientation(comp, o); reason != "" {
		return nil, reason
	}
	return o, ""
}

// arrivalEdge returns the single incoming edge id at node, or "" if none
// (node is a BFS root).
func arrivalEdge(o *orientedGraph, node string) string {
	in := o.inEdges[node]
	if len(in) == 0 {
		return ""
	}
	return in[len(in)-1]
}

// firstDegreeOneNode returns the lexicographically smallest degree-1
// station id, for deterministic BFS start selection.
func firstDegreeOneNode(comp *component) (string, bool) {
	for _, id := range comp.stationIDs {
		if comp.degree(id) == 1 {
			return id, true
		}
	}
	return "", false
}

// orientRemainder deterministically orients any edge the primary BFS
// never reached (residual cycle edges in a component that is not a pure
// simple loop), smaller station id to larger.
func orientRemainder(comp *component, o *orientedGraph) {
	edgeIDs := make([]string, 0, len(comp.edges))
	for id := range comp.edges {
		edgeIDs = append(edgeIDs, id)
	}
	sort.Strings(edgeIDs)
	for _, id := range edgeIDs {
		if o.has(id) {
			continue
		}
		e := comp.edges[id]
		if e.fromID < e.toID {
			o.set(id, e.fromID, e.toID)
		} else {
			o.set(id, e.toID, e.fromID)
		}
	}
}

// validateOrientation checks spec §4.10's post-orientation invariants.
func validateOrientation(comp *component, o *orientedGraph) string {
	sources, sinks := 0, 0
	for _, id := range comp.stationIDs {
		in := len(o.inEdges[id])
		out := len(o.outEdges[id])
		if in == 0 {
			sources++
		}
		if out == 0 {
			sinks++
		}
		if in > 2 || out > 2 {
			return "station " + id + " has in/out degree > 2 after orientation"
		}
		if comp.degree(id) == 3 {
			isSplit := in == 1 && out == 2
			isMerge := in == 2 && out == 1
			if !isSplit && !isMerge {
				return "pathological topology at station " + id
			}
		}
	}
	if sources > 2 || sinks > 2 {
		return "component has more than two sources or sinks after orientation"
	}
	return ""
}
