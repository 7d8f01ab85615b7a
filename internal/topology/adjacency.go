package topology

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/metrostudio/core/internal/model"
)

// rawEdge is one edge of a line's undirected network, in the coordinate
// space the spur disambiguation needs (waypoints plus both endpoints'
// geographic coordinates).
type rawEdge struct {
	id           string
	fromID, toID string
	weight       float64
	waypoints    []model.Point
}

// adjItem is one entry of a component's adjacency list.
type adjItem struct {
	neighborID string
	edgeID     string
}

// component is one connected component of a line's edge set, keyed by
// station id throughout (spec §4.8's "nodeId -> (neighborId, edgeId,
// weight)[]" adjacency).
type component struct {
	stationIDs []string // sorted, deterministic iteration order
	edges      map[string]rawEdge
	adjacency  map[string][]adjItem
}

func (c *component) degree(stationID string) int {
	return len(c.adjacency[stationID])
}

func (c *component) findDegreeAtLeast(min int) (string, bool) {
	for _, id := range c.stationIDs {
		if c.degree(id) >= min {
			return id, true
		}
	}
	return "", false
}

func (c *component) otherEnd(edgeID, from string) string {
	e := c.edges[edgeID]
	if e.fromID == from {
		return e.toID
	}
	return e.fromID
}

// sortedAdjacency returns stationID's adjacency entries sorted by edge
// id, used whenever the spec calls for a deterministic tie-break ("first
// unvisited edge").
func (c *component) sortedAdjacency(stationID string) []adjItem {
	entries := append([]adjItem(nil), c.adjacency[stationID]...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].edgeID < entries[j].edgeID })
	return entries
}

// collectLineEdges gathers every edge whose sharing set names lineID
// (spec §4.8 paragraph 1). It does not check that the endpoints name
// real stations.
func collectLineEdges(edges []model.Edge, lineID string) []rawEdge {
	var out []rawEdge
	for _, e := range edges {
		if !e.SharedByLines[lineID] {
			continue
		}
		weight := e.LengthMeters
		if weight < 1 {
			weight = 1
		}
		out = append(out, rawEdge{
			id:        e.ID,
			fromID:    e.FromID,
			toID:      e.ToID,
			weight:    weight,
			waypoints: e.Waypoints,
		})
	}
	return out
}

// splitComponents partitions lineEdges into connected components using
// gonum's undirected connected-components algorithm, then rebuilds each
// component's string-keyed adjacency (spec §4.8 "run BFS to split into
// connected components").
func splitComponents(lineEdges []rawEdge) []*component {
	g := simple.NewUndirectedGraph()
	nodeID := make(map[string]int64)
	stationOf := make(map[int64]string)

	idOf := func(stationID string) int64 {
		if id, ok := nodeID[stationID]; ok {
			return id
		}
		n := g.NewNode()
		g.AddNode(n)
		nodeID[stationID] = n.ID()
		stationOf[n.ID()] = stationID
		return n.ID()
	}

	for _, e := range lineEdges {
		if e.fromID == e.toID {
			continue
		}
		a, b := idOf(e.fromID), idOf(e.toID)
		g.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	}

	groups := topo.ConnectedComponents(g)

	componentOf := make(map[string]int, len(nodeID))
	for gi, nodes := range groups {
		for _, n := range nodes {
			componentOf[stationOf[n.ID()]] = gi
		}
	}

	comps := make([]*component, len(groups))
	for i := range comps {
		comps[i] = &component{
			edges:     make(map[string]rawEdge),
			adjacency: make(map[string][]adjItem),
		}
	}

	for _, e := range lineEdges {
		if e.fromID == e.toID {
			continue
		}
		gi := componentOf[e.fromID]
		c := comps[gi]
		c.edges[e.id] = e
		c.adjacency[e.fromID] = append(c.adjacency[e.fromID], adjItem{neighborID: e.toID, edgeID: e.id})
		c.adjacency[e.toID] = append(c.adjacency[e.toID], adjItem{neighborID: e.fromID, edgeID: e.id})
	}
	for i, c := range comps {
		ids := make([]string, 0, len(c.adjacency))
		for id := range c.adjacency {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		comps[i].stationIDs = ids
	}
	// gonum's component order follows map iteration; order components by
	// their smallest station id so results are deterministic.
	sort.Slice(comps, func(i, j int) bool { return comps[i].stationIDs[0] < comps[j].stationIDs[0] })

	return comps
}
