package model

// Validate checks the InvalidInput invariants of spec §3/§7: duplicate
// ids, dangling references, non-finite coordinates, lines pointing at
// edges that don't share them back. It does not check DegenerateInput
// conditions (empty sets) — callers check those separately because they
// are not errors, just early-exit cases.
func (p *Project) Validate() error {
	seenStations := make(map[string]bool, len(p.Stations))
	for _, s := range p.Stations {
		if seenStations[s.ID] {
			return InvalidInput(s.ID, "duplicate station id")
		}
		seenStations[s.ID] = true
		if !validCoord(s.Lng) || !validCoord(s.Lat) {
			return InvalidInput(s.ID, "non-finite coordinate (%g, %g)", s.Lng, s.Lat)
		}
	}

	seenEdges := make(map[string]bool, len(p.Edges))
	lineIDs := make(map[string]bool, len(p.Lines))
	for _, l := range p.Lines {
		if lineIDs[l.ID] {
			return InvalidInput(l.ID, "duplicate line id")
		}
		lineIDs[l.ID] = true
	}

	for _, e := range p.Edges {
		if seenEdges[e.ID] {
			return InvalidInput(e.ID, "duplicate edge id")
		}
		seenEdges[e.ID] = true
		if e.FromID == e.ToID {
			return InvalidInput(e.ID, "self-loop edge (from == to == %s)", e.FromID)
		}
		if !seenStations[e.FromID] {
			return InvalidInput(e.ID, "references unknown station %q", e.FromID)
		}
		if !seenStations[e.ToID] {
			return InvalidInput(e.ID, "references unknown station %q", e.ToID)
		}
		if len(e.SharedByLines) == 0 {
			return InvalidInput(e.ID, "sharedByLineIds is empty")
		}
		for lid := range e.SharedByLines {
			if !lineIDs[lid] {
				return InvalidInput(e.ID, "shared by unknown line %q", lid)
			}
		}
		for _, wp := range e.Waypoints {
			if !wp.Finite() {
				return InvalidInput(e.ID, "non-finite waypoint")
			}
		}
	}

	for _, l := range p.Lines {
		for _, eid := range l.EdgeIDs {
			if !seenEdges[eid] {
				return InvalidInput(l.ID, "references unknown edge %q", eid)
			}
		}
		if err := validateLineEdgesShareBack(p, &l); err != nil {
			return err
		}
		if l.IsLoop {
			if err := validateSimpleCycle(p, &l); err != nil {
				return err
			}
		}
	}
	return nil
}

func validCoord(v float64) bool {
	return v == v && v > -1e18 && v < 1e18 // rejects NaN (v!=v) and absurd magnitudes
}

func validateLineEdgesShareBack(p *Project, l *Line) error {
	edgeByID := make(map[string]*Edge, len(p.Edges))
	for i := range p.Edges {
		edgeByID[p.Edges[i].ID] = &p.Edges[i]
	}
	for _, eid := range l.EdgeIDs {
		e := edgeByID[eid]
		if e == nil || !e.SharedByLines[l.ID] {
			return InvalidInput(l.ID, "edge %q does not list this line in sharedByLineIds", eid)
		}
	}
	return nil
}

// validateSimpleCycle checks that an isLoop line's edges form a single
// simple cycle as an undirected subgraph: every touched station has
// degree exactly 2 within the subgraph, and it is connected.
func validateSimpleCycle(p *Project, l *Line) error {
	edgeByID := make(map[string]*Edge, len(p.Edges))
	for i := range p.Edges {
		edgeByID[p.Edges[i].ID] = &p.Edges[i]
	}
	degree := make(map[string]int)
	adjacency := make(map[string][]string)
	for _, eid := range l.EdgeIDs {
		e := edgeByID[eid]
		degree[e.FromID]++
		degree[e.ToID]++
		adjacency[e.FromID] = append(adjacency[e.FromID], e.ToID)
		adjacency[e.ToID] = append(adjacency[e.ToID], e.FromID)
	}
	if len(l.EdgeIDs) != len(adjacency) {
		return InvalidInput(l.ID, "loop edges do not form a simple cycle (edge/station count mismatch)")
	}
	for stationID, d := range degree {
		if d != 2 {
			return InvalidInput(l.ID, "loop station %s has degree %d, want 2", stationID, d)
		}
	}
	// Connectivity: walk from any station, verify all are reached.
	if len(adjacency) == 0 {
		return nil
	}
	var start string
	for k := range adjacency {
		start = k
		break
	}
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range adjacency[cur] {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	if len(visited) != len(adjacency) {
		return InvalidInput(l.ID, "loop edges are not a single connected cycle")
	}
	return nil
}

// IsDegenerate reports the spec §7 DegenerateInput condition: empty
// station set or empty edge set. A line with zero edges is not checked
// here.
func (p *Project) IsDegenerate() bool {
	return len(p.Stations) == 0 || len(p.Edges) == 0
}
