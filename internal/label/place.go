package label

import (
	"sort"

	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

// Place chooses one of the eight candidate templates per station and
// returns the stationId -> placement map (spec §4.6). positions and
// edgeDirections come from the optimizer's already-laid-out state:
// positions holds each station's current display position, and
// edgeDirections holds each edge's assigned octilinear direction index.
func Place(stations []model.Station, edges []model.Edge, stationIndex map[string]int, positions []geometry.Vec2, edgeDirections map[string]int, cfg model.LayoutConfig) map[string]model.LabelPlacement {
	templates := candidateTemplates(cfg.LabelPadding)

	incidentByStation := make([][]int, len(stations)) // direction indices of each station's incident edges
	type resolvedEdge struct {
		fromID, toID string
		seg          segment
	}
	var resolved []resolvedEdge
	for _, e := range edges {
		fi, fok := stationIndex[e.FromID]
		ti, tok := stationIndex[e.ToID]
		if !fok || !tok {
			continue
		}
		d, ok := edgeDirections[e.ID]
		if ok {
			incidentByStation[fi] = append(incidentByStation[fi], d)
			incidentByStation[ti] = append(incidentByStation[ti], reverseDirection(d))
		}
		resolved = append(resolved, resolvedEdge{fromID: e.FromID, toID: e.ToID, seg: segment{from: positions[fi], to: positions[ti]}})
	}

	order := priorityOrder(stations)

	result := make(map[string]model.LabelPlacement, len(stations))
	var placedBoxes []geometry.Rect

	for _, idx := range order {
		st := stations[idx]
		center := positions[idx]
		width, height := labelSize(st.Names)

		incidentDirections := make(map[int]int, len(incidentByStation[idx]))
		for _, d := range incidentByStation[idx] {
			incidentDirections[d]++
		}

		otherCenters := make([]geometry.Vec2, 0, len(positions)-1)
		for j, p := range positions {
			if j != idx {
				otherCenters = append(otherCenters, p)
			}
		}

		nonIncident := make([]segment, 0, len(resolved))
		for _, re := range resolved {
			if re.fromID == st.ID || re.toID == st.ID {
				continue
			}
			nonIncident = append(nonIncident, re.seg)
		}

		bestScore := 0.0
		var bestTemplate template
		var bestBox geometry.Rect
		first := true
		for _, t := range templates {
			b := box(center, t, width, height)
			s := scoreCandidate(b, t, incidentDirections, placedBoxes, otherCenters, nonIncident)
			if first || s < bestScore {
				first = false
				bestScore = s
				bestTemplate = t
				bestBox = b
			}
		}

		result[st.ID] = model.LabelPlacement{DX: bestTemplate.dx, DY: bestTemplate.dy, Anchor: bestTemplate.anchor}
		placedBoxes = append(placedBoxes, bestBox)
	}

	return result
}

// reverseDirection returns the octilinear index pointing the opposite
// way (180 degrees) of d.
func reverseDirection(d int) int {
	return (d + geometry.DirectionCount/2) % geometry.DirectionCount
}

// priorityOrder returns station indices ordered per spec §4.6:
// interchanges first, then by degree (line-membership count)
// descending, then by name length descending.
func priorityOrder(stations []model.Station) []int {
	order := make([]int, len(stations))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := stations[order[a]], stations[order[b]]
		ia, ib := sa.IsInterchange(), sb.IsInterchange()
		if ia != ib {
			return ia
		}
		if sa.Degree() != sb.Degree() {
			return sa.Degree() > sb.Degree()
		}
		return len(sa.Names.Primary) > len(sb.Names.Primary)
	})
	return order
}
