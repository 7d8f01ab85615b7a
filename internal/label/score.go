package label

import (
	"github.com/metrostudio/core/internal/geometry"
)

// segment is a plain edge endpoint pair, used for the non-incident-edge
// intersection penalty.
type segment struct {
	from, to geometry.Vec2
}

// scoreCandidate evaluates one template's box against the four penalty
// terms of spec §4.6. Lower is better.
func scoreCandidate(b geometry.Rect, t template, incidentDirections map[int]int, placedBoxes []geometry.Rect, otherCenters []geometry.Vec2, nonIncidentEdges []segment) float64 {
	var score float64

	score += float64(incidentDirections[t.side]) * 11

	for _, other := range placedBoxes {
		area := b.OverlapArea(other)
		if area > 0 {
			score += area*0.34 + 180
		}
	}

	for _, oc := range otherCenters {
		d := geometry.PointToRectDistance(oc, b)
		if d < 8.5 {
			score += (8.5 - d) * 12
		}
	}

	for _, e := range nonIncidentEdges {
		if geometry.SegmentIntersectsRect(e.from, e.to, b) {
			score += 52
		}
	}

	return score
}
