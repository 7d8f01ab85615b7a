package constraint

import (
	"math"

	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

// CorridorStraighten finds, for each line, the pass-through nodes
// (degree 2 within that line's own edge set, and not a global
// interchange) whose turn is within straightenTurnToleranceDeg of
// straight, and projects them onto the chord between their two
// line-local neighbors, blended by straightenStrength (spec §4.3 step 2).
func CorridorStraighten(positions []geometry.Vec2, lines []model.Line, edges []model.Edge, stationIndex map[string]int, interchange []bool, cfg model.LayoutConfig) {
	edgeByID := make(map[string]*model.Edge, len(edges))
	for i := range edges {
		edgeByID[edges[i].ID] = &edges[i]
	}

	toleranceRad := cfg.StraightenTurnToleranceDeg * math.Pi / 180

	for _, line := range lines {
		lineLocalNeighbors := make(map[int][]int)
		for _, eid := range line.EdgeIDs {
			e := edgeByID[eid]
			if e == nil {
				continue
			}
			fi, fok := stationIndex[e.FromID]
			ti, tok := stationIndex[e.ToID]
			if !fok || !tok {
				continue
			}
			lineLocalNeighbors[fi] = append(lineLocalNeighbors[fi], ti)
			lineLocalNeighbors[ti] = append(lineLocalNeighbors[ti], fi)
		}

		for node, neighbors := range lineLocalNeighbors {
			if len(neighbors) != 2 {
				continue
			}
			if node < len(interchange) && interchange[node] {
				continue
			}
			p, q := positions[neighbors[0]], positions[neighbors[1]]
			n := positions[node]

			dirToP := p.Sub(n)
			dirToQ := q.Sub(n)
			if dirToP.Len() < 1e-9 || dirToQ.Len() < 1e-9 {
				continue
			}
			angleBetween := angleBetweenVectors(dirToP, dirToQ)
			turn := math.Pi - angleBetween // 0 when perfectly straight
			if turn > toleranceRad {
				continue
			}

			projected := projectOntoLine(n, p, q)
			blended := n.Add(projected.Sub(n).Scale(cfg.StraightenStrength))
			positions[node] = blended
		}
	}
}

func angleBetweenVectors(a, b geometry.Vec2) float64 {
	dot := a.X*b.X + a.Y*b.Y
	la, lb := a.Len(), b.Len()
	if la < 1e-12 || lb < 1e-12 {
		return 0
	}
	cos := dot / (la * lb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// projectOntoLine projects point p onto the infinite line through a and b.
func projectOntoLine(p, a, b geometry.Vec2) geometry.Vec2 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq < 1e-12 {
		return p
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	return a.Add(ab.Scale(t))
}
