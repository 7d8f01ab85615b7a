package constraint

import (
	"github.com/metrostudio/core/internal/forcelayout"
	"github.com/metrostudio/core/internal/geometry"
)

// CompactLongEdges pulls the endpoints of any edge longer than
// 1.12*maxEdgeLength toward each other until it meets that bound (spec
// §4.3 step 3).
func CompactLongEdges(positions []geometry.Vec2, g *forcelayout.Graph, maxEdgeLength float64) {
	limit := 1.12 * maxEdgeLength
	for _, e := range g.Edges {
		from, to := positions[e.From], positions[e.To]
		d := to.Sub(from)
		dist := d.Len()
		if dist <= limit || dist < 1e-9 {
			continue
		}
		dir := d.Scale(1 / dist)
		excess := dist - limit
		half := dir.Scale(excess / 2)
		positions[e.From] = positions[e.From].Add(half)
		positions[e.To] = positions[e.To].Sub(half)
	}
}
