// Package constraint implements the optimizer's post-relaxation
// hard-projection passes: octilinear snapping (soft and exact), minimum
// edge length, and minimum station spacing (spec §2 "Constraint solver",
// §4.3, §4.4).
package constraint

import (
	"math"

	"github.com/metrostudio/core/internal/forcelayout"
	"github.com/metrostudio/core/internal/geometry"
)

// SoftSnap nudges every edge a fraction (ratio) of the way from its
// current angle toward the nearest octilinear direction, moving both
// endpoints by half the correction each (spec §4.3 steps 1 and 4).
func SoftSnap(positions []geometry.Vec2, g *forcelayout.Graph, ratio float64) {
	for _, e := range g.Edges {
		from, to := positions[e.From], positions[e.To]
		d := to.Sub(from)
		dist := d.Len()
		if dist < 1e-9 {
			continue
		}
		current := geometry.Angle(d.X, d.Y)
		target := geometry.SnapAngle(current)
		targetVec := geometry.Vec2{X: math.Cos(target), Y: math.Sin(target)}.Scale(dist)
		delta := targetVec.Sub(d).Scale(ratio)
		half := delta.Scale(0.5)
		positions[e.From] = positions[e.From].Sub(half)
		positions[e.To] = positions[e.To].Add(half)
	}
}
