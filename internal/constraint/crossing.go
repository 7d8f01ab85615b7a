package constraint

import (
	"github.com/metrostudio/core/internal/forcelayout"
	"github.com/metrostudio/core/internal/geometry"
)

// HardCrossingRepel directly moves (rather than force-accumulates) the
// endpoints of crossing non-incident edge pairs apart, run for
// cfg.HardCrossingPasses passes as part of post-processing (spec §4.3
// step 7).
func HardCrossingRepel(positions []geometry.Vec2, g *forcelayout.Graph, weight float64, passes int) {
	for pass := 0; pass < passes; pass++ {
		for i := 0; i < len(g.Edges); i++ {
			for j := i + 1; j < len(g.Edges); j++ {
				e1, e2 := g.Edges[i], g.Edges[j]
				if e1.From == e2.From || e1.From == e2.To || e1.To == e2.From || e1.To == e2.To {
					continue
				}
				a1, b1 := positions[e1.From], positions[e1.To]
				a2, b2 := positions[e2.From], positions[e2.To]
				if !geometry.SegmentsIntersectBoxFiltered(a1, b1, a2, b2) {
					continue
				}
				m1 := geometry.Midpoint(a1, b1)
				m2 := geometry.Midpoint(a2, b2)
				d := m1.Sub(m2)
				dist := d.Len()
				if dist < 1e-5 {
					// Coincident midpoints have no separating direction;
					// push along +X so the pair still moves apart.
					d = geometry.Vec2{X: 1, Y: 0}
					dist = 1
				}
				dir := d.Scale(1 / dist)
				mag := weight * 0.032
				push := dir.Scale(mag)
				positions[e1.From] = positions[e1.From].Add(push)
				positions[e1.To] = positions[e1.To].Add(push)
				positions[e2.From] = positions[e2.From].Sub(push)
				positions[e2.To] = positions[e2.To].Sub(push)
			}
		}
	}
}

// ProximityRepel directly nudges apart stations that sit unusually close
// together relative to minStationDistance (spec §4.2 step 6 / §4.3 step
// 8). Run calls it unconditionally. It is separate from
// EnforceMinStationDistance: pairs closer than 1.2 × minStationDistance
// are moved apart by 30% of their shortfall per call.
func ProximityRepel(positions []geometry.Vec2, minStationDistance float64) {
	if len(positions) < 2 {
		return
	}
	grid := geometry.NewSpatialGrid(minStationDistance)
	grid.Build(positions)
	grid.ForEachPair(positions, minStationDistance*1.2, func(i, j int) {
		d := positions[i].Sub(positions[j])
		dist := d.Len()
		threshold := minStationDistance * 1.2
		if dist >= threshold || dist < 1e-9 {
			return
		}
		dir := d.Scale(1 / dist)
		deficit := (threshold - dist) * 0.3
		half := dir.Scale(deficit / 2)
		positions[i] = positions[i].Add(half)
		positions[j] = positions[j].Sub(half)
	})
}
