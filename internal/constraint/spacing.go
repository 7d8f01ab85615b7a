package constraint

import (
	"github.com/metrostudio/core/internal/forcelayout"
	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

// EnforceMinEdgeLength pushes the endpoints of any edge shorter than
// cfg.MinEdgeLength apart along the edge's current direction until it
// meets the bound (spec §4.4 "Minimum-edge-length enforcement").
func EnforceMinEdgeLength(positions []geometry.Vec2, g *forcelayout.Graph, cfg model.LayoutConfig) {
	for _, e := range g.Edges {
		from, to := positions[e.From], positions[e.To]
		d := to.Sub(from)
		dist := d.Len()
		if dist >= cfg.MinEdgeLength || dist < 1e-9 {
			continue
		}
		dir := d.Scale(1 / dist)
		deficit := cfg.MinEdgeLength - dist
		half := dir.Scale(deficit / 2)
		positions[e.From] = positions[e.From].Sub(half)
		positions[e.To] = positions[e.To].Add(half)
	}
}

// EnforceMinStationDistance pushes apart any two stations closer than
// cfg.MinStationDistance, using a spatial grid to bound candidate pairs
// (spec §4.4 "Minimum-station-spacing enforcement").
func EnforceMinStationDistance(positions []geometry.Vec2, cfg model.LayoutConfig) {
	if len(positions) < 2 {
		return
	}
	grid := geometry.NewSpatialGrid(cfg.MinStationDistance)
	grid.Build(positions)
	grid.ForEachPair(positions, cfg.MinStationDistance, func(i, j int) {
		d := positions[i].Sub(positions[j])
		dist := d.Len()
		if dist >= cfg.MinStationDistance {
			return
		}
		if dist < 1e-9 {
			// Degenerate coincident points: nudge along an arbitrary axis.
			d = geometry.Vec2{X: 1e-3, Y: 0}
			dist = 1e-3
		}
		dir := d.Scale(1 / dist)
		deficit := cfg.MinStationDistance - dist
		half := dir.Scale(deficit / 2)
		positions[i] = positions[i].Add(half)
		positions[j] = positions[j].Sub(half)
	})
}

// RefineSpacingAndOctilinearity alternates minimum-edge-length / minimum-
// station-spacing enforcement with octilinear exact passes for
// cfg.StationSpacingRefineCycles cycles, since each constraint can
// violate the other (spec §4.4: "the fixed cycle count is the
// termination rule — no convergence proof is attempted").
func RefineSpacingAndOctilinearity(positions []geometry.Vec2, g *forcelayout.Graph, cfg model.LayoutConfig) {
	for cycle := 0; cycle < cfg.StationSpacingRefineCycles; cycle++ {
		EnforceMinEdgeLength(positions, g, cfg)
		EnforceMinStationDistance(positions, cfg)
		exactPhase(positions, g)
	}
}
