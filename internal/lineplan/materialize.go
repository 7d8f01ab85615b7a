package lineplan

import "github.com/metrostudio/core/internal/geometry"

// MaterializeTargets extends target positions along the assigned
// directions starting from the chain's first node's current position,
// using each edge's current length, then redistributes the closure
// error linearly across the chain so the last target lands exactly on
// the last node's current position (or, for a cycle, so the walk closes
// back on the first node) — spec §4.5 "Materialize the chain".
func MaterializeTargets(chain Chain, directions []int, positions []geometry.Vec2) []geometry.Vec2 {
	n := len(directions)
	targets := make([]geometry.Vec2, len(chain.NodePath))
	targets[0] = positions[chain.NodePath[0]]

	lengths := make([]float64, n)
	for i := 0; i < n; i++ {
		lengths[i] = positions[chain.NodeAt(i)].Dist(positions[chain.NodeAfter(i)])
	}

	if !chain.IsCycle {
		for i := 0; i < n; i++ {
			dx, dy := geometry.IndexVector(directions[i])
			targets[i+1] = targets[i].Add(geometry.Vec2{X: dx, Y: dy}.Scale(lengths[i]))
		}
		last := positions[chain.NodePath[n]]
		closure := last.Sub(targets[n])
		for i := 1; i <= n; i++ {
			frac := float64(i) / float64(n)
			targets[i] = targets[i].Add(closure.Scale(frac))
		}
		return targets
	}

	raw := make([]geometry.Vec2, n+1)
	raw[0] = targets[0]
	for i := 0; i < n; i++ {
		dx, dy := geometry.IndexVector(directions[i])
		raw[i+1] = raw[i].Add(geometry.Vec2{X: dx, Y: dy}.Scale(lengths[i]))
	}
	closure := raw[0].Sub(raw[n])
	for i := 1; i < n; i++ {
		frac := float64(i) / float64(n)
		targets[i] = raw[i].Add(closure.Scale(frac))
	}
	return targets
}
