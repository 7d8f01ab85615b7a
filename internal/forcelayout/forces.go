package forcelayout

import (
	"math"

	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

// applyAnchor adds the anchor force (spec §4.2 step 2): each node is
// pulled toward its geographic seed position, preserving the skeleton.
func applyAnchor(forces, positions, seed []geometry.Vec2, weight float64) {
	for i := range forces {
		pull := seed[i].Sub(positions[i]).Scale(weight)
		forces[i] = forces[i].Add(pull)
	}
}

// applySpringAngle adds the spring+angle force (spec §4.2 step 3): a
// linear spring toward desiredLength, plus an angle-corrective term that
// rotates the edge toward a blend of its octilinear-snapped angle and
// its geographic-snapped angle.
func applySpringAngle(forces, positions, seed []geometry.Vec2, g *Graph, cfg model.LayoutConfig) {
	for _, e := range g.Edges {
		from, to := positions[e.From], positions[e.To]
		d := to.Sub(from)
		dist := d.Len()
		if dist < 1e-9 {
			continue
		}

		// Spring term.
		stretch := dist - e.DesiredLength
		springDir := d.Scale(1 / dist)
		springForce := springDir.Scale(stretch * cfg.SpringWeight)
		forces[e.From] = forces[e.From].Add(springForce)
		forces[e.To] = forces[e.To].Sub(springForce)

		// Angle term: blend octilinear-snapped current angle with the
		// geographic-snapped seed angle.
		currentAngle := geometry.Angle(d.X, d.Y)
		snappedAngle := geometry.SnapAngle(currentAngle)
		geoVec := seed[e.To].Sub(seed[e.From])
		geoAngle := geometry.SnapAngle(geometry.Angle(geoVec.X, geoVec.Y))
		targetAngle := blendAngle(snappedAngle, geoAngle, cfg.GeoAngleBias)

		targetDir := geometry.Vec2{X: math.Cos(targetAngle), Y: math.Sin(targetAngle)}
		correction := targetDir.Scale(dist).Sub(d).Scale(cfg.AngleWeight)
		forces[e.From] = forces[e.From].Sub(correction)
		forces[e.To] = forces[e.To].Add(correction)
	}
}

// blendAngle blends from angle a toward b by bias in [0,1], taking the
// shorter circular path.
func blendAngle(a, b, bias float64) float64 {
	diff := b - a
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return geometry.NormalizeAngle(a + diff*bias)
}

// applyRepulsion adds pairwise repulsion (spec §4.2 step 4) between nodes
// closer than 2.5*minStationDistance, using a spatial hash grid with
// cell size 1.6*minStationDistance to bound the candidate set.
func applyRepulsion(forces, positions []geometry.Vec2, cfg model.LayoutConfig) {
	if len(positions) < 2 {
		return
	}
	cellSize := 1.6 * cfg.MinStationDistance
	grid := geometry.NewSpatialGrid(cellSize)
	grid.Build(positions)
	maxDist := 2.5 * cfg.MinStationDistance

	grid.ForEachPair(positions, maxDist, func(i, j int) {
		d := positions[i].Sub(positions[j])
		dist := d.Len()
		if dist < 1e-5 {
			dist = 1e-5
		}
		mag := geometry.SafeDiv(cfg.RepulsionWeight, dist*dist) * 0.023
		dir := d.Scale(1 / dist)
		push := dir.Scale(mag)
		forces[i] = forces[i].Add(push)
		forces[j] = forces[j].Sub(push)
	})
}

// applyJunctionSpread adds the junction-spread force (spec §4.2 step 5):
// at every node of degree >= 3, neighbors whose outgoing angular gap is
// below pi/4.4 get pushed apart perpendicular to their bisector.
func applyJunctionSpread(forces, positions []geometry.Vec2, g *Graph, weight float64) {
	const minGap = math.Pi / 4.4
	for node, neighbors := range g.Adjacency {
		if len(neighbors) < 3 {
			continue
		}
		dirs := make([]dirEntry, len(neighbors))
		for i, nb := range neighbors {
			d := positions[nb.Node].Sub(positions[node])
			dirs[i] = dirEntry{neighbor: nb.Node, angle: geometry.Angle(d.X, d.Y)}
		}
		sortByAngle(dirs)

		degreeScale := 1.0
		if len(neighbors) >= 4 {
			degreeScale = 1.4
		}

		for i := 0; i < len(dirs); i++ {
			j := (i + 1) % len(dirs)
			gap := dirs[j].angle - dirs[i].angle
			if j == 0 {
				gap += 2 * math.Pi
			}
			if gap >= minGap {
				continue
			}
			bisector := (dirs[i].angle + dirs[j].angle) / 2
			if j == 0 {
				bisector = geometry.NormalizeAngle(dirs[i].angle + gap/2)
			}
			perp := bisector + math.Pi/2
			perpVec := geometry.Vec2{X: math.Cos(perp), Y: math.Sin(perp)}
			overlap := minGap - gap
			mag := overlap * 0.38 * weight * degreeScale
			push := perpVec.Scale(mag)
			forces[dirs[i].neighbor] = forces[dirs[i].neighbor].Sub(push)
			forces[dirs[j].neighbor] = forces[dirs[j].neighbor].Add(push)
		}
	}
}

type dirEntry struct {
	neighbor int
	angle    float64
}

func sortByAngle(dirs []dirEntry) {
	for i := 1; i < len(dirs); i++ {
		for k := i; k > 0 && dirs[k].angle < dirs[k-1].angle; k-- {
			dirs[k], dirs[k-1] = dirs[k-1], dirs[k]
		}
	}
}

// applyCrossingRepel pushes the midpoints of every pair of crossing,
// non-incident edges apart (spec §4.2 step 7). Called every 14
// iterations by the relaxation loop. Uses the box pre-filter before the
// exact intersection test.
func applyCrossingRepel(forces, positions []geometry.Vec2, g *Graph, weight float64) {
	for i := 0; i < len(g.Edges); i++ {
		for j := i + 1; j < len(g.Edges); j++ {
			e1, e2 := g.Edges[i], g.Edges[j]
			if sharesEndpoint(e1, e2) {
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
			forces[e1.From] = forces[e1.From].Add(push)
			forces[e1.To] = forces[e1.To].Add(push)
			forces[e2.From] = forces[e2.From].Sub(push)
			forces[e2.To] = forces[e2.To].Sub(push)
		}
	}
}

func sharesEndpoint(a, b EdgeRecord) bool {
	return a.From == b.From || a.From == b.To || a.To == b.From || a.To == b.To
}
