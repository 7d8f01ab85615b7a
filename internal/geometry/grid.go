package geometry

import "math"

// SpatialGrid buckets 2D points into fixed-size cells so that a nearby-
// pair query only has to look at a bounded number of candidates instead
// of every other point (spec §4.2 step 4: repulsion; step 8: minimum
// station spacing enforcement). It is rebuilt fresh per relaxation
// iteration — request-scoped, never cached across requests.
type SpatialGrid struct {
	cellSize float64
	cells    map[cellKey][]int
}

type cellKey struct{ cx, cy int64 }

// NewSpatialGrid builds an empty grid with the given cell size. cellSize
// must be > 0.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &SpatialGrid{cellSize: cellSize, cells: make(map[cellKey][]int)}
}

func (g *SpatialGrid) keyFor(p Vec2) cellKey {
	return cellKey{
		cx: int64(math.Floor(p.X / g.cellSize)),
		cy: int64(math.Floor(p.Y / g.cellSize)),
	}
}

// Insert adds point index idx at position p.
func (g *SpatialGrid) Insert(idx int, p Vec2) {
	k := g.keyFor(p)
	g.cells[k] = append(g.cells[k], idx)
}

// Build resets the grid and inserts every position, indexed by slice
// position.
func (g *SpatialGrid) Build(positions []Vec2) {
	g.cells = make(map[cellKey][]int, len(positions))
	for i, p := range positions {
		g.Insert(i, p)
	}
}

// QueryNeighbors calls fn once for every point index that shares a cell
// with p's cell or one of its 8 adjacent cells (i.e. every point within
// roughly cellSize of p, a superset that must still be distance-checked
// by the caller).
func (g *SpatialGrid) QueryNeighbors(p Vec2, fn func(idx int)) {
	center := g.keyFor(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			k := cellKey{center.cx + dx, center.cy + dy}
			for _, idx := range g.cells[k] {
				fn(idx)
			}
		}
	}
}

// ForEachPair invokes fn once for each unordered pair of point indices
// that fall within maxDist of each other (an upper bound enforced
// exactly by fn using the real distance; the grid only bounds the
// candidate set). Each pair is visited exactly once.
func (g *SpatialGrid) ForEachPair(positions []Vec2, maxDist float64, fn func(i, j int)) {
	// Scan as many cells out as maxDist spans, so pairs farther apart
	// than one cell are not missed when maxDist exceeds the cell size.
	reach := int64(math.Ceil(maxDist / g.cellSize))
	if reach < 1 {
		reach = 1
	}
	seen := make(map[[2]int]bool)
	for i, p := range positions {
		center := g.keyFor(p)
		for dx := -reach; dx <= reach; dx++ {
			for dy := -reach; dy <= reach; dy++ {
				for _, j := range g.cells[cellKey{center.cx + dx, center.cy + dy}] {
					if j == i {
						continue
					}
					a, b := i, j
					if a > b {
						a, b = b, a
					}
					key := [2]int{a, b}
					if seen[key] || positions[i].Dist(positions[j]) > maxDist {
						continue
					}
					seen[key] = true
					fn(a, b)
				}
			}
		}
	}
}
