package geometry

import "math"

// SegmentsIntersect reports whether open segments p1p2 and p3p4 cross.
// Shared endpoints do not count as a crossing (non-incident-edge tests
// exclude edges that share a station before calling this). Uses the
// standard orientation-sign test; collinear overlap is treated as no
// crossing since the optimizer only cares about transversal crossings
// between octilinear segments.
func SegmentsIntersect(p1, p2, p3, p4 Vec2) bool {
	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return false
}

func orientation(a, b, c Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// SegmentsIntersectBoxFiltered is SegmentsIntersect behind the cheap
// axis-aligned-box pre-filter the spec calls for (§4.2 step 7): if the
// bounding boxes of the two segments don't overlap, they can't cross.
func SegmentsIntersectBoxFiltered(p1, p2, p3, p4 Vec2) bool {
	b1 := BoundsOf(p1, p2)
	b2 := BoundsOf(p3, p4)
	if !boxesOverlapInclusive(b1, b2) {
		return false
	}
	return SegmentsIntersect(p1, p2, p3, p4)
}

func boxesOverlapInclusive(a, b Rect) bool {
	return a.X <= b.X+b.W && a.X+a.W >= b.X && a.Y <= b.Y+b.H && a.Y+a.H >= b.Y
}

// SegmentIntersectsRect reports whether segment ab crosses rect r's
// boundary or has an endpoint inside it, used by the label placer to
// penalize candidate boxes that intersect a non-incident edge (spec
// §4.6 "Intersection with non-incident edges").
func SegmentIntersectsRect(a, b Vec2, r Rect) bool {
	if !boxesOverlapInclusive(BoundsOf(a, b), r) {
		return false
	}
	if pointInRect(a, r) || pointInRect(b, r) {
		return true
	}
	corners := [4]Vec2{
		{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X + r.W, r.Y + r.H}, {r.X, r.Y + r.H},
	}
	for i := 0; i < 4; i++ {
		c1, c2 := corners[i], corners[(i+1)%4]
		if SegmentsIntersect(a, b, c1, c2) {
			return true
		}
	}
	return false
}

func pointInRect(p Vec2, r Rect) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Midpoint returns the midpoint of segment ab.
func Midpoint(a, b Vec2) Vec2 {
	return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// ClampDisplacement radially retracts p toward seed if it has moved more
// than limit away from it (spec §4.2 step 9 / §4.4 post-DP clamp).
func ClampDisplacement(p, seed Vec2, limit float64) Vec2 {
	d := p.Sub(seed)
	dist := d.Len()
	if dist <= limit || dist < 1e-12 {
		return p
	}
	return seed.Add(d.Scale(limit / dist))
}

// CircularMeanAngle returns the length-weighted circular mean of a set of
// angles (radians), used by the line-direction DP's degenerate/cyclic
// main-direction fallback (spec §4.5).
func CircularMeanAngle(angles []float64, weights []float64) float64 {
	var sx, sy float64
	for i, a := range angles {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		sx += w * math.Cos(a)
		sy += w * math.Sin(a)
	}
	if math.Abs(sx) < 1e-12 && math.Abs(sy) < 1e-12 {
		return 0
	}
	return Angle(sx, sy)
}
