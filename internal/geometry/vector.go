package geometry

import "math"

// Vec2 is a 2D vector used for force accumulators and positions within
// the geometry/force packages. It mirrors model.Point but stays
// dependency-free so geometry never imports model.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2     { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2     { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Normalized returns v scaled to unit length, or the zero vector if v is
// (near) zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// SafeDiv returns a/b but substitutes a minimum magnitude for b when b is
// (near) zero, per the spec §9 division-by-zero guard.
func SafeDiv(a, b float64) float64 {
	if math.Abs(b) < 1e-5 {
		if b < 0 {
			b = -1e-5
		} else {
			b = 1e-5
		}
	}
	return a / b
}

// Sanitize replaces a NaN or infinite value with 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Rect is an axis-aligned bounding box, used for label boxes and the
// box pre-filter before exact segment intersection.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rects intersect (touching edges do not
// count as overlap).
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// OverlapArea returns the area of intersection between r and o, 0 if
// disjoint.
func (r Rect) OverlapArea(o Rect) float64 {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.W, o.X+o.W)
	y1 := math.Min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return 0
	}
	return (x1 - x0) * (y1 - y0)
}

// Center returns the rect's center point.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// BoundsOf returns the axis-aligned bounding box of a segment, used as
// the cheap pre-filter before SegmentsIntersect.
func BoundsOf(a, b Vec2) Rect {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// PointToSegmentDistance returns the shortest distance from p to the
// segment ab.
func PointToSegmentDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	abLenSq := ab.X*ab.X + ab.Y*ab.Y
	if abLenSq < 1e-12 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := a.Add(ab.Scale(t))
	return p.Dist(proj)
}

// PointToRectDistance returns the shortest distance from p to the
// boundary/interior of rect r (0 if p is inside r).
func PointToRectDistance(p Vec2, r Rect) float64 {
	dx := math.Max(r.X-p.X, math.Max(0, p.X-(r.X+r.W)))
	dy := math.Max(r.Y-p.Y, math.Max(0, p.Y-(r.Y+r.H)))
	return math.Hypot(dx, dy)
}
