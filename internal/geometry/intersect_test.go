package geometry_test

import (
	"testing"

	"github.com/metrostudio/core/internal/geometry"
)

func TestSegmentsIntersectCrossing(t *testing.T) {
	a, b := geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 10, Y: 10}
	c, d := geometry.Vec2{X: 0, Y: 10}, geometry.Vec2{X: 10, Y: 0}
	if !geometry.SegmentsIntersect(a, b, c, d) {
		t.Fatal("expected crossing segments to intersect")
	}
}

func TestSegmentsIntersectParallelDoNotCross(t *testing.T) {
	a, b := geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 10, Y: 0}
	c, d := geometry.Vec2{X: 0, Y: 5}, geometry.Vec2{X: 10, Y: 5}
	if geometry.SegmentsIntersect(a, b, c, d) {
		t.Fatal("expected parallel segments not to intersect")
	}
}

func TestSegmentsIntersectBoxFilteredShortCircuits(t *testing.T) {
	a, b := geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 1, Y: 1}
	c, d := geometry.Vec2{X: 100, Y: 100}, geometry.Vec2{X: 101, Y: 101}
	if geometry.SegmentsIntersectBoxFiltered(a, b, c, d) {
		t.Fatal("far-apart segments should not intersect")
	}
}

func TestClampDisplacementWithinLimitUnchanged(t *testing.T) {
	seed := geometry.Vec2{X: 0, Y: 0}
	p := geometry.Vec2{X: 5, Y: 0}
	got := geometry.ClampDisplacement(p, seed, 10)
	if got != p {
		t.Fatalf("expected unchanged position, got %+v", got)
	}
}

func TestClampDisplacementBeyondLimitRetracted(t *testing.T) {
	seed := geometry.Vec2{X: 0, Y: 0}
	p := geometry.Vec2{X: 100, Y: 0}
	got := geometry.ClampDisplacement(p, seed, 10)
	if d := got.Dist(seed); d > 10.0001 {
		t.Fatalf("expected clamped distance <= 10, got %g", d)
	}
}

func TestPointToRectDistanceInsideIsZero(t *testing.T) {
	r := geometry.Rect{X: 0, Y: 0, W: 10, H: 10}
	if d := geometry.PointToRectDistance(geometry.Vec2{X: 5, Y: 5}, r); d != 0 {
		t.Fatalf("expected 0 distance inside rect, got %g", d)
	}
}

func TestRectOverlapArea(t *testing.T) {
	a := geometry.Rect{X: 0, Y: 0, W: 10, H: 10}
	b := geometry.Rect{X: 5, Y: 5, W: 10, H: 10}
	if got, want := a.OverlapArea(b), 25.0; got != want {
		t.Fatalf("OverlapArea = %g, want %g", got, want)
	}
}
