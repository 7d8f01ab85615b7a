package geometry_test

import (
	"testing"

	"github.com/metrostudio/core/internal/geometry"
)

func TestSpatialGridForEachPairFindsCloseOnly(t *testing.T) {
	positions := []geometry.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 100, Y: 100},
	}
	g := geometry.NewSpatialGrid(10)
	g.Build(positions)

	var pairs [][2]int
	g.ForEachPair(positions, 5, func(i, j int) {
		pairs = append(pairs, [2]int{i, j})
	})
	if len(pairs) != 1 {
		t.Fatalf("expected exactly 1 close pair, got %d: %v", len(pairs), pairs)
	}
	if pairs[0] != [2]int{0, 1} {
		t.Fatalf("expected pair (0,1), got %v", pairs[0])
	}
}

func TestSpatialGridNoSelfPairs(t *testing.T) {
	positions := []geometry.Vec2{{X: 0, Y: 0}}
	g := geometry.NewSpatialGrid(10)
	g.Build(positions)
	called := false
	g.ForEachPair(positions, 100, func(i, j int) { called = true })
	if called {
		t.Fatal("single point should produce no pairs")
	}
}
