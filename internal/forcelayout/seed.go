// Package forcelayout implements the optimizer's seed normalization and
// force-relaxation loop (spec §4.1, §4.2 — "Force model" in the system
// overview). It is a pure function of its inputs: every array it touches
// is allocated fresh per call and owned by the caller on return.
package forcelayout

import (
	"math"

	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

// NormalizeSeed computes each station's raw (lng, lat) treated as 2D,
// then scales and translates the whole set so its bounding-box span
// (the longer of width/height) maps to cfg.NormalizeTargetSpan *
// cfg.GeoSeedScale, with the minimum corner translated to the origin
// (spec §4.1). These are the "anchor" positions and are never mutated
// after this call.
func NormalizeSeed(stations []model.Station, cfg model.LayoutConfig) []geometry.Vec2 {
	raw := make([]geometry.Vec2, len(stations))
	for i, s := range stations {
		raw[i] = geometry.Vec2{X: s.Lng, Y: s.Lat}
	}
	if len(raw) == 0 {
		return raw
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range raw {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	width := maxX - minX
	height := maxY - minY
	span := math.Max(width, height)
	if span < 1e-9 {
		span = 1
	}

	scale := (cfg.NormalizeTargetSpan * cfg.GeoSeedScale) / span
	seed := make([]geometry.Vec2, len(raw))
	for i, p := range raw {
		seed[i] = geometry.Vec2{
			X: (p.X - minX) * scale,
			Y: (p.Y - minY) * scale,
		}
	}
	return seed
}

// CopyPositions returns a deep copy of src, used to build the mutable
// "working positions" array from the immutable seed.
func CopyPositions(src []geometry.Vec2) []geometry.Vec2 {
	dst := make([]geometry.Vec2, len(src))
	copy(dst, src)
	return dst
}
