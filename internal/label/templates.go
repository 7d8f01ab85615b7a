// Package label implements per-station label placement: candidate
// template scoring against incident edges, other labels, station
// centers, and non-incident edges (spec §4.6).
package label

import (
	"github.com/mattn/go-runewidth"

	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

const (
	charWidth  = 7.0
	lineHeight = 14.0
)

// template is one of the eight candidate label placements. side is the
// octilinear direction index (0..7, east=0 going clockwise in screen
// space where +Y is down) the label is considered to occupy for the
// incident-edge side penalty.
type template struct {
	name   string
	dx, dy float64
	anchor model.LabelAnchor
	side   int
}

// candidateTemplates returns the eight templates of spec §4.6, scaled by
// the configured label padding. E2/W2 are secondary east/west variants
// offset further down, used when the primary E/W slot is contested.
func candidateTemplates(padding float64) []template {
	return []template{
		{name: "E", dx: padding, dy: 0, anchor: model.AnchorStart, side: 0},
		{name: "SE", dx: padding * 0.72, dy: padding * 0.9, anchor: model.AnchorStart, side: 1},
		{name: "S", dx: 0, dy: padding + lineHeight*0.5, anchor: model.AnchorMiddle, side: 2},
		{name: "SW", dx: -padding * 0.72, dy: padding * 0.9, anchor: model.AnchorEnd, side: 3},
		{name: "W", dx: -padding, dy: 0, anchor: model.AnchorEnd, side: 4},
		{name: "N", dx: 0, dy: -padding - lineHeight*0.5, anchor: model.AnchorMiddle, side: 6},
		{name: "E2", dx: padding, dy: padding * 1.8, anchor: model.AnchorStart, side: 0},
		{name: "W2", dx: -padding, dy: padding * 1.8, anchor: model.AnchorEnd, side: 4},
	}
}

// labelSize estimates a name's rendered box size, wide-character-aware
// via go-runewidth, with a second line added when a secondary name is
// present (spec §4.6 "sized by the localized name").
func labelSize(names model.Names) (width, height float64) {
	w := runewidth.StringWidth(names.Primary)
	lines := 1.0
	if names.Secondary != "" {
		if sw := runewidth.StringWidth(names.Secondary); sw > w {
			w = sw
		}
		lines = 2
	}
	return float64(w) * charWidth, lines * lineHeight
}

// box computes the candidate's axis-aligned label rect given the
// station center and its anchor semantics: start grows right, end grows
// left, middle is centered horizontally.
func box(center geometry.Vec2, t template, width, height float64) geometry.Rect {
	return boxFor(center, t.dx, t.dy, t.anchor, width, height)
}

func boxFor(center geometry.Vec2, dx, dy float64, anchor model.LabelAnchor, width, height float64) geometry.Rect {
	x := center.X + dx
	y := center.Y + dy - height/2
	switch anchor {
	case model.AnchorStart:
		return geometry.Rect{X: x, Y: y, W: width, H: height}
	case model.AnchorEnd:
		return geometry.Rect{X: x - width, Y: y, W: width, H: height}
	default: // middle
		return geometry.Rect{X: x - width/2, Y: y, W: width, H: height}
	}
}

// BoxForPlacement recomputes a station's label bounding box from an
// already-chosen placement, for callers (e.g. the scoring package) that
// need the box geometry without re-running template selection.
func BoxForPlacement(center geometry.Vec2, names model.Names, placement model.LabelPlacement) geometry.Rect {
	width, height := labelSize(names)
	return boxFor(center, placement.DX, placement.DY, placement.Anchor, width, height)
}
