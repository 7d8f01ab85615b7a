// Package model holds the value types shared by the layout optimizer and
// the branch-topology analyzer: stations, edges, lines, and the project
// that groups them. Nothing in this package owns long-lived state — every
// value here is indexed by integer position within a request, never by
// pointer identity, per the index-based-arena design note.
package model

import "math"

// LineStatus is the operating status of a line.
type LineStatus string

const (
	StatusOpen             LineStatus = "open"
	StatusUnderConstruction LineStatus = "under-construction"
	StatusProposed          LineStatus = "proposed"
)

// Point is a 2D Cartesian coordinate, used for both geographic seed
// positions (lng/lat, pre-scale) and working/display positions.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Len returns the Euclidean length of p treated as a vector from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// Finite reports whether both coordinates are finite (not NaN/Inf).
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Names holds a station or line's localized display name. The two-script
// split (zh/en) is the shape the source project exchange format uses;
// any other locale pair is represented the same way.
type Names struct {
	Primary   string `json:"name"`
	Secondary string `json:"nameEn,omitempty"`
}

// Station is a node of the network. LineIDs is the set of lines this
// station belongs to; membership of two or more makes it an interchange.
type Station struct {
	ID        string
	Names     Names
	Lng, Lat  float64
	LineIDs   map[string]bool
	DisplayPos Point // computed by the optimizer; zero until then
}

// IsInterchange reports whether the station belongs to 2+ lines.
func (s Station) IsInterchange() bool { return len(s.LineIDs) >= 2 }

// Degree returns how many distinct lines reference the station. Graph
// degree (incident edges) is a separate, request-scoped quantity computed
// by the optimizer/analyzer, not stored on the station itself.
func (s Station) Degree() int { return len(s.LineIDs) }

// Edge is a direct connection between two stations, possibly shared by
// several lines.
type Edge struct {
	ID            string
	FromID, ToID  string
	Waypoints     []Point // geographic; len>=2 when present, else endpoints used
	LengthMeters  float64
	SharedByLines map[string]bool
}

// Line is an ordered collection of edges constituting one route.
type Line struct {
	ID      string
	Names   Names
	Color   string
	Status  LineStatus
	Style   string
	IsLoop  bool
	EdgeIDs []string
}

// LabelAnchor is the text-anchor side for a placed label.
type LabelAnchor string

const (
	AnchorStart  LabelAnchor = "start"
	AnchorMiddle LabelAnchor = "middle"
	AnchorEnd    LabelAnchor = "end"
)

// LabelPlacement is one station's chosen label offset and anchor.
type LabelPlacement struct {
	DX, DY float64
	Anchor LabelAnchor
}

// LayoutMeta is the optimizer's output beyond positions: label placements
// keyed by station id, and octilinear direction indices (0..7) keyed by
// edge id.
type LayoutMeta struct {
	StationLabels  map[string]LabelPlacement
	EdgeDirections map[string]int
}

// Project groups the collections the core operates over, plus the last
// known layout config/meta. The core treats it as read-only: it never
// mutates a Project in place, only returns proposed replacements for
// LayoutMeta and each station's DisplayPos.
type Project struct {
	ID       string
	Name     string
	Region   string
	Stations []Station
	Edges    []Edge
	Lines    []Line
	Config   LayoutConfig
	Meta     LayoutMeta
}

// StationIndex returns a lookup from station id to its index in
// p.Stations, built fresh each call (request-scoped, never cached on the
// Project itself).
func (p *Project) StationIndex() map[string]int {
	idx := make(map[string]int, len(p.Stations))
	for i, s := range p.Stations {
		idx[s.ID] = i
	}
	return idx
}

// EdgeIndex returns a lookup from edge id to its index in p.Edges.
func (p *Project) EdgeIndex() map[string]int {
	idx := make(map[string]int, len(p.Edges))
	for i, e := range p.Edges {
		idx[e.ID] = i
	}
	return idx
}

// LineByID returns the line with the given id, or nil.
func (p *Project) LineByID(id string) *Line {
	for i := range p.Lines {
		if p.Lines[i].ID == id {
			return &p.Lines[i]
		}
	}
	return nil
}
