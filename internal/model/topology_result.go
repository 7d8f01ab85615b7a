package model

import "math"

// LeftOpenIndex is the sentinel trunk index for the left-open end of an
// interval branch, one not attached to the trunk (spec §3: -1 for
// left-open; RightOpenIndex below is +Inf for right-open).
const (
	LeftOpenIndex = -1
)

// RightOpenIndex is +Inf represented as a float64 so Interval.ToIndex can
// be compared and sorted uniformly with finite indices.
var RightOpenIndex = math.Inf(1)

// Interval is a branch that diverges from the trunk at station index
// fromIndex and rejoins it at toIndex (spec §3). Either endpoint station
// id may be empty when the corresponding index is open.
type Interval struct {
	FromStationID string
	ToStationID   string
	FromIndex     float64 // -1 for left-open
	ToIndex       float64 // +Inf for right-open
	StationIDs    []string
	EdgeIDs       []string
}

// MidHangingBranch is a dead-end branch attached to a non-endpoint trunk
// station.
type MidHangingBranch struct {
	AttachToStationID string
	StationIDs        []string
	EdgeIDs           []string
}

// BranchTopologyResult is the decomposition of one connected component of
// a line (spec §3/§4.8-§4.11).
type BranchTopologyResult struct {
	Valid           bool
	Reason          string
	IsLoop          bool
	TrunkStationIDs []string
	TrunkEdgeIDs    []string
	Intervals       []Interval
	MidBranches     []MidHangingBranch
}

// Invalid builds a rejected result carrying a human-readable reason, per
// spec §7's TopologyUnsupported handling: never fatal to the rest of the
// analysis, just flagged.
func Invalid(reason string) BranchTopologyResult {
	return BranchTopologyResult{Valid: false, Reason: reason}
}
