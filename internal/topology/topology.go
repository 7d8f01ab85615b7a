// Package topology implements the branch topology analyzer: per-line
// connected-component splitting, degree-3 spur disambiguation, BFS
// orientation into a directed flow, and trunk/branch extraction (spec
// §4.8-§4.11). Results are reported as model.BranchTopologyResult, the
// same DTO spec §3 and the JSON/XML export layers consume.
package topology

import "github.com/metrostudio/core/internal/model"

// Analyze runs the full branch topology pipeline for one line: it
// collects the edges tagged with lineID, splits them into connected
// components, and analyzes each independently (spec §6.2 AnalyzeResponse
// is one BranchTopologyResult per connected component).
func Analyze(lineID string, stations []model.Station, edges []model.Edge) []model.BranchTopologyResult {
	stationByID := make(map[string]model.Station, len(stations))
	for _, s := range stations {
		stationByID[s.ID] = s
	}

	lineEdges := collectLineEdges(edges, lineID)
	if len(lineEdges) == 0 {
		// Spec §7 DegenerateInput: a line with zero edges is not an
		// error, but the analyzer still owes the caller a result rather
		// than a silently empty list.
		return []model.BranchTopologyResult{model.Invalid("line " + lineID + " has no edges")}
	}

	components := splitComponents(lineEdges)

	results := make([]model.BranchTopologyResult, 0, len(components))
	for _, comp := range components {
		results = append(results, analyzeComponent(comp, stationByID))
	}
	return results
}

func analyzeComponent(comp *component, stationByID map[string]model.Station) model.BranchTopologyResult {
	if offender, ok := comp.findDegreeAtLeast(4); ok {
		return model.Invalid("node " + offender + " has degree >= 4, which branch topology does not support")
	}

	spurs, reason := resolveSpurs(comp, stationByID)
	if reason != "" {
		return model.Invalid(reason)
	}

	oriented, reason := orient(comp, spurs)
	if reason != "" {
		return model.Invalid(reason)
	}

	return extractTrunkAndBranches(comp, oriented)
}
