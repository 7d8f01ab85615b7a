package lineplan

import (
	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

// Plan runs the direction-planning DP over every line's chains for
// cfg.LineDirectionPasses passes, mutating positions in place and
// returning the final edgeId -> octilinear direction index map (spec
// §4.5, feeding layoutMeta.edgeDirections in the optimizer response).
func Plan(lines []model.Line, edges []model.Edge, stationIndex map[string]int, positions []geometry.Vec2, degree []int, interchange []bool, cfg model.LayoutConfig) map[string]int {
	edgeByID := make(map[string]*model.Edge, len(edges))
	for i := range edges {
		edgeByID[edges[i].ID] = &edges[i]
	}

	var chainsByLine [][]Chain
	for _, line := range lines {
		chainsByLine = append(chainsByLine, ExtractChains(line, edgeByID, stationIndex))
	}

	edgeDirections := make(map[string]int)

	passes := cfg.LineDirectionPasses
	if passes < 1 {
		passes = 1
	}
	for pass := 0; pass < passes; pass++ {
		for _, chains := range chainsByLine {
			for _, chain := range chains {
				n := len(chain.EdgeIDs)
				if n == 0 {
					continue
				}
				observed := observedAngles(chain, positions)
				mainIdx := geometry.SnapIndex(mainDirection(chain, positions, observed))

				var directions []int
				if n == 1 {
					directions = []int{geometry.SnapIndex(observed[0])}
				} else {
					directions = SolveChain(chain, positions, cfg)
					directions = SmoothShortRuns(directions, observed, mainIdx, cfg)
				}

				targets := MaterializeTargets(chain, directions, positions)
				ApplyBlend(chain, targets, positions, degree, interchange, cfg)

				for i, eid := range chain.EdgeIDs {
					edgeDirections[eid] = directions[i]
				}
			}
		}
	}

	return edgeDirections
}
