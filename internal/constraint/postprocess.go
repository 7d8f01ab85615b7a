package constraint

import (
	"github.com/metrostudio/core/internal/forcelayout"
	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

// Run sequences the full post-relaxation pipeline of spec §4.3 over the
// positions produced by forcelayout.Relax: a soft octilinear pass,
// corridor straightening, long-edge compaction, a second soft pass, the
// two-phase hard octilinear constraint, a displacement clamp back toward
// the pre-postprocess positions, hard crossing repulsion, proximity
// repulsion, and finally the spacing/octilinearity refine cycles.
func Run(positions []geometry.Vec2, g *forcelayout.Graph, lines []model.Line, edges []model.Edge, stationIndex map[string]int, interchange []bool, cfg model.LayoutConfig) {
	preDisplacement := make([]geometry.Vec2, len(positions))
	copy(preDisplacement, positions)

	SoftSnap(positions, g, 0.18)
	CorridorStraighten(positions, lines, edges, stationIndex, interchange, cfg)
	CompactLongEdges(positions, g, cfg.MaxEdgeLength)
	SoftSnap(positions, g, 0.24)

	HardConstraint(positions, g, interchange, cfg)

	if cfg.DisplacementLimit > 0 {
		for i := range positions {
			positions[i] = geometry.ClampDisplacement(positions[i], preDisplacement[i], cfg.DisplacementLimit)
		}
	}

	HardCrossingRepel(positions, g, cfg.CrossingRepelWeight, cfg.HardCrossingPasses)
	ProximityRepel(positions, cfg.MinStationDistance)

	RefineSpacingAndOctilinearity(positions, g, cfg)
}
