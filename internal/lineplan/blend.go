package lineplan

import (
	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

// degreeFactor returns the per-node weight base from spec §4.5: 0.55 for
// degree >= 4, 0.7 for degree 3, 0.9 for degree 2, 1 for degree <= 1.
func degreeFactor(degree int) float64 {
	switch {
	case degree >= 4:
		return 0.55
	case degree == 3:
		return 0.7
	case degree == 2:
		return 0.9
	default:
		return 1
	}
}

// ApplyBlend moves each of chain's nodes toward its materialized target
// by cfg.LineDirectionBlend scaled by the node's degree factor, damped
// further by 0.62 if the node is an interchange.
func ApplyBlend(chain Chain, targets []geometry.Vec2, positions []geometry.Vec2, degree []int, interchange []bool, cfg model.LayoutConfig) {
	for i, node := range chain.NodePath {
		weight := cfg.LineDirectionBlend * degreeFactor(degree[node])
		if node < len(interchange) && interchange[node] {
			weight *= 0.62
		}
		positions[node] = positions[node].Add(targets[i].Sub(positions[node]).Scale(weight))
	}
}
