package lineplan

import (
	"math"

	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

const directionCount = geometry.DirectionCount

// observedAngles returns, for each edge of chain, the current angle
// (radians) from its from-node to its to-node.
func observedAngles(chain Chain, positions []geometry.Vec2) []float64 {
	n := len(chain.EdgeIDs)
	observed := make([]float64, n)
	for i := 0; i < n; i++ {
		a := positions[chain.NodeAt(i)]
		b := positions[chain.NodeAfter(i)]
		d := b.Sub(a)
		observed[i] = geometry.Angle(d.X, d.Y)
	}
	return observed
}

// mainDirection computes the chain's reference direction (spec §4.5
// "Main direction"): the angle from first to last node for an open
// chain, or the length-weighted circular mean of edge angles for a
// cyclic or degenerate (zero-length span) chain.
func mainDirection(chain Chain, positions []geometry.Vec2, observed []float64) float64 {
	if !chain.IsCycle {
		first := positions[chain.NodePath[0]]
		last := positions[chain.NodePath[len(chain.NodePath)-1]]
		d := last.Sub(first)
		if d.Len() > 1e-9 {
			return geometry.Angle(d.X, d.Y)
		}
	}
	weights := make([]float64, len(observed))
	for i := range observed {
		a := positions[chain.NodeAt(i)]
		b := positions[chain.NodeAfter(i)]
		weights[i] = a.Dist(b)
	}
	return geometry.CircularMeanAngle(observed, weights)
}

func unaryCost(observedAngle float64, d, mainIdx int, cfg model.LayoutConfig) float64 {
	dev := geometry.AngleDeviation(observedAngle, geometry.IndexAngle(d))
	steps := geometry.CircularDistance(d, mainIdx)
	return dev*cfg.LineDataAngleWeight + float64(steps)*cfg.LineMainDirectionWeight
}

func transitionCost(prev, next int, cfg model.LayoutConfig) float64 {
	if prev == next {
		return 0
	}
	steps := geometry.CircularDistance(prev, next)
	cost := cfg.LineTurnPenalty + float64(steps)*cfg.LineTurnStepPenalty
	switch steps {
	case directionCount / 2:
		cost += cfg.LineUTurnPenalty
	case directionCount/2 - 1:
		cost += 0.45 * cfg.LineUTurnPenalty
	}
	return cost
}

// SolveChain runs the 8-state Viterbi DP of spec §4.5 over chain's
// edges and returns the assigned direction index (0..7) per edge. Chains
// of fewer than 2 edges have no transitions to optimize and are assigned
// their single observed direction directly by the caller.
func SolveChain(chain Chain, positions []geometry.Vec2, cfg model.LayoutConfig) []int {
	n := len(chain.EdgeIDs)
	if n == 0 {
		return nil
	}
	observed := observedAngles(chain, positions)
	mainIdx := geometry.SnapIndex(mainDirection(chain, positions, observed))

	if !chain.IsCycle {
		return viterbi(observed, mainIdx, cfg)
	}
	return viterbiCyclicBestStart(observed, mainIdx, cfg)
}

// viterbi solves the open-chain case: standard linear Viterbi over 8
// states per edge.
func viterbi(observed []float64, mainIdx int, cfg model.LayoutConfig) []int {
	n := len(observed)
	dp := make([][directionCount]float64, n)
	back := make([][directionCount]int, n)

	for d := 0; d < directionCount; d++ {
		dp[0][d] = unaryCost(observed[0], d, mainIdx, cfg)
	}
	for i := 1; i < n; i++ {
		for d := 0; d < directionCount; d++ {
			best := math.Inf(1)
			bestPrev := 0
			for p := 0; p < directionCount; p++ {
				c := dp[i-1][p] + transitionCost(p, d, cfg)
				if c < best {
					best = c
					bestPrev = p
				}
			}
			dp[i][d] = best + unaryCost(observed[i], d, mainIdx, cfg)
			back[i][d] = bestPrev
		}
	}

	last := 0
	best := math.Inf(1)
	for d := 0; d < directionCount; d++ {
		if dp[n-1][d] < best {
			best = dp[n-1][d]
			last = d
		}
	}
	directions := make([]int, n)
	directions[n-1] = last
	for i := n - 1; i > 0; i-- {
		directions[i-1] = back[i][directions[i]]
	}
	return directions
}

// viterbiCyclicBestStart approximates the cyclic DP by fixing edge 0's
// direction to each of the 8 states in turn, solving the remaining chain
// linearly, adding the closing transition cost back to the fixed start,
// and keeping the cheapest of the 8 trials.
func viterbiCyclicBestStart(observed []float64, mainIdx int, cfg model.LayoutConfig) []int {
	n := len(observed)
	if n == 1 {
		return viterbi(observed, mainIdx, cfg)
	}

	var bestDirections []int
	bestCost := math.Inf(1)

	for start := 0; start < directionCount; start++ {
		dp := make([][directionCount]float64, n)
		back := make([][directionCount]int, n)
		dp[0][start] = unaryCost(observed[0], start, mainIdx, cfg)
		for d := 0; d < directionCount; d++ {
			if d != start {
				dp[0][d] = math.Inf(1)
			}
		}
		for i := 1; i < n; i++ {
			for d := 0; d < directionCount; d++ {
				best := math.Inf(1)
				bestPrev := 0
				for p := 0; p < directionCount; p++ {
					if math.IsInf(dp[i-1][p], 1) {
						continue
					}
					c := dp[i-1][p] + transitionCost(p, d, cfg)
					if c < best {
						best = c
						bestPrev = p
					}
				}
				dp[i][d] = best + unaryCost(observed[i], d, mainIdx, cfg)
				back[i][d] = bestPrev
			}
		}

		bestLastForStart := math.Inf(1)
		bestLastDir := start
		for d := 0; d < directionCount; d++ {
			c := dp[n-1][d] + transitionCost(d, start, cfg)
			if c < bestLastForStart {
				bestLastForStart = c
				bestLastDir = d
			}
		}
		totalCost := bestLastForStart

		if totalCost < bestCost {
			directions := make([]int, n)
			directions[n-1] = bestLastDir
			for i := n - 1; i > 0; i-- {
				directions[i-1] = back[i][directions[i]]
			}
			bestCost = totalCost
			bestDirections = directions
		}
	}
	return bestDirections
}
