package lineplan

import (
	"github.com/metrostudio/core/internal/model"
)

type run struct {
	start, end int // inclusive edge indices
	dir        int
}

func runsOf(directions []int) []run {
	var runs []run
	if len(directions) == 0 {
		return runs
	}
	start := 0
	for i := 1; i <= len(directions); i++ {
		if i == len(directions) || directions[i] != directions[start] {
			runs = append(runs, run{start: start, end: i - 1, dir: directions[start]})
			start = i
		}
	}
	return runs
}

// SmoothShortRuns merges runs of identical direction shorter than
// cfg.LineMinRunEdges into a neighboring run or the chain's main
// direction, whichever minimizes unary+transition cost net of the
// lineShortRunPenalty merge bonus (spec §4.5 "Short-run smoothing"), for
// up to 4 passes or until a pass makes no change.
func SmoothShortRuns(directions []int, observed []float64, mainIdx int, cfg model.LayoutConfig) []int {
	result := append([]int(nil), directions...)
	for pass := 0; pass < 4; pass++ {
		runs := runsOf(result)
		changed := false
		for _, r := range runs {
			length := r.end - r.start + 1
			if length >= cfg.LineMinRunEdges {
				continue
			}
			candidates := candidateDirections(runs, r, mainIdx)
			bestDir := r.dir
			bestCost := runCost(result, observed, r.start, r.end, mainIdx, cfg)
			for _, cand := range candidates {
				if cand == r.dir {
					continue
				}
				trial := append([]int(nil), result...)
				for i := r.start; i <= r.end; i++ {
					trial[i] = cand
				}
				cost := runCost(trial, observed, r.start, r.end, mainIdx, cfg) - cfg.LineShortRunPenalty
				if cost < bestCost {
					bestCost = cost
					bestDir = cand
				}
			}
			if bestDir != r.dir {
				for i := r.start; i <= r.end; i++ {
					result[i] = bestDir
				}
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return result
}

func candidateDirections(runs []run, r run, mainIdx int) []int {
	var candidates []int
	for i, rr := range runs {
		if rr.start == r.start {
			if i > 0 {
				candidates = append(candidates, runs[i-1].dir)
			}
			if i+1 < len(runs) {
				candidates = append(candidates, runs[i+1].dir)
			}
			break
		}
	}
	candidates = append(candidates, mainIdx)
	return candidates
}

// runCost sums unary cost over [lo, hi] plus the transition costs
// touching that span's boundaries, given the full direction sequence
// (so neighboring runs' directions are taken into account).
func runCost(directions []int, observed []float64, lo, hi, mainIdx int, cfg model.LayoutConfig) float64 {
	var total float64
	for i := lo; i <= hi; i++ {
		total += unaryCost(observed[i], directions[i], mainIdx, cfg)
	}
	if lo > 0 {
		total += transitionCost(directions[lo-1], directions[lo], cfg)
	}
	if hi+1 < len(directions) {
		total += transitionCost(directions[hi], directions[hi+1], cfg)
	}
	return total
}
