// Package score computes the optimizer's final ScoreBreakdown: eight
// weighted penalty components summarizing layout quality (spec §4.7).
package score

import (
	"math"

	"github.com/metrostudio/core/internal/forcelayout"
	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/label"
	"github.com/metrostudio/core/internal/lineplan"
	"github.com/metrostudio/core/internal/model"
)

// Input bundles everything Compute needs so its signature stays stable
// as the optimizer pipeline's intermediate values accumulate.
type Input struct {
	Stations       []model.Station
	Seed           []geometry.Vec2
	Positions      []geometry.Vec2
	Graph          *forcelayout.Graph
	Lines          []model.Line
	Edges          []model.Edge
	StationIndex   map[string]int
	EdgeDirections map[string]int
	Labels         map[string]model.LabelPlacement
	Config         model.LayoutConfig
}

// Compute returns the sanitized eight-component breakdown of spec §4.7.
func Compute(in Input) model.ScoreBreakdown {
	b := model.ScoreBreakdown{
		Angle:        angleScore(in),
		Length:       lengthScore(in),
		Overlap:      overlapScore(in),
		Crossing:     crossingScore(in),
		Bend:         bendScore(in),
		ShortRun:     shortRunScore(in),
		GeoDeviation: geoDeviationScore(in),
		LabelOverlap: labelOverlapScore(in),
	}
	return b.Sanitize()
}

func angleScore(in Input) float64 {
	var total float64
	for _, e := range in.Graph.Edges {
		from, to := in.Positions[e.From], in.Positions[e.To]
		d := to.Sub(from)
		if d.Len() < 1e-9 {
			continue
		}
		a := geometry.Angle(d.X, d.Y)
		dev := geometry.AngleDeviation(a, geometry.SnapAngle(a))
		total += dev * 180 / math.Pi
	}
	return total
}

func lengthScore(in Input) float64 {
	var total float64
	for _, e := range in.Graph.Edges {
		actual := in.Positions[e.From].Dist(in.Positions[e.To])
		total += math.Abs(actual-e.DesiredLength) * 0.18
	}
	return total
}

func overlapScore(in Input) float64 {
	if len(in.Positions) < 2 {
		return 0
	}
	var total float64
	grid := geometry.NewSpatialGrid(in.Config.MinStationDistance)
	grid.Build(in.Positions)
	grid.ForEachPair(in.Positions, in.Config.MinStationDistance, func(i, j int) {
		d := in.Positions[i].Dist(in.Positions[j])
		if d < in.Config.MinStationDistance {
			total += (in.Config.MinStationDistance - d) * 2.9
		}
	})
	return total
}

func crossingScore(in Input) float64 {
	var total float64
	edges := in.Graph.Edges
	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			e1, e2 := edges[i], edges[j]
			if e1.From == e2.From || e1.From == e2.To || e1.To == e2.From || e1.To == e2.To {
				continue
			}
			a1, b1 := in.Positions[e1.From], in.Positions[e1.To]
			a2, b2 := in.Positions[e2.From], in.Positions[e2.To]
			if geometry.SegmentsIntersectBoxFiltered(a1, b1, a2, b2) {
				total += 70
			}
		}
	}
	return total
}

func bendScore(in Input) float64 {
	var total float64
	for _, chain := range extractAllChains(in) {
		if len(chain.EdgeIDs) < 2 {
			continue
		}
		for i := 0; i < len(chain.EdgeIDs)-1; i++ {
			d1, ok1 := in.EdgeDirections[chain.EdgeIDs[i]]
			d2, ok2 := in.EdgeDirections[chain.EdgeIDs[i+1]]
			if !ok1 || !ok2 {
				continue
			}
			total += float64(geometry.CircularDistance(d1, d2)) * in.Config.LineBendScoreWeight
		}
	}
	return total
}

func shortRunScore(in Input) float64 {
	var total float64
	for _, chain := range extractAllChains(in) {
		n := len(chain.EdgeIDs)
		if n == 0 {
			continue
		}
		runStart := 0
		runLen := 0
		runLength := 0.0
		prevDir, havePrev := -1, false
		flush := func() {
			if runLen == 0 {
				return
			}
			if runLen < in.Config.LineMinRunEdges || runLength < 1.35*in.Config.MinEdgeLength {
				total += in.Config.LineShortRunScoreWeight
			}
		}
		for i := 0; i < n; i++ {
			d, ok := in.EdgeDirections[chain.EdgeIDs[i]]
			if !ok {
				continue
			}
			length := in.Positions[chain.NodeAt(i)].Dist(in.Positions[chain.NodeAfter(i)])
			if havePrev && d == prevDir {
				runLen++
				runLength += length
			} else {
				flush()
				runStart = i
				runLen = 1
				runLength = length
			}
			prevDir, havePrev = d, true
		}
		_ = runStart
		flush()
	}
	return total
}

func geoDeviationScore(in Input) float64 {
	var total float64
	for i := range in.Positions {
		if i >= len(in.Seed) {
			continue
		}
		total += in.Positions[i].Dist(in.Seed[i]) * in.Config.GeoWeight * 0.11
	}
	return total
}

func labelOverlapScore(in Input) float64 {
	if len(in.Labels) < 2 {
		return 0
	}
	boxes := make([]geometry.Rect, 0, len(in.Labels))
	for _, st := range in.Stations {
		placement, ok := in.Labels[st.ID]
		if !ok {
			continue
		}
		idx, ok := in.StationIndex[st.ID]
		if !ok {
			continue
		}
		boxes = append(boxes, label.BoxForPlacement(in.Positions[idx], st.Names, placement))
	}
	var total float64
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			total += boxes[i].OverlapArea(boxes[j]) * 0.045
		}
	}
	return total
}

func extractAllChains(in Input) []lineplan.Chain {
	edgeByID := make(map[string]*model.Edge, len(in.Edges))
	for i := range in.Edges {
		edgeByID[in.Edges[i].ID] = &in.Edges[i]
	}
	var chains []lineplan.Chain
	for _, line := range in.Lines {
		chains = append(chains, lineplan.ExtractChains(line, edgeByID, in.StationIndex)...)
	}
	return chains
}
