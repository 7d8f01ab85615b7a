// Package optimizer orchestrates the layout pipeline spec §4 describes
// into the single request/response operation spec §6.1 names: seed
// normalization, force relaxation, geometric postprocessing, line
// direction planning, label placement, and scoring.
package optimizer

import (
	"time"

	"github.com/metrostudio/core/internal/constraint"
	"github.com/metrostudio/core/internal/forcelayout"
	"github.com/metrostudio/core/internal/label"
	"github.com/metrostudio/core/internal/lineplan"
	"github.com/metrostudio/core/internal/model"
	"github.com/metrostudio/core/internal/score"
)

// OptimizeRequest is the spec §6.1 OptimizeRequest: the project's
// stations/edges/lines plus a layout config and an opaque request id the
// caller uses to correlate an eventual response (spec §5).
type OptimizeRequest struct {
	Stations  []model.Station
	Edges     []model.Edge
	Lines     []model.Line
	Config    model.LayoutConfig
	RequestID string
}

// OptimizeResponse is the spec §6.1 OptimizeResponse. On Ok, Stations
// carries each input station with DisplayPos set to its optimized
// position; on failure Error names the reason, RequestID and ElapsedMs
// are still set, and every other field is zero.
type OptimizeResponse struct {
	RequestID  string
	Ok         bool
	Stations   []model.Station
	Score      float64
	Breakdown  model.ScoreBreakdown
	LayoutMeta model.LayoutMeta
	ElapsedMs  int64
	Error      string
}

// Optimize runs the full pipeline synchronously and atomically: spec §5
// requires that, from the worker's own perspective, a request runs start
// to finish without a suspension point, and that identical inputs always
// produce an identical response. Optimize itself does not recover
// panics; Worker runs it through safeRun, which reports a panic as
// Ok=false per spec §7, same as an input-validation failure.
func Optimize(req OptimizeRequest) OptimizeResponse {
	start := time.Now()
	resp := run(req)
	resp.RequestID = req.RequestID
	resp.ElapsedMs = time.Since(start).Milliseconds()
	return resp
}

func run(req OptimizeRequest) OptimizeResponse {
	proj := &model.Project{
		Stations: req.Stations,
		Edges:    req.Edges,
		Lines:    req.Lines,
		Config:   req.Config,
	}
	if err := proj.Validate(); err != nil {
		return OptimizeResponse{Error: err.Error()}
	}

	cfg := req.Config.WithDefaults()

	if proj.IsDegenerate() {
		return degenerateResponse(req.Stations)
	}

	stationIndex := proj.StationIndex()
	interchange := make([]bool, len(req.Stations))
	for i, s := range req.Stations {
		interchange[i] = s.IsInterchange()
	}

	seed := forcelayout.NormalizeSeed(req.Stations, cfg)
	graph := forcelayout.BuildEdges(req.Edges, stationIndex, seed, cfg)

	state := forcelayout.NewState(seed, graph, cfg)
	forcelayout.Relax(state, cfg)

	positions := state.Positions
	constraint.Run(positions, graph, req.Lines, req.Edges, stationIndex, interchange, cfg)

	edgeDirections := lineplan.Plan(req.Lines, req.Edges, stationIndex, positions, graph.Degree, interchange, cfg)

	labels := label.Place(req.Stations, req.Edges, stationIndex, positions, edgeDirections, cfg)

	breakdown := score.Compute(score.Input{
		Stations:       req.Stations,
		Seed:           seed,
		Positions:      positions,
		Graph:          graph,
		Lines:          req.Lines,
		Edges:          req.Edges,
		StationIndex:   stationIndex,
		EdgeDirections: edgeDirections,
		Labels:         labels,
		Config:         cfg,
	})

	outStations := make([]model.Station, len(req.Stations))
	for i, s := range req.Stations {
		s.DisplayPos = model.Point{X: positions[i].X, Y: positions[i].Y}
		outStations[i] = s
	}

	return OptimizeResponse{
		Ok:        true,
		Stations:  outStations,
		Score:     breakdown.Total(),
		Breakdown: breakdown,
		LayoutMeta: model.LayoutMeta{
			StationLabels:  labels,
			EdgeDirections: edgeDirections,
		},
	}
}

// degenerateResponse handles spec §7's DegenerateInput case: the
// optimizer succeeds with a zero score and unchanged station positions,
// rather than treating an empty project as an error.
func degenerateResponse(stations []model.Station) OptimizeResponse {
	out := make([]model.Station, len(stations))
	for i, s := range stations {
		s.DisplayPos = model.Point{X: s.Lng, Y: s.Lat}
		out[i] = s
	}
	return OptimizeResponse{
		Ok:       true,
		Stations: out,
		LayoutMeta: model.LayoutMeta{
			StationLabels:  map[string]model.LabelPlacement{},
			EdgeDirections: map[string]int{},
		},
	}
}
