package forcelayout

import (
	"github.com/metrostudio/core/internal/geometry"
	"github.com/metrostudio/core/internal/model"
)

// State is the optimizer's iteration state: a pair (positions,
// temperature), per the design note that the only "state machine" in
// the core is this loop.
type State struct {
	Positions   []geometry.Vec2
	Seed        []geometry.Vec2
	Graph       *Graph
	Temperature float64
}

// NewState builds the initial relaxation state: working positions are a
// deep copy of the seed, temperature starts at cfg.InitialTemperature.
func NewState(seed []geometry.Vec2, g *Graph, cfg model.LayoutConfig) *State {
	return &State{
		Positions:   CopyPositions(seed),
		Seed:        seed,
		Graph:       g,
		Temperature: cfg.InitialTemperature,
	}
}

// crossingRepelPeriod is how often (in iterations) the crossing-repel
// force runs, per spec §4.2 step 7.
const crossingRepelPeriod = 14

// Relax runs cfg.MaxIterations force-relaxation iterations in place over
// s.Positions, following spec §4.2 steps 1-10 in order each iteration.
// It is deterministic given identical inputs and array orderings.
func Relax(s *State, cfg model.LayoutConfig) {
	n := len(s.Positions)
	forces := make([]geometry.Vec2, n)

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		for i := range forces {
			forces[i] = geometry.Vec2{}
		}

		applyAnchor(forces, s.Positions, s.Seed, cfg.AnchorWeight)
		applySpringAngle(forces, s.Positions, s.Seed, s.Graph, cfg)
		applyRepulsion(forces, s.Positions, cfg)
		applyJunctionSpread(forces, s.Positions, s.Graph, cfg.JunctionSpreadWeight)
		if iter%crossingRepelPeriod == 0 {
			applyCrossingRepel(forces, s.Positions, s.Graph, cfg.CrossingRepelWeight)
		}

		step := 0.12 * s.Temperature
		for i := range s.Positions {
			moved := s.Positions[i].Add(forces[i].Scale(step))
			s.Positions[i] = geometry.ClampDisplacement(moved, s.Seed[i], cfg.DisplacementLimit)
		}

		s.Temperature *= cfg.Cooling
	}
}
