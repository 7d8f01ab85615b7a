package model

import "math"

// LayoutConfig holds the numeric parameters that influence the optimizer.
// Every field has a default (see DefaultLayoutConfig); a caller-supplied
// partial config overlays defaults field by field. Values are validated
// to be finite by Validate.
type LayoutConfig struct {
	MaxIterations    int     `json:"maxIterations"`
	Cooling          float64 `json:"cooling"`
	InitialTemperature float64 `json:"initialTemperature"`

	AnchorWeight    float64 `json:"anchorWeight"`
	SpringWeight    float64 `json:"springWeight"`
	AngleWeight     float64 `json:"angleWeight"`
	RepulsionWeight float64 `json:"repulsionWeight"`

	GeoWeight    float64 `json:"geoWeight"`
	GeoAngleBias float64 `json:"geoAngleBias"`
	GeoSeedScale float64 `json:"geoSeedScale"`

	MinStationDistance float64 `json:"minStationDistance"`
	MinEdgeLength      float64 `json:"minEdgeLength"`
	MaxEdgeLength      float64 `json:"maxEdgeLength"`
	DisplacementLimit  float64 `json:"displacementLimit"`

	HardCrossingPasses   int     `json:"hardCrossingPasses"`
	JunctionSpreadWeight float64 `json:"junctionSpreadWeight"`
	CrossingRepelWeight  float64 `json:"crossingRepelWeight"`

	NormalizeTargetSpan float64 `json:"normalizeTargetSpan"`

	LineDirectionPasses       int     `json:"lineDirectionPasses"`
	LineDirectionBlend        float64 `json:"lineDirectionBlend"`
	LineDataAngleWeight       float64 `json:"lineDataAngleWeight"`
	LineMainDirectionWeight   float64 `json:"lineMainDirectionWeight"`
	LineTurnPenalty           float64 `json:"lineTurnPenalty"`
	LineTurnStepPenalty       float64 `json:"lineTurnStepPenalty"`
	LineUTurnPenalty          float64 `json:"lineUTurnPenalty"`
	LineMinRunEdges           int     `json:"lineMinRunEdges"`
	LineShortRunPenalty       float64 `json:"lineShortRunPenalty"`
	LineBendScoreWeight       float64 `json:"lineBendScoreWeight"`
	LineShortRunScoreWeight   float64 `json:"lineShortRunScoreWeight"`

	OctilinearRelaxIterations int     `json:"octilinearRelaxIterations"`
	OctilinearBlend           float64 `json:"octilinearBlend"`
	OctilinearExactPasses     int     `json:"octilinearExactPasses"`
	StationSpacingRefineCycles int    `json:"stationSpacingRefineCycles"`

	LabelPadding float64 `json:"labelPadding"`

	StraightenTurnToleranceDeg float64 `json:"straightenTurnToleranceDeg"`
	StraightenStrength         float64 `json:"straightenStrength"`
	CorridorStraightenBlend    float64 `json:"corridorStraightenBlend"`

	// OctilinearStrictTolerance bounds how far (radians) an output edge's
	// angle may sit from the nearest multiple of pi/4 — spec §8 property 2.
	OctilinearStrictTolerance float64 `json:"octilinearStrictTolerance"`
}

// DefaultLayoutConfig returns the documented defaults from spec §3.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		MaxIterations:      1700,
		Cooling:            0.9972,
		InitialTemperature: 9.8,

		AnchorWeight:    0.0135,
		SpringWeight:    0.032,
		AngleWeight:     0.02,
		RepulsionWeight: 58,

		GeoWeight:    0.72,
		GeoAngleBias: 0.7,
		GeoSeedScale: 3,

		MinStationDistance: 30,
		MinEdgeLength:      32,
		MaxEdgeLength:      160,
		DisplacementLimit:  230,

		HardCrossingPasses:   2,
		JunctionSpreadWeight: 0.24,
		CrossingRepelWeight:  20,

		NormalizeTargetSpan: 1650,

		LineDirectionPasses:     3,
		LineDirectionBlend:      0.43,
		LineDataAngleWeight:     1.25,
		LineMainDirectionWeight: 0.52,
		LineTurnPenalty:         1.55,
		LineTurnStepPenalty:     0.62,
		LineUTurnPenalty:        3.6,
		LineMinRunEdges:         2,
		LineShortRunPenalty:     2.8,
		LineBendScoreWeight:     2.6,
		LineShortRunScoreWeight: 5.4,

		OctilinearRelaxIterations:  40,
		OctilinearBlend:            0.38,
		OctilinearExactPasses:      3,
		StationSpacingRefineCycles: 4,

		LabelPadding: 6,

		StraightenTurnToleranceDeg: 18,
		StraightenStrength:         0.58,
		CorridorStraightenBlend:    0.58,

		OctilinearStrictTolerance: 0.001,
	}
}

// finiteValues returns the current value of every float field that must
// be finite. Kept as a plain slice rather than reflection so the check
// stays a compile-time-checked straight line.
func (c LayoutConfig) finiteValues() []float64 {
	return []float64{
		c.Cooling, c.InitialTemperature, c.AnchorWeight, c.SpringWeight,
		c.AngleWeight, c.RepulsionWeight, c.GeoWeight, c.GeoAngleBias,
		c.GeoSeedScale, c.MinStationDistance, c.MinEdgeLength, c.MaxEdgeLength,
		c.DisplacementLimit, c.JunctionSpreadWeight, c.CrossingRepelWeight,
		c.NormalizeTargetSpan, c.LineDirectionBlend, c.LineDataAngleWeight,
		c.LineMainDirectionWeight, c.LineTurnPenalty, c.LineTurnStepPenalty,
		c.LineUTurnPenalty, c.LineShortRunPenalty, c.LineBendScoreWeight,
		c.LineShortRunScoreWeight, c.OctilinearBlend, c.LabelPadding,
		c.StraightenTurnToleranceDeg, c.StraightenStrength,
		c.CorridorStraightenBlend, c.OctilinearStrictTolerance,
	}
}

// Validate checks every numeric field is finite and every bound makes
// sense (e.g. MinEdgeLength <= MaxEdgeLength). It does not reject zero or
// negative weights — a weight of 0 legitimately disables a force term.
func (c LayoutConfig) Validate() error {
	for _, v := range c.finiteValues() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidInput
		}
	}
	if c.MinEdgeLength > c.MaxEdgeLength {
		return ErrInvalidInput
	}
	if c.MaxIterations < 0 {
		return ErrInvalidInput
	}
	return nil
}

// WithDefaults overlays non-zero-valued fields of c onto the defaults.
// This models the spec's "missing fields get defaults" parse rule for a
// partial config: since Go zero values and "unset" are indistinguishable
// on a plain struct, callers that decode a partial JSON/flag config
// should build c starting from DefaultLayoutConfig() and only overwrite
// fields actually present. WithDefaults itself replaces every
// zero-valued field with its default, including one set to 0 on purpose.
func (c LayoutConfig) WithDefaults() LayoutConfig {
	d := DefaultLayoutConfig()
	merged := d
	v := func(got, def float64) float64 {
		if got == 0 {
			return def
		}
		return got
	}
	merged.MaxIterations = intOr(c.MaxIterations, d.MaxIterations)
	merged.Cooling = v(c.Cooling, d.Cooling)
	merged.InitialTemperature = v(c.InitialTemperature, d.InitialTemperature)
	merged.AnchorWeight = v(c.AnchorWeight, d.AnchorWeight)
	merged.SpringWeight = v(c.SpringWeight, d.SpringWeight)
	merged.AngleWeight = v(c.AngleWeight, d.AngleWeight)
	merged.RepulsionWeight = v(c.RepulsionWeight, d.RepulsionWeight)
	merged.GeoWeight = v(c.GeoWeight, d.GeoWeight)
	merged.GeoAngleBias = v(c.GeoAngleBias, d.GeoAngleBias)
	merged.GeoSeedScale = v(c.GeoSeedScale, d.GeoSeedScale)
	merged.MinStationDistance = v(c.MinStationDistance, d.MinStationDistance)
	merged.MinEdgeLength = v(c.MinEdgeLength, d.MinEdgeLength)
	merged.MaxEdgeLength = v(c.MaxEdgeLength, d.MaxEdgeLength)
	merged.DisplacementLimit = v(c.DisplacementLimit, d.DisplacementLimit)
	merged.HardCrossingPasses = intOr(c.HardCrossingPasses, d.HardCrossingPasses)
	merged.JunctionSpreadWeight = v(c.JunctionSpreadWeight, d.JunctionSpreadWeight)
	merged.CrossingRepelWeight = v(c.CrossingRepelWeight, d.CrossingRepelWeight)
	merged.NormalizeTargetSpan = v(c.NormalizeTargetSpan, d.NormalizeTargetSpan)
	merged.LineDirectionPasses = intOr(c.LineDirectionPasses, d.LineDirectionPasses)
	merged.LineDirectionBlend = v(c.LineDirectionBlend, d.LineDirectionBlend)
	merged.LineDataAngleWeight = v(c.LineDataAngleWeight, d.LineDataAngleWeight)
	merged.LineMainDirectionWeight = v(c.LineMainDirectionWeight, d.LineMainDirectionWeight)
	merged.LineTurnPenalty = v(c.LineTurnPenalty, d.LineTurnPenalty)
	merged.LineTurnStepPenalty = v(c.LineTurnStepPenalty, d.LineTurnStepPenalty)
	merged.LineUTurnPenalty = v(c.LineUTurnPenalty, d.LineUTurnPenalty)
	merged.LineMinRunEdges = intOr(c.LineMinRunEdges, d.LineMinRunEdges)
	merged.LineShortRunPenalty = v(c.LineShortRunPenalty, d.LineShortRunPenalty)
	merged.LineBendScoreWeight = v(c.LineBendScoreWeight, d.LineBendScoreWeight)
	merged.LineShortRunScoreWeight = v(c.LineShortRunScoreWeight, d.LineShortRunScoreWeight)
	merged.OctilinearRelaxIterations = intOr(c.OctilinearRelaxIterations, d.OctilinearRelaxIterations)
	merged.OctilinearBlend = v(c.OctilinearBlend, d.OctilinearBlend)
	merged.OctilinearExactPasses = intOr(c.OctilinearExactPasses, d.OctilinearExactPasses)
	merged.StationSpacingRefineCycles = intOr(c.StationSpacingRefineCycles, d.StationSpacingRefineCycles)
	merged.LabelPadding = v(c.LabelPadding, d.LabelPadding)
	merged.StraightenTurnToleranceDeg = v(c.StraightenTurnToleranceDeg, d.StraightenTurnToleranceDeg)
	merged.StraightenStrength = v(c.StraightenStrength, d.StraightenStrength)
	merged.CorridorStraightenBlend = v(c.CorridorStraightenBlend, d.CorridorStraightenBlend)
	merged.OctilinearStrictTolerance = v(c.OctilinearStrictTolerance, d.OctilinearStrictTolerance)
	return merged
}

func intOr(got, def int) int {
	if got == 0 {
		return def
	}
	return got
}

// ScoreBreakdown is the eight weighted penalty components from spec §4.7.
// Every field is sanitized to be finite and non-negative by Sanitize.
type ScoreBreakdown struct {
	Angle        float64 `json:"angle"`
	Length       float64 `json:"length"`
	Overlap      float64 `json:"overlap"`
	Crossing     float64 `json:"crossing"`
	Bend         float64 `json:"bend"`
	ShortRun     float64 `json:"shortRun"`
	GeoDeviation float64 `json:"geoDeviation"`
	LabelOverlap float64 `json:"labelOverlap"`
}

// Total returns the sum of all components.
func (b ScoreBreakdown) Total() float64 {
	return b.Angle + b.Length + b.Overlap + b.Crossing + b.Bend +
		b.ShortRun + b.GeoDeviation + b.LabelOverlap
}

// Sanitize replaces NaN/Inf components with 0, per spec §4.7/§9.
func (b ScoreBreakdown) Sanitize() ScoreBreakdown {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		if v < 0 {
			return 0
		}
		return v
	}
	return ScoreBreakdown{
		Angle:        fix(b.Angle),
		Length:       fix(b.Length),
		Overlap:      fix(b.Overlap),
		Crossing:     fix(b.Crossing),
		Bend:         fix(b.Bend),
		ShortRun:     fix(b.ShortRun),
		GeoDeviation: fix(b.GeoDeviation),
		LabelOverlap: fix(b.LabelOverlap),
	}
}
