package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metrostudio/core/internal/model"
)

// parseConfigOverrides applies a list of "key=value" strings (as given
// to repeated --config flags) onto base, field by field. Unknown keys
// or malformed values are reported as errors naming the offending flag
// rather than silently ignored, matching spec §9's "unknown fields are
// rejected (strict parse)" rule for the explicit config struct.
func parseConfigOverrides(kvs []string, base model.LayoutConfig) (model.LayoutConfig, error) {
	cfg := base
	for _, kv := range kvs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return cfg, fmt.Errorf("--config: expected key=value, got %q", kv)
		}
		if err := setConfigField(&cfg, key, value); err != nil {
			return cfg, fmt.Errorf("--config %s: %w", kv, err)
		}
	}
	return cfg, nil
}

func setConfigField(cfg *model.LayoutConfig, key, value string) error {
	if intField, ok := intConfigFields[key]; ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("expected an integer: %w", err)
		}
		*intField(cfg) = n
		return nil
	}
	if floatField, ok := floatConfigFields[key]; ok {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("expected a number: %w", err)
		}
		*floatField(cfg) = f
		return nil
	}
	return fmt.Errorf("unknown config key %q", key)
}

var intConfigFields = map[string]func(*model.LayoutConfig) *int{
	"maxIterations":             func(c *model.LayoutConfig) *int { return &c.MaxIterations },
	"hardCrossingPasses":        func(c *model.LayoutConfig) *int { return &c.HardCrossingPasses },
	"lineDirectionPasses":       func(c *model.LayoutConfig) *int { return &c.LineDirectionPasses },
	"lineMinRunEdges":           func(c *model.LayoutConfig) *int { return &c.LineMinRunEdges },
	"octilinearRelaxIterations": func(c *model.LayoutConfig) *int { return &c.OctilinearRelaxIterations },
	"octilinearExactPasses":     func(c *model.LayoutConfig) *int { return &c.OctilinearExactPasses },
	"stationSpacingRefineCycles": func(c *model.LayoutConfig) *int {
		return &c.StationSpacingRefineCycles
	},
}

var floatConfigFields = map[string]func(*model.LayoutConfig) *float64{
	"cooling":                    func(c *model.LayoutConfig) *float64 { return &c.Cooling },
	"initialTemperature":         func(c *model.LayoutConfig) *float64 { return &c.InitialTemperature },
	"anchorWeight":               func(c *model.LayoutConfig) *float64 { return &c.AnchorWeight },
	"springWeight":               func(c *model.LayoutConfig) *float64 { return &c.SpringWeight },
	"angleWeight":                func(c *model.LayoutConfig) *float64 { return &c.AngleWeight },
	"repulsionWeight":            func(c *model.LayoutConfig) *float64 { return &c.RepulsionWeight },
	"geoWeight":                  func(c *model.LayoutConfig) *float64 { return &c.GeoWeight },
	"geoAngleBias":               func(c *model.LayoutConfig) *float64 { return &c.GeoAngleBias },
	"geoSeedScale":               func(c *model.LayoutConfig) *float64 { return &c.GeoSeedScale },
	"minStationDistance":         func(c *model.LayoutConfig) *float64 { return &c.MinStationDistance },
	"minEdgeLength":              func(c *model.LayoutConfig) *float64 { return &c.MinEdgeLength },
	"maxEdgeLength":              func(c *model.LayoutConfig) *float64 { return &c.MaxEdgeLength },
	"displacementLimit":          func(c *model.LayoutConfig) *float64 { return &c.DisplacementLimit },
	"junctionSpreadWeight":       func(c *model.LayoutConfig) *float64 { return &c.JunctionSpreadWeight },
	"crossingRepelWeight":        func(c *model.LayoutConfig) *float64 { return &c.CrossingRepelWeight },
	"normalizeTargetSpan":        func(c *model.LayoutConfig) *float64 { return &c.NormalizeTargetSpan },
	"lineDirectionBlend":         func(c *model.LayoutConfig) *float64 { return &c.LineDirectionBlend },
	"lineDataAngleWeight":        func(c *model.LayoutConfig) *float64 { return &c.LineDataAngleWeight },
	"lineMainDirectionWeight":    func(c *model.LayoutConfig) *float64 { return &c.LineMainDirectionWeight },
	"lineTurnPenalty":            func(c *model.LayoutConfig) *float64 { return &c.LineTurnPenalty },
	"lineTurnStepPenalty":        func(c *model.LayoutConfig) *float64 { return &c.LineTurnStepPenalty },
	"lineUTurnPenalty":           func(c *model.LayoutConfig) *float64 { return &c.LineUTurnPenalty },
	"lineShortRunPenalty":        func(c *model.LayoutConfig) *float64 { return &c.LineShortRunPenalty },
	"lineBendScoreWeight":        func(c *model.LayoutConfig) *float64 { return &c.LineBendScoreWeight },
	"lineShortRunScoreWeight":    func(c *model.LayoutConfig) *float64 { return &c.LineShortRunScoreWeight },
	"octilinearBlend":            func(c *model.LayoutConfig) *float64 { return &c.OctilinearBlend },
	"labelPadding":               func(c *model.LayoutConfig) *float64 { return &c.LabelPadding },
	"straightenTurnToleranceDeg": func(c *model.LayoutConfig) *float64 { return &c.StraightenTurnToleranceDeg },
	"straightenStrength":         func(c *model.LayoutConfig) *float64 { return &c.StraightenStrength },
	"corridorStraightenBlend":    func(c *model.LayoutConfig) *float64 { return &c.CorridorStraightenBlend },
	"octilinearStrictTolerance":  func(c *model.LayoutConfig) *float64 { return &c.OctilinearStrictTolerance },
}
