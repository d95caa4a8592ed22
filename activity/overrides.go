package activity

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/graph"
	"gopkg.in/yaml.v3"
)

// WeightsOverride is a partial Weights patch; nil fields are left
// untouched by ApplyOverride.
type WeightsOverride struct {
	Flow      *float64 `yaml:"flow,omitempty" json:"flow,omitempty"`
	Safety    *float64 `yaml:"safety,omitempty" json:"safety,omitempty"`
	Surface   *float64 `yaml:"surface,omitempty" json:"surface,omitempty"`
	Character *float64 `yaml:"character,omitempty" json:"character,omitempty"`
	Scenic    *float64 `yaml:"scenic,omitempty" json:"scenic,omitempty"`
	Elevation *float64 `yaml:"elevation,omitempty" json:"elevation,omitempty"`
}

// ParamsOverride is a partial patch over a base Params. It is NOT part of
// the semantic scoring contract: it exists purely so an
// operator can retune weights/tables from configuration without a
// redeploy.
type ParamsOverride struct {
	Weights               *WeightsOverride `yaml:"weights,omitempty" json:"weights,omitempty"`
	FlowLengthBlendWeight *float64         `yaml:"flowLengthBlendWeight,omitempty" json:"flowLengthBlendWeight,omitempty"`
	FlowStopDecayRate     *float64         `yaml:"flowStopDecayRate,omitempty" json:"flowStopDecayRate,omitempty"`
	SurfaceTable          map[string]float64 `yaml:"surfaceTable,omitempty" json:"surfaceTable,omitempty"`
	CharacterTable        map[string]float64 `yaml:"characterTable,omitempty" json:"characterTable,omitempty"`
	ElevationPreference   *float64         `yaml:"elevationPreference,omitempty" json:"elevationPreference,omitempty"`
}

// BaseConfig is the top-level YAML document layering default per-activity
// Params overrides.
type BaseConfig struct {
	Activities map[string]ParamsOverride `yaml:"activities"`
}

// Profile is a named partial override layer, deep-merged over BaseConfig.
// Profiles are authored as JSON rather than YAML so they can be fetched
// and applied by an operator-facing API without a redeploy.
type Profile struct {
	Name       string                    `json:"name"`
	Activities map[string]ParamsOverride `json:"activities"`
}

// LoadBaseConfig parses a YAML document of per-activity overrides.
func LoadBaseConfig(data []byte) (BaseConfig, error) {
	var cfg BaseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BaseConfig{}, fmt.Errorf("activity: parse base config: %w", err)
	}
	return cfg, nil
}

// LoadProfile parses a JSON named partial-override profile.
func LoadProfile(data []byte) (Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("activity: parse profile: %w", err)
	}
	return p, nil
}

// Resolve builds the effective Params for a activity: DefaultParams,
// then BaseConfig's override (if any), then profile's override (if any),
// applied in that order so later layers win.
func Resolve(a Activity, base BaseConfig, profile *Profile) Params {
	p := DefaultParams(a)
	if ov, ok := base.Activities[a.String()]; ok {
		p = ApplyOverride(p, ov)
	}
	if profile != nil {
		if ov, ok := profile.Activities[a.String()]; ok {
			p = ApplyOverride(p, ov)
		}
	}
	return p
}

// ApplyOverride deep-merges a non-nil ParamsOverride's fields onto base,
// leaving every unset field as-is.
func ApplyOverride(base Params, ov ParamsOverride) Params {
	if ov.Weights != nil {
		w := ov.Weights
		if w.Flow != nil {
			base.Weights.Flow = *w.Flow
		}
		if w.Safety != nil {
			base.Weights.Safety = *w.Safety
		}
		if w.Surface != nil {
			base.Weights.Surface = *w.Surface
		}
		if w.Character != nil {
			base.Weights.Character = *w.Character
		}
		if w.Scenic != nil {
			base.Weights.Scenic = *w.Scenic
		}
		if w.Elevation != nil {
			base.Weights.Elevation = *w.Elevation
		}
	}
	if ov.FlowLengthBlendWeight != nil {
		base.FlowLengthBlendWeight = *ov.FlowLengthBlendWeight
	}
	if ov.FlowStopDecayRate != nil {
		base.FlowStopDecayRate = *ov.FlowStopDecayRate
	}
	if ov.ElevationPreference != nil {
		base.ElevationPreference = *ov.ElevationPreference
	}
	if len(ov.SurfaceTable) > 0 {
		base.SurfaceTable = mergeSurfaceTable(base.SurfaceTable, ov.SurfaceTable)
	}
	if len(ov.CharacterTable) > 0 {
		base.CharacterTable = mergeCharacterTable(base.CharacterTable, ov.CharacterTable)
	}
	return base
}

func mergeSurfaceTable(base map[graph.Surface]float64, patch map[string]float64) map[graph.Surface]float64 {
	out := make(map[graph.Surface]float64, len(base))
	for k, v := range base {
		out[k] = v
	}
	for key, v := range patch {
		switch key {
		case "paved":
			out[graph.SurfacePaved] = v
		case "unpaved":
			out[graph.SurfaceUnpaved] = v
		case "unknown":
			out[graph.SurfaceUnknown] = v
		}
	}
	return out
}

func mergeCharacterTable(base map[corridor.CorridorType]float64, patch map[string]float64) map[corridor.CorridorType]float64 {
	out := make(map[corridor.CorridorType]float64, len(base))
	for k, v := range base {
		out[k] = v
	}
	names := map[string]corridor.CorridorType{
		"trail":        corridor.CorridorTypeTrail,
		"path":         corridor.CorridorTypePath,
		"arterial":     corridor.CorridorTypeArterial,
		"collector":    corridor.CorridorTypeCollector,
		"rural_road":   corridor.CorridorTypeRuralRoad,
		"neighborhood": corridor.CorridorTypeNeighborhood,
		"mixed":        corridor.CorridorTypeMixed,
	}
	for key, v := range patch {
		if ct, ok := names[key]; ok {
			out[ct] = v
		}
	}
	return out
}
