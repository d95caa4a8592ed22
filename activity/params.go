package activity

import (
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/graph"
)

// Weights holds the activity-specific per-sub-score weights that make up
// the overall score. Weights are expected to sum to 1 but
// Score clamps the result to [0,1] regardless.
type Weights struct {
	Flow      float64
	Safety    float64
	Surface   float64
	Character float64
	Scenic    float64
	Elevation float64
}

// ExclusionSet is the activity-dependent drop set used by the search-graph
// builder.
type ExclusionSet struct {
	Types       map[corridor.CorridorType]bool
	Surfaces    map[graph.Surface]bool
	RoadClasses map[graph.RoadClass]bool
}

// Params is the single value object carrying every scoring/exclusion
// tunable for one activity. Params is plain data: safe to marshal,
// override from configuration, and compare.
type Params struct {
	Activity Activity
	Weights  Weights

	// FlowLengthBlendWeight is the weight on the log-length term of the
	// flow sub-score; the stop-density decay term takes 1 - this weight.
	FlowLengthBlendWeight float64
	FlowStopDecayRate     float64

	SurfaceTable   map[graph.Surface]float64
	CharacterTable map[corridor.CorridorType]float64

	// ElevationPreference in [-1,1]: positive values reward hilliness,
	// negative values reward flatness, 0 is indifferent.
	ElevationPreference float64

	Exclusions ExclusionSet
}

// roadClassScore is the fixed road-class table shared by every activity.
func roadClassScore(rc graph.RoadClass) float64 {
	switch rc {
	case graph.RoadClassCycleway, graph.RoadClassPath, graph.RoadClassFootway:
		return 1.0
	case graph.RoadClassResidential, graph.RoadClassService, graph.RoadClassUnclassified:
		return 0.8
	case graph.RoadClassTertiary, graph.RoadClassTrack:
		return 0.6
	case graph.RoadClassSecondary:
		return 0.4
	case graph.RoadClassPrimary:
		return 0.2
	case graph.RoadClassTrunk, graph.RoadClassMotorway:
		return 0.0
	default:
		return 0.5
	}
}

// speedScore is the fixed speed-limit stepped function.
func speedScore(attrs corridor.CorridorAttributes) float64 {
	if !attrs.HasAverageSpeedLimit {
		return 0.5
	}
	kmh := attrs.AverageSpeedLimitKMH
	switch {
	case kmh <= 30:
		return 1.0
	case kmh <= 40:
		return 0.8
	case kmh <= 50:
		return 0.6
	case kmh <= 60:
		return 0.3
	case kmh <= 80:
		return 0.1
	default:
		return 0.1
	}
}

// DefaultParams returns the documented per-activity defaults.
func DefaultParams(a Activity) Params {
	p := Params{
		Activity: a,
		Weights:  Weights{Flow: 0.2, Safety: 0.25, Surface: 0.2, Character: 0.15, Scenic: 0.1, Elevation: 0.1},

		FlowLengthBlendWeight: 0.6,
		FlowStopDecayRate:     0.2,

		CharacterTable: defaultCharacterTable(a),
	}

	switch a {
	case RoadCycling:
		p.SurfaceTable = map[graph.Surface]float64{
			graph.SurfacePaved:   1.0,
			graph.SurfaceUnpaved: 0.0,
			graph.SurfaceUnknown: 0.5,
		}
		p.ElevationPreference = 0.2
		p.Exclusions = ExclusionSet{
			Types:       map[corridor.CorridorType]bool{corridor.CorridorTypePath: true, corridor.CorridorTypeTrail: true},
			Surfaces:    map[graph.Surface]bool{graph.SurfaceUnpaved: true},
			RoadClasses: map[graph.RoadClass]bool{graph.RoadClassService: true, graph.RoadClassTrack: true, graph.RoadClassFootway: true},
		}
	case GravelCycling:
		p.SurfaceTable = map[graph.Surface]float64{
			graph.SurfacePaved:   0.6,
			graph.SurfaceUnpaved: 1.0,
			graph.SurfaceUnknown: 0.6,
		}
		p.ElevationPreference = 0.3
		p.Exclusions = ExclusionSet{
			Types:       map[corridor.CorridorType]bool{corridor.CorridorTypeArterial: true},
			RoadClasses: map[graph.RoadClass]bool{graph.RoadClassMotorway: true, graph.RoadClassTrunk: true},
		}
	case Running:
		p.SurfaceTable = map[graph.Surface]float64{
			graph.SurfacePaved:   0.7,
			graph.SurfaceUnpaved: 1.0,
			graph.SurfaceUnknown: 0.7,
		}
		p.ElevationPreference = 0.1
		p.Exclusions = ExclusionSet{
			Types:       map[corridor.CorridorType]bool{corridor.CorridorTypeArterial: true},
			RoadClasses: map[graph.RoadClass]bool{graph.RoadClassMotorway: true, graph.RoadClassTrunk: true},
		}
	default: // Walking
		p.SurfaceTable = map[graph.Surface]float64{
			graph.SurfacePaved:   0.9,
			graph.SurfaceUnpaved: 0.9,
			graph.SurfaceUnknown: 0.8,
		}
		p.ElevationPreference = 0.0
		p.Exclusions = ExclusionSet{
			RoadClasses: map[graph.RoadClass]bool{graph.RoadClassMotorway: true, graph.RoadClassTrunk: true, graph.RoadClassPrimary: true},
		}
	}

	return p
}

func defaultCharacterTable(a Activity) map[corridor.CorridorType]float64 {
	switch a {
	case RoadCycling:
		return map[corridor.CorridorType]float64{
			corridor.CorridorTypeArterial:     0.3,
			corridor.CorridorTypeCollector:     0.6,
			corridor.CorridorTypeRuralRoad:     1.0,
			corridor.CorridorTypeNeighborhood:  0.7,
			corridor.CorridorTypeTrail:         0.2,
			corridor.CorridorTypePath:          0.2,
			corridor.CorridorTypeMixed:         0.5,
		}
	case GravelCycling:
		return map[corridor.CorridorType]float64{
			corridor.CorridorTypeTrail:        1.0,
			corridor.CorridorTypePath:         0.8,
			corridor.CorridorTypeRuralRoad:    0.9,
			corridor.CorridorTypeNeighborhood: 0.5,
			corridor.CorridorTypeCollector:    0.4,
			corridor.CorridorTypeArterial:     0.1,
			corridor.CorridorTypeMixed:        0.5,
		}
	case Running:
		return map[corridor.CorridorType]float64{
			corridor.CorridorTypeTrail:        1.0,
			corridor.CorridorTypePath:         1.0,
			corridor.CorridorTypeNeighborhood: 0.7,
			corridor.CorridorTypeRuralRoad:    0.6,
			corridor.CorridorTypeCollector:    0.3,
			corridor.CorridorTypeArterial:     0.1,
			corridor.CorridorTypeMixed:        0.5,
		}
	default: // Walking
		return map[corridor.CorridorType]float64{
			corridor.CorridorTypeTrail:        1.0,
			corridor.CorridorTypePath:         1.0,
			corridor.CorridorTypeNeighborhood: 0.9,
			corridor.CorridorTypeRuralRoad:    0.6,
			corridor.CorridorTypeCollector:    0.4,
			corridor.CorridorTypeArterial:     0.2,
			corridor.CorridorTypeMixed:        0.5,
		}
	}
}
