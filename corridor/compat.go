package corridor

import "github.com/trailforge/loopcourse/graph"

// CompatOptions tunes edge compatibility scoring.
type CompatOptions struct {
	// AllowNameChanges softens the name-mismatch penalty from a hard
	// penalty to a partial one.
	AllowNameChanges bool

	// MaxSpeedDifferenceKMH is the hard-cut threshold: a present/present
	// speed-limit difference above this value forces compatibility to 0.
	MaxSpeedDifferenceKMH float64
}

// DefaultCompatOptions returns the documented defaults.
func DefaultCompatOptions() CompatOptions {
	return CompatOptions{
		AllowNameChanges:      false,
		MaxSpeedDifferenceKMH: 15,
	}
}

// roadClassGroup is the 4-way partition used for the compatibility hard cut.
// Different groups => incompatible outright.
type roadClassGroup int

const (
	groupOffRoad    roadClassGroup = iota // cycleway, path, footway
	groupLocal                            // residential, living_street, service, unclassified
	groupMajor                            // tertiary, secondary, primary, trunk, motorway
	groupTrack                            // track
	groupUnknownGrp                       // anything else (e.g. RoadClassUnknown) never matches another group
)

func classGroup(rc graph.RoadClass) roadClassGroup {
	switch rc {
	case graph.RoadClassCycleway, graph.RoadClassPath, graph.RoadClassFootway:
		return groupOffRoad
	case graph.RoadClassResidential, graph.RoadClassLivingStreet, graph.RoadClassService, graph.RoadClassUnclassified:
		return groupLocal
	case graph.RoadClassTertiary, graph.RoadClassSecondary, graph.RoadClassPrimary, graph.RoadClassTrunk, graph.RoadClassMotorway:
		return groupMajor
	case graph.RoadClassTrack:
		return groupTrack
	default:
		return groupUnknownGrp
	}
}

// Sub-score weights. These are values, not semantics: they sum to 1 and are
// tunable, but the hard cuts below always short-circuit regardless of
// weighting.
const (
	weightRoadClass      = 0.30
	weightSurface        = 0.20
	weightInfrastructure = 0.20
	weightName           = 0.15
	weightSpeed          = 0.15
)

// Compatibility scores how well edge b continues edge a within the same
// corridor, in [0,1]. It is always evaluated in the forward sense: exit of a
// into entry of b. Road-class-group mismatch and excessive speed-limit
// difference are hard cuts that force the result to 0 regardless of every
// other sub-score.
func Compatibility(a, b graph.EdgeAttributes, opts CompatOptions) float64 {
	if classGroup(a.RoadClass) != classGroup(b.RoadClass) {
		return 0
	}
	if a.HasSpeedLimit && b.HasSpeedLimit {
		if diff := abs(a.SpeedLimitKMH - b.SpeedLimitKMH); diff > opts.MaxSpeedDifferenceKMH {
			return 0
		}
	}

	score := weightRoadClass*roadClassScore(a.RoadClass, b.RoadClass) +
		weightSurface*surfaceScore(a.SurfaceClassification.Surface, b.SurfaceClassification.Surface) +
		weightInfrastructure*infrastructureScore(a.Infrastructure, b.Infrastructure) +
		weightName*nameScore(a, b, opts) +
		weightSpeed*speedScore(a, b)

	return clamp01(score)
}

func roadClassScore(a, b graph.RoadClass) float64 {
	if a == b {
		return 1.0
	}
	return 0.5 // same group, different class: partial credit
}

func surfaceScore(a, b graph.Surface) float64 {
	switch {
	case a == b:
		return 1.0
	case a == graph.SurfaceUnknown || b == graph.SurfaceUnknown:
		return 0.6 // unknown vs known: partial
	default:
		return 0.3 // paved vs unpaved: low but not zero
	}
}

func infrastructureScore(a, b graph.Infrastructure) float64 {
	matches := 0
	if a.HasBicycleInfra == b.HasBicycleInfra {
		matches++
	}
	if a.HasPedestrianPath == b.HasPedestrianPath {
		matches++
	}
	if a.HasShoulder == b.HasShoulder {
		matches++
	}
	if a.IsSeparated == b.IsSeparated {
		matches++
	}
	if a.HasTrafficCalming == b.HasTrafficCalming {
		matches++
	}
	return float64(matches) / 5.0
}

func nameScore(a, b graph.EdgeAttributes, opts CompatOptions) float64 {
	switch {
	case !a.HasName && !b.HasName:
		return 1.0
	case a.HasName && b.HasName && a.Name == b.Name:
		return 1.0
	case opts.AllowNameChanges:
		return 0.5
	default:
		return 0.1
	}
}

func speedScore(a, b graph.EdgeAttributes) float64 {
	if !a.HasSpeedLimit || !b.HasSpeedLimit {
		return 0.5 // either missing: neutral
	}
	// Hard cut already handled by the caller; here both are present and
	// within threshold, so full credit.
	return 1.0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
