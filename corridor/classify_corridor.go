package corridor

import "github.com/trailforge/loopcourse/graph"

// CorridorType is the closed set of classification outcomes.
type CorridorType int

const (
	CorridorTypeMixed CorridorType = iota
	CorridorTypeTrail
	CorridorTypePath
	CorridorTypeArterial
	CorridorTypeCollector
	CorridorTypeRuralRoad
	CorridorTypeNeighborhood
)

func (t CorridorType) String() string {
	switch t {
	case CorridorTypeTrail:
		return "trail"
	case CorridorTypePath:
		return "path"
	case CorridorTypeArterial:
		return "arterial"
	case CorridorTypeCollector:
		return "collector"
	case CorridorTypeRuralRoad:
		return "rural_road"
	case CorridorTypeNeighborhood:
		return "neighborhood"
	default:
		return "mixed"
	}
}

// ClassifyCorridor applies the ordered type-rule table.
func ClassifyCorridor(attrs CorridorAttributes) CorridorType {
	rc := attrs.PredominantRoadClass

	if (rc == graph.RoadClassCycleway || rc == graph.RoadClassPath) && attrs.SeparationContinuity > 0.7 {
		return CorridorTypeTrail
	}
	if rc == graph.RoadClassFootway || rc == graph.RoadClassPath {
		return CorridorTypePath
	}
	if rc == graph.RoadClassPrimary || rc == graph.RoadClassTrunk || rc == graph.RoadClassMotorway {
		return CorridorTypeArterial
	}
	if rc == graph.RoadClassSecondary || rc == graph.RoadClassTertiary {
		return CorridorTypeCollector
	}
	if (rc == graph.RoadClassResidential || rc == graph.RoadClassUnclassified || rc == graph.RoadClassService) &&
		(!attrs.HasAverageSpeedLimit || attrs.AverageSpeedLimitKMH <= 40) {
		if attrs.CrossingDensityPerKm < 4 && attrs.StopDensityPerKm < 2 &&
			attrs.PedestrianPathContinuity < 0.3 && attrs.TrafficCalmingContinuity < 0.3 {
			return CorridorTypeRuralRoad
		}
		return CorridorTypeNeighborhood
	}

	return CorridorTypeMixed
}
