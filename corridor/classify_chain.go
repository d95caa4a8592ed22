package corridor

import "github.com/trailforge/loopcourse/graph"

// ChainLengthThresholds holds the default tiered thresholds used by
// EffectiveMinLength.
type ChainLengthThresholds struct {
	DedicatedInfraMeters float64
	NamedBikeInfraMeters float64
	NamedRoadMeters      float64
	UnnamedMeters        float64

	// NameConsistencyBonusThreshold is the >= 0.8 gate that halves the threshold.
	NameConsistencyBonusThreshold float64

	// HomogeneityPenaltyThreshold is the < 0.7 gate below which the
	// threshold is multiplied by 1/homogeneity.
	HomogeneityPenaltyThreshold float64
}

// DefaultChainLengthThresholds returns the documented defaults.
func DefaultChainLengthThresholds() ChainLengthThresholds {
	return ChainLengthThresholds{
		DedicatedInfraMeters:          400,
		NamedBikeInfraMeters:          800,
		NamedRoadMeters:               1609,
		UnnamedMeters:                 1609,
		NameConsistencyBonusThreshold: 0.8,
		HomogeneityPenaltyThreshold:   0.7,
	}
}

// EffectiveMinLength computes the effective minimum-length gate used by the assembler to decide corridor vs connector.
func EffectiveMinLength(attrs CorridorAttributes, homogeneity float64, th ChainLengthThresholds) float64 {
	base := baseThreshold(attrs, th)

	if attrs.HasName && attrs.NameConsistency >= th.NameConsistencyBonusThreshold {
		base /= 2
	}

	if homogeneity > 0 && homogeneity < th.HomogeneityPenaltyThreshold {
		base *= 1 / homogeneity
	}

	return base
}

func baseThreshold(attrs CorridorAttributes, th ChainLengthThresholds) float64 {
	isBikeInfra := attrs.PredominantRoadClass == graph.RoadClassCycleway || attrs.BicycleInfraContinuity > 0

	switch {
	case attrs.PredominantRoadClass == graph.RoadClassCycleway || isSeparatedDominant(attrs):
		return th.DedicatedInfraMeters
	case attrs.HasName && isBikeInfra:
		return th.NamedBikeInfraMeters
	case attrs.HasName:
		return th.NamedRoadMeters
	default:
		return th.UnnamedMeters
	}
}

// isSeparatedDominant treats a chain as dedicated infra when separation
// continuity covers a majority of its length.
func isSeparatedDominant(attrs CorridorAttributes) bool {
	return attrs.SeparationContinuity > 0.5
}
