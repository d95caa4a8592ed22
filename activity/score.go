package activity

import (
	"math"

	"github.com/trailforge/loopcourse/corridor"
)

// Breakdown is the per-activity sub-score breakdown plus overall score.
type Breakdown struct {
	Flow      float64
	Safety    float64
	Surface   float64
	Character float64
	Scenic    float64
	Elevation float64
	Overall   float64
}

const flowReferenceLengthMeters = 10000
const flowLengthLogBaseMeters = 300

// Score computes the full per-activity score breakdown for a corridor.
// ctype is the corridor's classified type.
func Score(attrs corridor.CorridorAttributes, ctype corridor.CorridorType, p Params) Breakdown {
	b := Breakdown{
		Flow:      flowScore(attrs, p),
		Safety:    safetyScore(attrs),
		Surface:   surfaceScore(attrs, p),
		Character: characterScore(ctype, p),
		Scenic:    clamp01(attrs.ScenicScore),
		Elevation: elevationScore(attrs, p),
	}
	b.Overall = clamp01(
		p.Weights.Flow*b.Flow +
			p.Weights.Safety*b.Safety +
			p.Weights.Surface*b.Surface +
			p.Weights.Character*b.Character +
			p.Weights.Scenic*b.Scenic +
			p.Weights.Elevation*b.Elevation,
	)
	return b
}

func flowScore(attrs corridor.CorridorAttributes, p Params) float64 {
	lengthTerm := math.Log(1+attrs.LengthMeters/flowLengthLogBaseMeters) / math.Log(1+flowReferenceLengthMeters/flowLengthLogBaseMeters)
	if lengthTerm > 1 {
		lengthTerm = 1
	}
	stopTerm := math.Exp(-p.FlowStopDecayRate * attrs.StopDensityPerKm)
	return clamp01(p.FlowLengthBlendWeight*lengthTerm + (1-p.FlowLengthBlendWeight)*stopTerm)
}

func safetyScore(attrs corridor.CorridorAttributes) float64 {
	return clamp01(
		0.3*attrs.BicycleInfraContinuity +
			0.3*attrs.SeparationContinuity +
			0.2*speedScore(attrs) +
			0.2*roadClassScore(attrs.PredominantRoadClass),
	)
}

func surfaceScore(attrs corridor.CorridorAttributes, p Params) float64 {
	base, ok := p.SurfaceTable[attrs.PredominantSurface]
	if !ok {
		base = 0.5
	}
	return clamp01(base * (0.5 + 0.5*attrs.SurfaceConfidence))
}

func characterScore(ctype corridor.CorridorType, p Params) float64 {
	v, ok := p.CharacterTable[ctype]
	if !ok {
		return 0.5
	}
	return clamp01(v)
}

func elevationScore(attrs corridor.CorridorAttributes, p Params) float64 {
	if !attrs.HasElevation {
		return 0.5
	}
	return clamp01(0.5 + p.ElevationPreference*(attrs.HillinessIndex-0.5))
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
