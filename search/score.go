package search

import (
	"math"
	"math/rand"
	"sort"

	"github.com/trailforge/loopcourse/geo"
)

// jaccardDedupThreshold is the "> 0.7" visited-edge similarity gate used
// to drop near-duplicate completed candidates.
const jaccardDedupThreshold = 0.7

// activeScore ranks a candidate for beam pruning.
func activeScore(c *Candidate, opts Options, sg *SearchGraph, rng *rand.Rand) float64 {
	startCoord := opts.StartCoordinate
	currentCoord := sg.NodeCoordinates[c.CurrentNodeID]
	distToStart := geo.Haversine(currentCoord, startCoord)

	avgScore := c.avgCorridorScore()
	directional := directionalScore(c, opts, distToStart, currentCoord)
	novelty := c.novelty()
	edgeQualityPenalty := math.Max(0, 0.75-c.LastEdgeScore) * 0.5
	turnMod := turnModifier(c, opts)
	noise := (rng.Float64()*2 - 1) * 0.04

	return 0.65*avgScore +
		0.10*directional +
		0.05*novelty -
		c.ConnectorPenaltySum -
		edgeQualityPenalty +
		turnMod +
		noise
}

// directionalScore implements the three-phase directional term.
func directionalScore(c *Candidate, opts Options, distToStart float64, currentCoord geo.Coordinate) float64 {
	f := 0.0
	if mid := opts.midDistance(); mid > 0 {
		f = c.DistanceSoFarMeters / mid
	}

	switch {
	case f < 0.33:
		reward := math.Min(1, distToStart/math.Max(1000, 0.4*c.DistanceSoFarMeters))
		bearing := geo.Bearing(opts.StartCoordinate, currentCoord)
		err := geo.BearingDelta(bearing, opts.PreferredDirectionDegrees) / 180
		return reward * (1 - 0.5*err)
	case f < 0.66:
		return 0.5
	default:
		remaining := opts.returnBudget() - c.DistanceSoFarMeters
		if remaining > 0 {
			return math.Exp(-distToStart / remaining)
		}
		return math.Max(0, 1-distToStart/HomeZoneRadiusMeters)
	}
}

// turnModifier implements the turnFrequency adjustment.
func turnModifier(c *Candidate, opts Options) float64 {
	switch opts.TurnFrequency {
	case TurnFrequencyMinimal:
		edgesPerKm := 0.0
		if c.DistanceSoFarMeters > 0 {
			edgesPerKm = float64(len(c.EdgePath)) / (c.DistanceSoFarMeters / 1000)
		}
		return -0.05 * math.Max(0, edgesPerKm-2)
	case TurnFrequencyFrequent:
		return 0.02 * math.Min(10, float64(len(c.VisitedEdges)))
	default:
		return 0
	}
}

// finalScore ranks completed candidates for sorting and selection.
func finalScore(c *Candidate, opts Options) float64 {
	avgScore := c.avgCorridorScore()
	penalty := distancePenalty(c.DistanceSoFarMeters, opts)
	return 2*avgScore - penalty - c.ConnectorPenaltySum + 0.1*c.novelty() + turnModifier(c, opts)
}

func distancePenalty(distance float64, opts Options) float64 {
	switch {
	case distance < opts.MinDistanceMeters && opts.MinDistanceMeters > 0:
		return (opts.MinDistanceMeters - distance) / opts.MinDistanceMeters
	case distance > opts.MaxDistanceMeters && opts.MaxDistanceMeters > 0:
		return (distance - opts.MaxDistanceMeters) / opts.MaxDistanceMeters
	default:
		return 0
	}
}

// dedupeByJaccard sorts completed candidates by final score descending
// and drops any candidate whose visitedEdges Jaccard-overlaps a
// higher-ranked kept candidate above the threshold. Returns up to maxAlternatives.
func dedupeByJaccard(completed []*Candidate, opts Options, maxAlternatives int) []*Candidate {
	sorted := append([]*Candidate(nil), completed...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return finalScore(sorted[i], opts) > finalScore(sorted[j], opts)
	})

	var kept []*Candidate
	for _, cand := range sorted {
		tooSimilar := false
		for _, k := range kept {
			if jaccard(cand.VisitedEdges, k.VisitedEdges) > jaccardDedupThreshold {
				tooSimilar = true
				break
			}
		}
		if tooSimilar {
			continue
		}
		kept = append(kept, cand)
		if len(kept) >= maxAlternatives {
			break
		}
	}
	return kept
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
