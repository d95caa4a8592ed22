package search

import (
	"math"
	"math/rand"
	"sort"

	"github.com/trailforge/loopcourse/activity"
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// phaseOutboundLimit, phaseExploreLimit and phaseLateStart are the
// budget-fraction thresholds governing directionalScore and diversity
// slot allocation.
const (
	phaseOutboundLimit = 0.33
	phaseExploreLimit  = 0.66
	phaseLateStart     = 0.80

	bfsClosureDuringIterationRadiusMeters = 5000
	bfsClosureDuringIterationEdgeLimit    = 50
	bfsClosureDuringIterationDistanceFactor = 1.3

	bfsFallbackRadiusMeters      = 5000
	bfsFallbackDistanceFactor    = 1.5
	bfsFallbackEdgeLimit         = 200
	bfsFallbackMaxCandidates     = 20
	bfsFallbackMinDistanceFactor = 0.5

	connectorPenaltyWeight = 0.05
)

// GenerateLoopRoutes runs Snap then the stochastic beam search with BFS
// closure, returning materialized route alternatives. Returns (nil, nil)
// when snap finds no node within radius.
func GenerateLoopRoutes(network *corridor.CorridorNetwork, g *graph.Graph, params activity.Params, opts Options) (*RouteAlternatives, error) {
	if network == nil {
		return nil, ErrNilNetwork
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	if opts.MinDistanceMeters <= 0 || opts.MaxDistanceMeters <= 0 || opts.MinDistanceMeters > opts.MaxDistanceMeters {
		return nil, ErrInvalidDistanceRange
	}
	opts = opts.WithDefaults()

	snapIdx := BuildSnapIndex(g)
	snapped := snapIdx.Snap(opts.StartCoordinate, opts.SnapMaxRadiusMeters)
	if snapped == nil {
		return nil, nil
	}
	opts.StartCoordinate = snapped.Coordinate

	sg := BuildSearchGraph(network, g, params)
	return runLoopSearch(sg, snapped, network, g, opts)
}

// GenerateLoopRoutesFromSearchGraph runs the same search as
// GenerateLoopRoutes against an already-built SearchGraph, so a caller
// that caches sg across requests (the API server's per-region/activity
// cache) can skip BuildSearchGraph on a cache hit.
func GenerateLoopRoutesFromSearchGraph(sg *SearchGraph, network *corridor.CorridorNetwork, g *graph.Graph, opts Options) (*RouteAlternatives, error) {
	if sg == nil {
		return nil, ErrNilNetwork
	}
	if network == nil {
		return nil, ErrNilNetwork
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	if opts.MinDistanceMeters <= 0 || opts.MaxDistanceMeters <= 0 || opts.MinDistanceMeters > opts.MaxDistanceMeters {
		return nil, ErrInvalidDistanceRange
	}
	opts = opts.WithDefaults()

	snapIdx := BuildSnapIndex(g)
	snapped := snapIdx.Snap(opts.StartCoordinate, opts.SnapMaxRadiusMeters)
	if snapped == nil {
		return nil, nil
	}
	opts.StartCoordinate = snapped.Coordinate

	return runLoopSearch(sg, snapped, network, g, opts)
}

// runLoopSearch is the shared beam-search-then-materialize tail of
// GenerateLoopRoutes and GenerateLoopRoutesFromSearchGraph.
func runLoopSearch(sg *SearchGraph, snapped *SnapResult, network *corridor.CorridorNetwork, g *graph.Graph, opts Options) (*RouteAlternatives, error) {
	baseRNG := rngFromSeed(opts.Seed)
	if !opts.HasPreferredDirection {
		opts.PreferredDirectionDegrees = deriveRNG(baseRNG, streamPreferredDirection).Float64() * 360
	}
	noiseRNG := deriveRNG(baseRNG, streamBeamNoise)

	completed, bestSoFar := runBeamSearch(sg, snapped.NodeID, opts, noiseRNG)

	if len(completed) == 0 {
		completed = fallbackClosure(sg, snapped.NodeID, bestSoFar, opts)
	}
	if len(completed) == 0 {
		return &RouteAlternatives{}, nil
	}

	kept := dedupeByJaccard(completed, opts, opts.MaxAlternatives)

	routes := make([]Route, 0, len(kept))
	for _, c := range kept {
		routes = append(routes, Materialize(c, network, g, finalScore(c, opts)))
	}
	return &RouteAlternatives{Routes: routes}, nil
}

// runBeamSearch runs the three-phase beam's main loop, returning completed
// candidates and a tracked best-so-far pool for fallback closure.
func runBeamSearch(sg *SearchGraph, startNodeID string, opts Options, rng *rand.Rand) ([]*Candidate, []*Candidate) {
	beam := []*Candidate{newRootCandidate(startNodeID)}
	var completed []*Candidate
	var bestSoFar []*Candidate

	for iter := 0; iter < opts.MaxIterations && len(beam) > 0; iter++ {
		var nextBeam []*Candidate

		for _, cand := range beam {
			for _, edge := range sg.Adjacency[cand.CurrentNodeID] {
				successor, outcome := expand(cand, edge, sg, opts, startNodeID)
				switch outcome {
				case expandPruned:
					continue
				case expandCompleted:
					completed = append(completed, successor)
				case expandContinue:
					nextBeam = append(nextBeam, successor)
				}
			}
		}

		nextBeam = applyBFSClosureDuringIteration(nextBeam, sg, startNodeID, opts, &completed)
		bestSoFar = updateBestSoFar(bestSoFar, nextBeam, opts)
		beam = selectBeam(nextBeam, sg, opts, rng)
	}

	return completed, bestSoFar
}

type expandOutcome int

const (
	expandPruned expandOutcome = iota
	expandCompleted
	expandContinue
)

// expand applies the no-revisit/hard-cap/completion rules for one
// (candidate, edge) pair.
func expand(cand *Candidate, edge SearchEdge, sg *SearchGraph, opts Options, startNodeID string) (*Candidate, expandOutcome) {
	alreadyVisited := cand.VisitedEdges[edge.GraphEdgeID]
	if alreadyVisited {
		inHomeZone := geo.Haversine(sg.NodeCoordinates[edge.TargetNodeID], opts.StartCoordinate) <= HomeZoneRadiusMeters
		traveledEnough := cand.DistanceSoFarMeters > RevisitGateFraction*opts.MinDistanceMeters
		if !(inHomeZone && traveledEnough) {
			return nil, expandPruned
		}
	}

	newDistance := cand.DistanceSoFarMeters + edge.LengthMeters
	if newDistance > opts.hardCap() {
		return nil, expandPruned
	}

	distToStart := geo.Haversine(sg.NodeCoordinates[edge.TargetNodeID], opts.StartCoordinate)
	remaining := opts.returnBudget() - newDistance
	if remaining > 0 {
		if distToStart > roadNetworkSlackFactor*remaining {
			return nil, expandPruned
		}
	} else if distToStart > HomeZoneRadiusMeters {
		return nil, expandPruned
	}

	successor := cand.clone()
	successor.EdgePath = append(successor.EdgePath, edge.GraphEdgeID)
	successor.CorridorPath = append(successor.CorridorPath, edge.CorridorID)
	successor.NodePath = append(successor.NodePath, edge.TargetNodeID)
	successor.CurrentNodeID = edge.TargetNodeID
	successor.DistanceSoFarMeters = newDistance
	successor.WeightedScoreSum += edge.Score * edge.LengthMeters
	successor.CorridorDistance += edge.LengthMeters
	if edge.Kind == SearchEdgeKindConnector {
		successor.ConnectorPenaltySum += (1 - edge.Score) * connectorPenaltyWeight
	}
	successor.VisitedEdges[edge.GraphEdgeID] = true
	successor.LastEdgeScore = edge.Score

	if edge.TargetNodeID == startNodeID {
		if newDistance >= opts.MinDistanceMeters {
			return successor, expandCompleted
		}
		return nil, expandPruned // too early: discard
	}
	if distToStart <= NearHomeCompletionRadiusMeters && newDistance >= opts.MinDistanceMeters {
		return successor, expandCompleted
	}

	return successor, expandContinue
}

// applyBFSClosureDuringIteration gives eligible surviving candidates an
// additional closure attempt appended to completed, without removing them
// from nextBeam.
func applyBFSClosureDuringIteration(nextBeam []*Candidate, sg *SearchGraph, startNodeID string, opts Options, completed *[]*Candidate) []*Candidate {
	for _, cand := range nextBeam {
		if cand.DistanceSoFarMeters < RevisitGateFraction*opts.MinDistanceMeters {
			continue
		}
		distToStart := geo.Haversine(sg.NodeCoordinates[cand.CurrentNodeID], opts.StartCoordinate)
		if distToStart > bfsClosureDuringIterationRadiusMeters {
			continue
		}
		maxDist := math.Max(bfsClosureDuringIterationRadiusMeters, bfsClosureDuringIterationDistanceFactor*distToStart)
		path, found := bfsClosure(sg, cand.CurrentNodeID, startNodeID, maxDist, bfsClosureDuringIterationEdgeLimit)
		if !found {
			continue
		}
		closed := appendClosure(cand, path)
		if closed.DistanceSoFarMeters >= opts.MinDistanceMeters {
			*completed = append(*completed, closed)
		}
	}
	return nextBeam
}

// fallbackClosure runs when the main loop ends with no completed
// candidates, attempting a wider closure from the best candidates seen.
func fallbackClosure(sg *SearchGraph, startNodeID string, bestSoFar []*Candidate, opts Options) []*Candidate {
	var completed []*Candidate
	for i, cand := range bestSoFar {
		if i >= bfsFallbackMaxCandidates {
			break
		}
		distToStart := geo.Haversine(sg.NodeCoordinates[cand.CurrentNodeID], opts.StartCoordinate)
		maxDist := math.Max(bfsFallbackRadiusMeters, bfsFallbackDistanceFactor*distToStart)
		path, found := bfsClosure(sg, cand.CurrentNodeID, startNodeID, maxDist, bfsFallbackEdgeLimit)
		if !found {
			continue
		}
		closed := appendClosure(cand, path)
		completed = append(completed, closed)
	}
	return completed
}

func appendClosure(cand *Candidate, path closurePath) *Candidate {
	out := cand.clone()
	out.EdgePath = append(out.EdgePath, path.edgeIDs...)
	out.CorridorPath = append(out.CorridorPath, path.corridorIDs...)
	if len(path.nodeIDs) > 0 {
		out.NodePath = append(out.NodePath, path.nodeIDs[1:]...)
		out.CurrentNodeID = path.nodeIDs[len(path.nodeIDs)-1]
	}
	out.DistanceSoFarMeters += path.lengthMeters
	for _, id := range path.edgeIDs {
		out.VisitedEdges[id] = true
	}
	return out
}

// updateBestSoFar tracks up to bfsFallbackMaxCandidates candidates with
// distance >= 0.5*midDistance, ranked by avgCorridorScore.
func updateBestSoFar(bestSoFar, nextBeam []*Candidate, opts Options) []*Candidate {
	threshold := bfsFallbackMinDistanceFactor * opts.midDistance()
	pool := append(append([]*Candidate(nil), bestSoFar...), nextBeam...)
	filtered := pool[:0]
	for _, c := range pool {
		if c.DistanceSoFarMeters >= threshold {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].avgCorridorScore() > filtered[j].avgCorridorScore()
	})
	if len(filtered) > bfsFallbackMaxCandidates {
		filtered = filtered[:bfsFallbackMaxCandidates]
	}
	return append([]*Candidate(nil), filtered...)
}

// selectBeam applies active-score pruning with diversity slot allocation
// down to opts.BeamWidth.
func selectBeam(nextBeam []*Candidate, sg *SearchGraph, opts Options, rng *rand.Rand) []*Candidate {
	if len(nextBeam) <= opts.BeamWidth {
		return nextBeam
	}

	type scored struct {
		cand  *Candidate
		score float64
	}
	scoredCands := make([]scored, len(nextBeam))
	var totalF float64
	for i, c := range nextBeam {
		scoredCands[i] = scored{cand: c, score: activeScore(c, opts, sg, rng)}
		if mid := opts.midDistance(); mid > 0 {
			totalF += c.DistanceSoFarMeters / mid
		}
	}
	avgF := totalF / float64(len(nextBeam))

	chosen := make(map[*Candidate]bool, opts.BeamWidth)
	var result []*Candidate

	switch {
	case avgF >= phaseLateStart:
		ramp := math.Min(1, (avgF-phaseLateStart)/(1.0-phaseLateStart))
		homeSlots := int(ramp * 0.20 * float64(opts.BeamWidth))
		home := append([]scored(nil), scoredCands...)
		homeBucket := func(s scored) int {
			return int(geo.Haversine(sg.NodeCoordinates[s.cand.CurrentNodeID], opts.StartCoordinate) / 500)
		}
		sort.SliceStable(home, func(i, j int) bool {
			bi, bj := homeBucket(home[i]), homeBucket(home[j])
			if bi != bj {
				return bi < bj
			}
			return home[i].score > home[j].score
		})
		for _, s := range home {
			if len(result) >= homeSlots {
				break
			}
			if chosen[s.cand] {
				continue
			}
			chosen[s.cand] = true
			result = append(result, s.cand)
		}
	case avgF < phaseOutboundLimit:
		sectors := make([][]scored, 8)
		for _, s := range scoredCands {
			bearing := geo.Bearing(opts.StartCoordinate, sg.NodeCoordinates[s.cand.CurrentNodeID])
			sector := int(bearing/45) % 8
			sectors[sector] = append(sectors[sector], s)
		}
		for _, sec := range sectors {
			sort.SliceStable(sec, func(i, j int) bool { return sec[i].score > sec[j].score })
		}
		for len(result) < opts.BeamWidth {
			progressed := false
			for _, sec := range sectors {
				for _, s := range sec {
					if chosen[s.cand] {
						continue
					}
					chosen[s.cand] = true
					result = append(result, s.cand)
					progressed = true
					break
				}
				if len(result) >= opts.BeamWidth {
					break
				}
			}
			if !progressed {
				break
			}
		}
	}

	sort.SliceStable(scoredCands, func(i, j int) bool { return scoredCands[i].score > scoredCands[j].score })
	for _, s := range scoredCands {
		if len(result) >= opts.BeamWidth {
			break
		}
		if chosen[s.cand] {
			continue
		}
		chosen[s.cand] = true
		result = append(result, s.cand)
	}

	return result
}
