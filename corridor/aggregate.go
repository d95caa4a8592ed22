package corridor

import (
	"math"

	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// CorridorAttributes is the aggregated version of EdgeAttributes over an
// edge set.
type CorridorAttributes struct {
	LengthMeters              float64
	PredominantRoadClass      graph.RoadClass
	PredominantSurface        graph.Surface
	SurfaceConfidence         float64
	BicycleInfraContinuity    float64
	PedestrianPathContinuity  float64
	SeparationContinuity      float64
	TrafficCalmingContinuity  float64
	ScenicScore               float64

	AverageSpeedLimitKMH float64
	HasAverageSpeedLimit bool

	StopDensityPerKm     float64
	CrossingDensityPerKm float64
	TurnsCount           int

	TotalElevationGainMeters float64
	TotalElevationLossMeters float64
	AverageGrade             float64
	MaxGrade                 float64
	HasElevation             bool
	ElevationProfile         []float64

	HillinessIndex float64

	Name             string
	HasName          bool
	NameConsistency  float64
}

// edgeLookup resolves edge ids to graph.GraphEdge; both the chain builder
// and the assembler pass graph.Graph-backed lookups through here.
type edgeLookup func(id string) (*graph.GraphEdge, bool)

// Aggregate computes CorridorAttributes over the ordered edge ids, resolving
// each edge via lookup. edgeIDs need not be graph-adjacency order for the
// purpose of aggregation (only chain continuity, checked elsewhere, cares
// about order), but turnsCount and geometry concatenation do assume the
// edges are given in traversal order.
func Aggregate(edgeIDs []string, lookup edgeLookup, g *graph.Graph) CorridorAttributes {
	edges := resolveEdges(edgeIDs, lookup)
	if len(edges) == 0 {
		return CorridorAttributes{}
	}

	attrs := CorridorAttributes{}
	total := totalLength(edges)
	attrs.LengthMeters = total

	attrs.PredominantRoadClass = predominantRoadClass(edges)
	surf, conf := predominantSurface(edges)
	attrs.PredominantSurface = surf
	attrs.SurfaceConfidence = conf

	attrs.BicycleInfraContinuity = continuity(edges, func(e *graph.GraphEdge) bool { return e.Attributes.Infrastructure.HasBicycleInfra })
	attrs.PedestrianPathContinuity = continuity(edges, func(e *graph.GraphEdge) bool { return e.Attributes.Infrastructure.HasPedestrianPath })
	attrs.SeparationContinuity = continuity(edges, func(e *graph.GraphEdge) bool { return e.Attributes.Infrastructure.IsSeparated })
	attrs.TrafficCalmingContinuity = continuity(edges, func(e *graph.GraphEdge) bool { return e.Attributes.Infrastructure.HasTrafficCalming })
	attrs.ScenicScore = continuity(edges, func(e *graph.GraphEdge) bool { return e.Attributes.ScenicDesignation })

	if avg, ok := averageSpeedLimit(edges); ok {
		attrs.AverageSpeedLimitKMH = avg
		attrs.HasAverageSpeedLimit = true
	}

	attrs.StopDensityPerKm = stopDensityPerKm(edges, total)
	attrs.CrossingDensityPerKm = crossingDensityPerKm(edges, g, total)
	attrs.TurnsCount = turnsCount(edges)

	gain, loss, avgGrade, maxGrade, gradeSamples, weights, hasElev := elevationRollup(edges)
	attrs.HasElevation = hasElev
	if hasElev {
		attrs.TotalElevationGainMeters = gain
		attrs.TotalElevationLossMeters = loss
		attrs.AverageGrade = avgGrade
		attrs.MaxGrade = maxGrade

		gs := geo.ComputeGradeStats(gradeSamples, weights)
		attrs.HillinessIndex = geo.HillinessIndex(gain, loss, total, gs.StdDevFactor)
	}
	// Elevation profile is independently gated on node-level elevation
	// presence, not on edge-level gain/loss/grade flags.
	attrs.ElevationProfile = elevationProfile(edges, g)

	name, hasName, consistency := deriveName(edges)
	attrs.Name = name
	attrs.HasName = hasName
	attrs.NameConsistency = consistency

	return attrs
}

func resolveEdges(edgeIDs []string, lookup edgeLookup) []*graph.GraphEdge {
	out := make([]*graph.GraphEdge, 0, len(edgeIDs))
	for _, id := range edgeIDs {
		if e, ok := lookup(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func totalLength(edges []*graph.GraphEdge) float64 {
	var sum float64
	for _, e := range edges {
		sum += e.Attributes.LengthMeters
	}
	return sum
}

func predominantRoadClass(edges []*graph.GraphEdge) graph.RoadClass {
	lengths := make(map[graph.RoadClass]float64)
	for _, e := range edges {
		lengths[e.Attributes.RoadClass] += e.Attributes.LengthMeters
	}
	return argmaxRoadClass(lengths)
}

func argmaxRoadClass(lengths map[graph.RoadClass]float64) graph.RoadClass {
	var best graph.RoadClass
	bestLen := -1.0
	// Iterate classes in a fixed order (zero value upward) so ties resolve
	// deterministically regardless of map iteration order.
	for rc := graph.RoadClassUnknown; rc <= graph.RoadClassLivingStreet; rc++ {
		if l, ok := lengths[rc]; ok && l > bestLen {
			bestLen = l
			best = rc
		}
	}
	return best
}

func predominantSurface(edges []*graph.GraphEdge) (graph.Surface, float64) {
	lengths := make(map[graph.Surface]float64)
	var confSum float64
	var total float64
	for _, e := range edges {
		sc := e.Attributes.SurfaceClassification
		lengths[sc.Surface] += e.Attributes.LengthMeters
		confSum += sc.Confidence * e.Attributes.LengthMeters
		total += e.Attributes.LengthMeters
	}
	best := graph.SurfaceUnknown
	bestLen := -1.0
	for _, s := range []graph.Surface{graph.SurfaceUnknown, graph.SurfacePaved, graph.SurfaceUnpaved} {
		if l, ok := lengths[s]; ok && l > bestLen {
			bestLen = l
			best = s
		}
	}
	if total == 0 {
		return best, 0
	}
	return best, confSum / total
}

func continuity(edges []*graph.GraphEdge, pred func(*graph.GraphEdge) bool) float64 {
	var matched, total float64
	for _, e := range edges {
		total += e.Attributes.LengthMeters
		if pred(e) {
			matched += e.Attributes.LengthMeters
		}
	}
	if total == 0 {
		return 0
	}
	return matched / total
}

func averageSpeedLimit(edges []*graph.GraphEdge) (float64, bool) {
	var weighted, total float64
	for _, e := range edges {
		if e.Attributes.HasSpeedLimit {
			weighted += e.Attributes.SpeedLimitKMH * e.Attributes.LengthMeters
			total += e.Attributes.LengthMeters
		}
	}
	if total == 0 {
		return 0, false
	}
	return weighted / total, true
}

func stopDensityPerKm(edges []*graph.GraphEdge, totalLen float64) float64 {
	if totalLen == 0 {
		return 0
	}
	var count int
	for _, e := range edges {
		count += e.Attributes.StopSignCount + e.Attributes.TrafficSignalCount + e.Attributes.RoadCrossingCount
	}
	return float64(count) / (totalLen / 1000)
}

// crossingDensityPerKm counts distinct nodes along the chain whose graph
// out-degree exceeds 2 (topology-based, independent of tagging).
func crossingDensityPerKm(edges []*graph.GraphEdge, g *graph.Graph, totalLen float64) float64 {
	if totalLen == 0 || g == nil {
		return 0
	}
	seen := make(map[string]bool)
	count := 0
	note := func(nodeID string) {
		if seen[nodeID] {
			return
		}
		seen[nodeID] = true
		if g.OutDegree(nodeID) > 2 {
			count++
		}
	}
	for _, e := range edges {
		note(e.FromNodeID)
		note(e.ToNodeID)
	}
	return float64(count) / (totalLen / 1000)
}

func turnsCount(edges []*graph.GraphEdge) int {
	count := 0
	for i := 0; i+1 < len(edges); i++ {
		if BearingDelta(edges[i], edges[i+1]) > 30 {
			count++
		}
	}
	return count
}

// BearingDelta returns the angle change (degrees, [0,180]) between a's exit
// bearing and b's entry bearing.
func BearingDelta(a, b *graph.GraphEdge) float64 {
	return geo.BearingDelta(exitBearing(a), entryBearing(b))
}

func exitBearing(e *graph.GraphEdge) float64 {
	n := len(e.Geometry)
	return geo.Bearing(toCoord(e.Geometry[n-2]), toCoord(e.Geometry[n-1]))
}

func entryBearing(e *graph.GraphEdge) float64 {
	return geo.Bearing(toCoord(e.Geometry[0]), toCoord(e.Geometry[1]))
}

func toCoord(c geo.Coordinate) geo.Coordinate { return c }

func elevationRollup(edges []*graph.GraphEdge) (gain, loss, avgGrade, maxGrade float64, grades, weights []float64, has bool) {
	for _, e := range edges {
		if !e.Attributes.HasElevationGainLoss && !e.Attributes.HasGrade {
			continue
		}
		has = true
		gain += e.Attributes.ElevationGainMeters
		loss += e.Attributes.ElevationLossMeters
		if e.Attributes.HasGrade {
			grades = append(grades, e.Attributes.AverageGrade)
			weights = append(weights, e.Attributes.LengthMeters)
			if math.Abs(e.Attributes.MaxGrade) > math.Abs(maxGrade) {
				maxGrade = e.Attributes.MaxGrade
			}
		}
	}
	if !has {
		return 0, 0, 0, 0, nil, nil, false
	}
	gs := geo.ComputeGradeStats(grades, weights)
	avgGrade = gs.AverageAbsGrade
	return gain, loss, avgGrade, maxGrade, grades, weights, true
}

// elevationProfile resamples elevation along the chain using only node-level
// elevation samples (the data model carries elevation on GraphNode, not on
// intermediate shape points) at the chain's node vertices.
func elevationProfile(edges []*graph.GraphEdge, g *graph.Graph) []float64 {
	if g == nil || len(edges) == 0 {
		return nil
	}

	nodeIDs := make([]string, 0, len(edges)+1)
	nodeIDs = append(nodeIDs, edges[0].FromNodeID)
	for _, e := range edges {
		nodeIDs = append(nodeIDs, e.ToNodeID)
	}

	coords := make([]geo.Coordinate, len(nodeIDs))
	elev := make([]float64, len(nodeIDs))
	for i, id := range nodeIDs {
		n, ok := g.Node(id)
		if !ok {
			return nil
		}
		coords[i] = n.Coordinate
		if n.HasElevationMeters {
			elev[i] = n.ElevationMeters
		} else {
			elev[i] = math.NaN()
		}
	}
	return geo.ResampleProfile(coords, elev)
}

// buildGeometry concatenates per-edge geometries, dropping the first vertex
// of each edge after the first when it duplicates the previous tail.
func buildGeometry(edges []*graph.GraphEdge) []geo.Coordinate {
	var out []geo.Coordinate
	for i, e := range edges {
		start := 0
		if i > 0 && len(out) > 0 && e.Geometry[0] == out[len(out)-1] {
			start = 1
		}
		out = append(out, e.Geometry[start:]...)
	}
	return out
}

// BuildGeometry is the exported form used by the corridor assembler and
// route materializer to build simplified corridor/segment geometry.
func BuildGeometry(edges []*graph.GraphEdge) []geo.Coordinate {
	return buildGeometry(edges)
}

func deriveName(edges []*graph.GraphEdge) (string, bool, float64) {
	lengths := make(map[string]float64)
	order := make([]string, 0)
	var total float64
	for _, e := range edges {
		total += e.Attributes.LengthMeters
		if !e.Attributes.HasName {
			continue
		}
		if _, seen := lengths[e.Attributes.Name]; !seen {
			order = append(order, e.Attributes.Name)
		}
		lengths[e.Attributes.Name] += e.Attributes.LengthMeters
	}
	if len(order) == 0 {
		return "", false, 0
	}
	best := order[0]
	bestLen := lengths[best]
	for _, name := range order[1:] {
		if lengths[name] > bestLen {
			best = name
			bestLen = lengths[name]
		}
	}
	if total == 0 {
		return best, true, 0
	}
	return best, true, bestLen / total
}

// ChainHomogeneity computes the mean pairwise compatibility across
// consecutive edges in the chain. A single-edge chain scores
// 1.0.
func ChainHomogeneity(edges []*graph.GraphEdge, opts CompatOptions) float64 {
	if len(edges) <= 1 {
		return 1.0
	}
	var sum float64
	for i := 0; i+1 < len(edges); i++ {
		sum += Compatibility(edges[i].Attributes, edges[i+1].Attributes, opts)
	}
	return sum / float64(len(edges)-1)
}
