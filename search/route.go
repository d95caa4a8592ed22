package search

import (
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// SegmentKind distinguishes a corridor-backed route segment from a
// connector-backed one.
type SegmentKind int

const (
	SegmentKindCorridor SegmentKind = iota
	SegmentKindConnecting
)

// routeFlowReferenceLengthMeters is the reference scale for flowScore's
// average-corridor-segment-length term.
const routeFlowReferenceLengthMeters = 1000

// RouteSegment is one maximal run of edges sharing the same parent
// corridor or connector id.
type RouteSegment struct {
	Kind             SegmentKind
	CorridorID       string // empty for connecting segments
	ConnectorID      string // empty for corridor segments
	Reversed         bool
	TraversedEdgeIDs []string
}

// RouteStats aggregates per-route quantities over the actually traversed
// edges.
type RouteStats struct {
	ElevationGainMeters float64
	ElevationLossMeters float64
	InfraContinuity     float64
	DistanceByRoadClass map[string]float64
	DistanceBySurface   map[string]float64
	FlowScore           float64
}

// Route is a materialized completed candidate.
type Route struct {
	Segments       []RouteSegment
	Geometry       []geo.Coordinate
	DistanceMeters float64
	Score          float64
	Stats          RouteStats
}

// RouteAlternatives is generateLoopRoutes's successful result.
type RouteAlternatives struct {
	Routes []Route
}

// Materialize converts a completed candidate into a Route.
func Materialize(c *Candidate, network *corridor.CorridorNetwork, g *graph.Graph, score float64) Route {
	segments := buildSegments(c, network)
	geometry := buildGeometry(c, g)
	stats := buildStats(c, g, segments)

	return Route{
		Segments:       segments,
		Geometry:       geometry,
		DistanceMeters: c.DistanceSoFarMeters,
		Score:          score,
		Stats:          stats,
	}
}

// buildSegments groups edgePath/corridorPath into maximal runs sharing the
// same parent id.
func buildSegments(c *Candidate, network *corridor.CorridorNetwork) []RouteSegment {
	var segments []RouteSegment
	n := len(c.EdgePath)
	for i := 0; i < n; {
		parentID := c.CorridorPath[i]
		j := i
		for j < n && c.CorridorPath[j] == parentID {
			j++
		}
		entryNodeID := c.NodePath[i]
		segments = append(segments, makeSegment(network, parentID, entryNodeID, c.EdgePath[i:j]))
		i = j
	}
	return segments
}

func makeSegment(network *corridor.CorridorNetwork, parentID, entryNodeID string, edgeIDs []string) RouteSegment {
	traversed := append([]string(nil), edgeIDs...)
	if cor, ok := network.Corridors[parentID]; ok {
		return RouteSegment{
			Kind:             SegmentKindCorridor,
			CorridorID:       parentID,
			Reversed:         entryNodeID != cor.StartNodeID,
			TraversedEdgeIDs: traversed,
		}
	}
	return RouteSegment{
		Kind:             SegmentKindConnecting,
		ConnectorID:      parentID,
		TraversedEdgeIDs: traversed,
	}
}

// buildGeometry concatenates each traversed edge's geometry, dropping
// duplicate joint vertices.
func buildGeometry(c *Candidate, g *graph.Graph) []geo.Coordinate {
	var geometry []geo.Coordinate
	for _, edgeID := range c.EdgePath {
		e, ok := g.Edge(edgeID)
		if !ok {
			continue
		}
		pts := e.Geometry
		if len(geometry) > 0 && len(pts) > 0 && geometry[len(geometry)-1] == pts[0] {
			pts = pts[1:]
		}
		geometry = append(geometry, pts...)
	}
	return geometry
}

// buildStats computes route-level sums from the actually traversed edges.
func buildStats(c *Candidate, g *graph.Graph, segments []RouteSegment) RouteStats {
	stats := RouteStats{
		DistanceByRoadClass: make(map[string]float64),
		DistanceBySurface:   make(map[string]float64),
	}

	var infraWeighted, totalLength float64
	for _, edgeID := range c.EdgePath {
		e, ok := g.Edge(edgeID)
		if !ok {
			continue
		}
		attrs := e.Attributes
		length := attrs.LengthMeters
		totalLength += length

		if attrs.HasElevationGainLoss {
			stats.ElevationGainMeters += attrs.ElevationGainMeters
			stats.ElevationLossMeters += attrs.ElevationLossMeters
		}

		stats.DistanceByRoadClass[attrs.RoadClass.String()] += length
		stats.DistanceBySurface[attrs.SurfaceClassification.Surface.String()] += length

		infraScore := 0.0
		infraFlags := 0.0
		for _, flag := range []bool{
			attrs.Infrastructure.HasBicycleInfra,
			attrs.Infrastructure.HasPedestrianPath,
			attrs.Infrastructure.HasShoulder,
			attrs.Infrastructure.IsSeparated,
			attrs.Infrastructure.HasTrafficCalming,
		} {
			infraFlags++
			if flag {
				infraScore++
			}
		}
		if infraFlags > 0 {
			infraWeighted += (infraScore / infraFlags) * length
		}
	}
	if totalLength > 0 {
		stats.InfraContinuity = infraWeighted / totalLength
	}

	corridorSegmentCount := 0
	corridorSegmentLength := 0.0
	for _, seg := range segments {
		if seg.Kind != SegmentKindCorridor {
			continue
		}
		corridorSegmentCount++
		for _, edgeID := range seg.TraversedEdgeIDs {
			if e, ok := g.Edge(edgeID); ok {
				corridorSegmentLength += e.Attributes.LengthMeters
			}
		}
	}
	if corridorSegmentCount > 0 {
		avgSegmentLength := corridorSegmentLength / float64(corridorSegmentCount)
		stats.FlowScore = avgSegmentLength / (avgSegmentLength + routeFlowReferenceLengthMeters)
	}

	return stats
}
