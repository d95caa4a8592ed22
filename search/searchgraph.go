package search

import (
	"sort"

	"github.com/trailforge/loopcourse/activity"
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// SearchEdgeKind distinguishes corridor-backed from connector-backed
// search edges.
type SearchEdgeKind int

const (
	SearchEdgeKindCorridor SearchEdgeKind = iota
	SearchEdgeKindConnector
)

// SearchEdge is one traversable hop in the flattened SearchGraph.
type SearchEdge struct {
	GraphEdgeID  string
	CorridorID   string
	Kind         SearchEdgeKind
	TargetNodeID string
	LengthMeters float64
	Score        float64
}

// SearchGraph is the read-only projection the beam search walks.
type SearchGraph struct {
	Adjacency       map[string][]SearchEdge
	NodeCoordinates map[string]geo.Coordinate
}

// BuildSearchGraph flattens network for params.Activity into a SearchGraph, applying the
// activity's exclusion filters.
func BuildSearchGraph(network *corridor.CorridorNetwork, g *graph.Graph, params activity.Params) *SearchGraph {
	sg := &SearchGraph{
		Adjacency:       make(map[string][]SearchEdge),
		NodeCoordinates: make(map[string]geo.Coordinate),
	}

	corridorIDs := sortedKeys(network.Corridors)
	for _, id := range corridorIDs {
		c := network.Corridors[id]
		if params.ExcludesCorridor(c.Type, c.Attributes.PredominantSurface, c.Attributes.PredominantRoadClass) {
			continue
		}
		score := corridorOverallScore(c, params)
		emitCorridorEdges(sg, g, c, score)
	}

	connectorIDs := sortedKeys(network.Connectors)
	for _, id := range connectorIDs {
		conn := network.Connectors[id]
		if len(conn.CorridorIDs) < 2 {
			continue
		}
		emitConnectorEdges(sg, g, conn, params)
	}

	return sg
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// corridorOverallScore resolves a corridor's activity-specific overall
// score, scoring it on demand if the assembler hasn't pre-populated
// Scores for this activity.
func corridorOverallScore(c *corridor.Corridor, params activity.Params) float64 {
	if c.Scores != nil {
		if v, ok := c.Scores[int(params.Activity)]; ok {
			if b, ok := v.(activity.Breakdown); ok {
				return b.Overall
			}
		}
	}
	return activity.Score(c.Attributes, c.Type, params).Overall
}

func emitCorridorEdges(sg *SearchGraph, g *graph.Graph, c *corridor.Corridor, score float64) {
	for _, edgeID := range c.EdgeIDs {
		e, ok := g.Edge(edgeID)
		if !ok {
			continue
		}
		registerNode(sg, g, e.FromNodeID)
		registerNode(sg, g, e.ToNodeID)

		sg.Adjacency[e.FromNodeID] = append(sg.Adjacency[e.FromNodeID], SearchEdge{
			GraphEdgeID: edgeID, CorridorID: c.ID, Kind: SearchEdgeKindCorridor,
			TargetNodeID: e.ToNodeID, LengthMeters: e.Attributes.LengthMeters, Score: score,
		})

		if c.OneWay {
			continue
		}
		if cp, ok := graph.CounterpartID(edgeID); ok {
			if rev, ok := g.Edge(cp); ok {
				sg.Adjacency[e.ToNodeID] = append(sg.Adjacency[e.ToNodeID], SearchEdge{
					GraphEdgeID: cp, CorridorID: c.ID, Kind: SearchEdgeKindCorridor,
					TargetNodeID: rev.ToNodeID, LengthMeters: rev.Attributes.LengthMeters, Score: score,
				})
			}
		}
	}
}

func emitConnectorEdges(sg *SearchGraph, g *graph.Graph, conn *corridor.Connector, params activity.Params) {
	score := 1 - conn.CrossingDifficulty
	for _, edgeID := range conn.EdgeIDs {
		e, ok := g.Edge(edgeID)
		if !ok {
			continue
		}
		if params.ExcludesRoadClass(e.Attributes.RoadClass) {
			continue
		}
		registerNode(sg, g, e.FromNodeID)
		registerNode(sg, g, e.ToNodeID)

		sg.Adjacency[e.FromNodeID] = append(sg.Adjacency[e.FromNodeID], SearchEdge{
			GraphEdgeID: edgeID, CorridorID: conn.ID, Kind: SearchEdgeKindConnector,
			TargetNodeID: e.ToNodeID, LengthMeters: e.Attributes.LengthMeters, Score: score,
		})
		if cp, ok := graph.CounterpartID(edgeID); ok {
			if rev, ok := g.Edge(cp); ok && !params.ExcludesRoadClass(rev.Attributes.RoadClass) {
				sg.Adjacency[e.ToNodeID] = append(sg.Adjacency[e.ToNodeID], SearchEdge{
					GraphEdgeID: cp, CorridorID: conn.ID, Kind: SearchEdgeKindConnector,
					TargetNodeID: rev.ToNodeID, LengthMeters: rev.Attributes.LengthMeters, Score: score,
				})
			}
		}
	}
}

func registerNode(sg *SearchGraph, g *graph.Graph, nodeID string) {
	if _, ok := sg.NodeCoordinates[nodeID]; ok {
		return
	}
	if n, ok := g.Node(nodeID); ok {
		sg.NodeCoordinates[nodeID] = n.Coordinate
	}
}
