package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/graph"
)

func TestMaterializeGroupsMaximalRunsIntoSegments(t *testing.T) {
	g := subdividedSquareGraph()
	network, _, err := corridor.BuildCorridors(g, corridor.DefaultBuildOptions())
	require.NoError(t, err)

	var corridorID string
	for id := range network.Corridors {
		corridorID = id
		break
	}
	require.NotEmpty(t, corridorID)
	cor := network.Corridors[corridorID]
	require.GreaterOrEqual(t, len(cor.EdgeIDs), 2)

	cand := newRootCandidate(cor.StartNodeID)
	for _, edgeID := range cor.EdgeIDs {
		e, ok := g.Edge(edgeID)
		require.True(t, ok)
		cand.EdgePath = append(cand.EdgePath, edgeID)
		cand.CorridorPath = append(cand.CorridorPath, corridorID)
		cand.NodePath = append(cand.NodePath, e.ToNodeID)
		cand.DistanceSoFarMeters += e.Attributes.LengthMeters
		cand.CurrentNodeID = e.ToNodeID
		cand.VisitedEdges[edgeID] = true
	}

	route := Materialize(cand, network, g, 0.5)
	require.Len(t, route.Segments, 1)
	assert.Equal(t, SegmentKindCorridor, route.Segments[0].Kind)
	assert.Equal(t, corridorID, route.Segments[0].CorridorID)
	assert.False(t, route.Segments[0].Reversed)
	assert.Equal(t, cand.DistanceSoFarMeters, route.DistanceMeters)
	assert.NotEmpty(t, route.Geometry)
}

func TestBuildStatsAccumulatesDistanceByRoadClass(t *testing.T) {
	g := graph.NewGraph()
	addNode(g, "A", 0, 0)
	addNode(g, "B", 0, 0.009)
	addBidirEdge(g, "AB", "A", "B", graph.RoadClassResidential, 1000)

	cand := newRootCandidate("A")
	cand.EdgePath = []string{"AB:f"}
	cand.CorridorPath = []string{"solo"}
	cand.NodePath = []string{"A", "B"}
	cand.DistanceSoFarMeters = 1000
	cand.VisitedEdges["AB:f"] = true

	network := &corridor.CorridorNetwork{
		Corridors:  map[string]*corridor.Corridor{},
		Connectors: map[string]*corridor.Connector{},
		Adjacency:  map[string][]string{},
	}
	route := Materialize(cand, network, g, 0.7)
	assert.Equal(t, 1000.0, route.Stats.DistanceByRoadClass["residential"])
	assert.Equal(t, SegmentKindConnecting, route.Segments[0].Kind)
}
