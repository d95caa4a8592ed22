package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailforge/loopcourse/activity"
	"github.com/trailforge/loopcourse/corridor"
)

func TestBuildSearchGraphEmitsBothDirectionsForTwoWayCorridor(t *testing.T) {
	g := squareGraph()
	network, _, err := corridor.BuildCorridors(g, corridor.DefaultBuildOptions())
	require.NoError(t, err)

	params := activity.DefaultParams(activity.RoadCycling)
	sg := BuildSearchGraph(network, g, params)

	require.NotEmpty(t, sg.Adjacency)
	for nodeID, edges := range sg.Adjacency {
		assert.NotEmpty(t, edges, "node %s should have outgoing search edges", nodeID)
		for _, e := range edges {
			assert.Contains(t, sg.NodeCoordinates, e.TargetNodeID)
			assert.GreaterOrEqual(t, e.Score, 0.0)
		}
	}
}

func TestBuildSearchGraphExcludesFilteredCorridorType(t *testing.T) {
	g := squareGraph()
	network, _, err := corridor.BuildCorridors(g, corridor.DefaultBuildOptions())
	require.NoError(t, err)

	params := activity.DefaultParams(activity.RoadCycling)
	// Force exclusion of every corridor type present in the fixture so the
	// resulting search graph carries no corridor edges at all.
	for _, c := range network.Corridors {
		params.Exclusions.Types[c.Type] = true
	}

	sg := BuildSearchGraph(network, g, params)
	for _, edges := range sg.Adjacency {
		for _, e := range edges {
			assert.NotEqual(t, SearchEdgeKindCorridor, e.Kind)
		}
	}
}
