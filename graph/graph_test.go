package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trailforge/loopcourse/geo"
)

func sampleNodes() (a, b GraphNode) {
	a = GraphNode{ID: "A", Coordinate: geo.Coordinate{Lat: 0, Lng: 0}}
	b = GraphNode{ID: "B", Coordinate: geo.Coordinate{Lat: 0, Lng: 0.01}}
	return
}

func TestAddNodeRejectsEmptyAndDuplicate(t *testing.T) {
	g := NewGraph()
	require.ErrorIs(t, g.AddNode(GraphNode{ID: ""}), ErrEmptyNodeID)

	a, _ := sampleNodes()
	require.NoError(t, g.AddNode(a))
	require.ErrorIs(t, g.AddNode(a), ErrDuplicateNodeID)
}

func TestAddEdgeValidatesEndpointsAndGeometry(t *testing.T) {
	g := NewGraph()
	a, b := sampleNodes()
	require.NoError(t, g.AddNode(a))
	require.NoError(t, g.AddNode(b))

	edge := GraphEdge{
		ID:         "e1:f",
		FromNodeID: "A",
		ToNodeID:   "B",
		Geometry:   []geo.Coordinate{a.Coordinate, b.Coordinate},
	}
	require.NoError(t, g.AddEdge(edge))
	require.ErrorIs(t, g.AddEdge(edge), ErrDuplicateEdgeID)

	bad := GraphEdge{ID: "e2", FromNodeID: "A", ToNodeID: "missing", Geometry: []geo.Coordinate{a.Coordinate, b.Coordinate}}
	require.ErrorIs(t, g.AddEdge(bad), ErrMissingEndpoint)

	shortGeom := GraphEdge{ID: "e3", FromNodeID: "A", ToNodeID: "B", Geometry: []geo.Coordinate{a.Coordinate}}
	require.ErrorIs(t, g.AddEdge(shortGeom), ErrShortGeometry)

	mismatched := GraphEdge{ID: "e4", FromNodeID: "A", ToNodeID: "B", Geometry: []geo.Coordinate{b.Coordinate, a.Coordinate}}
	require.ErrorIs(t, g.AddEdge(mismatched), ErrGeometryEndpointMismatch)
}

func TestAdjacencyAndDegree(t *testing.T) {
	g := NewGraph()
	a, b := sampleNodes()
	require.NoError(t, g.AddNode(a))
	require.NoError(t, g.AddNode(b))

	fwd := GraphEdge{ID: "e1:f", FromNodeID: "A", ToNodeID: "B", Geometry: []geo.Coordinate{a.Coordinate, b.Coordinate}}
	rev := GraphEdge{ID: "e1:r", FromNodeID: "B", ToNodeID: "A", Geometry: []geo.Coordinate{b.Coordinate, a.Coordinate}}
	require.NoError(t, g.AddEdge(fwd))
	require.NoError(t, g.AddEdge(rev))

	assert.Equal(t, []string{"e1:f"}, g.OutgoingEdges("A"))
	assert.Equal(t, []string{"e1:r"}, g.OutgoingEdges("B"))
	assert.Equal(t, 2, g.Degree("A"))
}

func TestCounterpartID(t *testing.T) {
	cp, ok := CounterpartID("w12:f")
	require.True(t, ok)
	assert.Equal(t, "w12:r", cp)

	cp, ok = CounterpartID("w12:r")
	require.True(t, ok)
	assert.Equal(t, "w12:f", cp)

	_, ok = CounterpartID("w12")
	assert.False(t, ok)
	assert.False(t, IsBidirectional("w12"))
	assert.True(t, IsBidirectional("w12:f"))
}
