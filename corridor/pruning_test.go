package corridor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// triangleWithSpurGraph builds a triangle A-B-C-A with
// a short spur B->D where D has degree 1.
func triangleWithSpurGraph() *graph.Graph {
	g := graph.NewGraph()
	addNode(g, "A", 0, 0)
	addNode(g, "B", 0, 0.01)
	addNode(g, "C", 0.01, 0.005)
	addNode(g, "D", 0, 0.02)

	addBidirEdge(g, "AB", "A", "B", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "BC", "B", "C", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "CA", "C", "A", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "BD", "B", "D", graph.RoadClassResidential, 300)
	return g
}

func TestTwoCorePruneRemovesDeadEndSpur(t *testing.T) {
	g := triangleWithSpurGraph()
	chains := BuildChains(g, DefaultChainBuildOptions())
	lookup := func(id string) (*graph.GraphEdge, bool) { return g.Edge(id) }

	removed := twoCorePrune(chains, lookup)

	assert.True(t, removed["D"], "D should fall out of the 2-core")
	assert.False(t, removed["A"], "A is part of the triangle, degree 2")
	assert.False(t, removed["B"], "B is part of the triangle, degree 2 within it")
	assert.False(t, removed["C"], "C is part of the triangle, degree 2")
}

func TestPruneDeadEndsDropsShortUnrescuedSpur(t *testing.T) {
	g := triangleWithSpurGraph()
	chains := BuildChains(g, DefaultChainBuildOptions())
	pruned := PruneDeadEnds(chains, g, DefaultPruneOptions())

	for _, c := range pruned {
		for _, id := range c.EdgeIDs {
			e, ok := g.Edge(id)
			require.True(t, ok)
			assert.NotEqual(t, "D", e.FromNodeID)
			assert.NotEqual(t, "D", e.ToNodeID)
		}
	}
}

func TestPruneDeadEndsRescuesNamedDestinationSpur(t *testing.T) {
	g := graph.NewGraph()
	addNode(g, "A", 0, 0)
	addNode(g, "B", 0, 0.01)
	addNode(g, "C", 0.01, 0.005)
	addNode(g, "D", 0, 0.03)

	addBidirEdge(g, "AB", "A", "B", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "BC", "B", "C", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "CA", "C", "A", graph.RoadClassResidential, 1000)

	// Named spur, 1500m, qualifies as a destination chain.
	fn, _ := g.Node("B")
	tn, _ := g.Node("D")
	attrs := graph.EdgeAttributes{
		RoadClass:             graph.RoadClassResidential,
		SurfaceClassification: graph.SurfaceClassification{Surface: graph.SurfacePaved, Confidence: 1},
		LengthMeters:          1500,
		Name:                  "Scenic Overlook Road",
		HasName:               true,
	}
	require.NoError(t, g.AddEdge(graph.GraphEdge{ID: "BD:f", FromNodeID: "B", ToNodeID: "D", Geometry: []geo.Coordinate{fn.Coordinate, tn.Coordinate}, Attributes: attrs}))
	require.NoError(t, g.AddEdge(graph.GraphEdge{ID: "BD:r", FromNodeID: "D", ToNodeID: "B", Geometry: []geo.Coordinate{tn.Coordinate, fn.Coordinate}, Attributes: attrs}))

	chains := BuildChains(g, DefaultChainBuildOptions())
	pruned := PruneDeadEnds(chains, g, DefaultPruneOptions())

	foundSpur := false
	for _, c := range pruned {
		for _, id := range c.EdgeIDs {
			if id == "BD:f" || id == "BD:r" {
				foundSpur = true
			}
		}
	}
	assert.True(t, foundSpur, "named destination spur should be rescued despite failing 2-core pruning")
}
