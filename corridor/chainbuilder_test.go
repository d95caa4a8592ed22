package corridor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trailforge/loopcourse/graph"
)

func TestBuildChainsCoversEveryEdgeExactlyOnceModuloDedup(t *testing.T) {
	g := squareGraph()
	chains := BuildChains(g, DefaultChainBuildOptions())

	seen := make(map[string]int)
	for _, c := range chains {
		for _, id := range c.EdgeIDs {
			seen[id]++
		}
	}

	// Coverage is "modulo bidirectional dedup": exactly one
	// representative of each directed pair (the edge or its :f/:r
	// counterpart, never both) appears across all chains.
	for _, id := range g.Edges() {
		cp, hasCp := graph.CounterpartID(id)
		if hasCp {
			total := seen[id] + seen[cp]
			assert.Equal(t, 1, total, "edge pair %s/%s should appear exactly once combined", id, cp)
			continue
		}
		assert.Equal(t, 1, seen[id], "one-way edge %s should appear in exactly one chain", id)
	}
}

func TestBuildChainsContinuityInvariant(t *testing.T) {
	g := squareGraph()
	chains := BuildChains(g, DefaultChainBuildOptions())

	for _, c := range chains {
		for i := 0; i+1 < len(c.EdgeIDs); i++ {
			a, _ := g.Edge(c.EdgeIDs[i])
			b, _ := g.Edge(c.EdgeIDs[i+1])
			require.Equal(t, a.ToNodeID, b.FromNodeID)
		}
	}
}

func TestBuildChainsDeterministic(t *testing.T) {
	g := squareGraph()
	chains1 := BuildChains(g, DefaultChainBuildOptions())
	chains2 := BuildChains(g, DefaultChainBuildOptions())
	require.Equal(t, len(chains1), len(chains2))
	for i := range chains1 {
		assert.Equal(t, chains1[i].EdgeIDs, chains2[i].EdgeIDs)
	}
}

func TestBuildChainsHardCutOnRoadClassGroup(t *testing.T) {
	g := graph.NewGraph()
	addNode(g, "A", 0, 0)
	addNode(g, "B", 0, 0.01)
	addNode(g, "C", 0, 0.02)
	addOneWayEdge(g, "e1", "A", "B", graph.RoadClassResidential, 1000)
	addOneWayEdge(g, "e2", "B", "C", graph.RoadClassPrimary, 1000)

	chains := BuildChains(g, DefaultChainBuildOptions())
	require.Len(t, chains, 2, "different road-class groups must not merge into one chain")
}
