package corridor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trailforge/loopcourse/graph"
)

func TestBuildCorridorsSquareProducesOneLoopOfCorridors(t *testing.T) {
	g := squareGraph()
	network, stats, err := BuildCorridors(g, DefaultBuildOptions())
	require.NoError(t, err)

	assert.Greater(t, stats.CorridorCount, 0)
	assert.Equal(t, stats.CorridorCount, len(network.Corridors))
	for _, c := range network.Corridors {
		// Residential, unsignalized, topologically quiet: classifies as
		// rural_road rather than neighborhood.
		assert.Equal(t, CorridorTypeRuralRoad, c.Type)
	}
}

func TestBuildCorridorsNilGraph(t *testing.T) {
	_, _, err := BuildCorridors(nil, DefaultBuildOptions())
	assert.ErrorIs(t, err, ErrNilGraph)
}

func TestBuildCorridorsEmptyGraph(t *testing.T) {
	_, _, err := BuildCorridors(graph.NewGraph(), DefaultBuildOptions())
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestSanitizeConnectorsDropsConnectorWithFewerThanTwoCorridors(t *testing.T) {
	net := &CorridorNetwork{
		Corridors: map[string]*Corridor{
			"corridor-0": {ID: "corridor-0"},
			"corridor-1": {ID: "corridor-1"},
		},
		Connectors: map[string]*Connector{
			"connector-0": {ID: "connector-0"}, // touches only corridor-0: must be dropped
			"connector-1": {ID: "connector-1"}, // touches two corridors: must survive
		},
		Adjacency: map[string][]string{
			"corridor-0":  {"connector-0", "connector-1"},
			"corridor-1":  {"connector-1"},
			"connector-0": {"corridor-0"},
			"connector-1": {"corridor-0", "corridor-1"},
		},
	}

	dropped := sanitizeConnectors(net)

	assert.Equal(t, 1, dropped)
	_, stillPresent := net.Connectors["connector-0"]
	assert.False(t, stillPresent)
	_, stillAdjacent := net.Adjacency["connector-0"]
	assert.False(t, stillAdjacent)
	assert.NotContains(t, net.Adjacency["corridor-0"], "connector-0")

	conn1, ok := net.Connectors["connector-1"]
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"corridor-0", "corridor-1"}, conn1.CorridorIDs)
}

func TestClassifyCorridorRuleOrder(t *testing.T) {
	trail := CorridorAttributes{PredominantRoadClass: graph.RoadClassCycleway, SeparationContinuity: 0.9}
	assert.Equal(t, CorridorTypeTrail, ClassifyCorridor(trail))

	path := CorridorAttributes{PredominantRoadClass: graph.RoadClassFootway}
	assert.Equal(t, CorridorTypePath, ClassifyCorridor(path))

	arterial := CorridorAttributes{PredominantRoadClass: graph.RoadClassPrimary}
	assert.Equal(t, CorridorTypeArterial, ClassifyCorridor(arterial))

	collector := CorridorAttributes{PredominantRoadClass: graph.RoadClassTertiary}
	assert.Equal(t, CorridorTypeCollector, ClassifyCorridor(collector))

	rural := CorridorAttributes{
		PredominantRoadClass: graph.RoadClassResidential,
		CrossingDensityPerKm: 1, StopDensityPerKm: 0.5,
		PedestrianPathContinuity: 0.1, TrafficCalmingContinuity: 0.1,
	}
	assert.Equal(t, CorridorTypeRuralRoad, ClassifyCorridor(rural))

	neighborhood := CorridorAttributes{
		PredominantRoadClass: graph.RoadClassResidential,
		CrossingDensityPerKm: 10, StopDensityPerKm: 5,
	}
	assert.Equal(t, CorridorTypeNeighborhood, ClassifyCorridor(neighborhood))

	mixed := CorridorAttributes{PredominantRoadClass: graph.RoadClassUnknown}
	assert.Equal(t, CorridorTypeMixed, ClassifyCorridor(mixed))
}

func TestEffectiveMinLengthNameBonusHalvesThreshold(t *testing.T) {
	th := DefaultChainLengthThresholds()
	unnamed := CorridorAttributes{PredominantRoadClass: graph.RoadClassResidential}
	named := CorridorAttributes{PredominantRoadClass: graph.RoadClassResidential, HasName: true, NameConsistency: 0.9}

	unnamedMin := EffectiveMinLength(unnamed, 1.0, th)
	namedMin := EffectiveMinLength(named, 1.0, th)
	assert.Equal(t, th.UnnamedMeters, unnamedMin)
	assert.Equal(t, th.NamedRoadMeters/2, namedMin)
}

func TestEffectiveMinLengthHomogeneityPenaltyInflatesThreshold(t *testing.T) {
	th := DefaultChainLengthThresholds()
	attrs := CorridorAttributes{PredominantRoadClass: graph.RoadClassResidential}
	base := EffectiveMinLength(attrs, 1.0, th)
	penalized := EffectiveMinLength(attrs, 0.5, th)
	assert.Equal(t, base*2, penalized)
}
