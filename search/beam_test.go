package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailforge/loopcourse/activity"
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/geo"
)

func TestGenerateLoopRoutesProducesLoopBackToStart(t *testing.T) {
	g := squareGraph()
	network, _, err := corridor.BuildCorridors(g, corridor.DefaultBuildOptions())
	require.NoError(t, err)

	params := activity.DefaultParams(activity.RoadCycling)
	opts := Options{
		StartCoordinate:   geo.Coordinate{Lat: 0, Lng: 0},
		MinDistanceMeters: 6000,
		MaxDistanceMeters: 10000,
		BeamWidth:         50,
		MaxAlternatives:   3,
		Seed:              42,
	}

	result, err := GenerateLoopRoutes(network, g, params, opts)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Routes)

	for _, route := range result.Routes {
		assert.GreaterOrEqual(t, route.DistanceMeters, opts.MinDistanceMeters*0.5)
		assert.NotEmpty(t, route.Segments)
		assert.NotEmpty(t, route.Geometry)
	}
}

func TestGenerateLoopRoutesNilNetwork(t *testing.T) {
	g := squareGraph()
	params := activity.DefaultParams(activity.RoadCycling)
	_, err := GenerateLoopRoutes(nil, g, params, Options{MinDistanceMeters: 1000, MaxDistanceMeters: 2000})
	assert.ErrorIs(t, err, ErrNilNetwork)
}

func TestGenerateLoopRoutesInvalidDistanceRange(t *testing.T) {
	g := squareGraph()
	network, _, err := corridor.BuildCorridors(g, corridor.DefaultBuildOptions())
	require.NoError(t, err)
	params := activity.DefaultParams(activity.RoadCycling)

	_, err = GenerateLoopRoutes(network, g, params, Options{MinDistanceMeters: 5000, MaxDistanceMeters: 1000})
	assert.ErrorIs(t, err, ErrInvalidDistanceRange)
}

func TestGenerateLoopRoutesReturnsNilWhenSnapOutOfRadius(t *testing.T) {
	g := squareGraph()
	network, _, err := corridor.BuildCorridors(g, corridor.DefaultBuildOptions())
	require.NoError(t, err)
	params := activity.DefaultParams(activity.RoadCycling)

	opts := Options{
		StartCoordinate:     geo.Coordinate{Lat: 45, Lng: 45},
		MinDistanceMeters:   1000,
		MaxDistanceMeters:   2000,
		SnapMaxRadiusMeters: 10,
	}
	result, err := GenerateLoopRoutes(network, g, params, opts)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestDedupeByJaccardCapsAtMaxAlternatives(t *testing.T) {
	opts := Options{MinDistanceMeters: 1000, MaxDistanceMeters: 2000}
	candidates := make([]*Candidate, 0, 5)
	for i := 0; i < 5; i++ {
		c := newRootCandidate("start")
		c.DistanceSoFarMeters = 1500
		c.CorridorDistance = 1500
		c.WeightedScoreSum = 1500 * float64(i) / 10
		c.VisitedEdges = map[string]bool{string(rune('a' + i)): true}
		candidates = append(candidates, c)
	}

	kept := dedupeByJaccard(candidates, opts, 2)
	assert.Len(t, kept, 2)
}

func TestJaccardDropsHighlyOverlappingCandidate(t *testing.T) {
	a := map[string]bool{"e1": true, "e2": true, "e3": true}
	b := map[string]bool{"e1": true, "e2": true, "e3": true, "e4": true}
	assert.Greater(t, jaccard(a, b), 0.7)

	c := map[string]bool{"e5": true}
	assert.Less(t, jaccard(a, c), 0.7)
}
