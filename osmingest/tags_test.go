package osmingest

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"

	"github.com/trailforge/loopcourse/graph"
)

func tagSet(kv ...string) osm.Tags {
	tags := make(osm.Tags, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		tags = append(tags, osm.Tag{Key: kv[i], Value: kv[i+1]})
	}
	return tags
}

func TestRoadClassOfMapsKnownHighwayTags(t *testing.T) {
	rc, ok := roadClassOf(tagSet("highway", "residential"))
	assert.True(t, ok)
	assert.Equal(t, graph.RoadClassResidential, rc)

	_, ok = roadClassOf(tagSet("highway", "construction"))
	assert.False(t, ok)

	_, ok = roadClassOf(tagSet("building", "yes"))
	assert.False(t, ok)
}

func TestIsAccessibleRejectsPrivateAndArea(t *testing.T) {
	assert.False(t, isAccessible(tagSet("access", "private")))
	assert.False(t, isAccessible(tagSet("area", "yes")))
	assert.True(t, isAccessible(tagSet("highway", "residential")))
}

func TestSurfaceOfClassifiesPavedAndUnpaved(t *testing.T) {
	sc := surfaceOf(tagSet("surface", "asphalt"))
	assert.Equal(t, graph.SurfacePaved, sc.Surface)
	assert.Equal(t, 1.0, sc.Confidence)

	sc = surfaceOf(tagSet("surface", "gravel"))
	assert.Equal(t, graph.SurfaceUnpaved, sc.Surface)

	sc = surfaceOf(tagSet())
	assert.Equal(t, graph.SurfaceUnknown, sc.Surface)
	assert.Equal(t, 0.0, sc.Confidence)
}

func TestInfrastructureOfReadsCyclewayAndSidewalk(t *testing.T) {
	infra := infrastructureOf(tagSet("highway", "residential", "cycleway", "lane", "sidewalk", "both"))
	assert.True(t, infra.HasBicycleInfra)
	assert.True(t, infra.HasPedestrianPath)

	infra = infrastructureOf(tagSet("highway", "motorway"))
	assert.False(t, infra.HasBicycleInfra)
	assert.False(t, infra.HasPedestrianPath)
}

func TestDirectionFlagsHandlesOneway(t *testing.T) {
	fwd, bwd := directionFlags(tagSet("highway", "residential"))
	assert.True(t, fwd)
	assert.True(t, bwd)

	fwd, bwd = directionFlags(tagSet("highway", "residential", "oneway", "yes"))
	assert.True(t, fwd)
	assert.False(t, bwd)

	fwd, bwd = directionFlags(tagSet("highway", "residential", "oneway", "-1"))
	assert.False(t, fwd)
	assert.True(t, bwd)

	fwd, bwd = directionFlags(tagSet("highway", "motorway"))
	assert.True(t, fwd)
	assert.False(t, bwd)

	fwd, bwd = directionFlags(tagSet("highway", "residential", "oneway", "reversible"))
	assert.False(t, fwd)
	assert.False(t, bwd)
}

func TestSpeedLimitOfParsesPlainAndMph(t *testing.T) {
	kmh, ok := speedLimitOf(tagSet("maxspeed", "50"))
	assert.True(t, ok)
	assert.Equal(t, 50.0, kmh)

	kmh, ok = speedLimitOf(tagSet("maxspeed", "30 mph"))
	assert.True(t, ok)
	assert.InDelta(t, 48.28, kmh, 0.1)

	_, ok = speedLimitOf(tagSet())
	assert.False(t, ok)
}

func TestNodeFlagsOfClassifiesHighwayTag(t *testing.T) {
	crossing, stop, signal := nodeFlagsOf(tagSet("highway", "crossing"))
	assert.True(t, crossing)
	assert.False(t, stop)
	assert.False(t, signal)

	_, _, signal = nodeFlagsOf(tagSet("highway", "traffic_signals"))
	assert.True(t, signal)
}
