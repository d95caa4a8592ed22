package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Roughly 1 degree of latitude ~= 111.2 km.
	a := Coordinate{Lat: 0, Lng: 0}
	b := Coordinate{Lat: 1, Lng: 0}
	d := Haversine(a, b)
	assert.InDelta(t, 111195, d, 500)
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	a := Coordinate{Lat: 42.96, Lng: -85.67}
	assert.Equal(t, 0.0, Haversine(a, a))
}

func TestBearingCardinalDirections(t *testing.T) {
	origin := Coordinate{Lat: 0, Lng: 0}
	north := Coordinate{Lat: 1, Lng: 0}
	east := Coordinate{Lat: 0, Lng: 1}

	assert.InDelta(t, 0, Bearing(origin, north), 1)
	assert.InDelta(t, 90, Bearing(origin, east), 1)
}

func TestBearingDeltaShortestArc(t *testing.T) {
	assert.InDelta(t, 20, BearingDelta(350, 10), 0.001)
	assert.InDelta(t, 180, BearingDelta(0, 180), 0.001)
}

func TestSimplifyPreservesEndpointsAndShortInput(t *testing.T) {
	pts := []Coordinate{{Lat: 0, Lng: 0}}
	require.Equal(t, pts, Simplify(pts, 10))

	two := []Coordinate{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}
	require.Equal(t, two, Simplify(two, 10))
}

func TestSimplifyRemovesCollinearInteriorPoints(t *testing.T) {
	pts := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.001},
		{Lat: 0, Lng: 0.002},
		{Lat: 0, Lng: 0.003},
	}
	out := Simplify(pts, 1.0)
	require.Len(t, out, 2)
	assert.Equal(t, pts[0], out[0])
	assert.Equal(t, pts[len(pts)-1], out[len(out)-1])
}

func TestSimplifyKeepsSignificantDeviation(t *testing.T) {
	pts := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0.01, Lng: 0.001}, // significant perpendicular offset
		{Lat: 0, Lng: 0.003},
	}
	out := Simplify(pts, 10.0)
	require.Len(t, out, 3)
}

func TestResampleProfileAbsentWhenNoElevation(t *testing.T) {
	geometry := []Coordinate{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 0.01}}
	nodeElev := []float64{math.NaN(), math.NaN()}
	assert.Nil(t, ResampleProfile(geometry, nodeElev))
}

func TestResampleProfileApproxSpacing(t *testing.T) {
	geometry := []Coordinate{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 0.01}}
	nodeElev := []float64{100, 200}
	out := ResampleProfile(geometry, nodeElev)
	require.NotEmpty(t, out)
	totalLen := Haversine(geometry[0], geometry[1])
	expectedN := int(totalLen/ElevationSampleSpacingMeters) + 1
	assert.Equal(t, expectedN, len(out))
	assert.InDelta(t, 100, out[0], 0.01)
	assert.InDelta(t, 200, out[len(out)-1], 0.01)
}

func TestHillinessIndexBounds(t *testing.T) {
	h := HillinessIndex(0, 0, 1000, 0)
	assert.Equal(t, 0.0, h)

	h2 := HillinessIndex(100000, 100000, 1000, 1)
	assert.InDelta(t, 1.0, h2, 0.0001)
}
