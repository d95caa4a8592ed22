package enrich

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailforge/loopcourse/geo"
)

type countingElevationProvider struct {
	calls  int
	values map[string]float64
}

func (c *countingElevationProvider) key(p geo.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lng)
}

func (c *countingElevationProvider) SampleElevations(_ context.Context, points []geo.Coordinate) ([]float64, error) {
	c.calls++
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = c.values[c.key(p)]
	}
	return out, nil
}

func TestCacheStoresAndReusesUpstreamResults(t *testing.T) {
	p := geo.Coordinate{Lat: 40.0, Lng: -105.0}
	upstream := &countingElevationProvider{values: map[string]float64{}}
	upstream.values[upstream.key(p)] = 1600

	cache, err := OpenCache(":memory:", upstream)
	require.NoError(t, err)
	defer cache.Close()

	out1, err := cache.SampleElevations(context.Background(), []geo.Coordinate{p})
	require.NoError(t, err)
	assert.Equal(t, []float64{1600}, out1)
	assert.Equal(t, 1, upstream.calls)

	out2, err := cache.SampleElevations(context.Background(), []geo.Coordinate{p})
	require.NoError(t, err)
	assert.Equal(t, []float64{1600}, out2)
	assert.Equal(t, 1, upstream.calls, "second query for the same point must be served from cache")
}

func TestCacheOnlyQueriesUpstreamForMisses(t *testing.T) {
	hit := geo.Coordinate{Lat: 41.0, Lng: -106.0}
	miss := geo.Coordinate{Lat: 42.0, Lng: -107.0}
	upstream := &countingElevationProvider{values: map[string]float64{}}
	upstream.values[upstream.key(hit)] = 2000
	upstream.values[upstream.key(miss)] = 2100

	cache, err := OpenCache(":memory:", upstream)
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.SampleElevations(context.Background(), []geo.Coordinate{hit})
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.calls)

	out, err := cache.SampleElevations(context.Background(), []geo.Coordinate{hit, miss})
	require.NoError(t, err)
	assert.Equal(t, []float64{2000, 2100}, out)
	assert.Equal(t, 2, upstream.calls)
}
