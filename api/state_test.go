package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trailforge/loopcourse/config"
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

func writeTestGraph(t *testing.T, dir string) string {
	t.Helper()
	g := graph.NewGraph()
	require.NoError(t, g.AddNode(graph.GraphNode{ID: "a", Coordinate: geo.Coordinate{Lat: 40.0, Lng: -105.0}}))
	require.NoError(t, g.AddNode(graph.GraphNode{ID: "b", Coordinate: geo.Coordinate{Lat: 40.001, Lng: -105.0}}))
	require.NoError(t, g.AddEdge(graph.GraphEdge{
		ID:         "e1",
		FromNodeID: "a",
		ToNodeID:   "b",
		Geometry:   []geo.Coordinate{{Lat: 40.0, Lng: -105.0}, {Lat: 40.001, Lng: -105.0}},
	}))

	path := filepath.Join(dir, "graph.gob")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, g.Encode(f))
	return path
}

func writeTestNetwork(t *testing.T, dir string) string {
	t.Helper()
	network := &corridor.CorridorNetwork{
		Corridors:  map[string]*corridor.Corridor{},
		Connectors: map[string]*corridor.Connector{},
		Adjacency:  map[string][]string{},
	}
	path := filepath.Join(dir, "network.gob")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, network.Encode(f))
	return path
}

func TestRegionForLoadsAndCachesSnapshots(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeTestGraph(t, dir)
	networkPath := writeTestNetwork(t, dir)

	cfg := config.DefaultConfig()
	cfg.API.Regions = map[string]config.RegionConfig{
		"boulder": {GraphPath: graphPath, NetworkPath: networkPath},
	}

	st, err := newState(cfg)
	require.NoError(t, err)
	defer st.close()

	r1, err := st.regionFor("boulder")
	require.NoError(t, err)
	require.Equal(t, 2, r1.graph.NodeCount())

	r2, err := st.regionFor("boulder")
	require.NoError(t, err)
	require.Same(t, r1, r2, "second call should return the cached region, not reload it")
}

func TestRegionForUnknownRegionErrors(t *testing.T) {
	st, err := newState(config.DefaultConfig())
	require.NoError(t, err)
	defer st.close()

	_, err = st.regionFor("nonexistent")
	require.Error(t, err)
}
