package search

import (
	"math"
	"sort"

	"github.com/tidwall/rtree"
	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// DefaultSnapMaxRadiusMeters is the default search radius.
const DefaultSnapMaxRadiusMeters = 5000

// metersPerDegreeLat approximates the WGS84 meridian arc length per
// degree of latitude, used only to size the rtree query bounding box; the
// exact candidate ranking still uses haversine distance.
const metersPerDegreeLat = 111320.0

// SnapResult is the outcome of Snap: a graph node plus its distance to the
// query coordinate.
type SnapResult struct {
	NodeID       string
	Coordinate   geo.Coordinate
	DistanceMeters float64
}

// BuildSnapIndex indexes every node of g by coordinate for repeated Snap
// calls.
type SnapIndex struct {
	tree *rtree.RTreeG[string]
	g    *graph.Graph
}

// BuildSnapIndex constructs a spatial index over every node in g.
func BuildSnapIndex(g *graph.Graph) *SnapIndex {
	tree := &rtree.RTreeG[string]{}
	for _, id := range g.Nodes() {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		point := [2]float64{n.Coordinate.Lng, n.Coordinate.Lat}
		tree.Insert(point, point, id)
	}
	return &SnapIndex{tree: tree, g: g}
}

// Snap finds the best node to start a search from, near coordinate,
// within maxRadiusMeters (default 5 km if <= 0).
//
// Candidate nodes within radius are sorted by haversine distance, the
// nearest ~50 are kept, and a node with adjacency out-degree >= 3 within
// max(3*closestDist, 500 m) is preferred over the absolute closest (so
// routes start from well-connected intersections rather than dead-end
// stubs). Returns nil if nothing is within radius.
func (idx *SnapIndex) Snap(coordinate geo.Coordinate, maxRadiusMeters float64) *SnapResult {
	radius := maxRadiusMeters
	if radius <= 0 {
		radius = DefaultSnapMaxRadiusMeters
	}

	degDeltaLat := radius / metersPerDegreeLat
	cosLat := math.Cos(coordinate.Lat * math.Pi / 180)
	if cosLat < 1e-6 {
		cosLat = 1e-6
	}
	degDeltaLng := radius / (metersPerDegreeLat * cosLat)

	min := [2]float64{coordinate.Lng - degDeltaLng, coordinate.Lat - degDeltaLat}
	max := [2]float64{coordinate.Lng + degDeltaLng, coordinate.Lat + degDeltaLat}

	type candidate struct {
		nodeID   string
		coord    geo.Coordinate
		distance float64
	}
	var candidates []candidate
	idx.tree.Search(min, max, func(_, _ [2]float64, nodeID string) bool {
		n, ok := idx.g.Node(nodeID)
		if !ok {
			return true
		}
		d := geo.Haversine(coordinate, n.Coordinate)
		if d <= radius {
			candidates = append(candidates, candidate{nodeID: nodeID, coord: n.Coordinate, distance: d})
		}
		return true
	})
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].distance < candidates[j].distance })
	if len(candidates) > 50 {
		candidates = candidates[:50]
	}

	closest := candidates[0]
	preferenceRadius := math.Max(3*closest.distance, 500)

	for _, c := range candidates {
		if c.distance > preferenceRadius {
			continue
		}
		if idx.g.OutDegree(c.nodeID) >= 3 {
			return &SnapResult{NodeID: c.nodeID, Coordinate: c.coord, DistanceMeters: c.distance}
		}
	}

	return &SnapResult{NodeID: closest.nodeID, Coordinate: closest.coord, DistanceMeters: closest.distance}
}
