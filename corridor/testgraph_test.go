package corridor

import (
	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// addNode is a small test helper to add a node at lat,lng with id.
func addNode(g *graph.Graph, id string, lat, lng float64) {
	if err := g.AddNode(graph.GraphNode{ID: id, Coordinate: geo.Coordinate{Lat: lat, Lng: lng}}); err != nil {
		panic(err)
	}
}

// addBidirEdge adds a paved, bidirectional edge pair (id:f/id:r) of road
// class rc between from and to with the given length (straight-line geometry).
func addBidirEdge(g *graph.Graph, id, from, to string, rc graph.RoadClass, lengthMeters float64) {
	fn, _ := g.Node(from)
	tn, _ := g.Node(to)
	attrs := graph.EdgeAttributes{
		RoadClass:             rc,
		SurfaceClassification: graph.SurfaceClassification{Surface: graph.SurfacePaved, Confidence: 1},
		LengthMeters:          lengthMeters,
	}
	fwd := graph.GraphEdge{ID: id + ":f", FromNodeID: from, ToNodeID: to, Geometry: []geo.Coordinate{fn.Coordinate, tn.Coordinate}, Attributes: attrs}
	rev := graph.GraphEdge{ID: id + ":r", FromNodeID: to, ToNodeID: from, Geometry: []geo.Coordinate{tn.Coordinate, fn.Coordinate}, Attributes: attrs}
	if err := g.AddEdge(fwd); err != nil {
		panic(err)
	}
	if err := g.AddEdge(rev); err != nil {
		panic(err)
	}
}

// addOneWayEdge adds a single directed edge with no counterpart.
func addOneWayEdge(g *graph.Graph, id, from, to string, rc graph.RoadClass, lengthMeters float64) {
	fn, _ := g.Node(from)
	tn, _ := g.Node(to)
	attrs := graph.EdgeAttributes{
		RoadClass:             rc,
		SurfaceClassification: graph.SurfaceClassification{Surface: graph.SurfacePaved, Confidence: 1},
		LengthMeters:          lengthMeters,
		OneWay:                true,
	}
	e := graph.GraphEdge{ID: id, FromNodeID: from, ToNodeID: to, Geometry: []geo.Coordinate{fn.Coordinate, tn.Coordinate}, Attributes: attrs}
	if err := g.AddEdge(e); err != nil {
		panic(err)
	}
}

// squareGraph builds the four-node, four-edge 2000m-square rectangle used by
// a handful of corridor-package scenarios: A-B-C-D-A, bidirectional,
// residential.
func squareGraph() *graph.Graph {
	g := graph.NewGraph()
	addNode(g, "A", 0, 0)
	addNode(g, "B", 0, 0.018)
	addNode(g, "C", 0.018, 0.018)
	addNode(g, "D", 0.018, 0)

	addBidirEdge(g, "AB", "A", "B", graph.RoadClassResidential, 2000)
	addBidirEdge(g, "BC", "B", "C", graph.RoadClassResidential, 2000)
	addBidirEdge(g, "CD", "C", "D", graph.RoadClassResidential, 2000)
	addBidirEdge(g, "DA", "D", "A", graph.RoadClassResidential, 2000)
	return g
}
