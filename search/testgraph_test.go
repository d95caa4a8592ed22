package search

import (
	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

func addNode(g *graph.Graph, id string, lat, lng float64) {
	if err := g.AddNode(graph.GraphNode{ID: id, Coordinate: geo.Coordinate{Lat: lat, Lng: lng}}); err != nil {
		panic(err)
	}
}

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

// squareGraph builds a four-node, four-edge ~2000m-per-side rectangle,
// bidirectional, residential, matching the fixture exercised by the
// corridorize pipeline's own tests.
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

// subdividedSquareGraph is squareGraph with a midpoint node on each side, so
// every straight side is a two-edge chain (1000m per edge) and each side's
// corridor carries two edges.
func subdividedSquareGraph() *graph.Graph {
	g := graph.NewGraph()
	addNode(g, "A", 0, 0)
	addNode(g, "M1", 0, 0.009)
	addNode(g, "B", 0, 0.018)
	addNode(g, "M2", 0.009, 0.018)
	addNode(g, "C", 0.018, 0.018)
	addNode(g, "M3", 0.018, 0.009)
	addNode(g, "D", 0.018, 0)
	addNode(g, "M4", 0.009, 0)

	addBidirEdge(g, "AM1", "A", "M1", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "M1B", "M1", "B", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "BM2", "B", "M2", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "M2C", "M2", "C", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "CM3", "C", "M3", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "M3D", "M3", "D", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "DM4", "D", "M4", graph.RoadClassResidential, 1000)
	addBidirEdge(g, "M4A", "M4", "A", graph.RoadClassResidential, 1000)
	return g
}
