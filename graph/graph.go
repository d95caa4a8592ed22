package graph

import (
	"strings"

	"github.com/trailforge/loopcourse/geo"
)

// GraphNode is a routing-graph vertex.
type GraphNode struct {
	ID         string
	Coordinate geo.Coordinate

	IsCrossing bool
	HasStop    bool
	HasSignal  bool

	ElevationMeters    float64
	HasElevationMeters bool
}

// GraphEdge is a directed routing-graph edge.
type GraphEdge struct {
	ID         string
	FromNodeID string
	ToNodeID   string
	Geometry   []geo.Coordinate
	Attributes EdgeAttributes
}

// bidirectionalForwardSuffix and bidirectionalReverseSuffix implement the
// ":f"/":r" counterpart id convention.
const (
	bidirectionalForwardSuffix = ":f"
	bidirectionalReverseSuffix = ":r"
)

// CounterpartID returns the id of edgeID's bidirectional counterpart and
// true, or ("", false) if edgeID carries no :f/:r suffix (a true one-way
// edge with no counterpart).
func CounterpartID(edgeID string) (string, bool) {
	switch {
	case strings.HasSuffix(edgeID, bidirectionalForwardSuffix):
		return strings.TrimSuffix(edgeID, bidirectionalForwardSuffix) + bidirectionalReverseSuffix, true
	case strings.HasSuffix(edgeID, bidirectionalReverseSuffix):
		return strings.TrimSuffix(edgeID, bidirectionalReverseSuffix) + bidirectionalForwardSuffix, true
	default:
		return "", false
	}
}

// IsBidirectional reports whether edgeID uses the :f/:r counterpart
// convention at all.
func IsBidirectional(edgeID string) bool {
	_, ok := CounterpartID(edgeID)
	return ok
}

// Graph is the typed routing graph: nodes, edges, and an
// adjacency index of outgoing edge ids per node. Adjacency order is the
// order edges were added in, which is what gives chain building (corridor
// package) a deterministic edge-iteration order.
//
// Graph is built once by ingest and is read-only thereafter; no method here
// takes a lock because Graph is never mutated concurrently
// with reads — all mutation happens during single-threaded construction.
type Graph struct {
	nodes     map[string]*GraphNode
	edges     map[string]*GraphEdge
	adjacency map[string][]string // fromNodeID -> ordered outgoing edge ids
	reverse   map[string][]string // toNodeID -> ordered incoming edge ids
}

// NewGraph returns an empty Graph ready for construction.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]*GraphNode),
		edges:     make(map[string]*GraphEdge),
		adjacency: make(map[string][]string),
		reverse:   make(map[string][]string),
	}
}

// AddNode registers a node. Validation failures are
// reported so the caller can skip the offending element and continue
// ingest; AddNode itself never panics.
func (g *Graph) AddNode(n GraphNode) error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	nCopy := n
	g.nodes[n.ID] = &nCopy
	return nil
}

// AddEdge registers a directed edge, validating endpoints and geometry.
func (g *Graph) AddEdge(e GraphEdge) error {
	if e.ID == "" {
		return ErrEmptyEdgeID
	}
	if _, exists := g.edges[e.ID]; exists {
		return ErrDuplicateEdgeID
	}
	from, ok := g.nodes[e.FromNodeID]
	if !ok {
		return ErrMissingEndpoint
	}
	to, ok := g.nodes[e.ToNodeID]
	if !ok {
		return ErrMissingEndpoint
	}
	if len(e.Geometry) < 2 {
		return ErrShortGeometry
	}
	if e.Geometry[0] != from.Coordinate || e.Geometry[len(e.Geometry)-1] != to.Coordinate {
		return ErrGeometryEndpointMismatch
	}

	eCopy := e
	eCopy.Geometry = append([]geo.Coordinate(nil), e.Geometry...)
	g.edges[e.ID] = &eCopy
	g.adjacency[e.FromNodeID] = append(g.adjacency[e.FromNodeID], e.ID)
	g.reverse[e.ToNodeID] = append(g.reverse[e.ToNodeID], e.ID)
	return nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*GraphNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id string) (*GraphEdge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns a snapshot slice of all node ids. Order is map iteration
// order (unspecified); callers that need determinism should sort.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	return out
}

// Edges returns a snapshot slice of all edge ids.
func (g *Graph) Edges() []string {
	out := make([]string, 0, len(g.edges))
	for id := range g.edges {
		out = append(out, id)
	}
	return out
}

// OutgoingEdges returns the ordered outgoing edge ids from nodeID.
func (g *Graph) OutgoingEdges(nodeID string) []string {
	return g.adjacency[nodeID]
}

// IncomingEdges returns the ordered incoming edge ids into nodeID.
func (g *Graph) IncomingEdges(nodeID string) []string {
	return g.reverse[nodeID]
}

// OutDegree returns the number of outgoing edges from nodeID.
func (g *Graph) OutDegree(nodeID string) int {
	return len(g.adjacency[nodeID])
}

// Degree returns the undirected degree of nodeID: outgoing plus incoming
// edge count.
func (g *Graph) Degree(nodeID string) int {
	return len(g.adjacency[nodeID]) + len(g.reverse[nodeID])
}
