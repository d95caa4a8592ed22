package graph

import "errors"

// Sentinel errors for graph construction. Callers branch with errors.Is;
// see DESIGN.md for the error-handling conventions this module follows.
var (
	// ErrEmptyNodeID indicates a GraphNode with an empty id was rejected.
	ErrEmptyNodeID = errors.New("graph: node id is empty")

	// ErrDuplicateNodeID indicates AddNode was called twice for the same id.
	ErrDuplicateNodeID = errors.New("graph: duplicate node id")

	// ErrEmptyEdgeID indicates a GraphEdge with an empty id was rejected.
	ErrEmptyEdgeID = errors.New("graph: edge id is empty")

	// ErrDuplicateEdgeID indicates AddEdge was called twice for the same id.
	ErrDuplicateEdgeID = errors.New("graph: duplicate edge id")

	// ErrMissingEndpoint indicates an edge refers to a fromNodeId/toNodeId
	// that has not been added to the graph.
	ErrMissingEndpoint = errors.New("graph: edge endpoint not found")

	// ErrShortGeometry indicates an edge's geometry has fewer than 2 vertices.
	ErrShortGeometry = errors.New("graph: edge geometry must have at least 2 vertices")

	// ErrGeometryEndpointMismatch indicates geometry's first/last vertex does
	// not match the edge's fromNode/toNode coordinate.
	ErrGeometryEndpointMismatch = errors.New("graph: edge geometry endpoints do not match node coordinates")

	// ErrNodeNotFound indicates a query referenced a node id absent from the graph.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrEdgeNotFound indicates a query referenced an edge id absent from the graph.
	ErrEdgeNotFound = errors.New("graph: edge not found")
)

// InvariantError reports a fatal internal invariant violation:
// a condition the pipeline assumes can never happen given a correctly built
// Graph (e.g. an edge referenced by a corridor that is absent from the
// graph, or a chain whose edges are not contiguous). No stage of this
// module returns one: search and route materialization skip an edge id
// that is absent from the graph.
type InvariantError struct {
	Code   string
	Detail string
}

func (e *InvariantError) Error() string {
	return "graph: invariant violation [" + e.Code + "]: " + e.Detail
}

// NewInvariantError constructs an InvariantError with the given code and detail.
func NewInvariantError(code, detail string) *InvariantError {
	return &InvariantError{Code: code, Detail: detail}
}
