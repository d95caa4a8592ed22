// Package graph defines the typed routing graph that ingest produces and the
// rest of the pipeline consumes: GraphNode, GraphEdge, EdgeAttributes, and the
// Graph container with its adjacency index.
//
// Graph is read-only once built: Corridorize and Search only ever read from
// it. Construction tolerates bad input: AddNode/AddEdge report validation errors and the
// caller decides whether to skip the offending element and continue; Graph
// never panics on malformed input.
//
// The adjacency convention mirrors katalvlaran/lvlath's core.Graph
// (nested map keyed by vertex id), adapted to store an ordered slice of
// outgoing edge ids per node rather than a set, since chain building
// (corridor package) requires a stable iteration order to be deterministic.
package graph
