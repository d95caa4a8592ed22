package graph

import (
	"encoding/gob"
	"fmt"
	"io"
)

// snapshot is the exported, gob-encodable mirror of Graph's unexported
// fields. Graph itself stays unexported internally (see doc comment on
// Graph) so every other package keeps going through AddNode/AddEdge.
type snapshot struct {
	Nodes []GraphNode
	Edges []GraphEdge
}

// Encode writes a gob-encoded snapshot of g to w, in the order Nodes()/
// Edges() report (map iteration order for both).
func (g *Graph) Encode(w io.Writer) error {
	snap := snapshot{
		Nodes: make([]GraphNode, 0, len(g.nodes)),
		Edges: make([]GraphEdge, 0, len(g.edges)),
	}
	for _, id := range g.Nodes() {
		n, _ := g.Node(id)
		snap.Nodes = append(snap.Nodes, *n)
	}
	for _, id := range g.Edges() {
		e, _ := g.Edge(id)
		snap.Edges = append(snap.Edges, *e)
	}
	if err := gob.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("graph: encode: %w", err)
	}
	return nil
}

// Decode reads a snapshot written by Encode and rebuilds a Graph through
// the normal AddNode/AddEdge validation path, so a decoded Graph carries
// the same invariants as one built directly by an ingest collaborator.
func Decode(r io.Reader) (*Graph, error) {
	var snap snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("graph: decode: %w", err)
	}
	g := NewGraph()
	for _, n := range snap.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("graph: decode node %q: %w", n.ID, err)
		}
	}
	for _, e := range snap.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("graph: decode edge %q: %w", e.ID, err)
		}
	}
	return g, nil
}
