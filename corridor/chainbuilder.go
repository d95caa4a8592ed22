package corridor

import (
	"sort"

	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// ChainBuildOptions configures chain growth.
type ChainBuildOptions struct {
	MaxAngleChangeDegrees float64
	Compat                CompatOptions

	// MinCompatibilityToExtend is the >= 0.5 threshold a candidate edge must
	// clear to extend a chain.
	MinCompatibilityToExtend float64
}

// DefaultChainBuildOptions returns the documented defaults.
func DefaultChainBuildOptions() ChainBuildOptions {
	return ChainBuildOptions{
		MaxAngleChangeDegrees:    45,
		Compat:                   DefaultCompatOptions(),
		MinCompatibilityToExtend: 0.5,
	}
}

// BuildChains runs the greedy bidirectional chain-growth walk over g,
// producing chains that cover every edge exactly once modulo bidirectional
// dedup.
//
// Edge iteration order is the sorted edge-id order, which is what makes
// growth deterministic given a stable graph.
func BuildChains(g *graph.Graph, opts ChainBuildOptions) []EdgeChain {
	edgeIDs := g.Edges()
	sort.Strings(edgeIDs)

	visited := make(map[string]bool, len(edgeIDs))
	chains := make([]EdgeChain, 0)

	lookup := func(id string) (*graph.GraphEdge, bool) { return g.Edge(id) }

	for _, id := range edgeIDs {
		if visited[id] {
			continue
		}
		chain := growChain(g, id, visited, opts)
		chains = append(chains, buildChainRecord(chain, lookup))
	}

	return chains
}

func markVisited(visited map[string]bool, edgeID string) {
	visited[edgeID] = true
	if cp, ok := graph.CounterpartID(edgeID); ok {
		visited[cp] = true
	}
}

// growChain grows a chain starting from seedEdgeID in both directions,
// returning the ordered edge ids of the resulting chain.
func growChain(g *graph.Graph, seedEdgeID string, visited map[string]bool, opts ChainBuildOptions) []string {
	markVisited(visited, seedEdgeID)
	chain := []string{seedEdgeID}

	// Forward growth: extend past the tail's toNode.
	for {
		tailID := chain[len(chain)-1]
		tail, _ := g.Edge(tailID)
		next, ok := bestForwardCandidate(g, tail, visited, opts)
		if !ok {
			break
		}
		markVisited(visited, next.ID)
		chain = append(chain, next.ID)
	}

	// Backward growth: extend before the head's fromNode.
	for {
		headID := chain[0]
		head, _ := g.Edge(headID)
		prev, ok := bestBackwardCandidate(g, head, visited, opts)
		if !ok {
			break
		}
		markVisited(visited, prev.ID)
		chain = append([]string{prev.ID}, chain...)
	}

	return chain
}

func bestForwardCandidate(g *graph.Graph, tail *graph.GraphEdge, visited map[string]bool, opts ChainBuildOptions) (*graph.GraphEdge, bool) {
	candIDs := append([]string(nil), g.OutgoingEdges(tail.ToNodeID)...)
	sort.Strings(candIDs)

	tailExit := exitBearing(tail)

	var best *graph.GraphEdge
	bestScore := -1.0
	for _, id := range candIDs {
		if visited[id] {
			continue
		}
		cand, ok := g.Edge(id)
		if !ok {
			continue
		}
		if geo.BearingDelta(tailExit, entryBearing(cand)) > opts.MaxAngleChangeDegrees {
			continue
		}
		score := Compatibility(tail.Attributes, cand.Attributes, opts.Compat)
		if score < opts.MinCompatibilityToExtend {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best, best != nil
}

func bestBackwardCandidate(g *graph.Graph, head *graph.GraphEdge, visited map[string]bool, opts ChainBuildOptions) (*graph.GraphEdge, bool) {
	candIDs := append([]string(nil), g.IncomingEdges(head.FromNodeID)...)
	sort.Strings(candIDs)

	headEntry := entryBearing(head)

	var best *graph.GraphEdge
	bestScore := -1.0
	for _, id := range candIDs {
		if visited[id] {
			continue
		}
		cand, ok := g.Edge(id)
		if !ok {
			continue
		}
		if geo.BearingDelta(exitBearing(cand), headEntry) > opts.MaxAngleChangeDegrees {
			continue
		}
		score := Compatibility(cand.Attributes, head.Attributes, opts.Compat)
		if score < opts.MinCompatibilityToExtend {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best, best != nil
}

func buildChainRecord(edgeIDs []string, lookup edgeLookup) EdgeChain {
	edges := resolveEdges(edgeIDs, lookup)
	chain := EdgeChain{EdgeIDs: edgeIDs}
	if len(edges) == 0 {
		return chain
	}
	chain.StartNodeID = edges[0].FromNodeID
	chain.EndNodeID = edges[len(edges)-1].ToNodeID
	chain.TotalLengthMeters = totalLength(edges)
	return chain
}
