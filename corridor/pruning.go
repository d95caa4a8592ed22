package corridor

import (
	"github.com/trailforge/loopcourse/graph"
)

// PruneOptions tunes dead-end pruning.
type PruneOptions struct {
	// DestinationMinLengthMeters is the 1km minimum for destination-chain rescue.
	DestinationMinLengthMeters float64
	// DestinationElevationGainMeters is the 50m elevation-gain rescue threshold.
	DestinationElevationGainMeters float64
	// DestinationOffRoadMinLengthMeters is the 800m threshold for
	// cycleway/path/track rescue.
	DestinationOffRoadMinLengthMeters float64
}

// DefaultPruneOptions returns the documented defaults.
func DefaultPruneOptions() PruneOptions {
	return PruneOptions{
		DestinationMinLengthMeters:        1000,
		DestinationElevationGainMeters:    50,
		DestinationOffRoadMinLengthMeters: 800,
	}
}

// maxPruneIterations bounds the compute-degree -> trim -> recompute
// fixpoint loop. Each iteration that reports a change strips at least one
// edge from the working chain set, so the loop can never need more passes
// than there are edges; this cap is a defensive backstop against a future
// regression reintroducing a non-monotonic trim, not a limit expected to be
// hit in practice.
const maxPruneIterations = 10000

// PruneDeadEnds applies 2-core dead-end pruning to chains, iterating
// compute-degree -> trim -> recompute to a fixpoint.
// service-class edges are excluded from the working-degree computation so
// parking-lot loops cannot prevent pruning of adjacent dead-ends.
func PruneDeadEnds(chains []EdgeChain, g *graph.Graph, opts PruneOptions) []EdgeChain {
	lookup := func(id string) (*graph.GraphEdge, bool) { return g.Edge(id) }
	current := chains

	for i := 0; i < maxPruneIterations; i++ {
		pruned := twoCorePrune(current, lookup)
		next, changed := trimChains(current, pruned, lookup, g, opts)
		current = next
		if !changed {
			return current
		}
	}
	return current
}

// workingAdjacency builds an undirected multigraph adjacency (node ->
// neighbor node ids, one entry per incident edge) from the current chain
// set, excluding service-class edges and counting each bidirectional
// :f/:r pair once.
func workingAdjacency(chains []EdgeChain, lookup edgeLookup) map[string][]string {
	adj := make(map[string][]string)
	seenEdgePair := make(map[string]bool)
	for _, chain := range chains {
		for _, id := range chain.EdgeIDs {
			e, ok := lookup(id)
			if !ok || e.Attributes.RoadClass == graph.RoadClassService {
				continue
			}
			key := undirectedKey(id)
			if seenEdgePair[key] {
				continue
			}
			seenEdgePair[key] = true
			adj[e.FromNodeID] = append(adj[e.FromNodeID], e.ToNodeID)
			adj[e.ToNodeID] = append(adj[e.ToNodeID], e.FromNodeID)
		}
	}
	return adj
}

func undirectedKey(edgeID string) string {
	if cp, ok := graph.CounterpartID(edgeID); ok {
		if cp < edgeID {
			return cp
		}
	}
	return edgeID
}

// twoCorePrune runs the queue-based 2-core extraction: iteratively remove nodes of working degree <= 1,
// decrementing their neighbors, until stable. Returns the set of nodes that
// fell out of the 2-core (pruned degree <= 1, i.e. candidates for trimming).
func twoCorePrune(chains []EdgeChain, lookup edgeLookup) map[string]bool {
	adj := workingAdjacency(chains, lookup)

	degree := make(map[string]int, len(adj))
	for node, neighbors := range adj {
		degree[node] = len(neighbors)
	}

	removed := make(map[string]bool, len(degree))
	queue := make([]string, 0)
	for node, d := range degree {
		if d <= 1 {
			queue = append(queue, node)
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if removed[node] {
			continue
		}
		removed[node] = true
		for _, neighbor := range adj[node] {
			if removed[neighbor] {
				continue
			}
			degree[neighbor]--
			if degree[neighbor] <= 1 {
				queue = append(queue, neighbor)
			}
		}
	}

	return removed
}

// prunableRun counts how many edges from one end of edgeIDs have their
// outward-facing node in the pruned set: FromNodeID walking from the front,
// ToNodeID walking from the back. It stops at the first edge that survives
// the 2-core, so the count never overstates what trimChains may remove.
func prunableRun(edgeIDs []string, pruned map[string]bool, lookup edgeLookup, fromFront bool) int {
	n := 0
	for n < len(edgeIDs) {
		var e *graph.GraphEdge
		var ok bool
		if fromFront {
			e, ok = lookup(edgeIDs[n])
		} else {
			e, ok = lookup(edgeIDs[len(edgeIDs)-1-n])
		}
		if !ok {
			break
		}
		outward := e.ToNodeID
		if fromFront {
			outward = e.FromNodeID
		}
		if !pruned[outward] {
			break
		}
		n++
	}
	return n
}

// trimChains removes edges from either end of each chain while that end's
// node is in the pruned (degree <= 1) set. Before a run is actually cut, it
// is tested in isolation against the destination rescue predicate: a named,
// elevation-gaining, or long off-road tail is kept attached to the
// surviving chain rather than trimmed away, whether it spans the whole
// chain or just one end of it. Returns the new chain set and whether
// anything was actually removed.
func trimChains(chains []EdgeChain, pruned map[string]bool, lookup edgeLookup, g *graph.Graph, opts PruneOptions) ([]EdgeChain, bool) {
	out := make([]EdgeChain, 0, len(chains))
	changed := false

	for _, chain := range chains {
		edgeIDs := append([]string(nil), chain.EdgeIDs...)

		if cut := prunableRun(edgeIDs, pruned, lookup, true); cut > 0 {
			if !isDestinationChain(edgeIDs[:cut], lookup, g, opts) {
				edgeIDs = edgeIDs[cut:]
				changed = true
			}
		}
		if cut := prunableRun(edgeIDs, pruned, lookup, false); cut > 0 {
			if !isDestinationChain(edgeIDs[len(edgeIDs)-cut:], lookup, g, opts) {
				edgeIDs = edgeIDs[:len(edgeIDs)-cut]
				changed = true
			}
		}

		if len(edgeIDs) == 0 {
			if isDestinationChain(chain.EdgeIDs, lookup, g, opts) {
				out = append(out, chain) // rescued: keep original, untrimmed
			}
			continue
		}

		if len(edgeIDs) != len(chain.EdgeIDs) {
			out = append(out, buildChainRecord(edgeIDs, lookup))
		} else {
			out = append(out, chain)
		}
	}

	return out, changed
}

// isDestinationChain implements the destination-chain rescue
// predicate.
func isDestinationChain(edgeIDs []string, lookup edgeLookup, g *graph.Graph, opts PruneOptions) bool {
	edges := resolveEdges(edgeIDs, lookup)
	if len(edges) == 0 {
		return false
	}
	rc := predominantRoadClass(edges)
	if rc == graph.RoadClassService || rc == graph.RoadClassFootway {
		return false
	}

	length := totalLength(edges)
	if length < opts.DestinationMinLengthMeters {
		return false
	}

	_, hasName, _ := deriveName(edges)
	gain, _, _, _, _, _, hasElev := elevationRollup(edges)

	qualifiesNamed := hasName
	qualifiesElevation := hasElev && gain >= opts.DestinationElevationGainMeters
	qualifiesOffRoad := (rc == graph.RoadClassCycleway || rc == graph.RoadClassPath || rc == graph.RoadClassTrack) &&
		length >= opts.DestinationOffRoadMinLengthMeters

	return qualifiesNamed || qualifiesElevation || qualifiesOffRoad
}
