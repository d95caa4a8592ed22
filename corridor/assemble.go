package corridor

import (
	"fmt"
	"sort"

	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// DefaultGeometrySimplifyToleranceMeters is the default
// Douglas-Peucker tolerance for corridor geometry.
const DefaultGeometrySimplifyToleranceMeters = 10

// Assemble partitions chains into corridors and connectors, builds their
// attributes and geometry, registers node adjacency, and sanitizes
// connectors. Chains must already be pruned.
func Assemble(chains []EdgeChain, g *graph.Graph, opts BuildOptions) (*CorridorNetwork, int) {
	lookup := func(id string) (*graph.GraphEdge, bool) { return g.Edge(id) }

	sorted := append([]EdgeChain(nil), chains...)
	sort.Slice(sorted, func(i, j int) bool { return firstID(sorted[i]) < firstID(sorted[j]) })

	net := &CorridorNetwork{
		Corridors:  make(map[string]*Corridor),
		Connectors: make(map[string]*Connector),
		Adjacency:  make(map[string][]string),
	}

	nodeEntities := make(map[string][]string)
	register := func(entityID string, edges []*graph.GraphEdge) {
		for _, e := range edges {
			addDistinct := func(nodeID string) {
				for _, id := range nodeEntities[nodeID] {
					if id == entityID {
						return
					}
				}
				nodeEntities[nodeID] = append(nodeEntities[nodeID], entityID)
			}
			addDistinct(e.FromNodeID)
			addDistinct(e.ToNodeID)
		}
	}

	corridorCount, connectorCount := 0, 0
	for _, chain := range sorted {
		edges := resolveEdges(chain.EdgeIDs, lookup)
		if len(edges) == 0 {
			continue
		}
		attrs := Aggregate(chain.EdgeIDs, lookup, g)
		homogeneity := ChainHomogeneity(edges, opts.Compat)
		effMin := EffectiveMinLength(attrs, homogeneity, opts.Thresholds)
		isDestination := isDestinationChain(chain.EdgeIDs, lookup, g, opts.Prune)

		if attrs.LengthMeters >= effMin || isDestination {
			id := fmt.Sprintf("corridor-%d", corridorCount)
			corridorCount++
			c := &Corridor{
				ID:          id,
				EdgeIDs:     chain.EdgeIDs,
				StartNodeID: chain.StartNodeID,
				EndNodeID:   chain.EndNodeID,
				Geometry:    geo.Simplify(BuildGeometry(edges), DefaultGeometrySimplifyToleranceMeters),
				OneWay:      isOneWayChain(edges),
				Attributes:  attrs,
				Scores:      make(map[int]any),
			}
			c.Type = ClassifyCorridor(attrs)
			net.Corridors[id] = c
			register(id, edges)
			continue
		}

		id := fmt.Sprintf("connector-%d", connectorCount)
		connectorCount++
		conn := buildConnector(id, chain, edges, g)
		net.Connectors[id] = conn
		register(id, edges)
	}

	// Derive symmetric entity-level adjacency from the
	// node->entities registration above.
	for _, ids := range nodeEntities {
		if len(ids) < 2 {
			continue
		}
		for _, a := range ids {
			for _, b := range ids {
				if a == b {
					continue
				}
				net.Adjacency[a] = appendDistinct(net.Adjacency[a], b)
			}
		}
	}
	for id := range net.Adjacency {
		sort.Strings(net.Adjacency[id])
	}

	dropped := sanitizeConnectors(net)

	return net, dropped
}

func appendDistinct(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func firstID(c EdgeChain) string {
	if len(c.EdgeIDs) == 0 {
		return ""
	}
	return c.EdgeIDs[0]
}

func isOneWayChain(edges []*graph.GraphEdge) bool {
	for _, e := range edges {
		if !e.Attributes.OneWay {
			return false
		}
	}
	return len(edges) > 0
}

func buildConnector(id string, chain EdgeChain, edges []*graph.GraphEdge, g *graph.Graph) *Connector {
	conn := &Connector{
		ID:          id,
		EdgeIDs:     chain.EdgeIDs,
		StartNodeID: chain.StartNodeID,
		EndNodeID:   chain.EndNodeID,
		Geometry:    BuildGeometry(edges),
	}
	conn.LengthMeters = totalLength(edges)

	for _, e := range edges {
		if e.Attributes.RoadClass == graph.RoadClassPrimary ||
			e.Attributes.RoadClass == graph.RoadClassSecondary ||
			e.Attributes.RoadClass == graph.RoadClassTrunk {
			conn.CrossesMajorRoad = true
		}
		if e.Attributes.TrafficSignalCount > 0 {
			conn.HasSignal = true
		}
		if e.Attributes.StopSignCount > 0 {
			conn.HasStop = true
		}
	}
	for _, nodeID := range endpointNodeIDs(edges) {
		n, ok := g.Node(nodeID)
		if !ok {
			continue
		}
		if n.HasSignal {
			conn.HasSignal = true
		}
		if n.HasStop {
			conn.HasStop = true
		}
	}

	switch {
	case conn.CrossesMajorRoad && conn.HasSignal:
		conn.CrossingDifficulty = CrossingDifficultyMajorSignal
	case conn.CrossesMajorRoad:
		conn.CrossingDifficulty = CrossingDifficultyMajorNoSignal
	case conn.HasStop:
		conn.CrossingDifficulty = CrossingDifficultyStopOnly
	case conn.HasSignal:
		conn.CrossingDifficulty = CrossingDifficultySignalOnly
	default:
		conn.CrossingDifficulty = CrossingDifficultyDefault
	}

	return conn
}

func endpointNodeIDs(edges []*graph.GraphEdge) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, e := range edges {
		add(e.FromNodeID)
		add(e.ToNodeID)
	}
	return out
}

// sanitizeConnectors sets each connector's CorridorIDs to the distinct
// corridor ids in its adjacency, then drops connectors with fewer than 2,
// removing them from both the connector map and every other entity's
// adjacency list.
func sanitizeConnectors(net *CorridorNetwork) int {
	toDrop := make(map[string]bool)

	for id, conn := range net.Connectors {
		corridorIDs := make([]string, 0)
		for _, peer := range net.Adjacency[id] {
			if _, ok := net.Corridors[peer]; ok {
				corridorIDs = append(corridorIDs, peer)
			}
		}
		sort.Strings(corridorIDs)
		conn.CorridorIDs = corridorIDs
		if len(corridorIDs) < 2 {
			toDrop[id] = true
		}
	}

	for id := range toDrop {
		delete(net.Connectors, id)
		delete(net.Adjacency, id)
	}

	if len(toDrop) == 0 {
		return 0
	}
	for id, neighbors := range net.Adjacency {
		filtered := neighbors[:0:0]
		for _, n := range neighbors {
			if !toDrop[n] {
				filtered = append(filtered, n)
			}
		}
		net.Adjacency[id] = filtered
	}
	return len(toDrop)
}
