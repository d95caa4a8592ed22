package corridor

import "github.com/trailforge/loopcourse/graph"

// Stats summarizes a BuildCorridors run.
type Stats struct {
	InputEdgeCount     int
	ChainCount         int
	PrunedChainCount   int
	CorridorCount      int
	ConnectorCount     int
	DroppedConnectorCount int
	TotalCorridorLengthMeters float64
}

// BuildCorridors runs the full corridorize pipeline over g: chain growth,
// dead-end pruning, attribute aggregation and assembly, and type
// classification. It is the package's sole externally-facing entry point.
func BuildCorridors(g *graph.Graph, opts BuildOptions) (*CorridorNetwork, Stats, error) {
	if g == nil {
		return nil, Stats{}, ErrNilGraph
	}
	if g.EdgeCount() == 0 {
		return nil, Stats{}, ErrEmptyGraph
	}

	chains := BuildChains(g, opts.ChainBuild)
	pruned := PruneDeadEnds(chains, g, opts.Prune)
	network, droppedConnectors := Assemble(pruned, g, opts)

	stats := Stats{
		InputEdgeCount:        g.EdgeCount(),
		ChainCount:            len(chains),
		PrunedChainCount:      len(pruned),
		CorridorCount:         len(network.Corridors),
		ConnectorCount:        len(network.Connectors),
		DroppedConnectorCount: droppedConnectors,
	}
	for _, c := range network.Corridors {
		stats.TotalCorridorLengthMeters += c.Attributes.LengthMeters
	}

	return network, stats, nil
}
