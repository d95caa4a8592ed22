package enrich

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// Stats summarizes a Rebuild run.
type Stats struct {
	NodesSampled      int
	NodesEnriched     int
	EdgesClassified   int
	EdgesWithConflict int
}

// Rebuild produces a new Graph with node elevations and edge surface
// classifications enriched from elev and classifier, leaving every other
// attribute untouched.
//
// Graph has no in-place mutators (it is read-only once built, by design),
// so enrichment is expressed as "construct an enriched copy" rather than
// editing g. Either provider may be nil to skip that half of enrichment.
func Rebuild(ctx context.Context, g *graph.Graph, elev ElevationProvider, classifier SurfaceClassifier) (*graph.Graph, Stats, error) {
	var stats Stats
	out := graph.NewGraph()

	if err := rebuildNodes(ctx, g, out, elev, &stats); err != nil {
		return nil, stats, err
	}
	if err := rebuildEdges(ctx, g, out, classifier, &stats); err != nil {
		return nil, stats, err
	}

	log.Info().
		Int("nodes_enriched", stats.NodesEnriched).
		Int("edges_classified", stats.EdgesClassified).
		Int("edges_with_conflict", stats.EdgesWithConflict).
		Msg("enrich: rebuild complete")

	return out, stats, nil
}

func rebuildNodes(ctx context.Context, g, out *graph.Graph, elev ElevationProvider, stats *Stats) error {
	ids := g.Nodes()
	nodes := make([]*graph.GraphNode, 0, len(ids))
	for _, id := range ids {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		nodes = append(nodes, n)
	}

	var elevations []float64
	if elev != nil && len(nodes) > 0 {
		points := make([]geo.Coordinate, len(nodes))
		for i, n := range nodes {
			points[i] = n.Coordinate
		}
		sampled, err := elev.SampleElevations(ctx, points)
		if err != nil {
			return fmt.Errorf("enrich: sample elevations: %w", err)
		}
		if len(sampled) != len(nodes) {
			return fmt.Errorf("enrich: elevation provider returned %d samples for %d nodes", len(sampled), len(nodes))
		}
		elevations = sampled
		stats.NodesSampled = len(sampled)
	}

	for i, n := range nodes {
		nCopy := *n
		if elevations != nil && !math.IsNaN(elevations[i]) {
			nCopy.ElevationMeters = elevations[i]
			nCopy.HasElevationMeters = true
			stats.NodesEnriched++
		}
		if err := out.AddNode(nCopy); err != nil {
			log.Warn().Str("node", n.ID).Err(err).Msg("enrich: skipped node")
		}
	}
	return nil
}

func rebuildEdges(ctx context.Context, g, out *graph.Graph, classifier SurfaceClassifier, stats *Stats) error {
	for _, id := range g.Edges() {
		e, ok := g.Edge(id)
		if !ok {
			continue
		}
		eCopy := *e

		if classifier != nil {
			surface, confidence, err := classifier.ClassifySurface(ctx, e.Geometry)
			if err != nil {
				log.Warn().Str("edge", id).Err(err).Msg("enrich: surface classification failed, keeping tag-derived value")
			} else {
				blended, enrichment := blendSurface(e.Attributes.SurfaceClassification, surface, confidence, classifier.Name(), e.Attributes.Enrichment)
				eCopy.Attributes.SurfaceClassification = blended
				eCopy.Attributes.Enrichment = enrichment
				stats.EdgesClassified++
				if blended.HasConflict {
					stats.EdgesWithConflict++
				}
			}
		}

		if err := out.AddEdge(eCopy); err != nil {
			log.Warn().Str("edge", id).Err(err).Msg("enrich: skipped edge")
		}
	}
	return nil
}
