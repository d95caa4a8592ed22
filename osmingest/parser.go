package osmingest

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/rs/zerolog/log"

	"github.com/trailforge/loopcourse/graph"
)

// wayInfo holds a routable way's parsed node chain and tags, collected
// during pass one.
type wayInfo struct {
	id       osm.WayID
	nodeIDs  []osm.NodeID
	forward  bool
	backward bool
	tags     osm.Tags
}

// nodeInfo holds a referenced node's coordinate and tag flags, resolved
// during pass two.
type nodeInfo struct {
	lat, lng  float64
	resolved  bool
	crossing  bool
	stop      bool
	signal    bool
	elevation float64
	hasElev   bool
}

// Parse reads an OSM PBF extract from rs and builds a graph.Graph.
//
// Parsing is two-pass: pass one scans ways to find routable ones, the node
// ids they reference, and which of those ids are graph vertices (referenced
// by more than one way, or a way endpoint); pass two scans nodes to
// resolve coordinates and tag flags for exactly the referenced ids. rs must
// support seeking back to the start between passes.
//
// Each way is split into one edge per maximal run between two vertex
// nodes, rather than one edge per OSM node pair: interior (non-vertex)
// nodes contribute to the edge's geometry and its stop/signal/crossing
// counts but never become a GraphNode themselves. This keeps edges at the
// granularity the corridor stage expects (spans between real intersections)
// instead of exploding into one edge per digitized vertex.
func Parse(ctx context.Context, rs io.ReadSeeker, opts Options) (*graph.Graph, Stats, error) {
	opts = opts.withDefaults()
	useBBox := !opts.BBox.IsZero()

	ways, refCount, vertexIDs, stats, err := scanWays(ctx, rs, opts)
	if err != nil {
		return nil, stats, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, stats, fmt.Errorf("osmingest: seek for node pass: %w", err)
	}

	nodes, err := scanNodes(ctx, rs, refCount, opts)
	if err != nil {
		return nil, stats, err
	}
	stats.NodesReferenced = len(refCount)
	for _, n := range nodes {
		if n.resolved {
			stats.NodesResolved++
		}
	}

	g := graph.NewGraph()
	addVertexNodes(g, nodes, vertexIDs)

	for _, w := range ways {
		emitted, skipped, bboxFiltered := emitWayEdges(g, w, nodes, vertexIDs, opts.BBox, useBBox)
		stats.EdgesEmitted += emitted
		stats.EdgesSkipped += skipped
		stats.BBoxFiltered += bboxFiltered
	}

	log.Info().
		Int("ways_scanned", stats.WaysScanned).
		Int("ways_skipped", stats.WaysSkipped).
		Int("nodes_resolved", stats.NodesResolved).
		Int("edges_emitted", stats.EdgesEmitted).
		Int("edges_skipped", stats.EdgesSkipped).
		Msg("osmingest: parse complete")

	return g, stats, nil
}

// scanWays is pass one: find routable ways, count node references, and
// mark every way-endpoint node id as a vertex.
func scanWays(ctx context.Context, rs io.ReadSeeker, opts Options) ([]wayInfo, map[osm.NodeID]int, map[osm.NodeID]bool, Stats, error) {
	var stats Stats
	refCount := make(map[osm.NodeID]int)
	vertexIDs := make(map[osm.NodeID]bool)
	var ways []wayInfo

	scanner := osmpbf.New(ctx, rs, opts.IDConcurrency)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	defer scanner.Close()

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		stats.WaysScanned++

		if _, routable := roadClassOf(w.Tags); !routable || !isAccessible(w.Tags) {
			stats.WaysSkipped++
			continue
		}
		if len(w.Nodes) < 2 {
			stats.WaysSkipped++
			continue
		}
		fwd, bwd := directionFlags(w.Tags)
		if !fwd && !bwd {
			stats.WaysSkipped++
			continue
		}

		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			refCount[wn.ID]++
		}
		vertexIDs[nodeIDs[0]] = true
		vertexIDs[nodeIDs[len(nodeIDs)-1]] = true

		ways = append(ways, wayInfo{id: w.ID, nodeIDs: nodeIDs, forward: fwd, backward: bwd, tags: w.Tags})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, stats, fmt.Errorf("osmingest: way scan: %w", err)
	}

	for id, count := range refCount {
		if count > 1 {
			vertexIDs[id] = true
		}
	}
	return ways, refCount, vertexIDs, stats, nil
}

// scanNodes is pass two: resolve coordinates and tag flags for every id in
// refCount.
func scanNodes(ctx context.Context, rs io.ReadSeeker, refCount map[osm.NodeID]int, opts Options) (map[osm.NodeID]*nodeInfo, error) {
	nodes := make(map[osm.NodeID]*nodeInfo, len(refCount))

	scanner := osmpbf.New(ctx, rs, opts.IDConcurrency)
	scanner.SkipWays = true
	scanner.SkipRelations = true
	defer scanner.Close()

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := refCount[n.ID]; !needed {
			continue
		}
		crossing, stop, signal := nodeFlagsOf(n.Tags)
		ni := &nodeInfo{lat: n.Lat, lng: n.Lon, resolved: true, crossing: crossing, stop: stop, signal: signal}
		if ele, ok := parseElevation(n.Tags); ok {
			ni.elevation, ni.hasElev = ele, true
		}
		nodes[n.ID] = ni
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("osmingest: node scan: %w", err)
	}
	return nodes, nil
}

func parseElevation(tags osm.Tags) (float64, bool) {
	raw := tags.Find("ele")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// nodeGraphID renders a stable graph.GraphNode id for an OSM node.
func nodeGraphID(id osm.NodeID) string {
	return "n" + strconv.FormatInt(int64(id), 10)
}

// addVertexNodes registers a GraphNode for every resolved node id marked
// as a vertex in vertexIDs. A vertex whose coordinate never resolved
// (referenced in a way but absent from the node pass, e.g. an extract cut
// mid-way) is skipped; ways through it are dropped in emitWayEdges.
func addVertexNodes(g *graph.Graph, nodes map[osm.NodeID]*nodeInfo, vertexIDs map[osm.NodeID]bool) {
	for id := range vertexIDs {
		ni, ok := nodes[id]
		if !ok || !ni.resolved {
			continue
		}
		err := g.AddNode(graph.GraphNode{
			ID:                 nodeGraphID(id),
			Coordinate:         coordOf(ni),
			IsCrossing:         ni.crossing,
			HasStop:            ni.stop,
			HasSignal:          ni.signal,
			ElevationMeters:    ni.elevation,
			HasElevationMeters: ni.hasElev,
		})
		if err != nil {
			log.Warn().Str("node", nodeGraphID(id)).Err(err).Msg("osmingest: skipped node")
		}
	}
}
