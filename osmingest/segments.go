package osmingest

import (
	"strconv"

	"github.com/paulmach/osm"

	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// coordOf converts a resolved nodeInfo to a geo.Coordinate.
func coordOf(ni *nodeInfo) geo.Coordinate {
	return geo.Coordinate{Lat: ni.lat, Lng: ni.lng}
}

// segment is one maximal run of a way's node chain between two vertex
// nodes (inclusive of both ends).
type segment struct {
	index    int
	nodeIDs  []osm.NodeID // vertex ... vertex, interior nodes included
}

// splitAtVertices walks w's node chain and returns the segments between
// consecutive vertex nodes. A way whose interior revisits a vertex (a
// self-loop or figure-eight) produces a new segment at every such
// occurrence, same as at any other vertex.
func splitAtVertices(nodeIDs []osm.NodeID, vertexIDs map[osm.NodeID]bool) []segment {
	var segments []segment
	start := 0
	for i := 1; i < len(nodeIDs); i++ {
		if !vertexIDs[nodeIDs[i]] {
			continue
		}
		segments = append(segments, segment{index: len(segments), nodeIDs: nodeIDs[start : i+1]})
		start = i
	}
	return segments
}

// emitWayEdges splits w into segments and emits one (or two, for
// bidirectional ways) directed edge per segment.
func emitWayEdges(g *graph.Graph, w wayInfo, nodes map[osm.NodeID]*nodeInfo, vertexIDs map[osm.NodeID]bool, bbox BBox, useBBox bool) (emitted, skipped, bboxFiltered int) {
	for _, seg := range splitAtVertices(w.nodeIDs, vertexIDs) {
		if len(seg.nodeIDs) < 2 {
			skipped++
			continue
		}

		fromID, toID := seg.nodeIDs[0], seg.nodeIDs[len(seg.nodeIDs)-1]
		fromNI, fromOK := nodes[fromID]
		toNI, toOK := nodes[toID]
		if !fromOK || !toOK || !fromNI.resolved || !toNI.resolved {
			skipped++
			continue
		}

		geometry, length, stopCount, signalCount, crossingCount, ok := buildSegmentGeometry(seg.nodeIDs, nodes)
		if !ok {
			skipped++
			continue
		}

		if useBBox && (!bbox.Contains(fromNI.lat, fromNI.lng) || !bbox.Contains(toNI.lat, toNI.lng)) {
			bboxFiltered++
			continue
		}

		attrs := buildAttributes(w, length, stopCount, signalCount, crossingCount)
		base := wayEdgeID(w.id, seg.index)

		switch {
		case w.forward && w.backward:
			emitted += addEdgePair(g, base, fromID, toID, geometry, attrs)
		case w.forward:
			if addDirectedEdge(g, base, fromID, toID, geometry, attrs) {
				emitted++
			} else {
				skipped++
			}
		case w.backward:
			if addDirectedEdge(g, base, toID, fromID, reverseCoords(geometry), attrs) {
				emitted++
			} else {
				skipped++
			}
		}
	}
	return emitted, skipped, bboxFiltered
}

// buildSegmentGeometry walks a segment's node chain, resolving every node's
// coordinate and accumulating stop/signal/crossing counts over every node of
// the chain, endpoints included. Returns
// ok=false if any node in the chain failed to resolve.
func buildSegmentGeometry(nodeIDs []osm.NodeID, nodes map[osm.NodeID]*nodeInfo) (geometry []geo.Coordinate, lengthMeters float64, stopCount, signalCount, crossingCount int, ok bool) {
	geometry = make([]geo.Coordinate, 0, len(nodeIDs))
	for i, id := range nodeIDs {
		ni, found := nodes[id]
		if !found || !ni.resolved {
			return nil, 0, 0, 0, 0, false
		}
		c := coordOf(ni)
		geometry = append(geometry, c)
		if ni.stop {
			stopCount++
		}
		if ni.signal {
			signalCount++
		}
		if ni.crossing {
			crossingCount++
		}
		if i > 0 {
			lengthMeters += geo.Haversine(geometry[i-1], c)
		}
	}
	return geometry, lengthMeters, stopCount, signalCount, crossingCount, true
}

// buildAttributes assembles an EdgeAttributes from a way's tags and the
// measurements accumulated while walking one of its segments.
func buildAttributes(w wayInfo, lengthMeters float64, stopCount, signalCount, crossingCount int) graph.EdgeAttributes {
	rc, _ := roadClassOf(w.tags)
	attrs := graph.EdgeAttributes{
		RoadClass:             rc,
		SurfaceClassification: surfaceOf(w.tags),
		Infrastructure:        infrastructureOf(w.tags),
		OneWay:                w.forward != w.backward,
		LengthMeters:          lengthMeters,
		StopSignCount:         stopCount,
		TrafficSignalCount:    signalCount,
		RoadCrossingCount:     crossingCount,
		ScenicDesignation:     scenicOf(w.tags),
	}
	if name, ok := nameOf(w.tags); ok {
		attrs.Name, attrs.HasName = name, true
	}
	if kmh, ok := speedLimitOf(w.tags); ok {
		attrs.SpeedLimitKMH, attrs.HasSpeedLimit = kmh, true
	}
	if lanes, ok := lanesOf(w.tags); ok {
		attrs.Lanes, attrs.HasLanes = lanes, true
	}
	return attrs
}

func wayEdgeID(id osm.WayID, segmentIndex int) string {
	return "w" + strconv.FormatInt(int64(id), 10) + "_" + strconv.Itoa(segmentIndex)
}

func addDirectedEdge(g *graph.Graph, id string, fromID, toID osm.NodeID, geometry []geo.Coordinate, attrs graph.EdgeAttributes) bool {
	err := g.AddEdge(graph.GraphEdge{
		ID:         id,
		FromNodeID: nodeGraphID(fromID),
		ToNodeID:   nodeGraphID(toID),
		Geometry:   geometry,
		Attributes: attrs,
	})
	return err == nil
}

// addEdgePair emits the :f/:r counterpart pair for a two-way segment. It
// checks that the reverse id is free before inserting the forward edge, so
// a bidirectional way never leaves behind an orphaned one-way half (the
// reverse insertion shares the forward edge's endpoints and geometry, so a
// duplicate id is the only way it can fail).
func addEdgePair(g *graph.Graph, base string, fromID, toID osm.NodeID, geometry []geo.Coordinate, attrs graph.EdgeAttributes) int {
	fwdID, revID := base+":f", base+":r"
	if _, exists := g.Edge(revID); exists {
		return 0
	}
	if !addDirectedEdge(g, fwdID, fromID, toID, geometry, attrs) {
		return 0
	}
	if !addDirectedEdge(g, revID, toID, fromID, reverseCoords(geometry), attrs) {
		return 1
	}
	return 2
}

func reverseCoords(in []geo.Coordinate) []geo.Coordinate {
	out := make([]geo.Coordinate, len(in))
	for i, c := range in {
		out[len(in)-1-i] = c
	}
	return out
}
