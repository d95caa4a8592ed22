// Package osmingest parses OpenStreetMap .osm.pbf extracts into a
// graph.Graph. It is the ingest collaborator named by the data flow: graph
// in, corridorize and search downstream never see OSM tags directly.
//
// Parsing is two-pass, mirroring the way a streaming PBF scanner can only
// move forward: pass one scans ways to find routable ones and the node ids
// they reference, pass two scans nodes to resolve coordinates for exactly
// those referenced ids. This avoids holding every node in the extract (most
// of which are not routing-relevant) in memory at once.
//
// Tag interpretation (highway class, surface, oneway, infrastructure flags)
// lives in tags.go and is intentionally permissive: an unrecognized or
// missing tag degrades to an "unknown"/zero value rather than rejecting the
// way, since OSM tagging is never fully consistent across an extract.
package osmingest
