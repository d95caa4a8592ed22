// Package enrich defines the external collaborators that add optional
// per-node/per-edge attributes graph.Graph cannot derive from OSM tags
// alone: DEM elevation sampling and street-imagery surface classification.
//
// Both are modeled as small interfaces (ElevationProvider,
// SurfaceClassifier) rather than concrete HTTP clients, since the actual
// backend (a tile server, a vendor API) is an operational choice outside
// this module's scope. Cache wraps an ElevationProvider with an on-disk
// SQLite response cache so repeated ingests of overlapping regions do not
// re-query the backend for the same (rounded) coordinate; SurfaceClassifier
// results are not cached.
package enrich
