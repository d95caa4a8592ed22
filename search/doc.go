// Package search implements the Search stage: flattening a scored CorridorNetwork into a SearchGraph for one
// activity, snapping a start coordinate to the nearest well-connected
// node, the stochastic beam search with BFS loop closure, and route
// materialization.
//
// GenerateLoopRoutes is the package's downstream entry point.
package search
