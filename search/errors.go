package search

import "errors"

// Sentinel errors for the search stage.
var (
	// ErrNilNetwork indicates GenerateLoopRoutes was called with a nil
	// CorridorNetwork.
	ErrNilNetwork = errors.New("search: corridor network is nil")

	// ErrNilGraph indicates GenerateLoopRoutes was called with a nil graph.
	ErrNilGraph = errors.New("search: graph is nil")

	// ErrInvalidDistanceRange indicates minDistanceMeters > maxDistanceMeters
	// or either is non-positive.
	ErrInvalidDistanceRange = errors.New("search: invalid distance range")
)
