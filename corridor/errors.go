package corridor

import "errors"

// Sentinel errors for corridor construction.
var (
	// ErrNilGraph indicates BuildCorridors was called with a nil graph.
	ErrNilGraph = errors.New("corridor: graph is nil")

	// ErrEmptyGraph indicates the graph has no edges to corridorize.
	ErrEmptyGraph = errors.New("corridor: graph has no edges")
)
