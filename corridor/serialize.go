package corridor

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Encode writes a gob-encoded snapshot of n to w. CorridorNetwork's fields
// are already plain exported maps/slices of value structs, so this is a
// direct encode rather than a separate snapshot type (contrast with
// graph.Graph.Encode, which mirrors unexported internal state).
func (n *CorridorNetwork) Encode(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(n); err != nil {
		return fmt.Errorf("corridor: encode: %w", err)
	}
	return nil
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (*CorridorNetwork, error) {
	var n CorridorNetwork
	if err := gob.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("corridor: decode: %w", err)
	}
	return &n, nil
}
