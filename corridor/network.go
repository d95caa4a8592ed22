package corridor

import "github.com/trailforge/loopcourse/geo"

// CrossingDifficulty values for connectors.
const (
	CrossingDifficultyMajorSignal   = 0.3
	CrossingDifficultyMajorNoSignal = 0.7
	CrossingDifficultyStopOnly      = 0.2
	CrossingDifficultySignalOnly    = 0.15
	CrossingDifficultyDefault       = 0.1
)

// Corridor is the primary routable entity produced by assembly.
type Corridor struct {
	ID          string
	EdgeIDs     []string
	StartNodeID string
	EndNodeID   string
	Geometry    []geo.Coordinate
	OneWay      bool
	Type        CorridorType
	Attributes  CorridorAttributes

	// Scores holds optional per-activity score breakdowns keyed by
	// int(activity.Activity). Assembly leaves it empty and no stage of this
	// module fills it; search.BuildSearchGraph uses an activity.Breakdown
	// entry when one is present and otherwise scores the corridor on demand.
	Scores map[int]any
}

// Connector is a short, non-corridor edge set that bridges corridors.
type Connector struct {
	ID                 string
	EdgeIDs            []string
	StartNodeID        string
	EndNodeID          string
	Geometry           []geo.Coordinate
	LengthMeters       float64
	CrossesMajorRoad   bool
	HasSignal          bool
	HasStop            bool
	CrossingDifficulty float64
	// CorridorIDs lists adjacent corridor ids, possibly with duplicates
	// before sanitization; sanitizeConnectors replaces it with
	// the distinct set.
	CorridorIDs []string
}

// CorridorNetwork is the full assembled output of BuildCorridors: corridors, connectors, and their symmetric entity adjacency.
type CorridorNetwork struct {
	Corridors  map[string]*Corridor
	Connectors map[string]*Connector

	// Adjacency maps every entity id (corridor or connector) to the
	// distinct neighbor entity ids it shares at least one graph node with.
	// Symmetric.
	Adjacency map[string][]string
}

// AdjacentEntities returns the distinct corridor/connector ids adjacent to
// entityID.
func (n *CorridorNetwork) AdjacentEntities(entityID string) []string {
	return n.Adjacency[entityID]
}
