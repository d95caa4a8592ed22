package activity

import (
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/graph"
)

// ExcludesCorridor reports whether a corridor with the given type, surface,
// and road class should be dropped for this activity.
func (p Params) ExcludesCorridor(ctype corridor.CorridorType, surface graph.Surface, roadClass graph.RoadClass) bool {
	if p.Exclusions.Types[ctype] {
		return true
	}
	if p.Exclusions.Surfaces[surface] {
		return true
	}
	if p.Exclusions.RoadClasses[roadClass] {
		return true
	}
	return false
}

// ExcludesRoadClass reports whether an individual road class is excluded,
// used to skip connector edges.
func (p Params) ExcludesRoadClass(roadClass graph.RoadClass) bool {
	return p.Exclusions.RoadClasses[roadClass]
}
