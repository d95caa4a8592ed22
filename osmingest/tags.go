package osmingest

import (
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"github.com/trailforge/loopcourse/graph"
)

// routableHighways lists highway tag values this package turns into edges.
// Motorized, cycling and pedestrian ways are all in scope since the search
// stage filters by activity later; ingest only excludes what can never be
// part of any route (construction, proposed, abandoned).
var routableHighways = map[string]graph.RoadClass{
	"motorway":       graph.RoadClassMotorway,
	"motorway_link":  graph.RoadClassMotorway,
	"trunk":          graph.RoadClassTrunk,
	"trunk_link":     graph.RoadClassTrunk,
	"primary":        graph.RoadClassPrimary,
	"primary_link":   graph.RoadClassPrimary,
	"secondary":      graph.RoadClassSecondary,
	"secondary_link": graph.RoadClassSecondary,
	"tertiary":       graph.RoadClassTertiary,
	"tertiary_link":  graph.RoadClassTertiary,
	"unclassified":   graph.RoadClassUnclassified,
	"residential":    graph.RoadClassResidential,
	"living_street":  graph.RoadClassLivingStreet,
	"service":        graph.RoadClassService,
	"cycleway":       graph.RoadClassCycleway,
	"path":           graph.RoadClassPath,
	"footway":        graph.RoadClassFootway,
	"pedestrian":     graph.RoadClassFootway,
	"track":          graph.RoadClassTrack,
}

// pavedSurfaces and unpavedSurfaces classify the OSM surface=* tag.
// Anything absent from both maps resolves to SurfaceUnknown.
var pavedSurfaces = map[string]bool{
	"paved": true, "asphalt": true, "concrete": true, "concrete:plates": true,
	"concrete:lanes": true, "paving_stones": true, "sett": true, "metal": true,
}

var unpavedSurfaces = map[string]bool{
	"unpaved": true, "gravel": true, "fine_gravel": true, "dirt": true,
	"ground": true, "grass": true, "sand": true, "compacted": true,
	"woodchips": true, "mud": true, "pebblestone": true,
}

// roadClassOf returns the RoadClass for a way's highway tag and whether the
// way is routable at all.
func roadClassOf(tags osm.Tags) (graph.RoadClass, bool) {
	rc, ok := routableHighways[tags.Find("highway")]
	return rc, ok
}

// isAccessible filters out ways whose access tags forbid the general public,
// mirroring the access/motor_vehicle checks a car router applies, loosened
// since non-motorized routing also cares about foot/bicycle-specific tags.
func isAccessible(tags osm.Tags) bool {
	if tags.Find("area") == "yes" {
		return false
	}
	switch tags.Find("access") {
	case "no", "private":
		return false
	}
	return true
}

// surfaceOf classifies the surface=* tag. Confidence is 1.0 for any
// explicit recognized tag and 0 when the tag is absent or unrecognized;
// enrich.SurfaceClassifier results (blended in by enrich.Rebuild) raise
// confidence later from imagery classification.
func surfaceOf(tags osm.Tags) graph.SurfaceClassification {
	s := strings.ToLower(tags.Find("surface"))
	switch {
	case pavedSurfaces[s]:
		return graph.SurfaceClassification{Surface: graph.SurfacePaved, Confidence: 1}
	case unpavedSurfaces[s]:
		return graph.SurfaceClassification{Surface: graph.SurfaceUnpaved, Confidence: 1}
	case s == "":
		return graph.SurfaceClassification{Surface: graph.SurfaceUnknown, Confidence: 0}
	default:
		return graph.SurfaceClassification{Surface: graph.SurfaceUnknown, Confidence: 0}
	}
}

// infrastructureOf reads the cycling/pedestrian/traffic-calming tag family
// into the five boolean flags.
func infrastructureOf(tags osm.Tags) graph.Infrastructure {
	cycleway := tags.Find("cycleway")
	hasBicycleInfra := cycleway != "" && cycleway != "no" ||
		tags.Find("highway") == "cycleway" ||
		tags.Find("bicycle") == "designated"

	sidewalk := tags.Find("sidewalk")
	hasPedestrianPath := (sidewalk != "" && sidewalk != "no") ||
		tags.Find("highway") == "footway" || tags.Find("highway") == "pedestrian"

	hasShoulder := tags.Find("shoulder") == "yes" || tags.Find("hard_shoulder") == "yes"

	isSeparated := strings.Contains(cycleway, "track") ||
		tags.Find("segregated") == "yes" ||
		tags.Find("highway") == "cycleway"

	calming := tags.Find("traffic_calming")
	hasTrafficCalming := calming != "" && calming != "no"

	return graph.Infrastructure{
		HasBicycleInfra:   hasBicycleInfra,
		HasPedestrianPath: hasPedestrianPath,
		HasShoulder:       hasShoulder,
		IsSeparated:       isSeparated,
		HasTrafficCalming: hasTrafficCalming,
	}
}

// directionFlags reports whether a way should emit a forward edge, a
// backward edge, or both, from its highway type and oneway tag.
func directionFlags(tags osm.Tags) (forward, backward bool) {
	forward, backward = true, true

	hw := tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}

	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no", "0", "false":
		forward, backward = true, true
	case "reversible", "alternating":
		// Time-dependent direction; ingest has no notion of time of day, so
		// the way is dropped rather than guessed.
		forward, backward = false, false
	}

	return forward, backward
}

// speedLimitOf parses maxspeed=* in km/h. OSM sometimes carries a " mph"
// suffix; those are converted, anything else unparsable is absent.
func speedLimitOf(tags osm.Tags) (kmh float64, ok bool) {
	raw := strings.TrimSpace(tags.Find("maxspeed"))
	if raw == "" {
		return 0, false
	}
	if strings.HasSuffix(raw, "mph") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(raw, "mph")), 64)
		if err != nil {
			return 0, false
		}
		return v * 1.60934, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// lanesOf parses lanes=*, returning false when absent or unparsable.
func lanesOf(tags osm.Tags) (int, bool) {
	raw := strings.TrimSpace(tags.Find("lanes"))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// nameOf returns the way's name=* tag, if present.
func nameOf(tags osm.Tags) (string, bool) {
	n := tags.Find("name")
	return n, n != ""
}

// scenicOf reports whether a way is tagged scenic under any of the common
// conventions an extract might use.
func scenicOf(tags osm.Tags) bool {
	return tags.Find("scenic") == "yes" || tags.Find("tourism") == "viewpoint"
}

// nodeFlagsOf classifies a node's own tags into the crossing/stop/signal
// booleans GraphNode carries.
func nodeFlagsOf(tags osm.Tags) (isCrossing, hasStop, hasSignal bool) {
	hw := tags.Find("highway")
	isCrossing = hw == "crossing"
	hasStop = hw == "stop"
	hasSignal = hw == "traffic_signals"
	return isCrossing, hasStop, hasSignal
}
