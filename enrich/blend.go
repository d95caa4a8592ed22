package enrich

import "github.com/trailforge/loopcourse/graph"

// conflictConfidenceThreshold is the minimum imagery confidence required to
// flag a disagreement with an explicit OSM surface tag. Below this, a
// classifier's guess is too weak to contest tagged data.
const conflictConfidenceThreshold = 0.6

// blendSurface merges an imagery-derived surface estimate into a tag-derived
// SurfaceClassification.
//
//   - If the tag was unset (confidence 0), the imagery result is adopted
//     outright, no conflict possible.
//   - If the tag was set and imagery agrees, confidence is boosted toward 1
//     (corroboration) without overriding the surface value.
//   - If the tag was set and imagery disagrees with confidence at or above
//     conflictConfidenceThreshold, HasConflict is set and the tag value is
//     kept (OSM tagging is treated as higher-trust than classification).
func blendSurface(tagged graph.SurfaceClassification, imagery graph.Surface, imageryConfidence float64, source string, enrichment []graph.EnrichmentConfidence) (graph.SurfaceClassification, []graph.EnrichmentConfidence) {
	enrichment = append(enrichment, graph.EnrichmentConfidence{Source: source, Confidence: imageryConfidence})

	if tagged.Confidence == 0 {
		return graph.SurfaceClassification{Surface: imagery, Confidence: imageryConfidence}, enrichment
	}

	if imagery == tagged.Surface {
		boosted := tagged.Confidence + (1-tagged.Confidence)*imageryConfidence
		tagged.Confidence = boosted
		return tagged, enrichment
	}

	if imageryConfidence >= conflictConfidenceThreshold {
		tagged.HasConflict = true
	}
	return tagged, enrichment
}
