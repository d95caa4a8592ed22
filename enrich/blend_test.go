package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trailforge/loopcourse/graph"
)

func TestBlendSurfaceAdoptsImageryWhenTagUnset(t *testing.T) {
	tagged := graph.SurfaceClassification{Surface: graph.SurfaceUnknown, Confidence: 0}
	blended, enrichment := blendSurface(tagged, graph.SurfacePaved, 0.8, "imagery-v1", nil)

	assert.Equal(t, graph.SurfacePaved, blended.Surface)
	assert.Equal(t, 0.8, blended.Confidence)
	assert.False(t, blended.HasConflict)
	assert.Len(t, enrichment, 1)
	assert.Equal(t, "imagery-v1", enrichment[0].Source)
}

func TestBlendSurfaceBoostsConfidenceOnAgreement(t *testing.T) {
	tagged := graph.SurfaceClassification{Surface: graph.SurfacePaved, Confidence: 0.5}
	blended, _ := blendSurface(tagged, graph.SurfacePaved, 0.8, "imagery-v1", nil)

	assert.Equal(t, graph.SurfacePaved, blended.Surface)
	assert.Greater(t, blended.Confidence, 0.5)
	assert.False(t, blended.HasConflict)
}

func TestBlendSurfaceFlagsConflictOnConfidentDisagreement(t *testing.T) {
	tagged := graph.SurfaceClassification{Surface: graph.SurfacePaved, Confidence: 1.0}
	blended, _ := blendSurface(tagged, graph.SurfaceUnpaved, 0.9, "imagery-v1", nil)

	assert.Equal(t, graph.SurfacePaved, blended.Surface)
	assert.True(t, blended.HasConflict)
}

func TestBlendSurfaceIgnoresLowConfidenceDisagreement(t *testing.T) {
	tagged := graph.SurfaceClassification{Surface: graph.SurfacePaved, Confidence: 1.0}
	blended, _ := blendSurface(tagged, graph.SurfaceUnpaved, 0.2, "imagery-v1", nil)

	assert.False(t, blended.HasConflict)
}
