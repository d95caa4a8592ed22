package enrich

import (
	"context"

	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
)

// ElevationProvider samples elevation in meters at a batch of coordinates.
// Implementations query a DEM raster or tile service. A result element is
// NaN where the provider has no data for that point; callers treat NaN the
// same way geo.ResampleProfile does.
type ElevationProvider interface {
	SampleElevations(ctx context.Context, points []geo.Coordinate) ([]float64, error)
}

// SurfaceClassifier estimates the paving surface along a way's geometry
// from street-level or aerial imagery, independent of any OSM surface tag.
// confidence is in [0,1]; a classifier unsure of its own output should
// return a low confidence rather than guessing SurfaceUnknown.
type SurfaceClassifier interface {
	Name() string
	ClassifySurface(ctx context.Context, geometry []geo.Coordinate) (surface graph.Surface, confidence float64, err error)
}
