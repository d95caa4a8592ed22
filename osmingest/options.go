package osmingest

// BBox restricts ingest to way segments (edges) whose endpoints both fall
// inside it; the rest of a way that crosses the box is kept. The
// zero value (IsZero true) disables filtering.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero reports whether b is the unset bounding box.
func (b BBox) IsZero() bool {
	return b == BBox{}
}

// Contains reports whether (lat, lng) falls inside b.
func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// Options configures Parse.
type Options struct {
	// BBox, if non-zero, drops way segments (edges) with either endpoint
	// outside it.
	BBox BBox

	// IDConcurrency is forwarded to osmpbf.Scanner as its decode
	// parallelism. Defaults to 1 (deterministic decode order) when <= 0.
	IDConcurrency int
}

func (o Options) withDefaults() Options {
	if o.IDConcurrency <= 0 {
		o.IDConcurrency = 1
	}
	return o
}
