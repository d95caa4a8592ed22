// Package activity defines the closed set of supported human-powered
// activities and the per-activity scoring parameters that drive
// corridor/connector scoring and search-graph exclusion
// filters.
//
// Scoring parameters are plain value objects, never code: Params is safe to
// serialize and override from configuration (see ParamsOverride, Resolve and the
// loopcourse/config package) without touching the scoring functions
// themselves.
package activity
