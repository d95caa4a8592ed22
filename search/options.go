package search

import "github.com/trailforge/loopcourse/geo"

// TurnFrequency is the closed set of turn-preference tunables.
type TurnFrequency int

const (
	TurnFrequencyModerate TurnFrequency = iota
	TurnFrequencyMinimal
	TurnFrequencyFrequent
)

// Options configures GenerateLoopRoutes.
type Options struct {
	StartCoordinate   geo.Coordinate
	MinDistanceMeters float64
	MaxDistanceMeters float64

	BeamWidth       int
	MaxAlternatives int

	// PreferredDirectionDegrees, if HasPreferredDirection is false, is
	// drawn uniform-random in [0,360) from the run's PRNG, so runs with
	// different seeds head in different directions and the same Seed draws
	// the same direction.
	PreferredDirectionDegrees float64
	HasPreferredDirection     bool

	TurnFrequency TurnFrequency

	// Seed seeds the search's PRNG (beam noise and, when absent, the
	// default preferred direction). 0 uses a fixed default seed.
	Seed int64

	SnapMaxRadiusMeters float64
	MaxIterations       int
}

// Named beam-search tunables, deliberately kept as three separate
// constants rather than unified even though they're numerically close:
const (
	// RevisitGateFraction is the 0.80 x minDistance threshold past which
	// a candidate may re-enter its home zone.
	RevisitGateFraction = 0.80

	// HomeZoneRadiusMeters is the 1500 m disk around start where the
	// no-revisit rule is relaxed.
	HomeZoneRadiusMeters = 1500

	// NearHomeCompletionRadiusMeters is the 1000 m "close enough to
	// finish" radius, distinct from HomeZoneRadiusMeters.
	NearHomeCompletionRadiusMeters = 1000
)

const (
	DefaultBeamWidth       = 200
	DefaultMaxAlternatives = 3
	DefaultMaxIterations   = 5000

	roadNetworkSlackFactor = 0.7
	hardCapMultiplier      = 1.5
)

// WithDefaults fills in zero-valued optional fields with their
// documented defaults.
func (o Options) WithDefaults() Options {
	if o.BeamWidth <= 0 {
		o.BeamWidth = DefaultBeamWidth
	}
	if o.MaxAlternatives <= 0 {
		o.MaxAlternatives = DefaultMaxAlternatives
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.SnapMaxRadiusMeters <= 0 {
		o.SnapMaxRadiusMeters = DefaultSnapMaxRadiusMeters
	}
	return o
}

// midDistance, returnBudget and hardCap are the search's derived distance
// bounds.
func (o Options) midDistance() float64 { return (o.MinDistanceMeters + o.MaxDistanceMeters) / 2 }
func (o Options) returnBudget() float64 { return o.MaxDistanceMeters }
func (o Options) hardCap() float64 { return hardCapMultiplier * o.MaxDistanceMeters }
