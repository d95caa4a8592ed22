// Package config loads the YAML document that drives cmd/loopcourse and
// the api server: logging setup, ingest bounds, corridorize tunables,
// search defaults, and the activity scoring override table.
//
// Loading is tolerant of a missing file (LoadFrom returns DefaultConfig
// unchanged) since every field already has a documented default; only a
// malformed file is an error.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/trailforge/loopcourse/activity"
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/osmingest"
	"github.com/trailforge/loopcourse/search"
)

// LoggingConfig controls process-wide zerolog setup.
type LoggingConfig struct {
	// Level is a zerolog level name ("debug", "info", ...); empty
	// defaults to "info".
	Level string `yaml:"level"`
	// Format is "console" or "json"; empty defaults to "console".
	Format string `yaml:"format"`
}

// IngestConfig mirrors osmingest.Options in a YAML-friendly shape.
type IngestConfig struct {
	BBox          BBoxConfig `yaml:"bbox"`
	IDConcurrency int        `yaml:"idConcurrency"`
}

// BBoxConfig is the YAML form of osmingest.BBox. The zero value disables
// bbox filtering, same as osmingest.BBox{}.
type BBoxConfig struct {
	MinLat float64 `yaml:"minLat"`
	MaxLat float64 `yaml:"maxLat"`
	MinLng float64 `yaml:"minLng"`
	MaxLng float64 `yaml:"maxLng"`
}

// ToOptions converts ic into osmingest.Options.
func (ic IngestConfig) ToOptions() osmingest.Options {
	return osmingest.Options{
		BBox: osmingest.BBox{
			MinLat: ic.BBox.MinLat,
			MaxLat: ic.BBox.MaxLat,
			MinLng: ic.BBox.MinLng,
			MaxLng: ic.BBox.MaxLng,
		},
		IDConcurrency: ic.IDConcurrency,
	}
}

// EnrichConfig configures the optional DEM/imagery enrichment stage.
type EnrichConfig struct {
	// ElevationCachePath is a sqlite file path, or empty to disable the
	// cache decorator and call the upstream provider directly.
	ElevationCachePath string `yaml:"elevationCachePath"`
}

// CorridorConfig mirrors corridor.BuildOptions in a YAML-friendly shape.
// Any field left zero in the document falls back to the documented
// default for that sub-option group.
type CorridorConfig struct {
	AllowNameChanges      bool    `yaml:"allowNameChanges"`
	MaxSpeedDifferenceKMH float64 `yaml:"maxSpeedDifferenceKMH"`

	MaxAngleChangeDegrees    float64 `yaml:"maxAngleChangeDegrees"`
	MinCompatibilityToExtend float64 `yaml:"minCompatibilityToExtend"`

	DestinationMinLengthMeters        float64 `yaml:"destinationMinLengthMeters"`
	DestinationElevationGainMeters    float64 `yaml:"destinationElevationGainMeters"`
	DestinationOffRoadMinLengthMeters float64 `yaml:"destinationOffRoadMinLengthMeters"`
}

// ToOptions converts cc into a corridor.BuildOptions, layering non-zero
// fields over corridor.DefaultBuildOptions().
func (cc CorridorConfig) ToOptions() corridor.BuildOptions {
	opt := corridor.DefaultBuildOptions()
	opt.Compat.AllowNameChanges = cc.AllowNameChanges
	if cc.MaxSpeedDifferenceKMH > 0 {
		opt.Compat.MaxSpeedDifferenceKMH = cc.MaxSpeedDifferenceKMH
	}
	if cc.MaxAngleChangeDegrees > 0 {
		opt.ChainBuild.MaxAngleChangeDegrees = cc.MaxAngleChangeDegrees
	}
	if cc.MinCompatibilityToExtend > 0 {
		opt.ChainBuild.MinCompatibilityToExtend = cc.MinCompatibilityToExtend
	}
	if cc.DestinationMinLengthMeters > 0 {
		opt.Prune.DestinationMinLengthMeters = cc.DestinationMinLengthMeters
	}
	if cc.DestinationElevationGainMeters > 0 {
		opt.Prune.DestinationElevationGainMeters = cc.DestinationElevationGainMeters
	}
	if cc.DestinationOffRoadMinLengthMeters > 0 {
		opt.Prune.DestinationOffRoadMinLengthMeters = cc.DestinationOffRoadMinLengthMeters
	}
	return opt
}

// SearchConfig mirrors the tunable subset of search.Options that makes
// sense as a deployment-wide default; per-request fields (start
// coordinate, min/max distance) are supplied by the caller, not here.
type SearchConfig struct {
	BeamWidth           int     `yaml:"beamWidth"`
	MaxAlternatives     int     `yaml:"maxAlternatives"`
	MaxIterations       int     `yaml:"maxIterations"`
	SnapMaxRadiusMeters float64 `yaml:"snapMaxRadiusMeters"`
}

// ApplyTo layers sc's non-zero fields onto opt and returns the result.
func (sc SearchConfig) ApplyTo(opt search.Options) search.Options {
	if sc.BeamWidth > 0 {
		opt.BeamWidth = sc.BeamWidth
	}
	if sc.MaxAlternatives > 0 {
		opt.MaxAlternatives = sc.MaxAlternatives
	}
	if sc.MaxIterations > 0 {
		opt.MaxIterations = sc.MaxIterations
	}
	if sc.SnapMaxRadiusMeters > 0 {
		opt.SnapMaxRadiusMeters = sc.SnapMaxRadiusMeters
	}
	return opt
}

// RegionConfig names the on-disk graph/corridor-network snapshots (see
// graph.Graph.Encode / corridor.CorridorNetwork.Encode) the API server
// loads into memory for a region.
type RegionConfig struct {
	GraphPath   string `yaml:"graphPath"`
	NetworkPath string `yaml:"networkPath"`
}

// APIConfig configures the optional HTTP API server.
type APIConfig struct {
	Regions map[string]RegionConfig `yaml:"regions"`

	// RedisAddr, if set, enables the SearchGraph response cache.
	RedisAddr string `yaml:"redisAddr"`

	// PostgresDSN, if set, enables ingest-job bookkeeping.
	PostgresDSN string `yaml:"postgresDSN"`

	// SearchGraphCacheTTLSeconds defaults to 600 (10 minutes) when <= 0.
	SearchGraphCacheTTLSeconds int `yaml:"searchGraphCacheTTLSeconds"`
}

// Config is the top-level document loaded by cmd/loopcourse and api.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Enrich   EnrichConfig   `yaml:"enrich"`
	Corridor CorridorConfig `yaml:"corridor"`
	Search   SearchConfig   `yaml:"search"`
	API      APIConfig      `yaml:"api"`

	// Activities is the same per-activity weights override table
	// activity.BaseConfig carries, inlined here so a single file covers
	// the whole pipeline instead of a separate activities document.
	Activities map[string]activity.ParamsOverride `yaml:"activities"`
}

// BaseConfig returns c.Activities wrapped as an activity.BaseConfig, the
// shape activity.Resolve expects.
func (c Config) BaseConfig() activity.BaseConfig {
	return activity.BaseConfig{Activities: c.Activities}
}

// DefaultConfig returns the documented zero-override configuration:
// console logging at info level, no bbox filter, no elevation cache, and
// every corridor/search default from their respective packages.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads the config file at path, returning DefaultConfig() if path
// does not exist.
func Load(path string) (Config, error) {
	return LoadFrom(path)
}

// LoadFrom parses the YAML document at path into a Config seeded from
// DefaultConfig(). A missing file is not an error: it yields the
// defaults unchanged.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating or truncating the file.
func Save(cfg Config, path string) error {
	return SaveTo(cfg, path)
}

// SaveTo marshals cfg as YAML and writes it to path with 0o644
// permissions.
func SaveTo(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
