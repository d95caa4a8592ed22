package enrich

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"

	"github.com/trailforge/loopcourse/geo"
)

// cacheKeyPrecision rounds a coordinate to roughly 1m before keying the
// cache, so repeated queries for the same graph node (never bit-identical
// across independent ingests of overlapping extracts) still hit.
const cacheKeyPrecision = 1e5 // ~1.1m at the equator

// Cache wraps an ElevationProvider with an on-disk SQLite response cache,
// keyed by rounded (lat, lng). It is itself an ElevationProvider, so it can
// be passed to Rebuild in place of the provider it wraps.
type Cache struct {
	db       *sql.DB
	upstream ElevationProvider
}

// OpenCache opens (creating if absent) a SQLite cache database at path and
// wraps upstream. path may be ":memory:" for a process-local cache.
func OpenCache(path string, upstream ElevationProvider) (*Cache, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("enrich: open cache: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS elevation_cache (
		lat_key INTEGER NOT NULL,
		lng_key INTEGER NOT NULL,
		elevation_meters REAL NOT NULL,
		PRIMARY KEY (lat_key, lng_key)
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enrich: create cache schema: %w", err)
	}
	return &Cache{db: db, upstream: upstream}, nil
}

// Close closes the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SampleElevations resolves each point from the cache where possible,
// batches the remainder to the upstream provider, and stores the fresh
// results before returning the combined, order-preserving result.
func (c *Cache) SampleElevations(ctx context.Context, points []geo.Coordinate) ([]float64, error) {
	out := make([]float64, len(points))
	var missIdx []int
	var missPoints []geo.Coordinate

	for i, p := range points {
		v, ok, err := c.lookup(ctx, p)
		if err != nil {
			return nil, err
		}
		if ok {
			out[i] = v
			continue
		}
		missIdx = append(missIdx, i)
		missPoints = append(missPoints, p)
	}

	if len(missPoints) == 0 {
		return out, nil
	}

	fresh, err := c.upstream.SampleElevations(ctx, missPoints)
	if err != nil {
		return nil, fmt.Errorf("enrich: upstream elevation query: %w", err)
	}
	if len(fresh) != len(missPoints) {
		return nil, fmt.Errorf("enrich: upstream returned %d samples for %d points", len(fresh), len(missPoints))
	}

	for i, idx := range missIdx {
		out[idx] = fresh[i]
		if !math.IsNaN(fresh[i]) {
			if err := c.store(ctx, missPoints[i], fresh[i]); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (c *Cache) lookup(ctx context.Context, p geo.Coordinate) (float64, bool, error) {
	latKey, lngKey := cacheKeys(p)
	var v float64
	err := c.db.QueryRowContext(ctx,
		`SELECT elevation_meters FROM elevation_cache WHERE lat_key = ? AND lng_key = ?`,
		latKey, lngKey,
	).Scan(&v)
	switch {
	case err == sql.ErrNoRows:
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("enrich: cache lookup: %w", err)
	default:
		return v, true, nil
	}
}

func (c *Cache) store(ctx context.Context, p geo.Coordinate, elevationMeters float64) error {
	latKey, lngKey := cacheKeys(p)
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO elevation_cache (lat_key, lng_key, elevation_meters) VALUES (?, ?, ?)`,
		latKey, lngKey, elevationMeters,
	)
	if err != nil {
		return fmt.Errorf("enrich: cache store: %w", err)
	}
	return nil
}

func cacheKeys(p geo.Coordinate) (int64, int64) {
	return int64(math.Round(p.Lat * cacheKeyPrecision)), int64(math.Round(p.Lng * cacheKeyPrecision))
}
