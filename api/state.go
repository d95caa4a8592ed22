package api

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/trailforge/loopcourse/activity"
	"github.com/trailforge/loopcourse/config"
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/graph"
	"github.com/trailforge/loopcourse/search"
)

// region holds one region's decoded graph and corridor network, loaded
// once at first request and kept in memory for the life of the process.
type region struct {
	graph   *graph.Graph
	network *corridor.CorridorNetwork
}

// state is the server's shared, process-wide dependency bag: config,
// optional redis/postgres backends, and the lazily-loaded region
// registry. Mirrors the singleton-pool-behind-a-mutex shape of
// passbi_core's db/cache packages, collapsed into one struct instead of
// two package-level singletons since this server owns its own lifecycle
// (tests construct a fresh state per case).
type state struct {
	cfg config.Config

	cache *searchGraphCache // nil when cfg.API.RedisAddr == ""
	jobs  *jobStore         // nil when cfg.API.PostgresDSN == ""

	mu      sync.RWMutex
	regions map[string]*region
}

func newState(cfg config.Config) (*state, error) {
	s := &state{cfg: cfg, regions: make(map[string]*region)}

	if cfg.API.RedisAddr != "" {
		c, err := newSearchGraphCache(cfg.API.RedisAddr, cfg.API.SearchGraphCacheTTLSeconds)
		if err != nil {
			return nil, fmt.Errorf("api: redis cache: %w", err)
		}
		s.cache = c
	}
	if cfg.API.PostgresDSN != "" {
		j, err := newJobStore(cfg.API.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("api: job store: %w", err)
		}
		s.jobs = j
	}
	return s, nil
}

func (s *state) close() {
	if s.cache != nil {
		s.cache.Close()
	}
	if s.jobs != nil {
		s.jobs.Close()
	}
}

// regionFor returns the decoded graph/network for name, loading it from
// the configured snapshot paths on first access.
func (s *state) regionFor(name string) (*region, error) {
	s.mu.RLock()
	r, ok := s.regions[name]
	s.mu.RUnlock()
	if ok {
		return r, nil
	}

	rc, ok := s.cfg.API.Regions[name]
	if !ok {
		return nil, fmt.Errorf("api: unknown region %q", name)
	}

	g, err := decodeGraphFile(rc.GraphPath)
	if err != nil {
		return nil, fmt.Errorf("api: load region %q graph: %w", name, err)
	}
	network, err := decodeNetworkFile(rc.NetworkPath)
	if err != nil {
		return nil, fmt.Errorf("api: load region %q network: %w", name, err)
	}

	r = &region{graph: g, network: network}
	s.mu.Lock()
	s.regions[name] = r
	s.mu.Unlock()
	return r, nil
}

// searchGraphFor returns the SearchGraph for (regionName, act), serving it
// from the redis cache when configured and falling back to
// search.BuildSearchGraph on a miss (or when no cache is configured). A
// successful build is written back to the cache so the next request for
// the same (region, activity) pair is a cache hit.
func (s *state) searchGraphFor(ctx context.Context, regionName string, act activity.Activity, r *region, params activity.Params) (*search.SearchGraph, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, regionName, act.String())
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	sg := search.BuildSearchGraph(r.network, r.graph, params)

	if s.cache != nil {
		_ = s.cache.Set(ctx, regionName, act.String(), sg)
	}
	return sg, nil
}

func decodeGraphFile(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return graph.Decode(f)
}

func decodeNetworkFile(path string) (*corridor.CorridorNetwork, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return corridor.Decode(f)
}
