package api

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trailforge/loopcourse/search"
)

const defaultSearchGraphCacheTTLSeconds = 600

// searchGraphCache is a redis-backed cache of built search.SearchGraph
// values keyed by (region, activity), so repeated /route requests for the
// same region/activity pair skip search.BuildSearchGraph's flatten pass.
// Grounded on passbi_core's internal/cache/redis.go: a plain *redis.Client
// wrapped with a typed Get/Set pair and a fixed TTL, not the singleton/
// sync.Once pattern (this server constructs one state per process, so a
// package-level singleton would only add an unnecessary global).
type searchGraphCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newSearchGraphCache(addr string, ttlSeconds int) (*searchGraphCache, error) {
	if ttlSeconds <= 0 {
		ttlSeconds = defaultSearchGraphCacheTTLSeconds
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return &searchGraphCache{client: client, ttl: time.Duration(ttlSeconds) * time.Second}, nil
}

func (c *searchGraphCache) Close() error { return c.client.Close() }

func searchGraphCacheKey(region, activityName string) string {
	return fmt.Sprintf("searchgraph:%s:%s", region, activityName)
}

// Get returns the cached SearchGraph for (region, activity), or (nil, nil)
// on a cache miss.
func (c *searchGraphCache) Get(ctx context.Context, region, activityName string) (*search.SearchGraph, error) {
	data, err := c.client.Get(ctx, searchGraphCacheKey(region, activityName)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sg search.SearchGraph
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&sg); err != nil {
		return nil, fmt.Errorf("decode cached search graph: %w", err)
	}
	return &sg, nil
}

// Set stores sg under (region, activity) with the cache's configured TTL.
func (c *searchGraphCache) Set(ctx context.Context, region, activityName string, sg *search.SearchGraph) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(sg); err != nil {
		return fmt.Errorf("encode search graph: %w", err)
	}
	return c.client.Set(ctx, searchGraphCacheKey(region, activityName), buf.Bytes(), c.ttl).Err()
}
