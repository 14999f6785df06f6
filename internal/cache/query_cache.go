// Package cache memoizes collection reads per entity and drops them when a
// mutation touches that entity.
package cache

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lexfirm/backoffice-api/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query: the entity it reads and its parameters
type Key struct {
	Entity string
	Params string
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Entity
	}
	return k.Entity + "?" + k.Params
}

// QueryCache holds query results until their entity is invalidated.
// Concurrent misses for the same key share one fetch.
type QueryCache struct {
	entries *lru.Cache[Key, interface{}]
	group   singleflight.Group
	logger  *zap.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

// New creates a cache holding at most size query results
func New(size int, logger *zap.Logger) (*QueryCache, error) {
	if size <= 0 {
		size = 64
	}
	entries, err := lru.New[Key, interface{}](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}
	return &QueryCache{
		entries:     entries,
		logger:      logger,
		generations: make(map[string]uint64),
	}, nil
}

func (c *QueryCache) generation(entity string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[entity]
}

// Invalidate drops every cached query of the given entities. A fetch that
// started before the call will not repopulate the cache.
func (c *QueryCache) Invalidate(entities ...string) {
	c.mu.Lock()
	for _, e := range entities {
		c.generations[e]++
	}
	c.mu.Unlock()

	for _, k := range c.entries.Keys() {
		for _, e := range entities {
			if k.Entity == e {
				c.entries.Remove(k)
				break
			}
		}
	}

	for _, e := range entities {
		metrics.CacheInvalidations.WithLabelValues(e).Inc()
	}
	c.logger.Debug("query cache invalidated", zap.Strings("entities", entities))
}

// Len reports the number of cached query results
func (c *QueryCache) Len() int {
	return c.entries.Len()
}

// GetOrFetch returns the cached result for key or runs fetch and caches its
// result. Errors are never cached.
func GetOrFetch[T any](ctx context.Context, c *QueryCache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := c.entries.Get(key); ok {
		if typed, ok := v.(T); ok {
			metrics.CacheLookups.WithLabelValues(key.Entity, "hit").Inc()
			return typed, nil
		}
	}
	metrics.CacheLookups.WithLabelValues(key.Entity, "miss").Inc()

	gen := c.generation(key.Entity)
	flightKey := fmt.Sprintf("%s#%d", key, gen)

	// The fetch is shared with every waiter on flightKey, so one caller
	// going away must not fail the others
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		result, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generations[key.Entity] == gen {
			c.entries.Add(key, result)
		}
		c.mu.Unlock()
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
