package cache

import (
	"context"
	"hub-routing-service/internal/ports"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRURouteCache is an in-process, size-bounded RoadRouteCache with optional
// per-entry expiry. It is safe for concurrent use.
type LRURouteCache struct {
	lru *expirable.LRU[string, ports.RoadRoute]
}

// NewLRURouteCache keeps at most size entries for ttl each.
// ttl <= 0 disables expiry.
func NewLRURouteCache(size int, ttl time.Duration) *LRURouteCache {
	return &LRURouteCache{lru: expirable.NewLRU[string, ports.RoadRoute](size, nil, ttl)}
}

func (c *LRURouteCache) Get(_ context.Context, key string) (ports.RoadRoute, bool, error) {
	r, ok := c.lru.Get(key)
	if !ok {
		return ports.RoadRoute{}, false, nil
	}
	r.Geometry = slices.Clone(r.Geometry)
	return r, true, nil
}

func (c *LRURouteCache) Put(_ context.Context, key string, r ports.RoadRoute) error {
	r.Geometry = slices.Clone(r.Geometry)
	c.lru.Add(key, r)
	return nil
}

// Len is the number of live entries.
func (c *LRURouteCache) Len() int { return c.lru.Len() }
