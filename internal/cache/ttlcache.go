// File: internal/cache/ttlcache.go
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Stats is a point-in-time snapshot of cache effectiveness, exposed by
// both the query cache and the domain blacklist cache.
type Stats struct {
	Size    int
	Hits    int64
	Misses  int64
	HitRate float64
}

// TTLCache is a process-wide, concurrency-safe, read-through cache
// wrapper over patrickmn/go-cache. It adds LRU-style capacity eviction
// (go-cache alone only expires by TTL) and hit/miss counters, the cache
// shape shared by the query cache and the domain blacklist cache.
type TTLCache struct {
	mu        sync.Mutex
	store     *gocache.Cache
	maxSize   int
	order     []string // recency order, least recently used first, for LRU eviction
	hits      int64
	misses    int64
	singleflight map[string]*sync.WaitGroup
}

// New constructs a TTLCache with the given default TTL and maximum entry
// count. maxSize <= 0 means unbounded.
func New(ttl time.Duration, maxSize int) *TTLCache {
	return &TTLCache{
		store:        gocache.New(ttl, ttl/2),
		maxSize:      maxSize,
		order:        make([]string, 0),
		singleflight: make(map[string]*sync.WaitGroup),
	}
}

// Get returns the cached value for key and whether it was present. A hit
// marks key as the most recently used entry.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store.Get(key)
	if ok {
		c.hits++
		for i, k := range c.order {
			if k == key {
				c.order = append(c.order[:i], c.order[i+1:]...)
				c.order = append(c.order, key)
				break
			}
		}
	} else {
		c.misses++
	}
	return v, ok
}

// Set writes value under key, write-once per the cache's policy: callers
// are expected to only call Set after a confirmed miss. Evicts
// the least recently used entry if maxSize would be exceeded.
func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.store.Get(key); !exists {
		c.order = append(c.order, key)
	}
	c.store.Set(key, value, ttl)
	c.evictLocked()
}

// Invalidate removes key from the cache immediately, used when the
// underlying blacklist mutates.
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Delete(key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *TTLCache) evictLocked() {
	if c.maxSize <= 0 {
		return
	}
	for len(c.order) > c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.store.Delete(oldest)
	}
}

// Stats returns a snapshot of size/hits/misses/hitRate.
func (c *TTLCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		Size:    c.store.ItemCount(),
		Hits:    c.hits,
		Misses:  c.misses,
		HitRate: rate,
	}
}

// SingleFlightGuard acquires a per-key guard so that concurrent misses on
// the same key only trigger one populate path, avoiding cache stampedes
// on cold misses. The
// returned release function must be called once the populating goroutine
// is done; other callers block in the returned wait function until release.
func (c *TTLCache) SingleFlightGuard(key string) (leader bool, wait func(), release func()) {
	c.mu.Lock()
	wg, exists := c.singleflight[key]
	if !exists {
		wg = &sync.WaitGroup{}
		wg.Add(1)
		c.singleflight[key] = wg
		c.mu.Unlock()
		return true, func() {}, func() {
			c.mu.Lock()
			delete(c.singleflight, key)
			c.mu.Unlock()
			wg.Done()
		}
	}
	c.mu.Unlock()
	return false, wg.Wait, func() {}
}
