// File: internal/blacklist/blacklist.go
package blacklist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kevinhagel/northstar-funding-sub000/internal/cache"
	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
)

// ErrBlacklistCacheUnavailable is returned, wrapped, by IsBlacklisted when
// the store lookup behind the cache fails. The outage is logged and
// reported as this error; it is never turned into a "not blacklisted"
// result. Callers recognize it with errors.Is.
var ErrBlacklistCacheUnavailable = errors.New("blacklist: cache unavailable")

// Store is the narrow read side this component needs from the primary
// store: a single name lookup, used on cache miss.
type Store interface {
	IsDomainBlacklisted(ctx context.Context, name string) (bool, error)
}

// Config controls the cache policy: TTL 24h, missing-from-store cached as
// false.
type Config struct {
	CacheTTL     time.Duration
	CacheMaxSize int
}

func DefaultConfig() Config {
	return Config{
		CacheTTL:     24 * time.Hour,
		CacheMaxSize: 5000,
	}
}

// Cache is a read-through cache mapping domain name -> blacklisted,
// backed by the primary store and guarded against cache-stampede on cold
// misses via the shared TTLCache's per-key singleflight guard.
type Cache struct {
	cfg    Config
	store  Store
	logger logging.Logger
	cache  *cache.TTLCache
}

func New(cfg Config, store Store, logger logging.Logger) *Cache {
	return &Cache{
		cfg:    cfg,
		store:  store,
		logger: logger,
		cache:  cache.New(cfg.CacheTTL, cfg.CacheMaxSize),
	}
}

func (c *Cache) Stats() cache.Stats {
	return c.cache.Stats()
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimPrefix(name, "www.")
}

// IsBlacklisted reports whether name is blacklisted, serving from cache
// when possible. On a confirmed miss it queries the store under a per-key
// singleflight guard so concurrent lookups for the same cold name only
// trigger one store round trip.
//
// If the store lookup itself fails, the outage is logged and the call
// returns an error; it never silently reports "not blacklisted".
func (c *Cache) IsBlacklisted(ctx context.Context, name string) (bool, error) {
	key := normalize(name)
	if key == "" {
		return false, nil
	}

	if v, ok := c.cache.Get(key); ok {
		return v.(bool), nil
	}

	leader, wait, release := c.cache.SingleFlightGuard(key)
	if !leader {
		wait()
		if v, ok := c.cache.Get(key); ok {
			return v.(bool), nil
		}
		// The leader's store lookup failed and nothing was cached; fall
		// through to issue our own direct lookup rather than assume false.
	} else {
		defer release()
	}

	blacklisted, err := c.store.IsDomainBlacklisted(ctx, key)
	if err != nil {
		c.logger.Error(ctx, "blacklist store lookup failed; outage, not a negative result", map[string]interface{}{
			"domain": key,
			"error":  err.Error(),
		})
		return false, fmt.Errorf("%w: %v", ErrBlacklistCacheUnavailable, err)
	}

	c.cache.Set(key, blacklisted, c.cfg.CacheTTL)
	return blacklisted, nil
}

// Invalidate removes name from the cache immediately, for callers that
// mutate the blacklist out-of-band.
func (c *Cache) Invalidate(name string) {
	c.cache.Invalidate(normalize(name))
}
