package companion

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedCompanionEntry wraps a companion snapshot with version metadata
type cachedCompanionEntry struct {
	Version   string
	Companion domain.Companion
	CachedAt  time.Time
}

// CacheStats reports cache effectiveness for the debug screen
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// companionCache keeps recent companion snapshots keyed by user id. It is
// seeded from the snapshot persisted with the screen state, so a screen
// rendered by the next invocation within the TTL does not refetch the row.
type companionCache struct {
	lru    *expirable.LRU[string, *cachedCompanionEntry]
	ttl    time.Duration
	now    func() time.Time
	hits   atomic.Int64
	misses atomic.Int64
}

func newCompanionCache(size int, ttl time.Duration) *companionCache {
	return &companionCache{
		lru: expirable.NewLRU[string, *cachedCompanionEntry](size, nil, ttl),
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns a copy of the cached snapshot. Entries from an older schema
// version are dropped.
func (c *companionCache) Get(userID string) (*domain.Companion, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	// Seeded entries carry their original timestamp, older than the LRU's own clock
	if entry.Version != CacheSchemaVersion || c.now().Sub(entry.CachedAt) > c.ttl {
		c.lru.Remove(userID)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	snapshot := entry.Companion
	return &snapshot, true
}

func (c *companionCache) Set(companion domain.Companion) {
	c.setAt(companion, c.now())
}

// Seed stores a snapshot taken at takenAt. Snapshots already older than the
// TTL, or from the future, are ignored.
func (c *companionCache) Seed(companion domain.Companion, takenAt time.Time) bool {
	age := c.now().Sub(takenAt)
	if companion.UserID == "" || age < 0 || age > c.ttl {
		return false
	}
	c.setAt(companion, takenAt)
	return true
}

func (c *companionCache) setAt(companion domain.Companion, at time.Time) {
	c.lru.Add(companion.UserID, &cachedCompanionEntry{
		Version:   CacheSchemaVersion,
		Companion: companion,
		CachedAt:  at,
	})
}

func (c *companionCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

func (c *companionCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
