package pagecache

import (
	"sync"
	"time"
)

// DefaultTTL bounds how stale a memoized page may get before the next
// request recomputes it.
const DefaultTTL = 20 * time.Second

// CachedResponse is a rendered response stored verbatim: within the TTL
// window a hit replays exactly these bytes, regardless of writes that
// happened underneath.
type CachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

type entry struct {
	response  CachedResponse
	expiresAt time.Time
}

// Cache memoizes rendered pages keyed by request path and query string.
// Entries leave the cache by TTL expiry or an explicit Clear only; data
// writes never invalidate it. The zero value is not usable; construct with
// New.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// New creates a page cache with the given TTL. A non-positive TTL falls back
// to DefaultTTL.
func New(ttl time.Duration) *Cache {
	return newCache(ttl, time.Now)
}

// NewWithClock creates a page cache with an injected clock.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	return newCache(ttl, now)
}

func newCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry),
	}
}

// Key builds the cache key for a request path and raw query string.
func Key(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// Get returns the cached response for key if present and not expired.
// Expired entries are dropped on access.
func (c *Cache) Get(key string) (CachedResponse, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return CachedResponse{}, false
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed it.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return CachedResponse{}, false
	}

	return e.response, true
}

// Set stores a rendered response under key for one TTL window.
func (c *Cache) Set(key string, response CachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		response:  response,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Clear drops every entry immediately, bypassing TTL. Used by the admin
// endpoint and by tests.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the number of live entries, expired ones included until their
// next access.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
