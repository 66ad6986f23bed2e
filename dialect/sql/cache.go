package sql

import (
	"log/slog"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache stores compiled pushdown SQL keyed by dialect and expression
// fingerprint. Values are opaque msgpack-encoded entries, so the
// interface can be backed by an external store (e.g. Redis, Memcached)
// as well as the in-process MemoryCache.
type Cache interface {
	// Get retrieves a value from the cache. ok is false if the key
	// does not exist.
	Get(key string) (value []byte, ok bool)

	// Set stores a value in the cache.
	Set(key string, value []byte)
}

// cacheEntry is the encoded form of one compile result. Declines are
// cached too: an expression the dialect cannot push down stays
// untranslatable for the lifetime of the entry.
type cacheEntry struct {
	SQL string `msgpack:"sql"`
	OK  bool   `msgpack:"ok"`
}

func cacheGet(c Cache, key string) (sql string, ok, hit bool) {
	raw, found := c.Get(key)
	if !found {
		return "", false, false
	}
	var e cacheEntry
	if err := msgpack.Unmarshal(raw, &e); err != nil {
		slog.Warn("discarding undecodable compile cache entry", "key", key, "err", err)
		return "", false, false
	}
	return e.SQL, e.OK, true
}

func cacheSet(c Cache, key, sql string, ok bool) {
	raw, err := msgpack.Marshal(cacheEntry{SQL: sql, OK: ok})
	if err != nil {
		slog.Warn("cannot encode compile cache entry", "key", key, "err", err)
		return
	}
	c.Set(key, raw)
}

// MemoryCache is an in-process Cache backed by a map. It is safe for
// concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores a value in the cache.
func (c *MemoryCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
