package sync

import (
	"fmt"
	"sort"
	"strings"
	stdsync "sync"
)

// CacheKey identifies a query result: the entity name plus its parameters.
// Parameters are sorted so the key is stable regardless of call-site order.
func CacheKey(entity string, params map[string]interface{}) string {
	if len(params) == 0 {
		return entity
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(entity)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%v", k, params[k])
	}
	return b.String()
}

type cacheEntry struct {
	value   interface{}
	version uint64
}

// Cache is a process-shared query-result cache. Every write carries a
// logical version; a write with an older version than the stored entry is
// discarded, so the last logical writer wins even when physical writes
// arrive out of order.
type Cache struct {
	mu      stdsync.RWMutex
	entries map[string]cacheEntry
	clock   uint64
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// NextVersion hands out a logical timestamp. Callers take one before a
// fetch and pass it to PutIfNewer with the result.
func (c *Cache) NextVersion() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock++
	return c.clock
}

// Put stores a value at a fresh version.
func (c *Cache) Put(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock++
	c.entries[key] = cacheEntry{value: value, version: c.clock}
}

// PutIfNewer stores a value only if version is at least as new as the
// stored entry. Reports whether the write took.
func (c *Cache) PutIfNewer(key string, value interface{}, version uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok && existing.version > version {
		return false
	}
	c.entries[key] = cacheEntry{value: value, version: version}
	return true
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.value, true
}

// Invalidate drops the entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateEntity drops every entry whose key starts with the entity
// prefix, regardless of parameters.
func (c *Cache) InvalidateEntity(entity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key == entity || strings.HasPrefix(key, entity+"|") {
			delete(c.entries, key)
		}
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
