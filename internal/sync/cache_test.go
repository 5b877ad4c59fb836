package sync

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheKeyStableOrder(t *testing.T) {
	a := CacheKey("feed", map[string]interface{}{"page": 1, "viewer": "u1"})
	b := CacheKey("feed", map[string]interface{}{"viewer": "u1", "page": 1})
	require.Equal(t, a, b)

	require.Equal(t, "feed", CacheKey("feed", nil))
}

func TestCacheLastLogicalWriterWins(t *testing.T) {
	c := NewCache()

	older := c.NextVersion()
	newer := c.NextVersion()

	// The newer write lands first; the older one must not clobber it.
	require.True(t, c.PutIfNewer("k", "new", newer))
	require.False(t, c.PutIfNewer("k", "old", older))

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "new", got)
}

func TestCacheInvalidateEntity(t *testing.T) {
	c := NewCache()
	c.Put(CacheKey("feed", map[string]interface{}{"page": 1}), "p1")
	c.Put(CacheKey("feed", map[string]interface{}{"page": 2}), "p2")
	c.Put(CacheKey("verses", map[string]interface{}{"page": 1}), "v1")

	c.InvalidateEntity("feed")

	require.Equal(t, 1, c.Len())
	_, ok := c.Get(CacheKey("verses", map[string]interface{}{"page": 1}))
	require.True(t, ok)
}
