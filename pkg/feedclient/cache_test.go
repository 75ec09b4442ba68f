package feedclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey_Stable(t *testing.T) {
	a := CacheKey("/feed", map[string]string{"skip": "0", "limit": "10"})
	b := CacheKey("/feed", map[string]string{"limit": "10", "skip": "0"})
	assert.Equal(t, a, b, "option order must not change the key")

	c := CacheKey("/feed", map[string]string{"skip": "10", "limit": "10"})
	assert.NotEqual(t, a, c)

	assert.Equal(t, "/feed", CacheKey("/feed", nil))
}

func TestCache_GetSetInvalidate(t *testing.T) {
	cache := NewResponseCache()
	key := CacheKey("/feed", map[string]string{"skip": "0"})

	_, ok := cache.Get(key)
	assert.False(t, ok)

	cache.Set(key, []byte(`[]`))
	body, ok := cache.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), body)

	cache.Invalidate(key)
	_, ok = cache.Get(key)
	assert.False(t, ok)
}

func TestCache_InvalidateResource(t *testing.T) {
	cache := NewResponseCache()
	cache.Set(CacheKey("/feed", map[string]string{"skip": "0"}), []byte(`a`))
	cache.Set(CacheKey("/feed", map[string]string{"skip": "10"}), []byte(`b`))
	cache.Set(CacheKey("/other", nil), []byte(`c`))
	assert.Equal(t, 3, cache.Len())

	cache.InvalidateResource("/feed")
	assert.Equal(t, 1, cache.Len())

	_, ok := cache.Get(CacheKey("/other", nil))
	assert.True(t, ok)
}
