package feedclient

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ResponseCache memoizes successful response bodies keyed by resource and
// request options. Entries never expire by time; the owning flow invalidates
// them explicitly. Size is bounded in practice by the number of distinct
// pages a session visits, so there is no eviction policy.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewResponseCache builds an empty cache.
func NewResponseCache() *ResponseCache {
	return &ResponseCache{entries: make(map[string][]byte)}
}

// CacheKey produces a stable serialization of (resource, options). Option
// pairs are sorted so map iteration order cannot split one logical key in two.
func CacheKey(resource string, options map[string]string) string {
	if len(options) == 0 {
		return resource
	}
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(resource)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%s", k, options[k])
	}
	return b.String()
}

// Get returns the cached body for key, if present.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body, ok := c.entries[key]
	return body, ok
}

// Set stores the body for key.
func (c *ResponseCache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = body
}

// Invalidate removes a single entry.
func (c *ResponseCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateResource removes every entry for the given resource regardless
// of options. Used after mutations that make all cached pages stale.
func (c *ResponseCache) InvalidateResource(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key == resource || strings.HasPrefix(key, resource+"|") {
			delete(c.entries, key)
		}
	}
}

// Len reports the number of cached entries.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
