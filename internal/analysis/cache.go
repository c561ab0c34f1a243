package analysis

import (
	"fmt"
	"sync"

	"cleancut/internal/lexicon"
	"cleancut/internal/timeline"
)

// Key identifies one memoized analysis. Custom words and whitelists are not
// part of the key; callers invalidate when they change.
type Key struct {
	ContentID string
	Tier      lexicon.Tier
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.ContentID, k.Tier)
}

// Cache stores finished results. Implementations must be safe for concurrent
// use and must treat inserted results as immutable.
type Cache interface {
	Get(key Key) (*timeline.Result, bool)
	Put(key Key, result *timeline.Result)
	Delete(key Key)
	Len() int
}

// MemoryCache is an in-process Cache guarded by a read/write mutex.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[Key]*timeline.Result
}

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[Key]*timeline.Result)}
}

// Get returns the cached result for key.
func (c *MemoryCache) Get(key Key) (*timeline.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.entries[key]
	return result, ok
}

// Put stores result unless key is already present; the first result wins.
func (c *MemoryCache) Put(key Key, result *timeline.Result) {
	if result == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; exists {
		return
	}
	c.entries[key] = result
}

// Delete removes key.
func (c *MemoryCache) Delete(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of cached results.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
