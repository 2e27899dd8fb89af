package openai

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// responseCache stores sanitized response payloads keyed by a hash of
// model+prompt. Entries expire after the TTL; beyond capacity the oldest
// insertion is evicted first.
type responseCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	now      func() time.Time
	entries  map[string]cacheEntry
	order    []string
}

type cacheEntry struct {
	payload  string
	storedAt time.Time
}

func newResponseCache(ttl time.Duration, capacity int, now func() time.Time) *responseCache {
	return &responseCache{
		ttl:      ttl,
		capacity: capacity,
		now:      now,
		entries:  make(map[string]cacheEntry),
	}
}

func responseCacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\n" + prompt))
	return hex.EncodeToString(sum[:])
}

func (cache *responseCache) get(key string) (string, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	entry, ok := cache.entries[key]
	if !ok {
		return "", false
	}
	if cache.now().Sub(entry.storedAt) >= cache.ttl {
		cache.removeLocked(key)
		return "", false
	}
	return entry.payload, true
}

func (cache *responseCache) set(key, payload string) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if _, ok := cache.entries[key]; !ok {
		cache.order = append(cache.order, key)
	}
	cache.entries[key] = cacheEntry{payload: payload, storedAt: cache.now()}

	for len(cache.entries) > cache.capacity && len(cache.order) > 0 {
		cache.removeLocked(cache.order[0])
	}
}

func (cache *responseCache) removeLocked(key string) {
	delete(cache.entries, key)
	for i, k := range cache.order {
		if k == key {
			cache.order = append(cache.order[:i], cache.order[i+1:]...)
			break
		}
	}
}
