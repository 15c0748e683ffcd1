package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// cacheEntry represents a cached classifier answer.
type cacheEntry struct {
	expiry   time.Time
	response TaskResponse
}

// responseCache provides thread-safe caching for classifier answers.
type responseCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
	once    sync.Once
}

// newResponseCache creates a new cache with the specified TTL.
func newResponseCache(ttl time.Duration) *responseCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup(cleanupInterval(ttl))

	return cache
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < 5*time.Minute {
		return ttl
	}
	return 5 * time.Minute
}

// cacheKey identifies a request by its task text and the folders offered,
// so editing a folder's context invalidates earlier answers.
func cacheKey(req TaskRequest) string {
	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(req.TaskText)))
	for _, c := range req.Categories {
		h.Write([]byte{0})
		h.Write([]byte(c.Name))
		h.Write([]byte{1})
		h.Write([]byte(c.ContextHint))
		h.Write([]byte{1})
		h.Write([]byte(strings.Join(c.Keywords, "\x1f")))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// get retrieves an answer if it exists and hasn't expired.
func (c *responseCache) get(key string) (TaskResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return TaskResponse{}, false
	}
	return entry.response, true
}

// set stores an answer.
func (c *responseCache) set(key string, response TaskResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		response: response,
		expiry:   time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *responseCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// size returns the number of entries in the cache.
func (c *responseCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *responseCache) Close() {
	c.once.Do(func() { close(c.stopCh) })
}
