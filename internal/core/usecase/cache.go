package usecase

import (
	"sync"
	"time"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

const DefaultJudgmentTTL = 3600 * time.Second

type cacheEntry struct {
	judgment domain.Judgment
	storedAt time.Time
}

// JudgmentCache memoizes judge verdicts per exact (query, answer) pair.
// Entries older than the TTL are purged lazily on the next access; there is
// no background sweep and no persistence. The purge+insert sequence is
// serialized per cache instance; compute runs outside the lock so a slow
// model call does not block concurrent lookups.
type JudgmentCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func NewJudgmentCache(ttl time.Duration) *JudgmentCache {
	return newJudgmentCache(ttl, time.Now)
}

// newJudgmentCache lets tests inject a fake clock.
func newJudgmentCache(ttl time.Duration, now func() time.Time) *JudgmentCache {
	if ttl <= 0 {
		ttl = DefaultJudgmentTTL
	}
	return &JudgmentCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// GetOrCompute returns the cached judgment for the pair, or invokes compute,
// stores its result, and returns it. The second return value reports whether
// the judgment came from the cache.
func (c *JudgmentCache) GetOrCompute(query, answer string, compute func() domain.Judgment) (domain.Judgment, bool) {
	key := query + "|" + answer

	c.mu.Lock()
	c.purgeLocked()
	if entry, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return entry.judgment, true
	}
	c.mu.Unlock()

	judgment := compute()

	c.mu.Lock()
	c.entries[key] = cacheEntry{judgment: judgment, storedAt: c.now()}
	c.mu.Unlock()
	return judgment, false
}

// PurgeExpired drops every entry older than the TTL.
func (c *JudgmentCache) PurgeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked()
}

func (c *JudgmentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *JudgmentCache) purgeLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) > c.ttl {
			delete(c.entries, key)
		}
	}
}
