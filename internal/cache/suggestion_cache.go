// Package cache holds the time-bounded suggestion cache used by the address pipeline.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"
)

// DefaultTTL is how long a suggestion list stays valid after it is written.
const DefaultTTL = 5 * time.Minute

type entry struct {
	suggestions []models.AddressSuggestion
	expiresAt   time.Time
	timer       *time.Timer
}

// SuggestionCache maps a normalized query plus options to a ranked suggestion list.
// Entries expire lazily on read and are deleted by a timer scheduled at write time.
type SuggestionCache struct {
	mu   sync.Mutex
	data map[string]*entry
	ttl  time.Duration
	now  func() time.Time
}

// NewSuggestionCache creates an empty cache. A non-positive ttl falls back to DefaultTTL.
func NewSuggestionCache(ttl time.Duration) *SuggestionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SuggestionCache{
		data: make(map[string]*entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Key derives the cache key from the folded query and the serialized options.
func Key(query string, opts models.SearchOptions) string {
	keyData := fmt.Sprintf("%s|%d|%s", models.Fold(query), opts.MaxResults, opts.Country)
	hash := sha256.Sum256([]byte(keyData))
	return hex.EncodeToString(hash[:16])
}

// Get returns a copy of the cached suggestions while the entry is still live.
func (c *SuggestionCache) Get(key string) ([]models.AddressSuggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return cloneSuggestions(e.suggestions), true
}

// Set stores suggestions under key and schedules their eviction one TTL from now.
func (c *SuggestionCache) Set(key string, suggestions []models.AddressSuggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.data[key]; ok && old.timer != nil {
		old.timer.Stop()
	}

	e := &entry{
		suggestions: cloneSuggestions(suggestions),
		expiresAt:   c.now().Add(c.ttl),
	}
	e.timer = time.AfterFunc(c.ttl, func() { c.evict(key, e) })
	c.data[key] = e
}

// evict removes key only if it still points at the entry the timer was scheduled for.
func (c *SuggestionCache) evict(key string, scheduled *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.data[key]; ok && current == scheduled {
		delete(c.data, key)
	}
}

// Len returns the number of stored entries, live or not yet evicted.
func (c *SuggestionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear drops every entry and cancels pending evictions.
func (c *SuggestionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.data {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	c.data = make(map[string]*entry)
}

func cloneSuggestions(in []models.AddressSuggestion) []models.AddressSuggestion {
	if in == nil {
		return []models.AddressSuggestion{}
	}
	out := make([]models.AddressSuggestion, len(in))
	copy(out, in)
	return out
}
