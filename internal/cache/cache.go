// Package cache stores parsed program requirements so repeated plans for the
// same program skip the page fetch and the parse call.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
)

var (
	ErrCacheMiss        = errors.New("cache miss")
	ErrCacheUnavailable = errors.New("cache unavailable")
)

// DefaultTTL bounds how long requirements are trusted before re-parsing.
const DefaultTTL = 24 * time.Hour

// RequirementsCache is keyed by domain.Program.Key.
type RequirementsCache interface {
	// Get returns ErrCacheMiss when nothing usable is stored.
	Get(ctx context.Context, key string) (domain.ProgramRequirements, error)
	Set(ctx context.Context, key string, req domain.ProgramRequirements) error
}

type memoryEntry struct {
	value   domain.ProgramRequirements
	expires time.Time
}

// MemoryCache is the in-process cache used when no Redis address is
// configured.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (domain.ProgramRequirements, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return domain.ProgramRequirements{}, ErrCacheMiss
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return domain.ProgramRequirements{}, ErrCacheMiss
	}
	return e.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, req domain.ProgramRequirements) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: req, expires: c.now().Add(c.ttl)}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (domain.ProgramRequirements, error) {
	return domain.ProgramRequirements{}, ErrCacheMiss
}

func (NopCache) Set(context.Context, string, domain.ProgramRequirements) error { return nil }
