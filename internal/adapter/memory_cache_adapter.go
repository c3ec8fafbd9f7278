package adapter

import (
	"context"
	"sync"
	"time"

	"quiz-forge/internal/domain"
)

type memoryCacheEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryCacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCacheAdapter implements domain.Cache in process memory.
// It is used when no Redis address is configured. Expired keys are dropped lazily on access.
type MemoryCacheAdapter struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	now     func() time.Time
}

// NewMemoryCacheAdapter creates an empty in-process cache.
func NewMemoryCacheAdapter() *MemoryCacheAdapter {
	return &MemoryCacheAdapter{
		entries: make(map[string]memoryCacheEntry),
		now:     time.Now,
	}
}

func (m *MemoryCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		recordLookup("memory", lookupMiss)
		return "", domain.ErrCacheMiss
	}
	now := m.now()
	if entry.expired(now) {
		// Re-read under the write lock; a concurrent Set may have replaced the entry.
		m.mu.Lock()
		current, ok := m.entries[key]
		if ok && !current.expired(now) {
			m.mu.Unlock()
			recordLookup("memory", lookupHit)
			return current.value, nil
		}
		if ok {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		recordLookup("memory", lookupMiss)
		return "", domain.ErrCacheMiss
	}
	recordLookup("memory", lookupHit)
	return entry.value, nil
}

func (m *MemoryCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	entry := memoryCacheEntry{value: value}
	if expiration > 0 {
		entry.expiresAt = m.now().Add(expiration)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheAdapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if err == domain.ErrCacheMiss {
		return false, nil
	}
	return err == nil, err
}

func (m *MemoryCacheAdapter) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheAdapter) Ping(ctx context.Context) error {
	return nil
}

var _ domain.Cache = (*MemoryCacheAdapter)(nil)
