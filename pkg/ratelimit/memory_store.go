package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements an in-memory counter store for rate limiting.
// Suitable for single-instance deployments and as a fallback when no shared
// store is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	windows map[string]*window

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
}

type window struct {
	count     int64
	expiresAt time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets the cleanup interval for expired entries.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

// NewMemoryStore creates a new in-memory store with automatic cleanup of
// expired windows.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		windows:         make(map[string]*window),
		cleanupInterval: 1 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

// IncrementAndGet atomically increments the counter for the given key,
// starting a fresh window when none exists or the previous one expired.
func (s *MemoryStore) IncrementAndGet(ctx context.Context, key string, ttl time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, exists := s.windows[key]

	if !exists || now.After(w.expiresAt) {
		w = &window{
			count:     1,
			expiresAt: now.Add(ttl),
		}
		s.windows[key] = w
		return w.count, ttl, nil
	}

	w.count++
	return w.count, time.Until(w.expiresAt), nil
}

// Get returns the current counter value and TTL for the given key.
func (s *MemoryStore) Get(ctx context.Context, key string) (int64, time.Duration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, exists := s.windows[key]
	if !exists {
		return 0, 0, nil
	}

	now := time.Now()
	if now.After(w.expiresAt) {
		return 0, 0, nil
	}

	return w.count, time.Until(w.expiresAt), nil
}

// Delete removes the given key from the store.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}

// Close stops the background cleanup goroutine.
func (s *MemoryStore) Close() {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, w := range s.windows {
		if now.After(w.expiresAt) {
			delete(s.windows, key)
		}
	}
}
