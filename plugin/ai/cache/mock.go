package cache

import (
	"context"
	"sync"
	"time"
)

// MockCacheService is a mock implementation of CacheService for testing.
type MockCacheService struct {
	mu    sync.RWMutex
	store map[string]*mockEntry

	// SetCalls counts Set invocations (for asserting write-back behavior).
	SetCalls int
}

type mockEntry struct {
	value     string
	expiresAt time.Time
	ttl       time.Duration
}

// NewMockCacheService creates a new MockCacheService.
func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		store: make(map[string]*mockEntry),
	}
}

// Get retrieves a value from cache.
func (m *MockCacheService) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.store[key]
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

// Set stores a value in cache.
func (m *MockCacheService) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.store[key] = &mockEntry{value: value, expiresAt: expiresAt, ttl: ttl}
	m.SetCalls++
	return nil
}

// TTLOf reports the TTL the entry was stored with (for testing).
func (m *MockCacheService) TTLOf(key string) (time.Duration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.store[key]
	if !ok {
		return 0, false
	}
	return e.ttl, true
}

// Expire forces an entry past its TTL (for testing).
func (m *MockCacheService) Expire(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.store[key]; ok {
		e.expiresAt = time.Now().Add(-time.Second)
	}
}

// Keys returns all stored keys (for testing).
func (m *MockCacheService) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.store))
	for k := range m.store {
		keys = append(keys, k)
	}
	return keys
}

// Size returns the number of items in the cache (for testing).
func (m *MockCacheService) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// Clear removes all items from the cache (for testing).
func (m *MockCacheService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string]*mockEntry)
	m.SetCalls = 0
}

// Ensure MockCacheService implements CacheService
var _ CacheService = (*MockCacheService)(nil)
