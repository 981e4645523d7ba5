package cache

import (
	"log/slog"
	"time"
)

// Cache is the read/write surface handlers depend on.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is implemented by caches that support expiry sweeps.
type Cleaner interface {
	CleanExpired() int
}

// Manager owns the periodic cleanup of registered caches.
type Manager struct {
	caches      []Cleaner
	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

// NewManager creates a new cache manager.
func NewManager() *Manager {
	return &Manager{
		caches:      make([]Cleaner, 0),
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Register adds a cache to the manager for cleanup.
func (m *Manager) Register(cache Cleaner) {
	m.caches = append(m.caches, cache)
}

// StartCleanup begins periodic cleanup of all registered caches.
func (m *Manager) StartCleanup(interval time.Duration) {
	go m.cleanup(interval)
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleaned := 0
			for _, cache := range m.caches {
				cleaned += cache.CleanExpired()
			}
			if cleaned > 0 {
				slog.Debug("cleaned expired cache entries", "count", cleaned)
			}
		case <-m.stopCleanup:
			return
		}
	}
}

// Stop gracefully stops the cleanup routine.
func (m *Manager) Stop() {
	if m.stopCleanup != nil {
		close(m.stopCleanup)
		<-m.cleanupDone
	}
}
