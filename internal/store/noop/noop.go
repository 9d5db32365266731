package noop

import (
	"time"

	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/models"
)

// Ensure NoOpStore implements interfaces.Store
var _ interfaces.Store = (*NoOpStore)(nil)

// NoOpStore stands in for a disabled store tier.
type NoOpStore struct{}

// New creates a new no-operation store instance
func New() *NoOpStore {
	return &NoOpStore{}
}

// Get always reports a miss
func (n *NoOpStore) Get(key string) (*models.CacheEntry, bool) {
	return nil, false
}

// Put does nothing
func (n *NoOpStore) Put(key string, val []byte, class models.TTLClass, negative bool, hard time.Duration) {
	// No-op
}

// Invalidate does nothing
func (n *NoOpStore) Invalidate(key string) {
	// No-op
}

// InvalidatePrefix does nothing
func (n *NoOpStore) InvalidatePrefix(prefix string) {
	// No-op
}

// Sweep removes nothing
func (n *NoOpStore) Sweep(now time.Time) int {
	return 0
}
