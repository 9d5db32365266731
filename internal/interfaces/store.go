package interfaces

import (
	"time"

	"gh-repo-cache/internal/models"
)

//go:generate mockgen -package=mock -source=store.go -destination=mock/store.go

// Store is the durable mapping from cache key to entry. Implementations must
// be safe for concurrent use and must never block on network inside Get.
type Store interface {
	// Get returns the entry for key, or found=false when absent or past hard
	// expiry. Callers receive their own entry value, never an alias into the
	// store.
	Get(key string) (*models.CacheEntry, bool)

	// Put overwrites any existing entry for key with stored-at = now. The hard
	// TTL bounds how long the entry may survive before sweep removes it.
	Put(key string, val []byte, class models.TTLClass, negative bool, hard time.Duration)

	// Invalidate removes the entry for key, if any.
	Invalidate(key string)

	// InvalidatePrefix removes every entry whose key starts with prefix.
	InvalidatePrefix(prefix string)

	// Sweep removes entries past their hard expiry and returns how many were
	// removed. Tiers whose backend expires entries natively may return 0.
	Sweep(now time.Time) int
}
