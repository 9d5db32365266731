package multi

import (
	"time"

	"go.uber.org/zap"

	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/metrics"
	"gh-repo-cache/internal/models"
)

// Ensure MultiStore implements interfaces.Store
var _ interfaces.Store = (*MultiStore)(nil)

// MultiStore is a composite store over ordered tiers, fastest first. Reads
// return the first hit; writes and invalidations go to every tier, so a tier
// being down degrades capacity but never correctness. Hits are not copied
// between tiers: a re-put would reset the stored-at timestamp and make a
// slower tier's entry look fresher than it is.
type MultiStore struct {
	tiers  []interfaces.Store
	levels []string
	logger *zap.Logger
}

// New creates a MultiStore. levels names each tier for metrics ("l1", "l2").
func New(tiers []interfaces.Store, levels []string, logger *zap.Logger) *MultiStore {
	return &MultiStore{
		tiers:  tiers,
		levels: levels,
		logger: logger,
	}
}

// Get returns the entry from the first tier that has it.
func (m *MultiStore) Get(key string) (*models.CacheEntry, bool) {
	entry, _, found := m.GetWithLevel(key)
	return entry, found
}

// GetWithLevel returns the entry plus the name of the tier that served it.
func (m *MultiStore) GetWithLevel(key string) (*models.CacheEntry, string, bool) {
	for i, tier := range m.tiers {
		level := m.level(i)
		stop := metrics.TimeCacheGetOperation(level)
		entry, found := tier.Get(key)
		stop()
		if found {
			return entry, level, true
		}
	}
	return nil, "", false
}

// Put stores the entry in every tier.
func (m *MultiStore) Put(key string, val []byte, class models.TTLClass, negative bool, hard time.Duration) {
	for _, tier := range m.tiers {
		tier.Put(key, val, class, negative, hard)
	}
}

// Invalidate removes the key from every tier.
func (m *MultiStore) Invalidate(key string) {
	for _, tier := range m.tiers {
		tier.Invalidate(key)
	}
}

// InvalidatePrefix removes matching keys from every tier.
func (m *MultiStore) InvalidatePrefix(prefix string) {
	for _, tier := range m.tiers {
		tier.InvalidatePrefix(prefix)
	}
}

// Sweep sweeps every tier and returns the total removed.
func (m *MultiStore) Sweep(now time.Time) int {
	removed := 0
	for i, tier := range m.tiers {
		n := tier.Sweep(now)
		if n > 0 {
			m.logger.Debug("Swept expired entries", zap.String("level", m.level(i)), zap.Int("removed", n))
		}
		removed += n
	}
	if removed > 0 {
		metrics.RecordSweepRemoved(removed)
	}
	return removed
}

func (m *MultiStore) level(i int) string {
	if i < len(m.levels) {
		return m.levels[i]
	}
	return "unknown"
}
