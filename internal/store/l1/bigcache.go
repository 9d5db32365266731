package l1

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/metrics"
	"gh-repo-cache/internal/models"
)

// Ensure BigCacheStore implements interfaces.Store
var _ interfaces.Store = (*BigCacheStore)(nil)

// Config carries the in-memory tier settings.
type Config struct {
	SizeMB int // hard cap on memory, in MB

	// LifeWindow is bigcache's own eviction horizon. Entries our hard expiry
	// would keep longer may still be evicted here; the durable tier backs
	// them up.
	LifeWindow time.Duration
}

// BigCacheStore is the in-memory store tier backed by BigCache.
type BigCacheStore struct {
	cache  *bigcache.BigCache
	logger *zap.Logger
}

// New creates the in-memory tier.
func New(cfg Config, logger *zap.Logger) (*BigCacheStore, error) {
	lifeWindow := cfg.LifeWindow
	if lifeWindow <= 0 {
		lifeWindow = 24 * time.Hour
	}

	config := bigcache.DefaultConfig(lifeWindow)
	config.HardMaxCacheSize = cfg.SizeMB
	config.Verbose = false
	config.MaxEntrySize = 1024 * 1024 // 1MB max entry size

	cache, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, err
	}

	return &BigCacheStore{
		cache:  cache,
		logger: logger,
	}, nil
}

// Get retrieves the entry for key, dropping it lazily when past hard expiry.
func (s *BigCacheStore) Get(key string) (*models.CacheEntry, bool) {
	data, err := s.cache.Get(key)
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Warn("Failed to unmarshal L1 entry", zap.String("key", key), zap.Error(err))
		metrics.RecordStoreError("l1", "decode")
		_ = s.cache.Delete(key) // Remove corrupted entry
		return nil, false
	}

	if entry.IsExpired(time.Now()) {
		_ = s.cache.Delete(key)
		return nil, false
	}

	return &entry, true
}

// Put overwrites the entry for key with stored-at = now.
func (s *BigCacheStore) Put(key string, val []byte, class models.TTLClass, negative bool, hard time.Duration) {
	now := time.Now()

	entry := models.CacheEntry{
		Data:      val,
		Class:     class,
		Negative:  negative,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(hard).Unix(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error("Failed to marshal L1 entry", zap.String("key", key), zap.Error(err))
		metrics.RecordStoreError("l1", "encode")
		return
	}

	if err := s.cache.Set(key, data); err != nil {
		s.logger.Error("Failed to set L1 entry", zap.String("key", key), zap.Error(err))
		metrics.RecordStoreError("l1", "write")
	}
}

// Invalidate removes the entry for key.
func (s *BigCacheStore) Invalidate(key string) {
	_ = s.cache.Delete(key)
}

// InvalidatePrefix removes every entry whose key starts with prefix.
func (s *BigCacheStore) InvalidatePrefix(prefix string) {
	for _, key := range s.keysWithPrefix(prefix) {
		_ = s.cache.Delete(key)
	}
}

// Sweep removes entries past their hard expiry and returns the count.
func (s *BigCacheStore) Sweep(now time.Time) int {
	removed := 0
	it := s.cache.Iterator()
	var expired []string
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			continue
		}

		var entry models.CacheEntry
		if err := json.Unmarshal(info.Value(), &entry); err != nil {
			expired = append(expired, info.Key())
			continue
		}
		if entry.IsExpired(now) {
			expired = append(expired, info.Key())
		}
	}

	for _, key := range expired {
		if err := s.cache.Delete(key); err == nil {
			removed++
		}
	}
	return removed
}

// Close releases the underlying cache.
func (s *BigCacheStore) Close() error {
	return s.cache.Close()
}

// Len returns the number of live entries, for metrics.
func (s *BigCacheStore) Len() int {
	return s.cache.Len()
}

// Capacity returns the configured cache capacity in bytes, for metrics.
func (s *BigCacheStore) Capacity() int {
	return s.cache.Capacity()
}

func (s *BigCacheStore) keysWithPrefix(prefix string) []string {
	var keys []string
	it := s.cache.Iterator()
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			continue
		}
		if strings.HasPrefix(info.Key(), prefix) {
			keys = append(keys, info.Key())
		}
	}
	return keys
}
