package l2

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/metrics"
	"gh-repo-cache/internal/models"
)

// Ensure RedisStore implements interfaces.Store
var _ interfaces.Store = (*RedisStore)(nil)

// Config carries the durable tier settings.
type Config struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ScanCount    int64 // batch size for prefix scans
}

// RedisStore is the durable store tier. A broken or unreachable backend never
// fails the caller: operations log a warning, the tier reports misses, and the
// in-memory tier keeps serving (storage-unavailable degradation).
type RedisStore struct {
	client   interfaces.RedisClient
	cfg      Config
	logger   *zap.Logger
	degraded atomic.Bool
}

// New creates the durable tier around an established client.
func New(cfg Config, client interfaces.RedisClient, logger *zap.Logger) *RedisStore {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 500 * time.Millisecond
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = time.Second
	}
	if cfg.ScanCount <= 0 {
		cfg.ScanCount = 200
	}

	return &RedisStore{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Get retrieves the entry for key. Backend errors degrade to a miss.
func (s *RedisStore) Get(key string) (*models.CacheEntry, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ReadTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.reportDegraded("get", err)
		}
		return nil, false
	}
	s.reportHealthy()

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		s.logger.Warn("Failed to unmarshal L2 entry", zap.String("key", key), zap.Error(err))
		metrics.RecordStoreError("l2", "decode")
		s.client.Del(context.Background(), key)
		return nil, false
	}

	if entry.IsExpired(time.Now()) {
		s.client.Del(context.Background(), key)
		return nil, false
	}

	return &entry, true
}

// Put overwrites the entry for key. The hard TTL is also applied as the native
// redis expiration, so the backend reclaims expired entries on its own.
func (s *RedisStore) Put(key string, val []byte, class models.TTLClass, negative bool, hard time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()

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
		s.logger.Error("Failed to marshal L2 entry", zap.String("key", key), zap.Error(err))
		metrics.RecordStoreError("l2", "encode")
		return
	}

	if err := s.client.Set(ctx, key, data, hard).Err(); err != nil {
		s.reportDegraded("set", err)
		return
	}
	s.reportHealthy()
}

// Invalidate removes the entry for key.
func (s *RedisStore) Invalidate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.reportDegraded("del", err)
	}
}

// InvalidatePrefix removes every entry whose key starts with prefix, scanning
// in batches.
func (s *RedisStore) InvalidatePrefix(prefix string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*s.cfg.WriteTimeout)
	defer cancel()

	pattern := prefix + "*"
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, s.cfg.ScanCount).Result()
		if err != nil {
			s.reportDegraded("scan", err)
			return
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				s.reportDegraded("del", err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	s.reportHealthy()
}

// Sweep is a no-op for the durable tier: the native redis TTL set in Put
// already removes entries at hard expiry.
func (s *RedisStore) Sweep(time.Time) int {
	return 0
}

// Degraded reports whether the backend last responded with an error.
func (s *RedisStore) Degraded() bool {
	return s.degraded.Load()
}

// Close closes the backend connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// reportDegraded logs the first failure of a degradation episode; repeats stay
// at debug to keep the log readable while the backend is down.
func (s *RedisStore) reportDegraded(op string, err error) {
	metrics.RecordStoreError("l2", op)
	if s.degraded.Swap(true) {
		s.logger.Debug("L2 store still unavailable", zap.String("op", op), zap.Error(err))
		return
	}
	s.logger.Warn("L2 store unavailable, continuing memory-only", zap.String("op", op), zap.Error(err))
}

func (s *RedisStore) reportHealthy() {
	if s.degraded.Swap(false) {
		s.logger.Info("L2 store recovered")
	}
}
