package interfaces

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

//go:generate mockgen -package=mock -source=redis_client.go -destination=mock/redis_client.go

// RedisClient defines the Redis operations the durable store tier needs.
type RedisClient interface {
	// Get retrieves a value by key
	Get(ctx context.Context, key string) *redis.StringCmd

	// Set stores a value with expiration
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd

	// Del deletes one or more keys
	Del(ctx context.Context, keys ...string) *redis.IntCmd

	// Scan iterates keys matching a pattern, for prefix invalidation
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd

	// Ping tests connectivity
	Ping(ctx context.Context) *redis.StatusCmd

	// Close closes the client connection
	Close() error
}
