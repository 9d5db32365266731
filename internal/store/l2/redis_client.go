package l2

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"gh-repo-cache/internal/interfaces"
)

// Ensure redisClient implements interfaces.RedisClient
var _ interfaces.RedisClient = (*redisClient)(nil)

// redisClient wraps redis.Client to implement the RedisClient interface
type redisClient struct {
	client *redis.Client
}

// NewRedisClient connects to the redis backend described by rawURL
// (redis://[:password@]host[:port][/db]) and verifies connectivity.
func NewRedisClient(rawURL string, connectTimeout time.Duration, logger *zap.Logger) (interfaces.RedisClient, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()
	if port == "" {
		port = "6379"
	}

	opts := &redis.Options{
		Addr:        fmt.Sprintf("%s:%s", host, port),
		DialTimeout: connectTimeout,
	}

	if parsedURL.User != nil {
		if password, ok := parsedURL.User.Password(); ok {
			opts.Password = password
		}
	}

	if len(parsedURL.Path) > 1 {
		if db, err := strconv.Atoi(parsedURL.Path[1:]); err == nil {
			opts.DB = db
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	logger.Info("Connected to redis", zap.String("address", opts.Addr))

	return &redisClient{client: client}, nil
}

// Get retrieves a value by key
func (r *redisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.client.Get(ctx, key)
}

// Set stores a value with expiration
func (r *redisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return r.client.Set(ctx, key, value, expiration)
}

// Del deletes one or more keys
func (r *redisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.client.Del(ctx, keys...)
}

// Scan iterates keys matching a pattern
func (r *redisClient) Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd {
	return r.client.Scan(ctx, cursor, match, count)
}

// Ping tests connectivity
func (r *redisClient) Ping(ctx context.Context) *redis.StatusCmd {
	return r.client.Ping(ctx)
}

// Close closes the client connection
func (r *redisClient) Close() error {
	return r.client.Close()
}
