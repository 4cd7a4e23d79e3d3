package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stocksvc/internal/logger"
)

// Per-operation ceiling so a slow Redis never stalls a read path.
const redisOpTimeout = 500 * time.Millisecond

const defaultNamespace = "stocks"

// RedisCache is the networked backend. All keys live under a namespace
// prefix that stays invisible to callers.
type RedisCache struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisCache connects and pings Redis so a bad address fails at startup
// rather than on the first request.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{
		rdb:       rdb,
		namespace: defaultNamespace,
	}, nil
}

func (r *RedisCache) Close() error {
	return r.rdb.Close()
}

func (r *RedisCache) key(logical string) string {
	return r.namespace + ":" + logical
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	raw, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("redis get %s failed, treating as miss: %v", key, err)
		return nil, false
	}
	return raw, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := r.rdb.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		logger.Warn("redis set %s failed: %v", key, err)
	}
}

// DeleteByPrefix scans the namespaced pattern and deletes every match.
func (r *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	deleted := 0
	iter := r.rdb.Scan(ctx, 0, r.key(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("redis del %s failed: %v", iter.Val(), err)
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("redis scan %s: %w", prefix, err)
	}
	return deleted, nil
}

// Health reports whether Redis is reachable, for readiness probes.
func (r *RedisCache) Health(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
