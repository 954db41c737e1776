package kv

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores every key of one vault as a field of a single
// hash, so Clear is one DEL and Set is one HSET.
type RedisRepository struct {
	rdb  redis.UniversalClient
	hash string
}

func NewRedisRepository(rdb redis.UniversalClient, namespace string) *RedisRepository {
	if namespace == "" {
		namespace = "default"
	}
	return &RedisRepository{rdb: rdb, hash: "vault:" + namespace}
}

// OpenRedis connects using a redis:// URL, e.g. redis://localhost:6379/0.
func OpenRedis(ctx context.Context, dsn, namespace string) (*RedisRepository, error) {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("redis url error: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping error: %w", err)
	}
	return NewRedisRepository(rdb, namespace), nil
}

func (r *RedisRepository) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	if len(keys) == 0 {
		all, err := r.rdb.HGetAll(ctx, r.hash).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get kv[]: %w", err)
		}
		result := make(map[string][]byte, len(all))
		for k, v := range all {
			result[k] = []byte(v)
		}
		return result, nil
	}

	values, err := r.rdb.HMGet(ctx, r.hash, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", strings.Join(keys, ","), err)
	}

	result := make(map[string][]byte, len(keys))
	for i, v := range values {
		if s, ok := v.(string); ok {
			result[keys[i]] = []byte(s)
		}
	}
	return result, nil
}

func (r *RedisRepository) Set(ctx context.Context, items map[string][]byte) error {
	if len(items) == 0 {
		return nil
	}
	fields := make(map[string]any, len(items))
	for k, v := range items {
		fields[k] = v
	}
	if err := r.rdb.HSet(ctx, r.hash, fields).Err(); err != nil {
		return fmt.Errorf("failed to set kv: %w", err)
	}
	return nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.hash).Err(); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.rdb.Close()
}
