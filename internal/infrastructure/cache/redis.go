package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flightmail-service/internal/domain/repository"
	"flightmail-service/pkg/flightparser"

	"github.com/redis/go-redis/v9"
)

// RedisResultCache memoizes parser results keyed by a content hash.
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResultCache(addr, password string, db int, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

var _ repository.ResultCache = (*RedisResultCache)(nil)

// Ping checks connectivity at startup
func (c *RedisResultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisResultCache) Get(ctx context.Context, key string) (*flightparser.ParserResult, error) {
	data, err := c.client.Get(ctx, resultKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var result flightparser.ParserResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return &result, nil
}

func (c *RedisResultCache) Set(ctx context.Context, key string, result flightparser.ParserResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resultKey(key), payload, c.ttl).Err()
}

func (c *RedisResultCache) Close() error {
	return c.client.Close()
}

func resultKey(key string) string {
	return "cache:parse:" + key
}
