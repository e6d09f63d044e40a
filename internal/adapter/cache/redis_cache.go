package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkravchenko/dex-settlement/internal/domain"
	"github.com/mkravchenko/dex-settlement/internal/port"
)

var _ port.Cache = (*RedisCache)(nil)

const statsKey = "dex:stats"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, password string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{
		client: rdb,
		ttl:    ttl,
	}
}

func balanceKey(user, token string) string { return "bal:" + user + ":" + token }

func (c *RedisCache) SetStats(ctx context.Context, s domain.DexStats) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey, b, c.ttl).Err()
}

func (c *RedisCache) GetStats(ctx context.Context) (*domain.DexStats, error) {
	b, err := c.client.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s domain.DexStats
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *RedisCache) InvalidateStats(ctx context.Context) error {
	return c.client.Del(ctx, statsKey).Err()
}

func (c *RedisCache) SetBalance(ctx context.Context, user, token string, balance uint64) error {
	return c.client.Set(ctx, balanceKey(user, token), strconv.FormatUint(balance, 10), c.ttl).Err()
}

func (c *RedisCache) GetBalance(ctx context.Context, user, token string) (uint64, bool, error) {
	v, err := c.client.Get(ctx, balanceKey(user, token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	bal, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return bal, true, nil
}
