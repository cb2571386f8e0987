package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"marketplace/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// 商品1件のキャッシュ
type ProductCache interface {
	Get(ctx context.Context, id string) (model.Product, bool, error)
	Set(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, ids ...string) error
}

type RedisProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisProductCache(rdb *redis.Client, ttl time.Duration) *RedisProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisProductCache{rdb: rdb, ttl: ttl}
}

func productKey(id string) string {
	return "product:" + id
}

func (c *RedisProductCache) Get(ctx context.Context, id string) (model.Product, bool, error) {
	data, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Product{}, false, nil
	}
	if err != nil {
		return model.Product{}, false, err
	}

	var p model.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Product{}, false, err
	}
	return p, true, nil
}

func (c *RedisProductCache) Set(ctx context.Context, p model.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productKey(p.ID), data, c.ttl).Err()
}

func (c *RedisProductCache) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
