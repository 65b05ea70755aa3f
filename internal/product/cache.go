package product

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	cacheListKey    = "catalog:granos"
	cacheItemPrefix = "catalog:grano:"
)

// CachedRepo is a read-through Redis cache in front of another Repository.
// Redis errors never fail a read; the call falls through to the wrapped repo.
type CachedRepo struct {
	next Repository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCachedRepo(next Repository, rdb *redis.Client, ttl time.Duration) *CachedRepo {
	return &CachedRepo{next: next, rdb: rdb, ttl: ttl}
}

func (c *CachedRepo) List(ctx context.Context) ([]Product, error) {
	var out []Product
	if c.get(ctx, cacheListKey, &out) {
		return out, nil
	}
	out, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, cacheListKey, out)
	return out, nil
}

func (c *CachedRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	if c.get(ctx, cacheItemPrefix+id, &p) {
		return &p, nil
	}
	got, err := c.next.GetByID(ctx, id)
	if err != nil {
		// misses are not cached, the seeder may add the id later
		return nil, err
	}
	c.set(ctx, cacheItemPrefix+id, got)
	return got, nil
}

func (c *CachedRepo) ReplaceAll(ctx context.Context, ps []Product) error {
	if err := c.next.ReplaceAll(ctx, ps); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedRepo) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[catalog-cache] get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("[catalog-cache] decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *CachedRepo) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("[catalog-cache] set %s: %v", key, err)
	}
}

func (c *CachedRepo) invalidate(ctx context.Context) {
	keys := []string{cacheListKey}
	iter := c.rdb.Scan(ctx, 0, cacheItemPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[catalog-cache] scan: %v", err)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[catalog-cache] invalidate: %v", err)
	}
}
