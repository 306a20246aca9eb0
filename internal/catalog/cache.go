package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "foodorder:catalog:"

// CachedProvider is a cache-aside Provider backed by Redis. Cache failures are
// logged and fall through to the wrapped provider.
type CachedProvider struct {
	next   Provider
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger

	// per-key load locks, dropped once nobody holds or waits on them
	loadMu  sync.Mutex
	loading map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewCachedProvider(next Provider, client *redis.Client, ttl time.Duration, logger *log.Logger) *CachedProvider {
	return &CachedProvider{next: next, client: client, ttl: ttl, logger: logger, loading: map[string]*keyLock{}}
}

func (c *CachedProvider) Categories(ctx context.Context) ([]Category, error) {
	return cached(ctx, c, "categories", func() ([]Category, error) { return c.next.Categories(ctx) })
}

func (c *CachedProvider) Restaurants(ctx context.Context) ([]Restaurant, error) {
	return cached(ctx, c, "restaurants", func() ([]Restaurant, error) { return c.next.Restaurants(ctx) })
}

func (c *CachedProvider) Foods(ctx context.Context) ([]Food, error) {
	return cached(ctx, c, "foods", func() ([]Food, error) { return c.next.Foods(ctx) })
}

func (c *CachedProvider) FoodsByRestaurant(ctx context.Context, restaurant string) ([]Food, error) {
	return cached(ctx, c, "restaurant:"+restaurant+":foods", func() ([]Food, error) {
		return c.next.FoodsByRestaurant(ctx, restaurant)
	})
}

// Food is cached per id. Misses (ErrNotFound) are not cached.
func (c *CachedProvider) Food(ctx context.Context, id string) (Food, error) {
	return cached(ctx, c, "food:"+id, func() (Food, error) { return c.next.Food(ctx, id) })
}

// Invalidate drops every cached catalog entry.
func (c *CachedProvider) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan catalog keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func cached[T any](ctx context.Context, c *CachedProvider, key string, load func() (T, error)) (T, error) {
	key = keyPrefix + key

	if v, ok := c.get(ctx, key, new(T)); ok {
		return *v.(*T), nil
	}

	unlock := c.lockKey(key)
	defer unlock()

	// another request may have filled it while we waited
	if v, ok := c.get(ctx, key, new(T)); ok {
		return *v.(*T), nil
	}

	val, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	data, err := json.Marshal(val)
	if err != nil {
		c.logger.Printf("catalog cache encode %s: %v", key, err)
		return val, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Printf("catalog cache set %s: %v", key, err)
	}
	return val, nil
}

func (c *CachedProvider) lockKey(key string) func() {
	c.loadMu.Lock()
	l, ok := c.loading[key]
	if !ok {
		l = &keyLock{}
		c.loading[key] = l
	}
	l.refs++
	c.loadMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		c.loadMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.loading, key)
		}
		c.loadMu.Unlock()
	}
}

func (c *CachedProvider) get(ctx context.Context, key string, dst any) (any, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Printf("catalog cache get %s: %v", key, err)
		}
		return nil, false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Printf("catalog cache decode %s: %v", key, err)
		return nil, false
	}
	return dst, true
}
