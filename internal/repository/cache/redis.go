package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

const keyPrefix = "storefront:catalog:"

// sharedLoadTimeout bounds an upstream load that no longer belongs to any single caller
const sharedLoadTimeout = 30 * time.Second

// RedisCache is a cache-aside decorator over a domain.CatalogRepository.
// Concurrent misses for the same key collapse into one upstream request.
type RedisCache struct {
	next          domain.CatalogRepository
	client        *redis.Client
	productsTTL   time.Duration
	categoriesTTL time.Duration
	group         singleflight.Group
	logger        *logger.Logger
}

// NewRedisCache wraps next with a Redis-backed response cache
func NewRedisCache(
	next domain.CatalogRepository,
	client *redis.Client,
	productsTTL, categoriesTTL time.Duration,
	log *logger.Logger,
) *RedisCache {
	return &RedisCache{
		next:          next,
		client:        client,
		productsTTL:   productsTTL,
		categoriesTTL: categoriesTTL,
		logger:        log,
	}
}

// Cache keys

func pageKey(kind, arg string, page domain.PageRequest) string {
	window := fmt.Sprintf("limit:%d:skip:%d", page.Limit, page.Skip)
	if page.Unpaged {
		window = "all"
	}
	sort := "default"
	if page.Sorted() {
		sort = page.SortBy + ":" + page.Order
	}
	return fmt.Sprintf("%s%s:%s:%s:sort:%s", keyPrefix, kind, url.QueryEscape(arg), window, sort)
}

func categoriesKey() string {
	return keyPrefix + "categories"
}

func productKey(id int) string {
	return fmt.Sprintf("%sproduct:%d", keyPrefix, id)
}

func trackingKey() string {
	return keyPrefix + "cache_keys"
}

// ListProducts retrieves a catalog page, cached
func (c *RedisCache) ListProducts(ctx context.Context, page domain.PageRequest) (*domain.ProductPage, error) {
	return cached(ctx, c, pageKey("list", "", page), c.productsTTL, func(ctx context.Context) (*domain.ProductPage, error) {
		return c.next.ListProducts(ctx, page)
	})
}

// SearchProducts retrieves a search page, cached
func (c *RedisCache) SearchProducts(ctx context.Context, term string, page domain.PageRequest) (*domain.ProductPage, error) {
	return cached(ctx, c, pageKey("search", term, page), c.productsTTL, func(ctx context.Context) (*domain.ProductPage, error) {
		return c.next.SearchProducts(ctx, term, page)
	})
}

// ProductsByCategory retrieves a category page, cached
func (c *RedisCache) ProductsByCategory(ctx context.Context, slug string, page domain.PageRequest) (*domain.ProductPage, error) {
	return cached(ctx, c, pageKey("category", slug, page), c.productsTTL, func(ctx context.Context) (*domain.ProductPage, error) {
		return c.next.ProductsByCategory(ctx, slug, page)
	})
}

// Categories retrieves the category list, cached
func (c *RedisCache) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := cached(ctx, c, categoriesKey(), c.categoriesTTL, func(ctx context.Context) (*[]domain.Category, error) {
		list, err := c.next.Categories(ctx)
		if err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil {
		return nil, err
	}
	return *categories, nil
}

// GetProduct retrieves a single product, cached
func (c *RedisCache) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return cached(ctx, c, productKey(id), c.productsTTL, func(ctx context.Context) (*domain.Product, error) {
		return c.next.GetProduct(ctx, id)
	})
}

// Invalidate removes every cached response using SET-based key tracking
func (c *RedisCache) Invalidate(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, trackingKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	if len(keys) > 0 {
		keys = append(keys, trackingKey())
		return c.client.Unlink(ctx, keys...).Err()
	}

	return nil
}

// cached serves key from Redis, or loads it upstream once and stores it with ttl.
// Redis failures degrade to upstream reads. The shared load runs detached from the
// caller that started it, so one cancelled caller does not fail the others waiting on key.
func cached[T any](ctx context.Context, c *RedisCache, key string, ttl time.Duration, load func(context.Context) (*T, error)) (*T, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var value T
		if err := json.Unmarshal(data, &value); err == nil {
			c.logger.Debugf("Cache hit for %s", key)
			return &value, nil
		}
		c.logger.Warnf("Dropping undecodable cache entry %s", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warnf("Cache read failed for %s: %v", key, err)
	}

	c.logger.Debugf("Cache miss for %s", key)
	flight := c.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()

		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if err := c.store(loadCtx, key, ttl, value); err != nil {
			c.logger.Warnf("Failed to cache %s: %v", key, err)
		}
		return value, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}

func (c *RedisCache) store(ctx context.Context, key string, ttl time.Duration, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.SAdd(ctx, trackingKey(), key)
	pipe.Expire(ctx, trackingKey(), max(c.productsTTL, c.categoriesTTL))
	_, err = pipe.Exec(ctx)
	return err
}
