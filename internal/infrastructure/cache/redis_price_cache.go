package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/tshirtshop/backend/internal/infrastructure/config"
)

const defaultPriceKeyPrefix = "catalog:price:"

// RedisPriceCache implements PriceCache using Redis, so every instance
// sees the same prices
type RedisPriceCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisPriceCache connects to Redis and verifies the connection
func NewRedisPriceCache(cfg config.RedisConfig) (*RedisPriceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisPriceCacheWithClient(client, ""), nil
}

// NewRedisPriceCacheWithClient creates a cache over an existing client
func NewRedisPriceCacheWithClient(client *redis.Client, keyPrefix string) *RedisPriceCache {
	if keyPrefix == "" {
		keyPrefix = defaultPriceKeyPrefix
	}
	return &RedisPriceCache{client: client, keyPrefix: keyPrefix}
}

func (c *RedisPriceCache) key(productID int64) string {
	return c.keyPrefix + strconv.FormatInt(productID, 10)
}

// Get returns the cached price
func (c *RedisPriceCache) Get(ctx context.Context, productID int64) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, c.key(productID)).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to read cached price: %w", err)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("malformed cached price %q: %w", raw, err)
	}
	return price, true, nil
}

// Set stores a price with a TTL
func (c *RedisPriceCache) Set(ctx context.Context, productID int64, price decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(productID), price.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache price: %w", err)
	}
	return nil
}

// Delete evicts a price
func (c *RedisPriceCache) Delete(ctx context.Context, productID int64) error {
	if err := c.client.Del(ctx, c.key(productID)).Err(); err != nil {
		return fmt.Errorf("failed to evict price: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (c *RedisPriceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *RedisPriceCache) Close() error {
	return c.client.Close()
}

// Ensure RedisPriceCache implements PriceCache
var _ PriceCache = (*RedisPriceCache)(nil)
