package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	referenceRateKey = "rates:reference"
	referenceRateTTL = time.Hour
)

// Cache fronts slow upstream lookups with Redis. It is optional: a nil
// *Cache is a valid no-op cache, so callers never branch on availability.
type Cache struct {
	client *redis.Client
}

// New connects to Redis at the given address or URL.
func New(redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", redisURL))
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// ReferenceRate returns the cached benchmark APR, if present.
func (c *Cache) ReferenceRate(ctx context.Context) (decimal.Decimal, bool) {
	if c == nil {
		return decimal.Zero, false
	}
	val, err := c.client.Get(ctx, referenceRateKey).Result()
	if err != nil {
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return rate, true
}

// SetReferenceRate caches the benchmark APR for an hour.
func (c *Cache) SetReferenceRate(ctx context.Context, rate decimal.Decimal) {
	if c == nil {
		return
	}
	c.client.Set(ctx, referenceRateKey, rate.String(), referenceRateTTL)
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
