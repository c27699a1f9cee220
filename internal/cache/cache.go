// Package cache holds the read-through cache in front of the aggregate
// counters and the latest-coffee lookup. Values are JSON blobs; keys are
// built only by the constructors below so they cannot drift between the
// read and the invalidation paths.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when a key does not exist or has expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache abstracts the key-value store holding derived values. The database
// owns canonical state; everything in here is expendable.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes keys. Deleting an absent key is not an error.
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// TTL policy. Today's count expires fastest because its denominator moves
// as the day progresses.
const (
	LatestCoffeeTTL = 300 * time.Second
	TotalCountTTL   = 30 * time.Second
	TodayCountTTL   = 10 * time.Second
	UserCountTTL    = 30 * time.Second
)

func KeyLatestCoffee() string {
	return "coffee:latest"
}

func KeyCountTotal() string {
	return "cups:count:total"
}

func KeyCountTotalUser(username string) string {
	return "cups:count:total:" + username
}

func KeyCountToday() string {
	return "cups:count:today"
}

func KeyCountTodayUser(username string) string {
	return "cups:count:today:" + username
}
