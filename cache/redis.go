package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis caches entries in a Redis server. A zero TTL never expires.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Cache = (*Redis)(nil)

// NewRedis creates a cache backed by the Redis server at addr.
// Entries expire after ttl; zero means no expiry.
func NewRedis(addr string, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{
		client: rdb,
		ttl:    ttl,
	}
}

// Get returns the cached value for key. Redis errors count as a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores value under key with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
