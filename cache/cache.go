/*
Package cache stores rendered simulation responses.

PURPOSE:
  A simulation is a pure function of its units and configuration, so the
  API can serve repeated requests from a cache keyed on the normalized
  input. Values are opaque bytes (the JSON response body).

IMPLEMENTATIONS:
  Memory: process-local map, the default
  Redis:  shared across API replicas, entries expire after a TTL

KEYS:
  Key(v) hashes the JSON encoding of v with xxhash. Callers pass the
  parsed input (units + effective config), never the raw request body,
  so formatting differences and omitted defaults share one entry.

USAGE:
  c := cache.NewMemory()
  key, err := cache.Key(input)
  if body, ok := c.Get(ctx, key); ok {
      return body
  }
  ...
  _ = c.Set(ctx, key, body)
*/
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Cache is a byte-valued key/value cache. A Get on a failing backend is
// a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}

// KeyPrefix namespaces simulation entries in shared backends.
const KeyPrefix = "sim:"

// Key returns the cache key for the JSON encoding of v.
func Key(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	return fmt.Sprintf("%s%016x", KeyPrefix, xxhash.Sum64(data)), nil
}
