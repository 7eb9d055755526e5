package cache

import (
	"context"
	"time"
)

// Cache is the contract for the Redis-backed cache layer.
// Implementations must treat a miss as (false, nil), not an error.
type Cache interface {
	// Get reads the value at key and unmarshals it into dest.
	// Returns found=false on a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value at key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// SetNX stores value only if key does not exist yet.
	// Returns true when the key was set. Used as an idempotency guard
	// for webhook deliveries.
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	// Increment atomically increments the counter at key.
	// Used for login-attempt throttling.
	Increment(ctx context.Context, key string) (int64, error)

	// Expire sets a TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
