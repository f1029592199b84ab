package cache

import (
	"context"
	"time"
)

// Cache is the key/value store the repositories read through.
// Values are JSON encoded, so any implementation (Redis, in-memory) is interchangeable.
type Cache interface {
	// Get unmarshals the value at key into dest.
	// found=false on a miss, and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key for ttl. A zero ttl keeps it until deleted.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
