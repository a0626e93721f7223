package sale

import (
	"context"
	"time"
)

// Locker serializes confirmation attempts for the same sale across
// processes. Satisfied by pkg/cache.RedisClient.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
