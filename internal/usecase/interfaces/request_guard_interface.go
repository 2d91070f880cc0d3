package interfaces

import (
	"context"
	"time"
)

// IRequestGuard marks a key as in flight so a duplicate administrative
// request for the same record can be refused.
type IRequestGuard interface {
	// Acquire returns false when the key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
