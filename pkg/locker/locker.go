// Package locker coordinates background work across service instances
// through a shared lock store.
package locker

import (
	"context"
	"time"
)

// DistributedLocker serializes work across instances. Implementations
// must be safe for concurrent use.
//
// The TTL doubles as a cooldown: a holder that never releases keeps
// the key claimed until expiry, so periodic jobs can use the lock
// interval itself to space their runs.
type DistributedLocker interface {
	// Acquire claims key for ttl without blocking. False means
	// another instance holds the claim.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release drops the claim on key before it expires. Releasing a
	// key this instance never acquired is a no-op.
	Release(ctx context.Context, key string) error
}
