package ports

import (
	"context"
	"time"
)

// DefaultLockTTL bounds how long a crashed replica can hold a session.
// A single engine event completes in microseconds; the margin covers store I/O.
const DefaultLockTTL = 10 * time.Second

// UnlockFunc releases a lock obtained from a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes the events of one session across replicas,
// so they apply strictly one at a time in arrival order.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	// The lock expires after ttl even if the returned UnlockFunc is never called.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
