// Package locker provides short lived mutual exclusion keyed by string,
// used to serialize read-modify-write cycles on a single record.
package locker

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when the lock could not be taken before the
// context ended.
var ErrNotAcquired = errors.New("locker: lock not acquired")

// Unlock releases a held lock. Releasing an expired lock is not an error.
type Unlock func(ctx context.Context) error

type Locker interface {
	// Lock blocks until key is held or ctx ends. ttl bounds how long the
	// lock survives a crashed holder.
	Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}
