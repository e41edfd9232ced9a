// Package locker provides the per-key mutual exclusion used to serialize
// concurrent submissions for the same (user, repository) pair. Two
// implementations exist: a redis one for multi-instance deployments and an
// in-process one for single-instance runs and tests.
package locker

import "context"

// Locker acquires an exclusive lock for a key. The returned function
// releases the lock; callers must invoke it exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
