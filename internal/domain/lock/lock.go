package lock

import (
	"context"
	"errors"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Keys of the collections an allocation run reads and mutates.
const (
	KeyProjects  = "alloc:lock:charity_projects"
	KeyDonations = "alloc:lock:donations"
)

// Locker serializes allocation runs that touch the same collection.
type Locker interface {
	// Acquire blocks until the lock is held or ctx is done.
	Acquire(ctx context.Context, key string) (release func(), err error)
}
