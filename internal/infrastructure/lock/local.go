package lock

import (
	"context"
	"sync"

	"charity-fund-backend/internal/domain/lock"
)

// LocalLocker serializes runs inside one process. Used when Redis is not configured.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

var _ lock.Locker = (*LocalLocker)(nil)

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{})}
}

func (l *LocalLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[key] = s
	}
	return s
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	s := l.slot(key)
	select {
	case s <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-s }) }, nil
	case <-ctx.Done():
		return nil, lock.ErrNotAcquired
	}
}
