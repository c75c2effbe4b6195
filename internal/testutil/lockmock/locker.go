package lockmock

import (
	"context"

	"charity-fund-backend/internal/domain/lock"
)

var _ lock.Locker = (*Locker)(nil)

// Locker records acquired keys. AcquireFn overrides the default grant-always behavior.
type Locker struct {
	AcquireFn func(ctx context.Context, key string) (func(), error)

	Acquired []string
	Released int
}

func (m *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	if m.AcquireFn != nil {
		return m.AcquireFn(ctx, key)
	}
	m.Acquired = append(m.Acquired, key)
	return func() { m.Released++ }, nil
}
