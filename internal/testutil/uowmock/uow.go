package uowmock

import (
	"context"
	"errors"

	"charity-fund-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
type UoW struct {
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
}

// Passthrough runs the body directly against repos, without a real transaction.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
		return fn(repos)
	}}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
