package uow

import (
	"context"

	"charity-fund-backend/internal/domain/donation"
	"charity-fund-backend/internal/domain/project"
)

type Repos struct {
	Projects  project.Repository
	Donations donation.Repository
}

type UnitOfWork interface {
	// WithinTx commits once if fn returns nil and rolls everything back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
