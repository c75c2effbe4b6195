package donationmock

import (
	"context"

	"gorm.io/gorm"

	domain "charity-fund-backend/internal/domain/donation"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, d *domain.Donation) error
	SaveFn              func(ctx context.Context, d *domain.Donation) error
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.Donation, error)
	ListFn              func(ctx context.Context) ([]domain.Donation, error)
	ListByUserFn        func(ctx context.Context, userID string) ([]domain.Donation, error)
	ListOpenForUpdateFn func(ctx context.Context) ([]*domain.Donation, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Donation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Donation) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Donation, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Donation, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Donation, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) ListOpenForUpdate(ctx context.Context) ([]*domain.Donation, error) {
	if m.ListOpenForUpdateFn != nil {
		return m.ListOpenForUpdateFn(ctx)
	}
	return nil, nil
}
