package projectmock

import (
	"context"

	"gorm.io/gorm"

	domain "charity-fund-backend/internal/domain/project"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to no-op, lookups to gorm.ErrRecordNotFound, lists to empty.
type Repo struct {
	CreateFn            func(ctx context.Context, p *domain.CharityProject) error
	SaveFn              func(ctx context.Context, p *domain.CharityProject) error
	DeleteFn            func(ctx context.Context, p *domain.CharityProject) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.CharityProject, error)
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.CharityProject, error)
	GetByNameFn         func(ctx context.Context, name string) (*domain.CharityProject, error)
	ListFn              func(ctx context.Context) ([]domain.CharityProject, error)
	ListOpenForUpdateFn func(ctx context.Context) ([]*domain.CharityProject, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.CharityProject) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.CharityProject) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, p *domain.CharityProject) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.CharityProject, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.CharityProject, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByName(ctx context.Context, name string) (*domain.CharityProject, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.CharityProject, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListOpenForUpdate(ctx context.Context) ([]*domain.CharityProject, error) {
	if m.ListOpenForUpdateFn != nil {
		return m.ListOpenForUpdateFn(ctx)
	}
	return nil, nil
}
