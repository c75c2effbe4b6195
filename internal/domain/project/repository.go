package project

import "context"

type Repository interface {
	Create(ctx context.Context, p *CharityProject) error
	Save(ctx context.Context, p *CharityProject) error
	Delete(ctx context.Context, p *CharityProject) error

	GetByID(ctx context.Context, id uint64) (*CharityProject, error)
	// Same as GetByID but takes a row lock inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*CharityProject, error)
	// Exact, case-sensitive match.
	GetByName(ctx context.Context, name string) (*CharityProject, error)
	List(ctx context.Context) ([]CharityProject, error)
	// Projects still waiting for money, oldest first, row-locked.
	ListOpenForUpdate(ctx context.Context) ([]*CharityProject, error)
}
