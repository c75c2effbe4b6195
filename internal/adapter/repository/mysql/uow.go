package mysql

import (
	"context"

	"gorm.io/gorm"

	"charity-fund-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

var _ uow.UnitOfWork = (*GormUoW)(nil)

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Projects:  &ProjectRepository{db: tx},
		Donations: &DonationRepository{db: tx},
	}
}
