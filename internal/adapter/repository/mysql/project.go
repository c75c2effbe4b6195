package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	projectDomain "charity-fund-backend/internal/domain/project"
)

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func (r *ProjectRepository) Create(ctx context.Context, p *projectDomain.CharityProject) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) Save(ctx context.Context, p *projectDomain.CharityProject) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, p *projectDomain.CharityProject) error {
	return r.db.WithContext(ctx).Delete(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint64) (*projectDomain.CharityProject, error) {
	var out projectDomain.CharityProject
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

// sqlite drops the FOR UPDATE clause; its single writer already serializes.
func (r *ProjectRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*projectDomain.CharityProject, error) {
	var out projectDomain.CharityProject
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*projectDomain.CharityProject, error) {
	var out projectDomain.CharityProject
	res := r.db.WithContext(ctx).Where("name = ?", name).First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) List(ctx context.Context) ([]projectDomain.CharityProject, error) {
	var out []projectDomain.CharityProject
	res := r.db.WithContext(ctx).Order("create_date ASC, id ASC").Find(&out)
	return out, res.Error
}

func (r *ProjectRepository) ListOpenForUpdate(ctx context.Context) ([]*projectDomain.CharityProject, error) {
	var out []*projectDomain.CharityProject
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fully_invested = ?", false).
		Order("create_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}
