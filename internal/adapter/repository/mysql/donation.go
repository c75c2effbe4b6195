package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	donationDomain "charity-fund-backend/internal/domain/donation"
)

type DonationRepository struct{ db *gorm.DB }

func NewDonationRepository(db *gorm.DB) *DonationRepository { return &DonationRepository{db: db} }

func (r *DonationRepository) Create(ctx context.Context, d *donationDomain.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DonationRepository) Save(ctx context.Context, d *donationDomain.Donation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DonationRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*donationDomain.Donation, error) {
	var out donationDomain.Donation
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *DonationRepository) List(ctx context.Context) ([]donationDomain.Donation, error) {
	var out []donationDomain.Donation
	res := r.db.WithContext(ctx).Order("create_date ASC, id ASC").Find(&out)
	return out, res.Error
}

func (r *DonationRepository) ListByUser(ctx context.Context, userID string) ([]donationDomain.Donation, error) {
	var out []donationDomain.Donation
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("create_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DonationRepository) ListOpenForUpdate(ctx context.Context) ([]*donationDomain.Donation, error) {
	var out []*donationDomain.Donation
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fully_invested = ?", false).
		Order("create_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}
