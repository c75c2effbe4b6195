package donation

import "context"

type Repository interface {
	Create(ctx context.Context, d *Donation) error
	Save(ctx context.Context, d *Donation) error

	GetByIDForUpdate(ctx context.Context, id uint64) (*Donation, error)
	List(ctx context.Context) ([]Donation, error)
	ListByUser(ctx context.Context, userID string) ([]Donation, error)
	// Donations with money left to hand out, oldest first, row-locked.
	ListOpenForUpdate(ctx context.Context) ([]*Donation, error)
}
