package donation

import (
	"context"
	"errors"
	"strings"

	domain "charity-fund-backend/internal/domain/donation"
	"charity-fund-backend/internal/domain/fund"
	"charity-fund-backend/internal/domain/uow"
	"charity-fund-backend/internal/usecase/investing"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct {
	repo domain.Repository
	inv  *investing.Service
}

func NewUsecase(r domain.Repository, inv *investing.Service) *Usecase {
	return &Usecase{repo: r, inv: inv}
}

// Create stores the donation and spends it on open projects, oldest first.
// Whatever is left stays on the donation for future projects.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*DonationDTO, error) {
	if in.FullAmount <= 0 {
		return nil, ErrInvalidInput
	}
	if in.UserID != nil && strings.TrimSpace(*in.UserID) == "" {
		in.UserID = nil
	}

	d := &domain.Donation{
		Ledger:  fund.Open(in.FullAmount, u.inv.Now()),
		UserID:  in.UserID,
		Comment: in.Comment,
	}
	_, err := u.inv.Run(ctx, d, func(r uow.Repos) error {
		return r.Donations.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(d), nil
}

func (u *Usecase) List(ctx context.Context) ([]DonationDTO, error) {
	ds, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DonationDTO, 0, len(ds))
	for i := range ds {
		out = append(out, *toDTO(&ds[i]))
	}
	return out, nil
}

func (u *Usecase) ListMine(ctx context.Context, userID string) ([]UserDonationDTO, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	ds, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]UserDonationDTO, 0, len(ds))
	for i := range ds {
		out = append(out, toUserDTO(&ds[i]))
	}
	return out, nil
}

// Allocate spends what is left of an existing donation on open projects.
func (u *Usecase) Allocate(ctx context.Context, id uint64) (*DonationDTO, error) {
	res, err := u.inv.Reinvest(ctx, investing.KindDonation, id)
	if err != nil {
		return nil, err
	}
	return toDTO(res.Source.(*domain.Donation)), nil
}
