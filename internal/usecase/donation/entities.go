package donation

import (
	"time"

	domain "charity-fund-backend/internal/domain/donation"
)

type CreateInput struct {
	FullAmount int64   `json:"full_amount"`
	Comment    string  `json:"comment"`
	UserID     *string `json:"-"`
}

// DonationDTO is the full view, including allocation state.
type DonationDTO struct {
	ID             uint64     `json:"id"`
	UserID         *string    `json:"user_id,omitempty"`
	Comment        string     `json:"comment,omitempty"`
	FullAmount     int64      `json:"full_amount"`
	InvestedAmount int64      `json:"invested_amount"`
	FullyInvested  bool       `json:"fully_invested"`
	CreateDate     time.Time  `json:"create_date"`
	CloseDate      *time.Time `json:"close_date,omitempty"`
}

// UserDonationDTO is what a donor sees about their own donations.
type UserDonationDTO struct {
	ID         uint64    `json:"id"`
	Comment    string    `json:"comment,omitempty"`
	FullAmount int64     `json:"full_amount"`
	CreateDate time.Time `json:"create_date"`
}

func toDTO(d *domain.Donation) *DonationDTO {
	return &DonationDTO{
		ID:             d.ID,
		UserID:         d.UserID,
		Comment:        d.Comment,
		FullAmount:     d.FullAmount,
		InvestedAmount: d.InvestedAmount,
		FullyInvested:  d.FullyInvested,
		CreateDate:     d.CreateDate,
		CloseDate:      d.CloseDate,
	}
}

func toUserDTO(d *domain.Donation) UserDonationDTO {
	return UserDonationDTO{ID: d.ID, Comment: d.Comment, FullAmount: d.FullAmount, CreateDate: d.CreateDate}
}
