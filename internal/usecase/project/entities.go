package project

import (
	"time"

	domain "charity-fund-backend/internal/domain/project"
)

type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	FullAmount  int64  `json:"full_amount"`
}

// UpdateInput carries only the fields to change; nil means untouched.
type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	FullAmount  *int64  `json:"full_amount"`
}

func (in UpdateInput) Empty() bool {
	return in.Name == nil && in.Description == nil && in.FullAmount == nil
}

type ProjectDTO struct {
	ID             uint64     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	FullAmount     int64      `json:"full_amount"`
	InvestedAmount int64      `json:"invested_amount"`
	FullyInvested  bool       `json:"fully_invested"`
	CreateDate     time.Time  `json:"create_date"`
	CloseDate      *time.Time `json:"close_date,omitempty"`
}

func toDTO(p *domain.CharityProject) *ProjectDTO {
	return &ProjectDTO{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		FullAmount:     p.FullAmount,
		InvestedAmount: p.InvestedAmount,
		FullyInvested:  p.FullyInvested,
		CreateDate:     p.CreateDate,
		CloseDate:      p.CloseDate,
	}
}
