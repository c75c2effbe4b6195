package donation

import (
	"errors"

	"charity-fund-backend/internal/domain/fund"
)

var (
	ErrNotFound = errors.New("donation not found")
)

// Table: donations
type Donation struct {
	fund.Ledger
	// Nil for anonymous donations.
	UserID  *string `gorm:"column:user_id;size:64;index:idx_donations_user" json:"user_id,omitempty"`
	Comment string  `gorm:"column:comment;type:text" json:"comment,omitempty"`
}

func (Donation) TableName() string { return "donations" }
