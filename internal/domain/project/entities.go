package project

import (
	"errors"

	"charity-fund-backend/internal/domain/fund"
)

var (
	ErrNotFound            = errors.New("charity project not found")
	ErrDuplicateName       = errors.New("a project with this name already exists")
	ErrHasInvestments      = errors.New("funds were invested into the project, it cannot be deleted")
	ErrClosed              = errors.New("a closed project cannot be edited")
	ErrAmountBelowInvested = errors.New("full amount cannot be lower than the invested amount")
)

const MaxNameLen = 100

// Table: charity_projects
type CharityProject struct {
	fund.Ledger
	Name        string `gorm:"column:name;size:100;not null;uniqueIndex:ux_charity_projects_name" json:"name"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`
}

func (CharityProject) TableName() string { return "charity_projects" }

// CheckDeletable rejects projects that already received money.
func CheckDeletable(p *CharityProject) error {
	if p.InvestedAmount > 0 {
		return ErrHasInvestments
	}
	return nil
}

// CheckEditable rejects closed projects.
func CheckEditable(p *CharityProject) error {
	if p.FullyInvested {
		return ErrClosed
	}
	return nil
}

// CheckFullAmount rejects a target below what is already invested.
func CheckFullAmount(p *CharityProject, full int64) error {
	if full < p.InvestedAmount {
		return ErrAmountBelowInvested
	}
	return nil
}
