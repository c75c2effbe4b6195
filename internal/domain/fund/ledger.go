package fund

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidAmount = errors.New("full amount must be positive")
	ErrOverInvested  = errors.New("invested amount exceeds full amount")
	ErrInconsistent  = errors.New("fully_invested and close_date disagree with invested amount")
)

// Ledger holds the columns shared by charity projects and donations.
// Embedded into both gorm models.
type Ledger struct {
	ID             uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullAmount     int64      `gorm:"column:full_amount;not null" json:"full_amount"`
	InvestedAmount int64      `gorm:"column:invested_amount;not null;default:0" json:"invested_amount"`
	FullyInvested  bool       `gorm:"column:fully_invested;not null;default:false;index" json:"fully_invested"`
	CreateDate     time.Time  `gorm:"column:create_date;not null;index" json:"create_date"`
	CloseDate      *time.Time `gorm:"column:close_date" json:"close_date,omitempty"`
}

// Fundable is anything the allocation engine can move money into or out of.
type Fundable interface {
	Funding() *Ledger
}

func (l *Ledger) Funding() *Ledger { return l }

// Remaining is the capacity still to be matched.
func (l *Ledger) Remaining() int64 { return l.FullAmount - l.InvestedAmount }

func (l *Ledger) Closed() bool { return l.FullyInvested }

// Invest adds amount to the invested total and closes the record once it is full.
// The close date is written once and never moved.
func (l *Ledger) Invest(amount int64, at time.Time) {
	l.InvestedAmount += amount
	l.closeIfFull(at)
}

// Resize changes the target amount and closes the record if the new target
// is already met. Callers guard against going below the invested amount.
func (l *Ledger) Resize(full int64, at time.Time) {
	l.FullAmount = full
	l.closeIfFull(at)
}

func (l *Ledger) closeIfFull(at time.Time) {
	if l.InvestedAmount != l.FullAmount || l.FullyInvested {
		return
	}
	l.FullyInvested = true
	if l.CloseDate == nil {
		t := at.UTC()
		l.CloseDate = &t
	}
}

// Validate reports whether the record satisfies the ledger invariants.
func (l *Ledger) Validate() error {
	if l.FullAmount <= 0 {
		return ErrInvalidAmount
	}
	if l.InvestedAmount < 0 || l.InvestedAmount > l.FullAmount {
		return fmt.Errorf("%w: %d/%d", ErrOverInvested, l.InvestedAmount, l.FullAmount)
	}
	full := l.InvestedAmount == l.FullAmount
	if l.FullyInvested != full || (l.CloseDate != nil) != full {
		return ErrInconsistent
	}
	return nil
}

// Open returns a fresh ledger: nothing invested, not closed.
func Open(full int64, created time.Time) Ledger {
	return Ledger{FullAmount: full, CreateDate: created.UTC()}
}
