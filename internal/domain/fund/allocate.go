package fund

import (
	"sort"
	"time"
)

// Transfer is one movement of money between the source and a target.
type Transfer struct {
	TargetID uint64 `json:"target_id"`
	Amount   int64  `json:"amount"`
}

// Allocate moves money between src and the open targets, oldest target first
// (create date, then id). It returns the targets that received money, in the
// order they were funded, together with the individual transfers.
//
// Closed targets are skipped. The source stops taking part once its own
// remaining capacity is zero. Allocate never fails and does not touch storage.
func Allocate(src Fundable, targets []Fundable, now time.Time) ([]Fundable, []Transfer) {
	s := src.Funding()
	remaining := s.Remaining()
	if remaining <= 0 {
		return nil, nil
	}

	open := make([]Fundable, 0, len(targets))
	for _, t := range targets {
		if t != nil && !t.Funding().Closed() {
			open = append(open, t)
		}
	}
	SortFIFO(open)

	var (
		funded    []Fundable
		transfers []Transfer
	)
	for _, t := range open {
		tl := t.Funding()
		amount := min(remaining, tl.Remaining())
		if amount <= 0 {
			break
		}
		tl.Invest(amount, now)
		s.Invest(amount, now)
		remaining -= amount

		funded = append(funded, t)
		transfers = append(transfers, Transfer{TargetID: tl.ID, Amount: amount})
		if remaining == 0 {
			break
		}
	}
	return funded, transfers
}

// SortFIFO orders records by create date ascending, ties broken by id.
func SortFIFO(items []Fundable) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Funding(), items[j].Funding()
		if !a.CreateDate.Equal(b.CreateDate) {
			return a.CreateDate.Before(b.CreateDate)
		}
		return a.ID < b.ID
	})
}

// Total sums the transferred amounts.
func Total(ts []Transfer) int64 {
	var n int64
	for _, t := range ts {
		n += t.Amount
	}
	return n
}
