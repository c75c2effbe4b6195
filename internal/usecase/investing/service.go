package investing

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"charity-fund-backend/internal/domain/donation"
	"charity-fund-backend/internal/domain/fund"
	"charity-fund-backend/internal/domain/lock"
	"charity-fund-backend/internal/domain/project"
	"charity-fund-backend/internal/domain/uow"
)

var ErrUnknownKind = errors.New("unknown fundable kind")

type Kind string

// AllocationKeys are held by every allocation run.
var AllocationKeys = []string{lock.KeyProjects, lock.KeyDonations}

const (
	KindProject  Kind = "charity_project"
	KindDonation Kind = "donation"
)

// Result of one allocation run.
type Result struct {
	Source    fund.Fundable
	Targets   []fund.Fundable
	Transfers []fund.Transfer
}

func (r *Result) Total() int64 { return fund.Total(r.Transfers) }

type Service struct {
	uow    uow.UnitOfWork
	locker lock.Locker
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(tx uow.UnitOfWork, locker lock.Locker, log zerolog.Logger) *Service {
	return &Service{uow: tx, locker: locker, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the time source used for close dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now is the clock shared with the usecases so create and close dates agree.
func (s *Service) Now() time.Time { return s.now() }

// WithinLock holds the locks on keys for the duration of one transaction.
// Every write that can change what an allocation run reads goes through here.
// Keys are taken in sorted order so two callers never wait on each other.
func (s *Service) WithinLock(ctx context.Context, keys []string, fn func(r uow.Repos) error) error {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	for _, key := range slices.Compact(keys) {
		release, err := s.locker.Acquire(ctx, key)
		if err != nil {
			return fmt.Errorf("acquire %s: %w", key, err)
		}
		defer release()
	}
	return s.uow.WithinTx(ctx, fn)
}

// Run serializes with every other allocation run, then in one transaction
// calls prepare (guards + insert of src) and allocates src. Nothing is kept if
// either step fails.
//
// A run inserts into its own collection and row-locks the other one, so it
// holds both collection keys.
func (s *Service) Run(ctx context.Context, src fund.Fundable, prepare func(r uow.Repos) error) (*Result, error) {
	if _, err := kindOf(src); err != nil {
		return nil, err
	}
	var res *Result
	err := s.WithinLock(ctx, AllocationKeys, func(r uow.Repos) error {
		if err := prepare(r); err != nil {
			return err
		}
		var err error
		res, err = s.Invest(ctx, r, src)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logResult(res)
	return res, nil
}

// Reinvest allocates whatever is left on an existing record.
func (s *Service) Reinvest(ctx context.Context, kind Kind, id uint64) (*Result, error) {
	if kind != KindProject && kind != KindDonation {
		return nil, ErrUnknownKind
	}

	var res *Result
	err := s.WithinLock(ctx, AllocationKeys, func(r uow.Repos) error {
		src, err := load(ctx, r, kind, id)
		if err != nil {
			return err
		}
		res, err = s.Invest(ctx, r, src)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logResult(res)
	return res, nil
}

// Invest allocates src against the open records of the other kind using r's
// transaction and saves src plus every funded target.
func (s *Service) Invest(ctx context.Context, r uow.Repos, src fund.Fundable) (*Result, error) {
	now := s.now()
	switch v := src.(type) {
	case *project.CharityProject:
		return invest(ctx, v, r.Donations.ListOpenForUpdate, r.Projects.Save, r.Donations.Save, now)
	case *donation.Donation:
		return invest(ctx, v, r.Projects.ListOpenForUpdate, r.Donations.Save, r.Projects.Save, now)
	}
	return nil, ErrUnknownKind
}

func invest[S, T fund.Fundable](
	ctx context.Context,
	src S,
	listOpen func(context.Context) ([]T, error),
	saveSource func(context.Context, S) error,
	saveTarget func(context.Context, T) error,
	now time.Time,
) (*Result, error) {
	res := &Result{Source: src}
	if src.Funding().Remaining() <= 0 {
		return res, nil
	}

	open, err := listOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open: %w", err)
	}
	targets := make([]fund.Fundable, 0, len(open))
	for _, t := range open {
		targets = append(targets, t)
	}

	res.Targets, res.Transfers = fund.Allocate(src, targets, now)
	if len(res.Targets) == 0 {
		return res, nil
	}
	for _, t := range res.Targets {
		if err := saveTarget(ctx, t.(T)); err != nil {
			return nil, fmt.Errorf("save target %d: %w", t.Funding().ID, err)
		}
	}
	if err := saveSource(ctx, src); err != nil {
		return nil, fmt.Errorf("save source %d: %w", src.Funding().ID, err)
	}
	return res, nil
}

func load(ctx context.Context, r uow.Repos, kind Kind, id uint64) (fund.Fundable, error) {
	var (
		src fund.Fundable
		err error
	)
	switch kind {
	case KindProject:
		src, err = r.Projects.GetByIDForUpdate(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, project.ErrNotFound
		}
	case KindDonation:
		src, err = r.Donations.GetByIDForUpdate(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, donation.ErrNotFound
		}
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

func kindOf(src fund.Fundable) (Kind, error) {
	switch src.(type) {
	case *project.CharityProject:
		return KindProject, nil
	case *donation.Donation:
		return KindDonation, nil
	}
	return "", ErrUnknownKind
}

func (s *Service) logResult(res *Result) {
	l := res.Source.Funding()
	kind, _ := kindOf(res.Source)
	s.log.Info().
		Str("kind", string(kind)).
		Uint64("id", l.ID).
		Int("targets", len(res.Targets)).
		Int64("allocated", res.Total()).
		Int64("remaining", l.Remaining()).
		Bool("fully_invested", l.FullyInvested).
		Msg("allocation run")
}
