package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"charity-fund-backend/internal/domain/fund"
	"charity-fund-backend/internal/domain/lock"
	domain "charity-fund-backend/internal/domain/project"
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

// Create stores the project and immediately funds it from open donations.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ProjectDTO, error) {
	if err := validName(in.Name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Description) == "" || in.FullAmount <= 0 {
		return nil, ErrInvalidInput
	}

	p := &domain.CharityProject{
		Ledger:      fund.Open(in.FullAmount, u.inv.Now()),
		Name:        in.Name,
		Description: in.Description,
	}
	_, err := u.inv.Run(ctx, p, func(r uow.Repos) error {
		if err := nameFree(ctx, r.Projects, in.Name, 0); err != nil {
			return err
		}
		return r.Projects.Create(ctx, p)
	})
	if err != nil {
		return nil, translate(err)
	}
	return toDTO(p), nil
}

func (u *Usecase) List(ctx context.Context) ([]ProjectDTO, error) {
	ps, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectDTO, 0, len(ps))
	for i := range ps {
		out = append(out, *toDTO(&ps[i]))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*ProjectDTO, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return toDTO(p), nil
}

// Update edits an open project. Lowering the target to exactly the invested
// amount closes it.
func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateInput) (*ProjectDTO, error) {
	if in.Empty() {
		return nil, ErrInvalidInput
	}
	if in.Name != nil {
		if err := validName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		return nil, ErrInvalidInput
	}
	if in.FullAmount != nil && *in.FullAmount <= 0 {
		return nil, ErrInvalidInput
	}

	var out *domain.CharityProject
	err := u.inv.WithinLock(ctx, []string{lock.KeyProjects}, func(r uow.Repos) error {
		p, err := r.Projects.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.CheckEditable(p); err != nil {
			return err
		}
		if in.Name != nil {
			if err := nameFree(ctx, r.Projects, *in.Name, p.ID); err != nil {
				return err
			}
			p.Name = *in.Name
		}
		if in.FullAmount != nil {
			if err := domain.CheckFullAmount(p, *in.FullAmount); err != nil {
				return err
			}
			p.Resize(*in.FullAmount, u.inv.Now())
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		out = p
		return r.Projects.Save(ctx, p)
	})
	if err != nil {
		return nil, translate(err)
	}
	return toDTO(out), nil
}

// Delete removes a project that never received money and returns it.
func (u *Usecase) Delete(ctx context.Context, id uint64) (*ProjectDTO, error) {
	var out *domain.CharityProject
	err := u.inv.WithinLock(ctx, []string{lock.KeyProjects}, func(r uow.Repos) error {
		p, err := r.Projects.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.CheckDeletable(p); err != nil {
			return err
		}
		out = p
		return r.Projects.Delete(ctx, p)
	})
	if err != nil {
		return nil, translate(err)
	}
	return toDTO(out), nil
}

// Allocate funds an existing project from whatever donations are still open.
func (u *Usecase) Allocate(ctx context.Context, id uint64) (*ProjectDTO, error) {
	res, err := u.inv.Reinvest(ctx, investing.KindProject, id)
	if err != nil {
		return nil, translate(err)
	}
	return toDTO(res.Source.(*domain.CharityProject)), nil
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" || utf8.RuneCountInString(name) > domain.MaxNameLen {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLen)
	}
	return nil
}

// nameFree fails when another project (id != self) already uses name.
func nameFree(ctx context.Context, r domain.Repository, name string, self uint64) error {
	other, err := r.GetByName(ctx, name)
	switch {
	case err == nil:
		if other.ID != self {
			return domain.ErrDuplicateName
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateName
	}
	return err
}
