package application

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "loanlink-backend/internal/domain/application"
	domainLoan "loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/domain/policy"
	"loanlink-backend/internal/domain/uow"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/logger"
)

var ErrInvalidStatus = errors.New("invalid application status")

type Usecase struct {
	loans domainLoan.Repository
	apps  domain.Repository
	uow   uow.UnitOfWork
	now   func() time.Time
}

// NewUsecase: the UoW serializes decisions on one application.
func NewUsecase(loans domainLoan.Repository, apps domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, apps: apps, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) ListMine(ctx context.Context, actor policy.Identity) ([]ApplicationDTO, error) {
	as, err := u.apps.List(ctx, domain.Filter{UserID: actor.UserID})
	if err != nil {
		return nil, err
	}
	return toDTOs(as), nil
}

// ListPending: admins see every pending application, managers only those
// on loans they own.
func (u *Usecase) ListPending(ctx context.Context, actor policy.Identity) ([]ApplicationDTO, error) {
	return u.listForReview(ctx, actor, domain.Filter{Status: domain.StatusPending})
}

// ListApproved is scoped like ListPending, most recently approved first.
func (u *Usecase) ListApproved(ctx context.Context, actor policy.Identity) ([]ApplicationDTO, error) {
	return u.listForReview(ctx, actor, domain.Filter{
		Status: domain.StatusApproved,
		Order:  domain.OrderRecentlyApproved,
	})
}

func (u *Usecase) listForReview(ctx context.Context, actor policy.Identity, f domain.Filter) ([]ApplicationDTO, error) {
	if err := policy.RequireRole(actor, user.RoleManager); err != nil {
		return nil, err
	}
	if actor.Role != user.RoleAdmin {
		ids, err := u.loans.IDsByOwner(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		f.ScopeToLoans = true
		f.LoanIDs = ids
	}
	as, err := u.apps.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toDTOs(as), nil
}

func (u *Usecase) ListAll(ctx context.Context, actor policy.Identity, status string) ([]ApplicationDTO, error) {
	if err := policy.RequireRole(actor, user.RoleAdmin); err != nil {
		return nil, err
	}
	f := domain.Filter{}
	if s := strings.ToLower(strings.TrimSpace(status)); s != "" && s != "all" {
		f.Status = domain.Status(s)
		if !f.Status.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	as, err := u.apps.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toDTOs(as), nil
}

// Get is visible to the applicant, the manager owning the loan, and admins.
func (u *Usecase) Get(ctx context.Context, actor policy.Identity, applicationID string) (*ApplicationDTO, error) {
	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a.UserID != actor.UserID {
		if err := requireLoanOwner(ctx, u.loans, actor, a.LoanID); err != nil {
			return nil, err
		}
	}
	dto := ToDTO(a)
	return &dto, nil
}

func (u *Usecase) Approve(ctx context.Context, actor policy.Identity, applicationID string) (*ApplicationDTO, error) {
	return u.decide(ctx, actor, applicationID, func(a *domain.Application, now time.Time) error {
		return a.Approve(actor.UserID, now)
	})
}

func (u *Usecase) Reject(ctx context.Context, actor policy.Identity, applicationID, reason string) (*ApplicationDTO, error) {
	return u.decide(ctx, actor, applicationID, func(a *domain.Application, now time.Time) error {
		return a.Reject(actor.UserID, strings.TrimSpace(reason), now)
	})
}

func (u *Usecase) decide(ctx context.Context, actor policy.Identity, applicationID string, apply func(*domain.Application, time.Time) error) (*ApplicationDTO, error) {
	if err := policy.RequireRole(actor, user.RoleManager); err != nil {
		return nil, err
	}
	if err := policy.RequireActive(actor); err != nil {
		return nil, err
	}

	var dto *ApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domain.Application) error {
		if err := requireLoanOwner(ctx, r.Loans, actor, a.LoanID); err != nil {
			return err
		}
		if err := apply(a, u.now()); err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		out := ToDTO(a)
		dto = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "application decided", "application_id", applicationID, "status", dto.Status, "actor", actor.UserID)
	return dto, nil
}

// Cancel is the applicant's own withdrawal; nobody else may cancel.
func (u *Usecase) Cancel(ctx context.Context, actor policy.Identity, applicationID string) (*ApplicationDTO, error) {
	if err := policy.RequireActive(actor); err != nil {
		return nil, err
	}
	var dto *ApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domain.Application) error {
		if a.UserID != actor.UserID {
			return policy.ErrForbidden
		}
		if err := a.Cancel(u.now()); err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		out := ToDTO(a)
		dto = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// requireLoanOwner lets admins through and checks manager ownership of the
// loan. A loan that is gone leaves only admins.
func requireLoanOwner(ctx context.Context, loans domainLoan.Repository, actor policy.Identity, loanID string) error {
	if actor.Role == user.RoleAdmin {
		return nil
	}
	if actor.Role != user.RoleManager {
		return policy.ErrForbidden
	}
	l, err := loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, domainLoan.ErrNotFound) {
			return policy.ErrForbidden
		}
		return err
	}
	return policy.RequireOwnerOrAdmin(actor, l.CreatedBy)
}
