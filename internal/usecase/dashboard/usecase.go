// Package dashboard computes the role-scoped counters shown on the landing
// page after login.
package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	domainApp "loanlink-backend/internal/domain/application"
	domainLoan "loanlink-backend/internal/domain/loan"
	domainPay "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/domain/policy"
	"loanlink-backend/internal/domain/user"
)

type AdminStats struct {
	TotalUsers           int64           `json:"totalUsers"`
	TotalLoans           int64           `json:"totalLoans"`
	PendingApplications  int64           `json:"pendingApplications"`
	ApprovedApplications int64           `json:"approvedApplications"`
	TotalFeesCollected   decimal.Decimal `json:"totalFeesCollected"`
}

type ManagerStats struct {
	MyLoans              int64           `json:"myLoans"`
	PendingApplications  int64           `json:"pendingApplications"`
	ApprovedApplications int64           `json:"approvedApplications"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
}

type BorrowerStats struct {
	MyApplications       int64           `json:"myApplications"`
	PendingApplications  int64           `json:"pendingApplications"`
	ApprovedApplications int64           `json:"approvedApplications"`
	TotalBorrowed        decimal.Decimal `json:"totalBorrowed"`
}

type Usecase struct {
	users user.Repository
	loans domainLoan.Repository
	apps  domainApp.Repository
	pays  domainPay.Repository
}

func NewUsecase(users user.Repository, loans domainLoan.Repository, apps domainApp.Repository, pays domainPay.Repository) *Usecase {
	return &Usecase{users: users, loans: loans, apps: apps, pays: pays}
}

// Stats returns *AdminStats, *ManagerStats or *BorrowerStats depending on
// the caller's role. Callers without a role get the borrower view.
func (u *Usecase) Stats(ctx context.Context, actor policy.Identity) (any, error) {
	switch actor.Role {
	case user.RoleAdmin:
		return u.adminStats(ctx)
	case user.RoleManager:
		return u.managerStats(ctx, actor.UserID)
	default:
		return u.borrowerStats(ctx, actor.UserID)
	}
}

func (u *Usecase) adminStats(ctx context.Context) (*AdminStats, error) {
	var s AdminStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.TotalUsers, err = u.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.TotalLoans, err = u.loans.Count(ctx, domainLoan.Filter{})
		return err
	})
	g.Go(func() (err error) {
		s.PendingApplications, err = u.apps.Count(ctx, domainApp.Filter{Status: domainApp.StatusPending})
		return err
	})
	g.Go(func() (err error) {
		s.ApprovedApplications, err = u.apps.Count(ctx, domainApp.Filter{Status: domainApp.StatusApproved})
		return err
	})
	g.Go(func() (err error) {
		s.TotalFeesCollected, err = u.pays.SumAmount(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

// managerStats only counts applications on loans the manager owns.
func (u *Usecase) managerStats(ctx context.Context, managerID string) (*ManagerStats, error) {
	loanIDs, err := u.loans.IDsByOwner(ctx, managerID)
	if err != nil {
		return nil, err
	}
	scoped := func(st domainApp.Status) domainApp.Filter {
		return domainApp.Filter{Status: st, ScopeToLoans: true, LoanIDs: loanIDs}
	}

	s := ManagerStats{MyLoans: int64(len(loanIDs))}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.PendingApplications, err = u.apps.Count(ctx, scoped(domainApp.StatusPending))
		return err
	})
	g.Go(func() (err error) {
		s.ApprovedApplications, err = u.apps.Count(ctx, scoped(domainApp.StatusApproved))
		return err
	})
	g.Go(func() (err error) {
		s.TotalAmount, err = u.apps.SumLoanAmount(ctx, scoped(domainApp.StatusApproved))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (u *Usecase) borrowerStats(ctx context.Context, userID string) (*BorrowerStats, error) {
	var s BorrowerStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.MyApplications, err = u.apps.Count(ctx, domainApp.Filter{UserID: userID})
		return err
	})
	g.Go(func() (err error) {
		s.PendingApplications, err = u.apps.Count(ctx, domainApp.Filter{UserID: userID, Status: domainApp.StatusPending})
		return err
	})
	g.Go(func() (err error) {
		s.ApprovedApplications, err = u.apps.Count(ctx, domainApp.Filter{UserID: userID, Status: domainApp.StatusApproved})
		return err
	})
	g.Go(func() (err error) {
		s.TotalBorrowed, err = u.apps.SumLoanAmount(ctx, domainApp.Filter{UserID: userID, Status: domainApp.StatusApproved})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}
