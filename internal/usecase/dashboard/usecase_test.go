package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainApp "loanlink-backend/internal/domain/application"
	domainLoan "loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/domain/policy"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/testutil/applicationmock"
	"loanlink-backend/internal/testutil/loanmock"
	"loanlink-backend/internal/testutil/paymentmock"
	"loanlink-backend/internal/testutil/usermock"
)

// appCounts answers Count and SumLoanAmount from a fixed table and records
// every filter it was asked about.
type appCounts struct {
	mu      sync.Mutex
	filters []domainApp.Filter
	apps    []domainApp.Application
}

func (a *appCounts) match(f domainApp.Filter) []domainApp.Application {
	a.mu.Lock()
	a.filters = append(a.filters, f)
	a.mu.Unlock()

	var out []domainApp.Application
	for _, x := range a.apps {
		if f.UserID != "" && x.UserID != f.UserID {
			continue
		}
		if f.Status != "" && x.Status != f.Status {
			continue
		}
		if f.ScopeToLoans {
			in := false
			for _, id := range f.LoanIDs {
				in = in || id == x.LoanID
			}
			if !in {
				continue
			}
		}
		out = append(out, x)
	}
	return out
}

func (a *appCounts) repo() *applicationmock.Repo {
	return &applicationmock.Repo{
		CountFn: func(_ context.Context, f domainApp.Filter) (int64, error) {
			return int64(len(a.match(f))), nil
		},
		SumLoanAmountFn: func(_ context.Context, f domainApp.Filter) (decimal.Decimal, error) {
			sum := decimal.Zero
			for _, x := range a.match(f) {
				sum = sum.Add(x.LoanAmount)
			}
			return sum, nil
		},
	}
}

func seed() *appCounts {
	app := func(user, loan string, st domainApp.Status, amount int64) domainApp.Application {
		return domainApp.Application{UserID: user, LoanID: loan, Status: st, LoanAmount: decimal.NewFromInt(amount)}
	}
	return &appCounts{apps: []domainApp.Application{
		app("b-1", "loan-a", domainApp.StatusPending, 100),
		app("b-1", "loan-a", domainApp.StatusApproved, 200),
		app("b-2", "loan-b", domainApp.StatusApproved, 300),
		app("b-2", "loan-c", domainApp.StatusPending, 400),
		app("b-1", "loan-c", domainApp.StatusApproved, 500),
	}}
}

func newUC(apps *appCounts) *Usecase {
	users := &usermock.Repo{CountFn: func(context.Context) (int64, error) { return 7, nil }}
	loans := &loanmock.Repo{
		CountFn: func(context.Context, domainLoan.Filter) (int64, error) { return 3, nil },
		IDsByOwnerFn: func(_ context.Context, owner string) ([]string, error) {
			if owner == "mgr-1" {
				return []string{"loan-a", "loan-b"}, nil
			}
			return nil, nil
		},
	}
	pays := &paymentmock.Repo{SumAmountFn: func(context.Context) (decimal.Decimal, error) {
		return decimal.NewFromInt(50), nil
	}}
	return NewUsecase(users, loans, apps.repo(), pays)
}

func TestStats_Admin(t *testing.T) {
	got, err := newUC(seed()).Stats(context.Background(), policy.Identity{UserID: "a", Role: user.RoleAdmin})
	require.NoError(t, err)
	s, ok := got.(*AdminStats)
	require.True(t, ok, "got %T", got)
	assert.EqualValues(t, 7, s.TotalUsers)
	assert.EqualValues(t, 3, s.TotalLoans)
	assert.EqualValues(t, 2, s.PendingApplications)
	assert.EqualValues(t, 3, s.ApprovedApplications)
	assert.True(t, s.TotalFeesCollected.Equal(decimal.NewFromInt(50)))
}

func TestStats_ManagerScopedToOwnLoans(t *testing.T) {
	apps := seed()
	got, err := newUC(apps).Stats(context.Background(), policy.Identity{UserID: "mgr-1", Role: user.RoleManager})
	require.NoError(t, err)
	s, ok := got.(*ManagerStats)
	require.True(t, ok, "got %T", got)
	assert.EqualValues(t, 2, s.MyLoans)
	assert.EqualValues(t, 1, s.PendingApplications)
	assert.EqualValues(t, 2, s.ApprovedApplications)
	assert.True(t, s.TotalAmount.Equal(decimal.NewFromInt(500)), "total = %s", s.TotalAmount)

	for _, f := range apps.filters {
		assert.True(t, f.ScopeToLoans, "manager query not scoped: %+v", f)
	}
}

func TestStats_ManagerWithoutLoans(t *testing.T) {
	got, err := newUC(seed()).Stats(context.Background(), policy.Identity{UserID: "mgr-2", Role: user.RoleManager})
	require.NoError(t, err)
	s := got.(*ManagerStats)
	assert.Zero(t, s.MyLoans)
	assert.Zero(t, s.PendingApplications)
	assert.True(t, s.TotalAmount.IsZero())
}

func TestStats_BorrowerAndUnset(t *testing.T) {
	for _, role := range []user.Role{user.RoleBorrower, user.RoleUnset} {
		got, err := newUC(seed()).Stats(context.Background(), policy.Identity{UserID: "b-1", Role: role})
		require.NoError(t, err)
		s, ok := got.(*BorrowerStats)
		require.True(t, ok, "role %q got %T", role, got)
		assert.EqualValues(t, 3, s.MyApplications)
		assert.EqualValues(t, 1, s.PendingApplications)
		assert.EqualValues(t, 2, s.ApprovedApplications)
		assert.True(t, s.TotalBorrowed.Equal(decimal.NewFromInt(700)))
	}
}

func TestStats_StoreErrorSurfaces(t *testing.T) {
	boom := errors.New("db down")
	uc := newUC(seed())
	uc.pays = &paymentmock.Repo{SumAmountFn: func(context.Context) (decimal.Decimal, error) { return decimal.Zero, boom }}

	_, err := uc.Stats(context.Background(), policy.Identity{Role: user.RoleAdmin})
	assert.ErrorIs(t, err, boom)
}
