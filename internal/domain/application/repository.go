package application

import (
	"context"

	"github.com/shopspring/decimal"
)

type Filter struct {
	UserID string
	Status Status
	// When ScopeToLoans is set only applications whose loan is in LoanIDs
	// match; an empty LoanIDs then matches nothing.
	ScopeToLoans bool
	LoanIDs      []string
	// Order defaults to OrderNewest.
	Order Order
}

type Order int

const (
	OrderNewest Order = iota
	// OrderRecentlyApproved sorts by approval time, latest first.
	OrderRecentlyApproved
)

// DedupeKey identifies a paid application for the same payer, loan and
// applicant name.
type DedupeKey struct {
	UserID    string
	LoanID    string
	FirstName string
	LastName  string
}

type Repository interface {
	Create(ctx context.Context, a *Application) error
	Save(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Application, error)
	// List returns rows sorted by f.Order.
	List(ctx context.Context, f Filter) ([]Application, error)
	Count(ctx context.Context, f Filter) (int64, error)
	SumLoanAmount(ctx context.Context, f Filter) (decimal.Decimal, error)
	// FindOrphanPaid returns a paid application matching k that has no
	// payment attached yet.
	FindOrphanPaid(ctx context.Context, k DedupeKey) (*Application, error)
}
