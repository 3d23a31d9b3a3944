package applicationmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "loanlink-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, a *domain.Application) error
	SaveFn             func(ctx context.Context, a *domain.Application) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Application, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Application, error)
	ListFn             func(ctx context.Context, f domain.Filter) ([]domain.Application, error)
	CountFn            func(ctx context.Context, f domain.Filter) (int64, error)
	SumLoanAmountFn    func(ctx context.Context, f domain.Filter) (decimal.Decimal, error)
	FindOrphanPaidFn   func(ctx context.Context, k domain.DedupeKey) (*domain.Application, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) Count(ctx context.Context, f domain.Filter) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, f)
	}
	return 0, nil
}

func (m *Repo) SumLoanAmount(ctx context.Context, f domain.Filter) (decimal.Decimal, error) {
	if m.SumLoanAmountFn != nil {
		return m.SumLoanAmountFn(ctx, f)
	}
	return decimal.Zero, nil
}

// FindOrphanPaid defaults to "no orphan".
func (m *Repo) FindOrphanPaid(ctx context.Context, k domain.DedupeKey) (*domain.Application, error) {
	if m.FindOrphanPaidFn != nil {
		return m.FindOrphanPaidFn(ctx, k)
	}
	return nil, domain.ErrNotFound
}
