package loanmock

import (
	"context"

	domain "loanlink-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, l *domain.Loan) error
	SaveFn       func(ctx context.Context, l *domain.Loan) error
	DeleteFn     func(ctx context.Context, id string) error
	GetByIDFn    func(ctx context.Context, id string) (*domain.Loan, error)
	ListFn       func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
	CountFn      func(ctx context.Context, f domain.Filter) (int64, error)
	IDsByOwnerFn func(ctx context.Context, ownerID string) ([]string, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
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

func (m *Repo) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	if m.IDsByOwnerFn != nil {
		return m.IDsByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}
