package usermock

import (
	"context"
	"time"

	domain "loanlink-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset getters return context.Canceled; unset writers succeed.
type Repo struct {
	CreateFn                    func(ctx context.Context, u *domain.User) error
	SaveFn                      func(ctx context.Context, u *domain.User) error
	GetByIDFn                   func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn                func(ctx context.Context, email string) (*domain.User, error)
	ListFn                      func(ctx context.Context, f domain.Filter) ([]domain.User, error)
	CountFn                     func(ctx context.Context) (int64, error)
	ClearLapsedSuspensionFn     func(ctx context.Context, id string, now time.Time) (bool, error)
	ClearAllLapsedSuspensionsFn func(ctx context.Context, now time.Time) (int64, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) ClearLapsedSuspension(ctx context.Context, id string, now time.Time) (bool, error) {
	if m.ClearLapsedSuspensionFn != nil {
		return m.ClearLapsedSuspensionFn(ctx, id, now)
	}
	return false, nil
}

func (m *Repo) ClearAllLapsedSuspensions(ctx context.Context, now time.Time) (int64, error) {
	if m.ClearAllLapsedSuspensionsFn != nil {
		return m.ClearAllLapsedSuspensionsFn(ctx, now)
	}
	return 0, nil
}
