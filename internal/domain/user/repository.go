package user

import (
	"context"
	"time"
)

type Filter struct {
	Role Role
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, f Filter) ([]User, error)
	Count(ctx context.Context) (int64, error)
	// ClearLapsedSuspension only touches the row while its suspension is
	// still lapsed at now, so a newer suspension is left alone.
	ClearLapsedSuspension(ctx context.Context, id string, now time.Time) (bool, error)
	ClearAllLapsedSuspensions(ctx context.Context, now time.Time) (int64, error)
}
