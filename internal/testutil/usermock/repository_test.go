package usermock

import (
	"context"
	"testing"
	"time"

	domain "loanlink-backend/internal/domain/user"
)

func TestRepo_GetByEmail(t *testing.T) {
	ctx := context.Background()
	want := &domain.User{ID: "u1", Email: "a@b.c"}

	m := &Repo{
		GetByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email != "a@b.c" {
				t.Fatalf("email mismatch: %s", email)
			}
			return want, nil
		},
	}
	if got, err := m.GetByEmail(ctx, "a@b.c"); err != nil || got != want {
		t.Fatalf("GetByEmail: %+v, %v", got, err)
	}

	m = &Repo{}
	if _, err := m.GetByEmail(ctx, "a@b.c"); err != context.Canceled {
		t.Fatalf("GetByEmail default: want context.Canceled, got %v", err)
	}
	if _, err := m.GetByID(ctx, "u1"); err != context.Canceled {
		t.Fatalf("GetByID default: want context.Canceled, got %v", err)
	}
}

func TestRepo_ClearLapsedSuspension(t *testing.T) {
	now := time.Now()
	var gotNow time.Time
	m := &Repo{
		ClearLapsedSuspensionFn: func(_ context.Context, id string, at time.Time) (bool, error) {
			gotNow = at
			return id == "u1", nil
		},
	}
	ok, err := m.ClearLapsedSuspension(context.Background(), "u1", now)
	if !ok || err != nil || !gotNow.Equal(now) {
		t.Fatalf("ClearLapsedSuspension = %v, %v (now %v)", ok, err, gotNow)
	}

	m = &Repo{}
	if ok, err := m.ClearLapsedSuspension(context.Background(), "u1", now); ok || err != nil {
		t.Fatalf("default = %v, %v", ok, err)
	}
	if n, err := m.ClearAllLapsedSuspensions(context.Background(), now); n != 0 || err != nil {
		t.Fatalf("ClearAll default = %d, %v", n, err)
	}
}
