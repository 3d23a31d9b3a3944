package loanmock

import (
	"context"
	"errors"
	"testing"

	domain "loanlink-backend/internal/domain/loan"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	l := &domain.Loan{ID: "loan-1"}

	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Loan) error {
			called = true
			if gotCtx != ctx || got != l {
				t.Fatalf("Create args not forwarded")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, l); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	m = &Repo{}
	if err := m.Create(ctx, l); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Loan{ID: "loan-2"}

	m := &Repo{
		GetByIDFn: func(_ context.Context, id string) (*domain.Loan, error) {
			if id != "loan-2" {
				t.Fatalf("GetByID id mismatch: got %s", id)
			}
			return want, nil
		},
	}
	got, err := m.GetByID(ctx, "loan-2")
	if err != nil || got != want {
		t.Fatalf("GetByID: got %+v, %v", got, err)
	}

	m = &Repo{}
	got, err = m.GetByID(ctx, "loan-2")
	if err != context.Canceled || got != nil {
		t.Fatalf("GetByID default: want context.Canceled, got %+v, %v", got, err)
	}
}

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Save(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if err := m.Delete(ctx, "x"); err != nil {
		t.Fatalf("Delete default: %v", err)
	}
	if ls, err := m.List(ctx, domain.Filter{}); ls != nil || err != nil {
		t.Fatalf("List default: %v, %v", ls, err)
	}
	if n, err := m.Count(ctx, domain.Filter{}); n != 0 || err != nil {
		t.Fatalf("Count default: %d, %v", n, err)
	}
	if ids, err := m.IDsByOwner(ctx, "owner"); ids != nil || err != nil {
		t.Fatalf("IDsByOwner default: %v, %v", ids, err)
	}
}

func TestRepo_IDsByOwnerForwards(t *testing.T) {
	m := &Repo{
		IDsByOwnerFn: func(_ context.Context, ownerID string) ([]string, error) {
			return []string{ownerID + "-a"}, nil
		},
	}
	ids, _ := m.IDsByOwner(context.Background(), "mgr")
	if len(ids) != 1 || ids[0] != "mgr-a" {
		t.Fatalf("IDsByOwner = %v", ids)
	}
}
