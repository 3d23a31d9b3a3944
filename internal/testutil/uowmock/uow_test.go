package uowmock

import (
	"context"
	"errors"
	"testing"

	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/uow"
	"loanlink-backend/internal/testutil/applicationmock"
	"loanlink-backend/internal/testutil/loanmock"
	"loanlink-backend/internal/testutil/paymentmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	loans := &loanmock.Repo{}
	pays := &paymentmock.Repo{}
	repos := uow.Repos{Loans: loans, Payments: pays}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Loans != loans || r.Payments != pays {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{}
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinApplicationTx(ctx, "a", func(uow.Repos, *application.Application) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinApplicationTx default: want errUnimplemented, got %v", err)
	}
}

func TestPassthrough_LoadsApplication(t *testing.T) {
	ctx := context.Background()
	locked := &application.Application{ID: "app-7"}
	apps := &applicationmock.Repo{
		GetByIDForUpdateFn: func(_ context.Context, id string) (*application.Application, error) {
			if id != "app-7" {
				return nil, application.ErrNotFound
			}
			return locked, nil
		},
	}
	m := Passthrough(uow.Repos{Applications: apps})

	err := m.WithinApplicationTx(ctx, "app-7", func(r uow.Repos, a *application.Application) error {
		if a != locked || r.Applications != apps {
			t.Fatalf("WithinApplicationTx: wrong args")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinApplicationTx: %v", err)
	}

	err = m.WithinApplicationTx(ctx, "missing", func(uow.Repos, *application.Application) error {
		t.Fatalf("callback must not run for a missing application")
		return nil
	})
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New()
	m.WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinApplicationTx(func(context.Context, string, func(uow.Repos, *application.Application) error) error { return nil })
	if m.WithinTxFn == nil || m.WithinApplicationTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}

	m.Reset()
	if m.WithinTxFn != nil || m.WithinApplicationTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
