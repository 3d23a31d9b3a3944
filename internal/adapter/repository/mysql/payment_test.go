package mysql

import (
	"context"
	"errors"
	"testing"

	payDomain "loanlink-backend/internal/domain/payment"
)

func TestPaymentRepository_CreateAndLookups(t *testing.T) {
	db := openTestDB(t)
	apps := NewApplicationRepository(db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	a := makeApplication("u1", "loan-1", 500)
	if err := apps.Create(ctx, a); err != nil {
		t.Fatalf("Create app: %v", err)
	}
	p := makePayment(a, "cs_test_1", "pi_test_1")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create payment: %v", err)
	}

	for name, get := range map[string]func() (*payDomain.Payment, error){
		"session":     func() (*payDomain.Payment, error) { return repo.GetBySessionID(ctx, "cs_test_1") },
		"transaction": func() (*payDomain.Payment, error) { return repo.GetByTransactionID(ctx, "pi_test_1") },
		"application": func() (*payDomain.Payment, error) { return repo.GetByApplicationID(ctx, a.ID) },
	} {
		got, err := get()
		if err != nil {
			t.Fatalf("%s lookup: %v", name, err)
		}
		if got.ID != p.ID || got.Amount.String() != "10" {
			t.Fatalf("%s lookup mismatch: %+v", name, got)
		}
	}

	if _, err := repo.GetBySessionID(ctx, "cs_missing"); !errors.Is(err, payDomain.ErrNotFound) {
		t.Fatalf("missing: want ErrNotFound, got %v", err)
	}
}

func TestPaymentRepository_UniqueKeys(t *testing.T) {
	db := openTestDB(t)
	apps := NewApplicationRepository(db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	a1 := makeApplication("u1", "loan-1", 500)
	a2 := makeApplication("u1", "loan-1", 500)
	if err := apps.Create(ctx, a1); err != nil {
		t.Fatalf("Create a1: %v", err)
	}
	if err := apps.Create(ctx, a2); err != nil {
		t.Fatalf("Create a2: %v", err)
	}
	if err := repo.Create(ctx, makePayment(a1, "cs_1", "pi_1")); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	cases := map[string]*payDomain.Payment{
		"same session":     makePayment(a2, "cs_1", "pi_2"),
		"same transaction": makePayment(a2, "cs_2", "pi_1"),
		"same application": makePayment(a1, "cs_3", "pi_3"),
	}
	for name, p := range cases {
		if err := repo.Create(ctx, p); !errors.Is(err, payDomain.ErrDuplicate) {
			t.Fatalf("%s: want ErrDuplicate, got %v", name, err)
		}
	}
}

func TestPaymentRepository_ListAndSum(t *testing.T) {
	db := openTestDB(t)
	apps := NewApplicationRepository(db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	for i, s := range []string{"a", "b", "c"} {
		user := "u1"
		if i == 2 {
			user = "u2"
		}
		a := makeApplication(user, "loan-1", 500)
		if err := apps.Create(ctx, a); err != nil {
			t.Fatalf("Create app: %v", err)
		}
		if err := repo.Create(ctx, makePayment(a, "cs_"+s, "pi_"+s)); err != nil {
			t.Fatalf("Create payment: %v", err)
		}
	}

	mine, err := repo.ListByUser(ctx, "u1")
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListByUser = %d err=%v, want 2", len(mine), err)
	}

	sum, err := repo.SumAmount(ctx)
	if err != nil {
		t.Fatalf("SumAmount: %v", err)
	}
	if sum.IntPart() != 30 {
		t.Fatalf("sum = %s, want 30", sum)
	}
}
