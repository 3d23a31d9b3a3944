package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "loanlink-backend/internal/domain/loan"
	"loanlink-backend/pkg/id"

	"github.com/shopspring/decimal"
)

func TestLoanRepository_CreateAndGetByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	owner := id.NewID32()
	l := makeLoan(owner)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CreatedBy != owner || got.Title != l.Title {
		t.Fatalf("loan mismatch: %+v", got)
	}
	if !got.InterestRate.Equal(decimal.RequireFromString("7.5")) {
		t.Fatalf("interest rate = %s", got.InterestRate)
	}
	if len(got.EMIPlans) != 2 || got.EMIPlans[1] != "12 months" {
		t.Fatalf("emi plans not round-tripped: %v", got.EMIPlans)
	}

	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("missing loan: want ErrNotFound, got %v", err)
	}
}

func TestLoanRepository_SaveKeepsOwner(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan("owner-1")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.Title = "Renamed"
	l.CreatedBy = "someone-else"
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, _ := repo.GetByID(ctx, l.ID)
	if got.Title != "Renamed" {
		t.Fatalf("title = %q, want Renamed", got.Title)
	}
	if got.CreatedBy != "owner-1" {
		t.Fatalf("created_by changed to %q", got.CreatedBy)
	}
}

func TestLoanRepository_ListFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		owner := "owner-a"
		if i%2 == 1 {
			owner = "owner-b"
		}
		l := makeLoan(owner)
		l.ShowOnHome = i < 7
		l.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	home := true
	featured, err := repo.List(ctx, loanDomain.Filter{ShowOnHome: &home, Limit: loanDomain.HomeLimit})
	if err != nil {
		t.Fatalf("List home: %v", err)
	}
	if len(featured) != loanDomain.HomeLimit {
		t.Fatalf("featured = %d, want %d", len(featured), loanDomain.HomeLimit)
	}
	for i := 1; i < len(featured); i++ {
		if featured[i].CreatedAt.After(featured[i-1].CreatedAt) {
			t.Fatalf("not newest first at %d", i)
		}
	}

	mine, _ := repo.List(ctx, loanDomain.Filter{CreatedBy: "owner-a"})
	if len(mine) != 4 {
		t.Fatalf("owner-a loans = %d, want 4", len(mine))
	}
	n, _ := repo.Count(ctx, loanDomain.Filter{CreatedBy: "owner-b"})
	if n != 4 {
		t.Fatalf("owner-b count = %d, want 4", n)
	}

	ids, err := repo.IDsByOwner(ctx, "owner-a")
	if err != nil || len(ids) != 4 {
		t.Fatalf("IDsByOwner = %v err=%v", ids, err)
	}
}

func TestLoanRepository_Delete(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan("owner")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, l.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, l.ID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("deleted loan still visible: %v", err)
	}
	if err := repo.Delete(ctx, l.ID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}
