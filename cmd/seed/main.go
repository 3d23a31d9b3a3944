package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	mysqlrepo "loanlink-backend/internal/adapter/repository/mysql"
	"loanlink-backend/internal/auth"
	"loanlink-backend/internal/config"
	"loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/infrastructure/db"
	"loanlink-backend/pkg/id"
)

type seedLoan struct {
	Title, Category, Description string
	Rate, Limit                  string
	Docs, Plans                  []string
	Home                         bool
}

var demoLoans = []seedLoan{
	{
		Title: "Small Business Starter", Category: "Business",
		Description: "Working capital for shops and market stalls.",
		Rate: "9.50", Limit: "5000.00",
		Docs: []string{"National ID", "Trade license"}, Plans: []string{"6 months", "12 months"},
		Home: true,
	},
	{
		Title: "Education Support", Category: "Education",
		Description: "Tuition and course fees paid directly to the institution.",
		Rate: "6.25", Limit: "3000.00",
		Docs: []string{"National ID", "Admission letter"}, Plans: []string{"12 months", "24 months"},
		Home: true,
	},
	{
		Title: "Farm Equipment", Category: "Agriculture",
		Description: "Seasonal financing for tools, seed and irrigation.",
		Rate: "8.00", Limit: "8000.00",
		Docs: []string{"National ID", "Land record"}, Plans: []string{"6 months", "18 months"},
		Home: true,
	},
	{
		Title: "Emergency Medical", Category: "Personal",
		Description: "Short term cover for hospital bills.",
		Rate: "11.00", Limit: "1500.00",
		Docs: []string{"National ID", "Hospital estimate"}, Plans: []string{"3 months", "6 months"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.OpenGorm(cfg.MySQLDSN(), false)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := gormDB.AutoMigrate(mysqlrepo.Models()...); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	users := mysqlrepo.NewUserRepository(gormDB)
	loans := mysqlrepo.NewLoanRepository(gormDB)

	owner, err := catalogOwner(ctx, users)
	if err != nil {
		log.Fatalf("Failed to resolve loan owner: %v", err)
	}
	log.Printf("Loans will be owned by %s (%s)", owner.Email, owner.Role)

	existing, err := loans.Count(ctx, loan.Filter{})
	if err != nil {
		log.Fatalf("Failed to count loans: %v", err)
	}
	if existing > 0 {
		log.Printf("Catalog already has %d loans, skipping", existing)
		return
	}

	for _, s := range demoLoans {
		l := &loan.Loan{
			ID:                id.NewID32(),
			Title:             s.Title,
			Description:       s.Description,
			Category:          s.Category,
			InterestRate:      decimal.RequireFromString(s.Rate),
			MaxLoanLimit:      decimal.RequireFromString(s.Limit),
			RequiredDocuments: s.Docs,
			EMIPlans:          s.Plans,
			Images:            []string{},
			ShowOnHome:        s.Home,
			CreatedBy:         owner.ID,
		}
		if err := loans.Create(ctx, l); err != nil {
			log.Fatalf("Failed to insert loan %q: %v", s.Title, err)
		}
	}
	log.Printf("Seed completed: %d loans", len(demoLoans))
}

// catalogOwner picks the first admin, then the first manager. With neither
// present it creates the SEED_ADMIN_EMAIL admin.
func catalogOwner(ctx context.Context, users user.Repository) (*user.User, error) {
	for _, role := range []user.Role{user.RoleAdmin, user.RoleManager} {
		found, err := users.List(ctx, user.Filter{Role: role})
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			return &found[len(found)-1], nil
		}
	}
	return ensureAdmin(ctx, users)
}

func ensureAdmin(ctx context.Context, users user.Repository) (*user.User, error) {
	email := user.NormalizeEmail(os.Getenv("SEED_ADMIN_EMAIL"))
	if email == "" {
		email = "admin@loanlink.local"
	}
	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
		log.Println("SEED_ADMIN_PASSWORD unset, using the default password")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u = &user.User{
		ID:           id.NewID32(),
		Email:        email,
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		Status:       user.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
