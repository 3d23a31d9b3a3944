package mysql

import (
	"testing"
	"time"

	appDomain "loanlink-backend/internal/domain/application"
	loanDomain "loanlink-backend/internal/domain/loan"
	payDomain "loanlink-backend/internal/domain/payment"
	userDomain "loanlink-backend/internal/domain/user"
	"loanlink-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with the full schema. A single
// connection keeps every query on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeUser(email string, role userDomain.Role) *userDomain.User {
	return &userDomain.User{
		ID:     id.NewID32(),
		Email:  email,
		Name:   "Test " + string(role),
		Role:   role,
		Status: userDomain.StatusActive,
	}
}

func makeLoan(ownerID string) *loanDomain.Loan {
	return &loanDomain.Loan{
		ID:                id.NewID32(),
		Title:             "Micro business loan",
		Description:       "Working capital for small shops",
		Category:          "business",
		InterestRate:      decimal.RequireFromString("7.5"),
		MaxLoanLimit:      decimal.NewFromInt(10000),
		RequiredDocuments: []string{"ID card"},
		EMIPlans:          []string{"6 months", "12 months"},
		CreatedBy:         ownerID,
	}
}

func makeApplication(userID, loanID string, amount int64) *appDomain.Application {
	return &appDomain.Application{
		ID:            id.NewID32(),
		UserID:        userID,
		UserEmail:     "borrower@example.com",
		LoanID:        loanID,
		LoanTitle:     "Micro business loan",
		FirstName:     "Jane",
		LastName:      "Doe",
		MonthlyIncome: decimal.NewFromInt(2500),
		LoanAmount:    decimal.NewFromInt(amount),
		Status:        appDomain.StatusPending,
		FeeStatus:     appDomain.FeePaid,
	}
}

func makePayment(a *appDomain.Application, sessionID, txID string) *payDomain.Payment {
	return &payDomain.Payment{
		ID:              id.NewID32(),
		UserID:          a.UserID,
		UserEmail:       a.UserEmail,
		ApplicationID:   a.ID,
		LoanID:          a.LoanID,
		Amount:          payDomain.AmountFromMinor(payDomain.FeeMinor),
		Currency:        payDomain.Currency,
		TransactionID:   txID,
		StripeSessionID: sessionID,
		Status:          payDomain.StatusCompleted,
		PaymentMethod:   payDomain.MethodStripe,
		CreatedAt:       time.Now().UTC(),
	}
}
