package application

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("application not found")
	// ErrInvalidTransition: approve/reject on an application that left pending.
	ErrInvalidTransition = errors.New("application is no longer pending")
	// ErrInvalidState: cancel on an application that left pending.
	ErrInvalidState = errors.New("can only cancel pending applications")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// CanTransition: pending is the only state with outgoing edges.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.Terminal()
}

type FeeStatus string

const (
	FeePaid FeeStatus = "paid"
	// FeeUnpaid is kept for stored rows; new applications are always paid.
	FeeUnpaid FeeStatus = "unpaid"
)

type Application struct {
	ID        string `gorm:"type:char(32);primaryKey;column:id"`
	UserID    string `gorm:"type:char(32);not null;index:idx_apps_user;column:user_id"`
	UserEmail string `gorm:"type:varchar(191);not null;column:user_email"`
	LoanID    string `gorm:"type:char(32);not null;index:idx_apps_loan_status,priority:1;column:loan_id"`
	// snapshots taken from the loan when the checkout was opened
	LoanTitle    string          `gorm:"type:varchar(200);column:loan_title"`
	InterestRate decimal.Decimal `gorm:"type:decimal(6,2);column:interest_rate"`

	FirstName     string          `gorm:"type:varchar(80);not null;column:first_name"`
	LastName      string          `gorm:"type:varchar(80);not null;column:last_name"`
	ContactNumber string          `gorm:"type:varchar(32);column:contact_number"`
	NationalID    string          `gorm:"type:varchar(64);column:national_id"`
	IncomeSource  string          `gorm:"type:varchar(120);column:income_source"`
	MonthlyIncome decimal.Decimal `gorm:"type:decimal(20,2);column:monthly_income"`
	LoanAmount    decimal.Decimal `gorm:"type:decimal(20,2);not null;column:loan_amount"`
	Reason        string          `gorm:"type:text;column:reason"`
	Address       string          `gorm:"type:text;column:address"`
	ExtraNotes    string          `gorm:"type:text;column:extra_notes"`

	Status          Status    `gorm:"type:varchar(16);not null;default:pending;index:idx_apps_loan_status,priority:2;column:status"`
	FeeStatus       FeeStatus `gorm:"type:varchar(16);not null;default:paid;column:application_fee_status"`
	RejectionReason string    `gorm:"type:text;column:rejection_reason"`
	DecidedBy       string    `gorm:"type:char(32);column:decided_by"`

	ApprovedAt  *time.Time `gorm:"column:approved_at"`
	RejectedAt  *time.Time `gorm:"column:rejected_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime;column:updated_at"`
}

func (Application) TableName() string { return "loan_applications" }

func (a *Application) ApplicantName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Approve, Reject and Cancel mutate in memory only; callers persist.

func (a *Application) Approve(by string, now time.Time) error {
	if !CanTransition(a.Status, StatusApproved) {
		return ErrInvalidTransition
	}
	a.Status = StatusApproved
	a.DecidedBy = by
	a.ApprovedAt = &now
	return nil
}

func (a *Application) Reject(by, reason string, now time.Time) error {
	if !CanTransition(a.Status, StatusRejected) {
		return ErrInvalidTransition
	}
	a.Status = StatusRejected
	a.DecidedBy = by
	a.RejectionReason = reason
	a.RejectedAt = &now
	return nil
}

func (a *Application) Cancel(now time.Time) error {
	if !CanTransition(a.Status, StatusCancelled) {
		return ErrInvalidState
	}
	a.Status = StatusCancelled
	a.CancelledAt = &now
	return nil
}
