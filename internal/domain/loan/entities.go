package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("loan not found")

// HomeLimit caps the curated home/featured listing.
const HomeLimit = 6

type Loan struct {
	ID                string          `gorm:"type:char(32);primaryKey;column:id"`
	Title             string          `gorm:"type:varchar(200);not null;column:title"`
	Description       string          `gorm:"type:text;column:description"`
	Category          string          `gorm:"type:varchar(80);index:idx_loans_category;column:category"`
	InterestRate      decimal.Decimal `gorm:"type:decimal(6,2);not null;column:interest_rate"`
	MaxLoanLimit      decimal.Decimal `gorm:"type:decimal(20,2);not null;column:max_loan_limit"`
	RequiredDocuments []string        `gorm:"type:text;serializer:json;column:required_documents"`
	EMIPlans          []string        `gorm:"type:text;serializer:json;column:emi_plans"`
	Images            []string        `gorm:"type:text;serializer:json;column:images"`
	ShowOnHome        bool            `gorm:"not null;default:false;index:idx_loans_home;column:show_on_home"`
	// CreatedBy is the owning manager; never reassigned after creation.
	CreatedBy string         `gorm:"type:char(32);not null;index:idx_loans_created_by;column:created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deleted_at"`
}

func (Loan) TableName() string { return "loans" }

// Patch carries the mutable catalog fields; nil means unchanged.
type Patch struct {
	Title             *string
	Description       *string
	Category          *string
	InterestRate      *decimal.Decimal
	MaxLoanLimit      *decimal.Decimal
	RequiredDocuments *[]string
	EMIPlans          *[]string
	Images            *[]string
	ShowOnHome        *bool
}

func (l *Loan) Apply(p Patch) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.InterestRate != nil {
		l.InterestRate = *p.InterestRate
	}
	if p.MaxLoanLimit != nil {
		l.MaxLoanLimit = *p.MaxLoanLimit
	}
	if p.RequiredDocuments != nil {
		l.RequiredDocuments = *p.RequiredDocuments
	}
	if p.EMIPlans != nil {
		l.EMIPlans = *p.EMIPlans
	}
	if p.Images != nil {
		l.Images = *p.Images
	}
	if p.ShowOnHome != nil {
		l.ShowOnHome = *p.ShowOnHome
	}
}
