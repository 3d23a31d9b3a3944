package loan

import (
	"time"

	"github.com/shopspring/decimal"

	domain "loanlink-backend/internal/domain/loan"
)

type CreateLoanInput struct {
	Title             string
	Description       string
	Category          string
	InterestRate      decimal.Decimal
	MaxLoanLimit      decimal.Decimal
	RequiredDocuments []string
	EMIPlans          []string
	Images            []string
	ShowOnHome        bool
}

type LoanDTO struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	MaxLoanLimit      decimal.Decimal `json:"maxLoanLimit"`
	RequiredDocuments []string        `json:"requiredDocuments"`
	EMIPlans          []string        `json:"emiPlans"`
	Images            []string        `json:"images"`
	ShowOnHome        bool            `json:"showOnHome"`
	CreatedBy         string          `json:"createdBy"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func toDTO(l *domain.Loan) LoanDTO {
	return LoanDTO{
		ID:                l.ID,
		Title:             l.Title,
		Description:       l.Description,
		Category:          l.Category,
		InterestRate:      l.InterestRate,
		MaxLoanLimit:      l.MaxLoanLimit,
		RequiredDocuments: nonNil(l.RequiredDocuments),
		EMIPlans:          nonNil(l.EMIPlans),
		Images:            nonNil(l.Images),
		ShowOnHome:        l.ShowOnHome,
		CreatedBy:         l.CreatedBy,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func toDTOs(ls []domain.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, toDTO(&ls[i]))
	}
	return out
}

// lists render as [] rather than null
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
