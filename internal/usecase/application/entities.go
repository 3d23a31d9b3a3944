package application

import (
	"time"

	"github.com/shopspring/decimal"

	domain "loanlink-backend/internal/domain/application"
)

type ApplicationDTO struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"userId"`
	UserEmail            string          `json:"userEmail"`
	LoanID               string          `json:"loanId"`
	LoanTitle            string          `json:"loanTitle"`
	InterestRate         decimal.Decimal `json:"interestRate"`
	FirstName            string          `json:"firstName"`
	LastName             string          `json:"lastName"`
	ContactNumber        string          `json:"contactNumber"`
	NationalID           string          `json:"nationalId"`
	IncomeSource         string          `json:"incomeSource"`
	MonthlyIncome        decimal.Decimal `json:"monthlyIncome"`
	LoanAmount           decimal.Decimal `json:"loanAmount"`
	Reason               string          `json:"reason"`
	Address              string          `json:"address"`
	ExtraNotes           string          `json:"extraNotes"`
	Status               string          `json:"status"`
	ApplicationFeeStatus string          `json:"applicationFeeStatus"`
	RejectionReason      string          `json:"rejectionReason,omitempty"`
	DecidedBy            string          `json:"decidedBy,omitempty"`
	ApprovedAt           *time.Time      `json:"approvedAt,omitempty"`
	RejectedAt           *time.Time      `json:"rejectedAt,omitempty"`
	CancelledAt          *time.Time      `json:"cancelledAt,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
}

func ToDTO(a *domain.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:                   a.ID,
		UserID:               a.UserID,
		UserEmail:            a.UserEmail,
		LoanID:               a.LoanID,
		LoanTitle:            a.LoanTitle,
		InterestRate:         a.InterestRate,
		FirstName:            a.FirstName,
		LastName:             a.LastName,
		ContactNumber:        a.ContactNumber,
		NationalID:           a.NationalID,
		IncomeSource:         a.IncomeSource,
		MonthlyIncome:        a.MonthlyIncome,
		LoanAmount:           a.LoanAmount,
		Reason:               a.Reason,
		Address:              a.Address,
		ExtraNotes:           a.ExtraNotes,
		Status:               string(a.Status),
		ApplicationFeeStatus: string(a.FeeStatus),
		RejectionReason:      a.RejectionReason,
		DecidedBy:            a.DecidedBy,
		ApprovedAt:           a.ApprovedAt,
		RejectedAt:           a.RejectedAt,
		CancelledAt:          a.CancelledAt,
		CreatedAt:            a.CreatedAt,
	}
}

func toDTOs(as []domain.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(as))
	for i := range as {
		out = append(out, ToDTO(&as[i]))
	}
	return out
}
