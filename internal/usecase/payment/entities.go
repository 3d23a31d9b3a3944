package payment

import (
	"time"

	"github.com/shopspring/decimal"

	domain "loanlink-backend/internal/domain/payment"
	appUC "loanlink-backend/internal/usecase/application"
)

type CheckoutInput struct {
	LoanID string
	Draft  domain.Draft
}

type CheckoutDTO struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type PaymentDTO struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	UserEmail       string          `json:"userEmail"`
	ApplicationID   string          `json:"applicationId"`
	LoanID          string          `json:"loanId"`
	LoanTitle       string          `json:"loanTitle"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	TransactionID   string          `json:"transactionId"`
	StripeSessionID string          `json:"stripeSessionId"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ReceiptDTO is a payment with the application it paid for, when that
// application is still readable.
type ReceiptDTO struct {
	PaymentDTO
	Application *appUC.ApplicationDTO `json:"application,omitempty"`
}

// MaterializeResult reports whether this call wrote the records or found
// them already present.
type MaterializeResult struct {
	Receipt ReceiptDTO
	Created bool
}

type WebhookResult struct {
	EventType string
	Handled   bool
	Created   bool
}

func toDTO(p *domain.Payment) PaymentDTO {
	return PaymentDTO{
		ID:              p.ID,
		UserID:          p.UserID,
		UserEmail:       p.UserEmail,
		ApplicationID:   p.ApplicationID,
		LoanID:          p.LoanID,
		LoanTitle:       p.LoanTitle,
		Amount:          p.Amount,
		Currency:        p.Currency,
		TransactionID:   p.TransactionID,
		StripeSessionID: p.StripeSessionID,
		Status:          string(p.Status),
		PaymentMethod:   string(p.PaymentMethod),
		CreatedAt:       p.CreatedAt,
	}
}
