package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// FeeMinor is the fixed application fee in minor units (10.00 USD).
	FeeMinor     int64 = 1000
	Currency           = "usd"
	MinorPerUnit int64 = 100
)

var (
	ErrNotFound = errors.New("payment not found")
	// ErrDuplicate wraps a unique-key collision on session, transaction or
	// application id.
	ErrDuplicate         = errors.New("payment already recorded")
	ErrPaymentIncomplete = errors.New("payment not completed")
	ErrInvalidSignature  = errors.New("invalid webhook signature")
	ErrBadMetadata       = errors.New("checkout session metadata is incomplete")
	ErrUpstream          = errors.New("payment processor unavailable")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Method string

const (
	MethodStripe Method = "stripe"
	MethodCard   Method = "card"
)

// Payment is written once, together with its application, and never
// mutated afterwards.
type Payment struct {
	ID              string          `gorm:"type:char(32);primaryKey;column:id"`
	UserID          string          `gorm:"type:char(32);not null;index:idx_payments_user;column:user_id"`
	UserEmail       string          `gorm:"type:varchar(191);not null;column:user_email"`
	ApplicationID   string          `gorm:"type:char(32);not null;uniqueIndex:ux_payments_application;column:application_id"`
	LoanID          string          `gorm:"type:char(32);not null;column:loan_id"`
	LoanTitle       string          `gorm:"type:varchar(200);column:loan_title"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null;column:amount"`
	Currency        string          `gorm:"type:varchar(8);not null;column:currency"`
	TransactionID   string          `gorm:"type:varchar(255);not null;uniqueIndex:ux_payments_transaction;column:transaction_id"`
	StripeSessionID string          `gorm:"type:varchar(255);not null;uniqueIndex:ux_payments_session;column:stripe_session_id"`
	Status          Status          `gorm:"type:varchar(16);not null;column:status"`
	PaymentMethod   Method          `gorm:"type:varchar(16);not null;column:payment_method"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;column:created_at"`
}

func (Payment) TableName() string { return "payments" }

// AmountFromMinor converts processor minor units to a 2-place decimal.
func AmountFromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, 0).Div(decimal.New(MinorPerUnit, 0)).Round(2)
}

// Session is the processor's view of a checkout session.
type Session struct {
	ID            string            `json:"id"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	PaymentIntent string            `json:"payment_intent"`
	CustomerEmail string            `json:"customer_email"`
	URL           string            `json:"url"`
	Metadata      map[string]string `json:"metadata"`
}

const SessionPaid = "paid"

func (s *Session) Paid() bool { return s.PaymentStatus == SessionPaid }

// TransactionID falls back to the session id when the processor did not
// attach a payment intent.
func (s *Session) TransactionID() string {
	if s.PaymentIntent != "" {
		return s.PaymentIntent
	}
	return s.ID
}

const EventCheckoutCompleted = "checkout.session.completed"

type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object Session `json:"object"`
	} `json:"data"`
}
