package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// Create returns ErrDuplicate when any unique key is already taken.
	Create(ctx context.Context, p *Payment) error
	GetBySessionID(ctx context.Context, sessionID string) (*Payment, error)
	GetByTransactionID(ctx context.Context, txID string) (*Payment, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*Payment, error)
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID string) ([]Payment, error)
	SumAmount(ctx context.Context) (decimal.Decimal, error)
}

type CheckoutRequest struct {
	CustomerEmail string
	ProductName   string
	Description   string
	AmountMinor   int64
	Currency      string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type Checkout struct {
	SessionID string
	URL       string
}

// Processor is the external payment processor.
type Processor interface {
	OpenCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}

// EventVerifier authenticates an inbound webhook payload.
type EventVerifier interface {
	Verify(payload []byte, signatureHeader string) error
}
