package paymentmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "loanlink-backend/internal/domain/payment"
)

var (
	_ domain.Repository    = (*Repo)(nil)
	_ domain.Processor     = (*Processor)(nil)
	_ domain.EventVerifier = (*Verifier)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, p *domain.Payment) error
	GetBySessionIDFn     func(ctx context.Context, sessionID string) (*domain.Payment, error)
	GetByTransactionIDFn func(ctx context.Context, txID string) (*domain.Payment, error)
	GetByApplicationIDFn func(ctx context.Context, applicationID string) (*domain.Payment, error)
	ListByUserFn         func(ctx context.Context, userID string) ([]domain.Payment, error)
	SumAmountFn          func(ctx context.Context) (decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetBySessionID(ctx context.Context, sessionID string) (*domain.Payment, error) {
	if m.GetBySessionIDFn != nil {
		return m.GetBySessionIDFn(ctx, sessionID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByTransactionID(ctx context.Context, txID string) (*domain.Payment, error) {
	if m.GetByTransactionIDFn != nil {
		return m.GetByTransactionIDFn(ctx, txID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Payment, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) SumAmount(ctx context.Context) (decimal.Decimal, error) {
	if m.SumAmountFn != nil {
		return m.SumAmountFn(ctx)
	}
	return decimal.Zero, nil
}

// Processor is a function-backed payment processor.
type Processor struct {
	OpenCheckoutFn    func(ctx context.Context, req domain.CheckoutRequest) (*domain.Checkout, error)
	RetrieveSessionFn func(ctx context.Context, sessionID string) (*domain.Session, error)
}

func (m *Processor) OpenCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.Checkout, error) {
	if m.OpenCheckoutFn != nil {
		return m.OpenCheckoutFn(ctx, req)
	}
	return nil, domain.ErrUpstream
}

func (m *Processor) RetrieveSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.RetrieveSessionFn != nil {
		return m.RetrieveSessionFn(ctx, sessionID)
	}
	return nil, domain.ErrUpstream
}

// Verifier accepts everything unless VerifyFn says otherwise.
type Verifier struct {
	VerifyFn func(payload []byte, header string) error
}

func (m *Verifier) Verify(payload []byte, header string) error {
	if m.VerifyFn != nil {
		return m.VerifyFn(payload, header)
	}
	return nil
}
