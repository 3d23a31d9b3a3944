package stripe

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82/webhook"

	domain "loanlink-backend/internal/domain/payment"
)

const (
	SignatureHeader  = "Stripe-Signature"
	DefaultTolerance = webhook.DefaultTolerance
)

var _ domain.EventVerifier = (*WebhookVerifier)(nil)

// WebhookVerifier only authenticates the payload; decoding the event is the
// caller's job.
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret, tolerance: DefaultTolerance}
}

func (v *WebhookVerifier) Verify(payload []byte, header string) error {
	if err := webhook.ValidatePayloadWithTolerance(payload, header, v.secret, v.tolerance); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}
	return nil
}
