// Package stripe adapts stripe-go's Checkout Sessions client and webhook
// signature check to the payment ports.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	domain "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/logger"
)

const DefaultAPIBase = stripeapi.APIURL

var _ domain.Processor = (*Client)(nil)

type Client struct {
	sessions *session.Client
}

// NewClient points at apiBase when set, so tests and stubs can stand in
// for api.stripe.com. Retries are left to the caller.
func NewClient(secretKey, apiBase string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	backend := stripeapi.GetBackendWithConfig(stripeapi.APIBackend, &stripeapi.BackendConfig{
		URL:               stripeapi.String(strings.TrimRight(apiBase, "/")),
		HTTPClient:        &http.Client{Timeout: 10 * time.Second},
		MaxNetworkRetries: stripeapi.Int64(0),
		LeveledLogger:     leveledLogger{},
	})
	return &Client{sessions: &session.Client{B: backend, Key: secretKey}}
}

func (c *Client) OpenCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.Checkout, error) {
	product := &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripeapi.String(req.ProductName),
	}
	if req.Description != "" {
		product.Description = stripeapi.String(req.Description)
	}
	params := &stripeapi.CheckoutSessionParams{
		Mode:               stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
		CustomerEmail:      stripeapi.String(req.CustomerEmail),
		SuccessURL:         stripeapi.String(req.SuccessURL),
		CancelURL:          stripeapi.String(req.CancelURL),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{{
			Quantity: stripeapi.Int64(1),
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripeapi.String(req.Currency),
				UnitAmount:  stripeapi.Int64(req.AmountMinor),
				ProductData: product,
			},
		}},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := c.sessions.New(params)
	if err != nil {
		return nil, upstream(err)
	}
	return &domain.Checkout{SessionID: s.ID, URL: s.URL}, nil
}

func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	params := &stripeapi.CheckoutSessionParams{}
	params.Context = ctx
	s, err := c.sessions.Get(sessionID, params)
	if err != nil {
		return nil, upstream(err)
	}
	return toSession(s), nil
}

func toSession(s *stripeapi.CheckoutSession) *domain.Session {
	out := &domain.Session{
		ID:            s.ID,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		URL:           s.URL,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntent = s.PaymentIntent.ID
	}
	return out
}

func upstream(err error) error {
	var se *stripeapi.Error
	if errors.As(err, &se) {
		return fmt.Errorf("%w: stripe %d %s: %s", domain.ErrUpstream, se.HTTPStatusCode, se.Type, se.Msg)
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
}

// leveledLogger routes stripe-go's own logging into the service logger.
type leveledLogger struct{}

func (leveledLogger) Debugf(format string, v ...interface{}) {
	logger.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (leveledLogger) Infof(format string, v ...interface{}) {
	logger.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (leveledLogger) Warnf(format string, v ...interface{}) {
	logger.Warn(fmt.Sprintf(format, v...), "component", "stripe")
}

func (leveledLogger) Errorf(format string, v ...interface{}) {
	logger.Error(fmt.Sprintf(format, v...), "component", "stripe")
}
