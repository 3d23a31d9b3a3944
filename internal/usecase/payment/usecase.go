package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	domainApp "loanlink-backend/internal/domain/application"
	domainLoan "loanlink-backend/internal/domain/loan"
	domain "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/domain/policy"
	"loanlink-backend/internal/domain/uow"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/metrics"
	appUC "loanlink-backend/internal/usecase/application"
	"loanlink-backend/pkg/id"
)

var (
	// ErrAmountExceedsLimit: requested amount above the loan's max limit.
	ErrAmountExceedsLimit = errors.New("requested amount exceeds the loan's maximum limit")
	ErrMalformedEvent     = errors.New("malformed webhook payload")
)

type Usecase struct {
	loans     domainLoan.Repository
	apps      domainApp.Repository
	pays      domain.Repository
	uow       uow.UnitOfWork
	processor domain.Processor
	verifier  domain.EventVerifier
	clientURL string
	now       func() time.Time
}

// NewUsecase: a nil verifier accepts webhook payloads unverified.
func NewUsecase(
	loans domainLoan.Repository,
	apps domainApp.Repository,
	pays domain.Repository,
	tx uow.UnitOfWork,
	processor domain.Processor,
	verifier domain.EventVerifier,
	clientURL string,
) *Usecase {
	return &Usecase{
		loans:     loans,
		apps:      apps,
		pays:      pays,
		uow:       tx,
		processor: processor,
		verifier:  verifier,
		clientURL: strings.TrimRight(clientURL, "/"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// OpenCheckout starts the fee payment. Nothing is stored until the
// processor confirms the session as paid.
func (u *Usecase) OpenCheckout(ctx context.Context, actor policy.Identity, in CheckoutInput) (*CheckoutDTO, error) {
	if err := policy.RequireRole(actor, user.RoleBorrower); err != nil {
		return nil, err
	}
	if err := policy.RequireActive(actor); err != nil {
		return nil, err
	}
	l, err := u.loans.GetByID(ctx, in.LoanID)
	if err != nil {
		return nil, err
	}
	if in.Draft.LoanAmount.GreaterThan(l.MaxLoanLimit) {
		return nil, ErrAmountExceedsLimit
	}

	meta := domain.CheckoutMetadata{
		UserEmail:     actor.Email,
		UserID:        actor.UserID,
		LoanID:        l.ID,
		LoanTitle:     l.Title,
		ApplicantName: strings.TrimSpace(in.Draft.FirstName + " " + in.Draft.LastName),
		InterestRate:  l.InterestRate,
		Draft:         in.Draft,
	}
	md, err := meta.Encode()
	if err != nil {
		return nil, err
	}

	co, err := u.processor.OpenCheckout(ctx, domain.CheckoutRequest{
		CustomerEmail: actor.Email,
		ProductName:   "Loan Application Fee - " + l.Title,
		Description:   fmt.Sprintf("Application fee for %s loan of $%s", l.Title, in.Draft.LoanAmount.StringFixed(2)),
		AmountMinor:   domain.FeeMinor,
		Currency:      domain.Currency,
		SuccessURL:    u.clientURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     u.clientURL + "/apply-loan/" + l.ID,
		Metadata:      md,
	})
	if err != nil {
		logger.ErrorContext(ctx, "open checkout failed", "loan_id", l.ID, "error", err)
		return nil, upstream(err)
	}
	return &CheckoutDTO{SessionID: co.SessionID, URL: co.URL}, nil
}

// ConfirmSession is the client-side poll after the processor redirects
// back. It converges with the webhook on the same records.
func (u *Usecase) ConfirmSession(ctx context.Context, actor policy.Identity, sessionID string) (*MaterializeResult, error) {
	existing, err := u.pays.GetBySessionID(ctx, sessionID)
	switch {
	case err == nil:
		if err := policy.RequireOwnerOrAdmin(actor, existing.UserID); err != nil {
			return nil, err
		}
		metrics.ObserveMaterialization(metrics.SourcePoll, metrics.OutcomeReplayed)
		return &MaterializeResult{Receipt: u.receiptFor(ctx, existing)}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	s, err := u.processor.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, upstream(err)
	}
	if !s.Paid() {
		return nil, domain.ErrPaymentIncomplete
	}
	if s.Metadata[domain.MetaUserID] != actor.UserID {
		return nil, policy.ErrForbidden
	}
	return u.Materialize(ctx, s, metrics.SourcePoll)
}

// HandleWebhook authenticates and applies one processor event. Only a
// completed, paid checkout writes anything; other events are acknowledged.
func (u *Usecase) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) (*WebhookResult, error) {
	if u.verifier != nil {
		if err := u.verifier.Verify(payload, signatureHeader); err != nil {
			metrics.ObserveWebhook("unknown", "invalid_signature")
			if errors.Is(err, domain.ErrInvalidSignature) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
		}
	} else {
		logger.WarnContext(ctx, "webhook signature verification is disabled")
	}

	var ev domain.Event
	if err := json.Unmarshal(payload, &ev); err != nil || ev.Type == "" {
		metrics.ObserveWebhook("unknown", "malformed")
		return nil, ErrMalformedEvent
	}
	res := &WebhookResult{EventType: ev.Type}
	if ev.Type != domain.EventCheckoutCompleted {
		metrics.ObserveWebhook(ev.Type, "ignored")
		return res, nil
	}
	s := ev.Data.Object
	if !s.Paid() {
		logger.InfoContext(ctx, "completed checkout not paid yet", "session_id", s.ID, "payment_status", s.PaymentStatus)
		metrics.ObserveWebhook(ev.Type, "unpaid")
		return res, nil
	}

	out, err := u.Materialize(ctx, &s, metrics.SourceWebhook)
	if err != nil {
		metrics.ObserveWebhook(ev.Type, "failed")
		return nil, err
	}
	metrics.ObserveWebhook(ev.Type, "processed")
	res.Handled = true
	res.Created = out.Created
	return res, nil
}

// Materialize turns a paid session into exactly one application and one
// payment, however many times and from however many callers it runs. The
// unique keys on the payment decide concurrent races; the loser reads the
// winner back.
func (u *Usecase) Materialize(ctx context.Context, s *domain.Session, source string) (*MaterializeResult, error) {
	if p, err := u.existing(ctx, s); err != nil || p != nil {
		if err != nil {
			metrics.ObserveMaterialization(source, metrics.OutcomeFailed)
			return nil, err
		}
		metrics.ObserveMaterialization(source, metrics.OutcomeReplayed)
		return &MaterializeResult{Receipt: u.receiptFor(ctx, p)}, nil
	}

	meta, err := domain.DecodeMetadata(s.Metadata)
	if err != nil {
		metrics.ObserveMaterialization(source, metrics.OutcomeFailed)
		logger.ErrorContext(ctx, "session metadata unusable", "session_id", s.ID, "error", err)
		return nil, err
	}

	var (
		pay *domain.Payment
		app *domainApp.Application
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.FindOrphanPaid(ctx, domainApp.DedupeKey{
			UserID:    meta.UserID,
			LoanID:    meta.LoanID,
			FirstName: meta.Draft.FirstName,
			LastName:  meta.Draft.LastName,
		})
		switch {
		case errors.Is(err, domainApp.ErrNotFound):
			a = newApplication(meta)
			if err := r.Applications.Create(ctx, a); err != nil {
				return err
			}
		case err != nil:
			return err
		}
		p := newPayment(s, meta, a.ID)
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		pay, app = p, a
		return nil
	})
	if errors.Is(err, domain.ErrDuplicate) {
		winner, rerr := u.existing(ctx, s)
		if rerr == nil && winner != nil {
			metrics.ObserveMaterialization(source, metrics.OutcomeReplayed)
			return &MaterializeResult{Receipt: u.receiptFor(ctx, winner)}, nil
		}
		if rerr != nil {
			err = rerr
		}
	}
	if err != nil {
		metrics.ObserveMaterialization(source, metrics.OutcomeFailed)
		logger.ErrorContext(ctx, "materialize failed", "session_id", s.ID, "source", source, "error", err)
		return nil, err
	}

	metrics.ObserveMaterialization(source, metrics.OutcomeCreated)
	logger.InfoContext(ctx, "application paid", "session_id", s.ID, "application_id", app.ID, "source", source)
	appDTO := appUC.ToDTO(app)
	return &MaterializeResult{
		Receipt: ReceiptDTO{PaymentDTO: toDTO(pay), Application: &appDTO},
		Created: true,
	}, nil
}

// existing looks a session up by session id, then by transaction id.
func (u *Usecase) existing(ctx context.Context, s *domain.Session) (*domain.Payment, error) {
	p, err := u.pays.GetBySessionID(ctx, s.ID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	p, err = u.pays.GetByTransactionID(ctx, s.TransactionID())
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return nil, nil
}

func newApplication(meta domain.CheckoutMetadata) *domainApp.Application {
	d := meta.Draft
	return &domainApp.Application{
		ID:            id.NewID32(),
		UserID:        meta.UserID,
		UserEmail:     meta.UserEmail,
		LoanID:        meta.LoanID,
		LoanTitle:     meta.LoanTitle,
		InterestRate:  meta.InterestRate,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		ContactNumber: d.ContactNumber,
		NationalID:    d.NationalID,
		IncomeSource:  d.IncomeSource,
		MonthlyIncome: d.MonthlyIncome,
		LoanAmount:    d.LoanAmount,
		Reason:        d.Reason,
		Address:       d.Address,
		ExtraNotes:    d.ExtraNotes,
		Status:        domainApp.StatusPending,
		FeeStatus:     domainApp.FeePaid,
	}
}

func newPayment(s *domain.Session, meta domain.CheckoutMetadata, applicationID string) *domain.Payment {
	currency := s.Currency
	if currency == "" {
		currency = domain.Currency
	}
	return &domain.Payment{
		ID:              id.NewID32(),
		UserID:          meta.UserID,
		UserEmail:       meta.UserEmail,
		ApplicationID:   applicationID,
		LoanID:          meta.LoanID,
		LoanTitle:       meta.LoanTitle,
		Amount:          domain.AmountFromMinor(s.AmountTotal),
		Currency:        currency,
		TransactionID:   s.TransactionID(),
		StripeSessionID: s.ID,
		Status:          domain.StatusCompleted,
		PaymentMethod:   domain.MethodStripe,
	}
}

func (u *Usecase) History(ctx context.Context, actor policy.Identity) ([]PaymentDTO, error) {
	ps, err := u.pays.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, 0, len(ps))
	for i := range ps {
		out = append(out, toDTO(&ps[i]))
	}
	return out, nil
}

// Receipt is visible to the payer only.
func (u *Usecase) Receipt(ctx context.Context, actor policy.Identity, sessionID string) (*ReceiptDTO, error) {
	p, err := u.pays.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if p.UserID != actor.UserID {
		return nil, policy.ErrForbidden
	}
	r := u.receiptFor(ctx, p)
	return &r, nil
}

func (u *Usecase) ByApplication(ctx context.Context, actor policy.Identity, applicationID string) (*ReceiptDTO, error) {
	p, err := u.pays.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwnerOrAdmin(actor, p.UserID); err != nil {
		return nil, err
	}
	r := u.receiptFor(ctx, p)
	return &r, nil
}

func (u *Usecase) receiptFor(ctx context.Context, p *domain.Payment) ReceiptDTO {
	r := ReceiptDTO{PaymentDTO: toDTO(p)}
	a, err := u.apps.GetByID(ctx, p.ApplicationID)
	if err != nil {
		if !errors.Is(err, domainApp.ErrNotFound) {
			logger.WarnContext(ctx, "receipt application lookup failed", "application_id", p.ApplicationID, "error", err)
		}
		return r
	}
	dto := appUC.ToDTO(a)
	r.Application = &dto
	return r
}

func upstream(err error) error {
	if errors.Is(err, domain.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
}
