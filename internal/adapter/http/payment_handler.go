package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainPay "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/usecase/payment"
)

// processors keep webhook payloads well under this
const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	uc              *payment.Usecase
	signatureHeader string
}

func NewPaymentHandler(uc *payment.Usecase, signatureHeader string) *PaymentHandler {
	return &PaymentHandler{uc: uc, signatureHeader: signatureHeader}
}

type applicationDraftReq struct {
	FirstName     string          `json:"firstName"     validate:"required,max=100"`
	LastName      string          `json:"lastName"      validate:"required,max=100"`
	ContactNumber string          `json:"contactNumber" validate:"required,max=40"`
	NationalID    string          `json:"nationalId"    validate:"required,max=60"`
	IncomeSource  string          `json:"incomeSource"  validate:"required,max=200"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome" validate:"dgte=0,dec2"`
	LoanAmount    decimal.Decimal `json:"loanAmount"    validate:"dgt=0,dec2"`
	Reason        string          `json:"reason"        validate:"max=1000"`
	Address       string          `json:"address"       validate:"max=500"`
	ExtraNotes    string          `json:"extraNotes"    validate:"max=1000"`
}

type checkoutReq struct {
	LoanID          string              `json:"loanId"          validate:"required,hex32"`
	ApplicationData applicationDraftReq `json:"applicationData" validate:"required"`
}

type confirmSessionReq struct {
	SessionID string `json:"sessionId" validate:"required,max=255"`
}

func (r applicationDraftReq) draft() domainPay.Draft {
	return domainPay.Draft{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		ContactNumber: r.ContactNumber,
		NationalID:    r.NationalID,
		IncomeSource:  r.IncomeSource,
		MonthlyIncome: r.MonthlyIncome,
		LoanAmount:    r.LoanAmount,
		Reason:        r.Reason,
		Address:       r.Address,
		ExtraNotes:    r.ExtraNotes,
	}
}

// Checkout godoc
// @Summary  Open a hosted checkout for the application fee
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    Idempotency-Key header string      true "uuid or 32-char hex"
// @Param    body            body   checkoutReq true "loan and application form"
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Router   /api/payments/checkout [post]
func (h *PaymentHandler) Checkout(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	var req checkoutReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	co, err := h.uc.OpenCheckout(c.Request().Context(), who, payment.CheckoutInput{
		LoanID: req.LoanID,
		Draft:  req.ApplicationData.draft(),
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"sessionId": co.SessionID, "url": co.URL})
}

// ConfirmSession godoc
// @Summary  Record a paid checkout after the redirect back
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    body body confirmSessionReq true "session"
// @Success  200 {object} map[string]any "already processed"
// @Success  201 {object} map[string]any "processed now"
// @Failure  400 {object} map[string]any "not paid"
// @Router   /api/payments/confirm-session [post]
func (h *PaymentHandler) ConfirmSession(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	var req confirmSessionReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	res, err := h.uc.ConfirmSession(c.Request().Context(), who, req.SessionID)
	if err != nil {
		return err
	}
	body := echo.Map{"payment": res.Receipt.PaymentDTO, "application": res.Receipt.Application}
	if res.Created {
		return success(c, http.StatusCreated, "Payment processed successfully", body)
	}
	return success(c, http.StatusOK, "Payment already processed", body)
}

// Webhook godoc
// @Summary  Processor event callback
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    Stripe-Signature header string false "t=...,v1=..."
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  500 {object} map[string]any
// @Router   /api/payments/webhook [post]
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxWebhookBody))
	if err != nil {
		return withMessage(echo.NewHTTPError(http.StatusBadRequest), "Webhook Error: "+err.Error())
	}
	res, err := h.uc.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get(h.signatureHeader))
	switch {
	case errors.Is(err, domainPay.ErrInvalidSignature), errors.Is(err, payment.ErrMalformedEvent):
		return withMessage(err, "Webhook Error: "+err.Error())
	case err != nil:
		return withMessage(err, "Failed to process payment")
	}
	logger.InfoContext(c.Request().Context(), "webhook handled",
		"event_type", res.EventType, "handled", res.Handled, "created", res.Created)
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

// History godoc
// @Summary  The caller's payments, newest first
// @Tags     payments
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/payments/history [get]
func (h *PaymentHandler) History(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	pays, err := h.uc.History(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"payments": pays})
}

// Receipt godoc
// @Summary  Receipt for a checkout session
// @Tags     payments
// @Produce  json
// @Param    sessionId path string true "checkout session id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /api/payments/receipt/{sessionId} [get]
func (h *PaymentHandler) Receipt(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	r, err := h.uc.Receipt(c.Request().Context(), who, c.Param("sessionId"))
	switch {
	case errors.Is(err, domainPay.ErrNotFound):
		return withMessage(err, "Payment receipt not found")
	case err != nil:
		return forbiddenAs(err, "Unauthorized access")
	}
	return success(c, http.StatusOK, "", echo.Map{"payment": r})
}

// ByApplication godoc
// @Summary  Payment made for an application
// @Tags     payments
// @Produce  json
// @Param    applicationId path string true "application id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /api/payments/application/{applicationId} [get]
func (h *PaymentHandler) ByApplication(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	appID, err := pathID(c, "applicationId")
	if err != nil {
		return err
	}
	r, err := h.uc.ByApplication(c.Request().Context(), who, appID)
	switch {
	case errors.Is(err, domainPay.ErrNotFound):
		return withMessage(err, "Payment not found for this application")
	case err != nil:
		return forbiddenAs(err, "Unauthorized access")
	}
	return success(c, http.StatusOK, "", echo.Map{"payment": r})
}
