package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanlink-backend/internal/adapter/middleware"
	"loanlink-backend/internal/auth"
	domainApp "loanlink-backend/internal/domain/application"
	domainLoan "loanlink-backend/internal/domain/loan"
	domainPay "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/domain/policy"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/logger"
	appUC "loanlink-backend/internal/usecase/application"
	loanUC "loanlink-backend/internal/usecase/loan"
	payUC "loanlink-backend/internal/usecase/payment"
	"loanlink-backend/internal/usecase/session"
)

type mapping struct {
	target  error
	code    int
	message string
}

// errorTable is checked in order; the first errors.Is match wins.
var errorTable = []mapping{
	{auth.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
	{auth.ErrTokenInvalid, http.StatusUnauthorized, "Invalid token"},
	{policy.ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized access"},
	{session.ErrUserNotFound, http.StatusUnauthorized, "User not found"},
	{user.ErrBadCredentials, http.StatusUnauthorized, "Invalid email or password"},

	{user.ErrSuspended, http.StatusForbidden, "Your account is suspended"},
	{policy.ErrForbidden, http.StatusForbidden, "Access denied"},

	{domainLoan.ErrNotFound, http.StatusNotFound, "Loan not found"},
	{domainApp.ErrNotFound, http.StatusNotFound, "Application not found"},
	{domainPay.ErrNotFound, http.StatusNotFound, "Payment not found"},
	{user.ErrNotFound, http.StatusNotFound, "User not found"},

	{domainApp.ErrInvalidTransition, http.StatusBadRequest, "Application is no longer pending"},
	{domainApp.ErrInvalidState, http.StatusBadRequest, "Can only cancel pending applications"},
	{appUC.ErrInvalidStatus, http.StatusBadRequest, "Invalid application status"},
	{domainPay.ErrPaymentIncomplete, http.StatusBadRequest, "Payment not completed"},
	{domainPay.ErrInvalidSignature, http.StatusBadRequest, "Webhook Error: invalid signature"},
	{domainPay.ErrBadMetadata, http.StatusBadRequest, "Checkout session metadata is incomplete"},
	{payUC.ErrMalformedEvent, http.StatusBadRequest, "Webhook Error: malformed payload"},
	{payUC.ErrAmountExceedsLimit, http.StatusBadRequest, "Requested amount exceeds the loan's maximum limit"},
	{loanUC.ErrInvalidTerms, http.StatusBadRequest, "Invalid loan terms"},
	{user.ErrDuplicateEmail, http.StatusBadRequest, "Email already exists"},
	{user.ErrRoleAlreadySet, http.StatusBadRequest, "Role already selected"},
	{user.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{user.ErrInvalidDuration, http.StatusBadRequest, "Suspension duration is too long"},
	{auth.ErrWeakPassword, http.StatusBadRequest, "Password must be at least 8 characters"},
}

// messageError replaces the table message for one call site.
type messageError struct {
	err error
	msg string
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.err }

// withMessage keeps err's status but answers with msg. A nil err stays nil.
func withMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &messageError{err: err, msg: msg}
}

// forbiddenAs rewords an ownership refusal; other errors pass through.
func forbiddenAs(err error, msg string) error {
	if errors.Is(err, policy.ErrForbidden) {
		return withMessage(err, msg)
	}
	return err
}

func statusOf(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.code, m.message
		}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, "API endpoint not found"
		case http.StatusMethodNotAllowed:
			return he.Code, "Method not allowed"
		}
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}
	return http.StatusInternalServerError, "Internal server error"
}

// NewErrorHandler renders every error as the JSON envelope. Outside dev the
// detail of a 500 is logged but not returned.
func NewErrorHandler(dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *validationError
		if errors.As(err, &ve) {
			_ = failure(c, http.StatusBadRequest, "validation failed", echo.Map{"details": ve.details})
			return
		}

		code, msg := statusOf(err)
		var me *messageError
		if errors.As(err, &me) {
			msg = me.msg
		}

		extra := echo.Map{}
		var se *policy.SuspendedError
		if errors.As(err, &se) {
			extra["reason"] = se.Reason
			extra["feedback"] = se.Feedback
			if se.Until != nil {
				extra["suspendUntil"] = se.Until
			}
		}

		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"request_id", middleware.GetRequestID(c),
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err)
			if dev {
				extra["error"] = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = failure(c, code, msg, extra)
	}
}
