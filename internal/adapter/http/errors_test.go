package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanlink-backend/internal/auth"
	domainApp "loanlink-backend/internal/domain/application"
	domainPay "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/domain/policy"
	"loanlink-backend/internal/domain/user"
)

func render(t *testing.T, dev bool, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
	NewErrorHandler(dev)(err, c)
	return rec.Code, envelope(t, rec)
}

func TestErrorHandler_StatusTable(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{policy.ErrUnauthenticated, http.StatusUnauthorized},
		{auth.ErrTokenExpired, http.StatusUnauthorized},
		{policy.ErrForbidden, http.StatusForbidden},
		{&policy.SuspendedError{Reason: "r"}, http.StatusForbidden},
		{fmt.Errorf("wrapped: %w", domainApp.ErrNotFound), http.StatusNotFound},
		{domainApp.ErrInvalidTransition, http.StatusBadRequest},
		{domainPay.ErrPaymentIncomplete, http.StatusBadRequest},
		{user.ErrDuplicateEmail, http.StatusBadRequest},
		{user.ErrInvalidDuration, http.StatusBadRequest},
		{echo.NewHTTPError(http.StatusConflict, "request is already in progress"), http.StatusConflict},
		{echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{errors.New("surprise"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, body := render(t, false, tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["message"])
	}
}

func TestErrorHandler_RedactsServerErrorsOutsideDev(t *testing.T) {
	err := fmt.Errorf("%w: dial tcp 10.0.0.5:443", domainPay.ErrUpstream)

	code, body := render(t, false, err)
	require.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, body, "error")

	_, body = render(t, true, err)
	assert.Contains(t, body["error"], "10.0.0.5")
}

func TestErrorHandler_SuspensionDetails(t *testing.T) {
	until := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	code, body := render(t, false, &policy.SuspendedError{Reason: "spam", Feedback: "stop", Until: &until})
	require.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "spam", body["reason"])
	assert.Equal(t, "stop", body["feedback"])
	assert.Equal(t, "2030-01-02T03:04:05Z", body["suspendUntil"])
}

func TestErrorHandler_MessageOverride(t *testing.T) {
	code, body := render(t, false, forbiddenAs(policy.ErrForbidden, "You can only delete your own loans"))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "You can only delete your own loans", body["message"])

	assert.Nil(t, withMessage(nil, "ignored"))
	assert.Equal(t, domainApp.ErrNotFound, forbiddenAs(domainApp.ErrNotFound, "ignored"))
}
