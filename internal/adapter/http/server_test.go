package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"loanlink-backend/internal/auth"
	"loanlink-backend/internal/config"
	"loanlink-backend/internal/domain/policy"
	"loanlink-backend/internal/domain/uow"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/testutil/applicationmock"
	"loanlink-backend/internal/testutil/loanmock"
	"loanlink-backend/internal/testutil/paymentmock"
	"loanlink-backend/internal/testutil/uowmock"
	"loanlink-backend/internal/testutil/usermock"
	appUC "loanlink-backend/internal/usecase/application"
	"loanlink-backend/internal/usecase/dashboard"
	loanUC "loanlink-backend/internal/usecase/loan"
	payUC "loanlink-backend/internal/usecase/payment"
	"loanlink-backend/internal/usecase/session"
	userUC "loanlink-backend/internal/usecase/user"
)

var (
	adminID    = strings.Repeat("a", 32)
	borrowerID = strings.Repeat("b", 32)
	managerID  = strings.Repeat("c", 32)
	otherID    = strings.Repeat("d", 32)
)

// identities are keyed by email, the way the token resolves them.
var identities = map[string]policy.Identity{
	"admin@example.com":    {UserID: adminID, Email: "admin@example.com", Role: user.RoleAdmin},
	"borrower@example.com": {UserID: borrowerID, Email: "borrower@example.com", Role: user.RoleBorrower},
	"manager@example.com":  {UserID: managerID, Email: "manager@example.com", Role: user.RoleManager},
	"other@example.com":    {UserID: otherID, Email: "other@example.com", Role: user.RoleManager},
	"benched@example.com": {
		UserID: strings.Repeat("e", 32), Email: "benched@example.com", Role: user.RoleManager,
		IsSuspended: true, SuspendReason: "policy breach", SuspendFeedback: "appeal by email",
	},
}

type stubSessions struct {
	ids     map[string]policy.Identity
	revoked map[string]bool
}

func (s *stubSessions) Resolve(_ context.Context, email string) (policy.Identity, error) {
	id, ok := s.ids[email]
	if !ok {
		return policy.Identity{}, session.ErrUserNotFound
	}
	return id, nil
}

func (s *stubSessions) IsRevoked(_ context.Context, tokenID string) bool { return s.revoked[tokenID] }

type memRevocations struct{ ids map[string]time.Duration }

func (m *memRevocations) BlacklistAccessToken(_ context.Context, id string, ttl time.Duration) error {
	m.ids[id] = ttl
	return nil
}

func (m *memRevocations) IsAccessTokenBlacklisted(_ context.Context, id string) (bool, error) {
	_, ok := m.ids[id]
	return ok, nil
}

type fixture struct {
	e        *echo.Echo
	jwt      *auth.JWTService
	sessions *stubSessions
	revoked  *memRevocations
	mr       *miniredis.Miniredis

	users     *usermock.Repo
	loans     *loanmock.Repo
	apps      *applicationmock.Repo
	pays      *paymentmock.Repo
	processor *paymentmock.Processor
	verifier  *paymentmock.Verifier
}

// newFixture mounts the real router over mock repositories. Tests fill in
// the mock functions they need before sending requests.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := &fixture{
		jwt:       auth.NewJWTService("test-secret"),
		sessions:  &stubSessions{ids: identities, revoked: map[string]bool{}},
		revoked:   &memRevocations{ids: map[string]time.Duration{}},
		mr:        mr,
		users:     &usermock.Repo{},
		loans:     &loanmock.Repo{},
		apps:      &applicationmock.Repo{},
		pays:      &paymentmock.Repo{},
		processor: &paymentmock.Processor{},
		verifier:  &paymentmock.Verifier{},
	}
	tx := uowmock.Passthrough(uow.Repos{Users: f.users, Loans: f.loans, Applications: f.apps, Payments: f.pays})

	e := echo.New()
	Register(e, Deps{
		Tokens:     f.jwt,
		Sessions:   f.sessions,
		CookieName: "token",
		Redis:      rdb,
		IdempTTL:   time.Minute,
		Dev:        true,
	}, Handlers{
		Base:         NewHandler("test"),
		Auth:         NewAuthHandler(session.NewUsecase(f.users, f.jwt, f.revoked), config.CookieConfig{Name: "token", SameSite: http.SameSiteLaxMode}),
		Users:        NewUserHandler(userUC.NewUsecase(f.users)),
		Loans:        NewLoanHandler(loanUC.NewUsecase(f.loans)),
		Applications: NewApplicationHandler(appUC.NewUsecase(f.loans, f.apps, tx)),
		Payments:     NewPaymentHandler(payUC.NewUsecase(f.loans, f.apps, f.pays, tx, f.processor, f.verifier, "http://client.test"), "Stripe-Signature"),
		Dashboard:    NewDashboardHandler(dashboard.NewUsecase(f.users, f.loans, f.apps, f.pays)),
	})
	f.e = e
	return f
}

func (f *fixture) token(t *testing.T, email string) string {
	t.Helper()
	id := identities[email]
	tok, _, err := f.jwt.Issue(id.UserID, email, string(id.Role))
	require.NoError(t, err)
	return tok
}

// do sends a request as email; an empty email sends it anonymously.
func (f *fixture) do(t *testing.T, method, path, email string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		rd = mustJSON(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if email != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+f.token(t, email))
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// envelope decodes the response body into a generic map.
func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), "body: %s", rec.Body.String())
	return m
}

func detailsOf(t *testing.T, rec *httptest.ResponseRecorder) []FieldError {
	t.Helper()
	var body struct {
		Details []FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Details
}
