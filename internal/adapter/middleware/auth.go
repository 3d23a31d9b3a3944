package middleware

import (
	"context"
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"loanlink-backend/internal/auth"
	"loanlink-backend/internal/domain/policy"
	"loanlink-backend/internal/domain/user"
)

const (
	claimsKey   = "user"
	identityKey = "identity"
)

type TokenValidator interface {
	ValidateToken(raw string) (*auth.Claims, error)
}

// SessionResolver turns verified claims into the caller's live identity.
type SessionResolver interface {
	Resolve(ctx context.Context, email string) (policy.Identity, error)
	IsRevoked(ctx context.Context, tokenID string) bool
}

// Authenticate accepts the session token from the named cookie or from an
// Authorization bearer header, rejects revoked tokens and stores the
// resolved identity on the context.
func Authenticate(tokens TokenValidator, sessions SessionResolver, cookieName string) echo.MiddlewareFunc {
	parse := echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsKey,
		TokenLookup: "cookie:" + cookieName + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(_ echo.Context, raw string) (interface{}, error) {
			return tokens.ValidateToken(raw)
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			if errors.Is(err, auth.ErrTokenExpired) {
				return auth.ErrTokenExpired
			}
			return policy.ErrUnauthenticated
		},
	})
	resolve := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsKey).(*auth.Claims)
			if !ok {
				return policy.ErrUnauthenticated
			}
			ctx := c.Request().Context()
			if claims.ID != "" && sessions.IsRevoked(ctx, claims.ID) {
				return policy.ErrUnauthenticated
			}
			id, err := sessions.Resolve(ctx, claims.Email)
			if err != nil {
				return err
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(resolve(next))
	}
}

// SetIdentity attaches a resolved caller to the request context.
func SetIdentity(c echo.Context, id policy.Identity) { c.Set(identityKey, id) }

func IdentityFrom(c echo.Context) (policy.Identity, bool) {
	id, ok := c.Get(identityKey).(policy.Identity)
	return id, ok
}

func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	return claims, ok
}

// RequireRole admits callers whose role meets or exceeds role.
func RequireRole(role user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return policy.ErrUnauthenticated
			}
			if err := policy.RequireRole(id, role); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireActive blocks suspended callers from mutations.
func RequireActive() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return policy.ErrUnauthenticated
			}
			if err := policy.RequireActive(id); err != nil {
				return err
			}
			return next(c)
		}
	}
}
