package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"loanlink-backend/internal/auth"
	"loanlink-backend/internal/domain/policy"
	domain "loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/metrics"
	userUC "loanlink-backend/internal/usecase/user"
	"loanlink-backend/pkg/id"
)

// ErrUserNotFound: a valid token whose user no longer exists.
var ErrUserNotFound = errors.New("user not found")

const defaultName = "Anonymous"

type Tokens interface {
	Issue(userID, email, role string) (string, *auth.Claims, error)
	Remaining(c *auth.Claims) time.Duration
}

type Revocations interface {
	BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

type Usecase struct {
	users   domain.Repository
	tokens  Tokens
	revoked Revocations
	now     func() time.Time
}

func NewUsecase(users domain.Repository, tokens Tokens, revoked Revocations) *Usecase {
	return &Usecase{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Resolve loads the live user behind a verified token and clears a lapsed
// suspension on the way.
func (u *Usecase) Resolve(ctx context.Context, email string) (policy.Identity, error) {
	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return policy.Identity{}, ErrUserNotFound
		}
		return policy.Identity{}, err
	}
	now := u.now()
	u.clearLapsed(ctx, usr, now)
	return IdentityOf(usr, now), nil
}

func (u *Usecase) IsRevoked(ctx context.Context, tokenID string) bool {
	if u.revoked == nil {
		return false
	}
	revoked, _ := u.revoked.IsAccessTokenBlacklisted(ctx, tokenID)
	return revoked
}

// clearLapsed is safe to run concurrently: the update is conditional and a
// losing request reloads whatever the winner stored.
func (u *Usecase) clearLapsed(ctx context.Context, usr *domain.User, now time.Time) {
	if !usr.SuspensionLapsed(now) {
		return
	}
	cleared, err := u.users.ClearLapsedSuspension(ctx, usr.ID, now)
	if err != nil {
		logger.WarnContext(ctx, "lazy unsuspend failed", "user_id", usr.ID, "error", err)
		return
	}
	if !cleared {
		// someone else wrote the row first, possibly a fresh suspension
		fresh, err := u.users.GetByID(ctx, usr.ID)
		if err != nil {
			logger.WarnContext(ctx, "reload after lazy unsuspend failed", "user_id", usr.ID, "error", err)
			return
		}
		*usr = *fresh
		return
	}
	usr.ClearSuspension()
	metrics.ObserveSuspensionsCleared("lazy", 1)
	logger.InfoContext(ctx, "lapsed suspension cleared", "user_id", usr.ID)
}

func IdentityOf(usr *domain.User, now time.Time) policy.Identity {
	id := policy.Identity{
		UserID: usr.ID,
		Email:  usr.Email,
		Role:   usr.Role,
	}
	if usr.IsSuspended(now) {
		id.IsSuspended = true
		id.SuspendUntil = usr.SuspendUntil
		id.SuspendReason = usr.SuspendReason
		id.SuspendFeedback = usr.SuspendFeedback
	}
	return id
}

// Login finds or provisions the account for an externally authenticated
// email and issues a session token.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	usr, err := u.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		usr, err = u.provision(ctx, email, in)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}
	return u.issueFor(ctx, usr)
}

func (u *Usecase) provision(ctx context.Context, email string, in LoginInput) (*domain.User, error) {
	usr := &domain.User{
		ID:       id.NewID32(),
		Email:    email,
		Name:     nameOr(in.Name),
		PhotoURL: strings.TrimSpace(in.PhotoURL),
		Role:     selfAssignable(in.Role),
		Status:   domain.StatusActive,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		// concurrent first login for the same email
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return u.users.GetByEmail(ctx, email)
		}
		return nil, err
	}
	logger.InfoContext(ctx, "user provisioned", "user_id", usr.ID, "role", usr.Role)
	return usr, nil
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if len(in.Password) < auth.MinPasswordLength {
		return nil, auth.ErrWeakPassword
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	usr := &domain.User{
		ID:           id.NewID32(),
		Email:        domain.NormalizeEmail(in.Email),
		Name:         nameOr(in.Name),
		PhotoURL:     strings.TrimSpace(in.PhotoURL),
		PasswordHash: hash,
		Role:         selfAssignable(in.Role),
		Status:       domain.StatusActive,
	}
	if usr.Role == domain.RoleUnset {
		usr.Role = domain.RoleBorrower
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return u.issueFor(ctx, usr)
}

func (u *Usecase) PasswordLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	usr, err := u.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, usr.PasswordHash) {
		return nil, domain.ErrBadCredentials
	}
	return u.issueFor(ctx, usr)
}

// Logout revokes the presented token for the rest of its lifetime.
func (u *Usecase) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || u.revoked == nil {
		return nil
	}
	return u.revoked.BlacklistAccessToken(ctx, claims.ID, u.tokens.Remaining(claims))
}

func (u *Usecase) issueFor(ctx context.Context, usr *domain.User) (*AuthResult, error) {
	now := u.now()
	u.clearLapsed(ctx, usr, now)
	if usr.IsSuspended(now) {
		return nil, &policy.SuspendedError{
			Reason:   usr.SuspendReason,
			Feedback: usr.SuspendFeedback,
			Until:    usr.SuspendUntil,
		}
	}
	token, claims, err := u.tokens.Issue(usr.ID, usr.Email, string(usr.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:      userUC.ToDTO(usr),
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func nameOr(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return defaultName
}

// selfAssignable drops anything a caller may not pick for themselves.
func selfAssignable(role string) domain.Role {
	r, err := domain.ParseRole(role)
	if err != nil || r == domain.RoleAdmin {
		return domain.RoleUnset
	}
	return r
}
