package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"loanlink-backend/internal/auth"
	"loanlink-backend/internal/domain/policy"
	domain "loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/testutil/usermock"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type revocations struct {
	mu  sync.Mutex
	ids map[string]time.Duration
}

func (r *revocations) BlacklistAccessToken(_ context.Context, id string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ids == nil {
		r.ids = map[string]time.Duration{}
	}
	r.ids[id] = ttl
	return nil
}

func (r *revocations) IsAccessTokenBlacklisted(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[id]
	return ok, nil
}

func newUsecase(repo *usermock.Repo) (*Usecase, *auth.JWTService, *revocations) {
	jwtSvc := auth.NewJWTService("test-secret")
	rev := &revocations{}
	uc := NewUsecase(repo, jwtSvc, rev)
	uc.now = func() time.Time { return fixedNow }
	return uc, jwtSvc, rev
}

func byEmail(users ...*domain.User) *usermock.Repo {
	m := map[string]*domain.User{}
	for _, u := range users {
		m[u.Email] = u
	}
	return &usermock.Repo{
		GetByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if u, ok := m[email]; ok {
				return u, nil
			}
			return nil, domain.ErrNotFound
		},
		CreateFn: func(_ context.Context, u *domain.User) error {
			if _, ok := m[u.Email]; ok {
				return domain.ErrDuplicateEmail
			}
			m[u.Email] = u
			return nil
		},
	}
}

func TestUsecase_Resolve(t *testing.T) {
	past := fixedNow.Add(-time.Second)
	future := fixedNow.Add(time.Hour)

	tests := []struct {
		name          string
		user          *domain.User
		clearResult   bool
		clearErr      error
		reloaded      *domain.User
		wantErr       error
		wantSuspended bool
		wantCleared   bool
	}{
		{
			name: "active user",
			user: &domain.User{ID: "u1", Email: "a@x.io", Role: domain.RoleBorrower, Status: domain.StatusActive},
		},
		{
			name:        "lapsed suspension is cleared once",
			user:        &domain.User{ID: "u1", Email: "a@x.io", Role: domain.RoleBorrower, Status: domain.StatusSuspended, SuspendUntil: &past},
			clearResult: true,
			wantCleared: true,
		},
		{
			name:        "concurrent clear already won",
			user:        &domain.User{ID: "u1", Email: "a@x.io", Role: domain.RoleBorrower, Status: domain.StatusSuspended, SuspendUntil: &past},
			clearResult: false,
			reloaded:    &domain.User{ID: "u1", Email: "a@x.io", Role: domain.RoleBorrower, Status: domain.StatusActive},
			wantCleared: true,
		},
		{
			name:          "re-suspended while the clear was in flight",
			user:          &domain.User{ID: "u1", Email: "a@x.io", Role: domain.RoleBorrower, Status: domain.StatusSuspended, SuspendUntil: &past},
			clearResult:   false,
			reloaded:      &domain.User{ID: "u1", Email: "a@x.io", Role: domain.RoleBorrower, Status: domain.StatusSuspended, SuspendUntil: &future, SuspendReason: "repeat offence"},
			wantSuspended: true,
		},
		{
			name:          "future suspension kept",
			user:          &domain.User{ID: "u1", Email: "a@x.io", Role: domain.RoleBorrower, Status: domain.StatusSuspended, SuspendUntil: &future, SuspendReason: "spam"},
			wantSuspended: true,
		},
		{
			name:          "indefinite suspension kept",
			user:          &domain.User{ID: "u1", Email: "a@x.io", Role: domain.RoleManager, Status: domain.StatusSuspended},
			wantSuspended: true,
		},
		{
			name:    "user missing",
			wantErr: ErrUserNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var repo *usermock.Repo
			if tc.user != nil {
				repo = byEmail(tc.user)
			} else {
				repo = byEmail()
			}
			clearCalls := 0
			repo.ClearLapsedSuspensionFn = func(_ context.Context, id string, now time.Time) (bool, error) {
				clearCalls++
				assert.Equal(t, fixedNow, now)
				return tc.clearResult, tc.clearErr
			}
			repo.GetByIDFn = func(_ context.Context, id string) (*domain.User, error) {
				require.NotNil(t, tc.reloaded, "unexpected reload of %s", id)
				return tc.reloaded, nil
			}
			uc, _, _ := newUsecase(repo)

			got, err := uc.Resolve(context.Background(), "a@x.io")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSuspended, got.IsSuspended)
			assert.Equal(t, tc.user.Role, got.Role)
			switch {
			case tc.wantCleared:
				assert.Equal(t, 1, clearCalls)
				assert.Equal(t, domain.StatusActive, tc.user.Status)
				assert.Nil(t, tc.user.SuspendUntil)
			case tc.reloaded != nil:
				assert.Equal(t, 1, clearCalls)
			default:
				assert.Zero(t, clearCalls)
			}
			if tc.wantSuspended {
				assert.Equal(t, tc.user.SuspendReason, got.SuspendReason)
			}
		})
	}
}

func TestUsecase_Resolve_StoreError(t *testing.T) {
	boom := errors.New("db down")
	repo := &usermock.Repo{GetByEmailFn: func(context.Context, string) (*domain.User, error) { return nil, boom }}
	uc, _, _ := newUsecase(repo)
	_, err := uc.Resolve(context.Background(), "a@x.io")
	assert.ErrorIs(t, err, boom)
}

func TestUsecase_Login(t *testing.T) {
	future := fixedNow.Add(time.Hour)
	t.Run("provisions unknown email with requested role", func(t *testing.T) {
		repo := byEmail()
		uc, jwtSvc, _ := newUsecase(repo)

		res, err := uc.Login(context.Background(), LoginInput{Email: " New@X.io ", Role: "manager"})
		require.NoError(t, err)
		assert.Equal(t, "new@x.io", res.User.Email)
		assert.Equal(t, "manager", res.User.Role)
		assert.Equal(t, defaultName, res.User.Name)

		claims, err := jwtSvc.ValidateToken(res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, claims.UserID)
	})

	t.Run("admin cannot be requested", func(t *testing.T) {
		uc, _, _ := newUsecase(byEmail())
		res, err := uc.Login(context.Background(), LoginInput{Email: "x@x.io", Role: "admin"})
		require.NoError(t, err)
		assert.Equal(t, "", res.User.Role)
	})

	t.Run("existing user keeps role", func(t *testing.T) {
		existing := &domain.User{ID: "u1", Email: "a@x.io", Role: domain.RoleAdmin, Status: domain.StatusActive}
		uc, _, _ := newUsecase(byEmail(existing))
		res, err := uc.Login(context.Background(), LoginInput{Email: "a@x.io", Role: "borrower"})
		require.NoError(t, err)
		assert.Equal(t, "admin", res.User.Role)
	})

	t.Run("suspended user rejected with reason", func(t *testing.T) {
		existing := &domain.User{
			ID: "u1", Email: "a@x.io", Status: domain.StatusSuspended,
			SuspendReason: "fraud", SuspendFeedback: "contact support", SuspendUntil: &future,
		}
		uc, _, _ := newUsecase(byEmail(existing))
		_, err := uc.Login(context.Background(), LoginInput{Email: "a@x.io"})
		require.ErrorIs(t, err, domain.ErrSuspended)
		var se *policy.SuspendedError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "fraud", se.Reason)
		assert.Equal(t, "contact support", se.Feedback)
	})
}

func TestUsecase_RegisterAndPasswordLogin(t *testing.T) {
	prev := auth.PasswordCost
	auth.PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { auth.PasswordCost = prev })

	repo := byEmail()
	uc, _, _ := newUsecase(repo)
	ctx := context.Background()

	res, err := uc.Register(ctx, RegisterInput{Email: "Jane@x.io", Password: "longenough", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "borrower", res.User.Role)
	assert.NotEmpty(t, res.Token)

	_, err = uc.Register(ctx, RegisterInput{Email: "jane@x.io", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = uc.Register(ctx, RegisterInput{Email: "short@x.io", Password: "short"})
	assert.ErrorIs(t, err, auth.ErrWeakPassword)

	_, err = uc.PasswordLogin(ctx, "JANE@x.io", "longenough")
	assert.NoError(t, err)

	_, err = uc.PasswordLogin(ctx, "jane@x.io", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	_, err = uc.PasswordLogin(ctx, "nobody@x.io", "whatever")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestUsecase_Logout(t *testing.T) {
	uc, jwtSvc, rev := newUsecase(byEmail())
	token, _, err := jwtSvc.Issue("u1", "a@x.io", "borrower")
	require.NoError(t, err)
	claims, err := jwtSvc.ValidateToken(token)
	require.NoError(t, err)

	assert.False(t, uc.IsRevoked(context.Background(), claims.ID))
	require.NoError(t, uc.Logout(context.Background(), claims))
	assert.True(t, uc.IsRevoked(context.Background(), claims.ID))
	assert.Greater(t, rev.ids[claims.ID], time.Duration(0))
}
