package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"loanlink-backend/internal/domain/policy"
	domain "loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/metrics"
)

type Usecase struct {
	users domain.Repository
	now   func() time.Time
}

func NewUsecase(users domain.Repository) *Usecase {
	return &Usecase{users: users, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) Me(ctx context.Context, actor policy.Identity) (*UserDTO, error) {
	usr, err := u.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(usr)
	return &dto, nil
}

func (u *Usecase) UpdateProfile(ctx context.Context, actor policy.Identity, in ProfileInput) (*UserDTO, error) {
	if err := policy.RequireActive(actor); err != nil {
		return nil, err
	}
	usr, err := u.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		usr.Name = strings.TrimSpace(*in.Name)
	}
	if in.PhotoURL != nil {
		usr.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	dto := ToDTO(usr)
	return &dto, nil
}

// SelectRole is the one-time role choice of an externally provisioned
// account. Admin cannot be self-selected.
func (u *Usecase) SelectRole(ctx context.Context, actor policy.Identity, role string) (*UserDTO, error) {
	r, err := domain.ParseRole(role)
	if err != nil || r == domain.RoleAdmin {
		return nil, domain.ErrInvalidRole
	}
	usr, err := u.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if usr.Role != domain.RoleUnset {
		return nil, domain.ErrRoleAlreadySet
	}
	usr.Role = r
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	dto := ToDTO(usr)
	return &dto, nil
}

func (u *Usecase) ListUsers(ctx context.Context, actor policy.Identity, role string) ([]UserDTO, error) {
	if err := policy.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	f := domain.Filter{}
	if role != "" {
		r, err := domain.ParseRole(role)
		if err != nil {
			return nil, err
		}
		f.Role = r
	}
	us, err := u.users.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toDTOs(us), nil
}

func (u *Usecase) ListBorrowers(ctx context.Context, actor policy.Identity) ([]UserDTO, error) {
	if err := policy.RequireRole(actor, domain.RoleManager); err != nil {
		return nil, err
	}
	us, err := u.users.List(ctx, domain.Filter{Role: domain.RoleBorrower})
	if err != nil {
		return nil, err
	}
	return toDTOs(us), nil
}

func (u *Usecase) ChangeRole(ctx context.Context, actor policy.Identity, targetID, role string) (*UserDTO, error) {
	if err := policy.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := policy.ForbidSelfAction(actor, targetID); err != nil {
		return nil, err
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	target, err := u.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	target.Role = r
	if err := u.users.Save(ctx, target); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "user role changed", "actor", actor.UserID, "target", targetID, "role", r)
	dto := ToDTO(target)
	return &dto, nil
}

func (u *Usecase) Suspend(ctx context.Context, actor policy.Identity, targetID string, in SuspendInput) (*UserDTO, error) {
	target, err := u.moderationTarget(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}
	if in.DurationMinutes > domain.MaxSuspendMinutes {
		return nil, domain.ErrInvalidDuration
	}
	now := u.now()
	var until *time.Time
	if in.DurationMinutes > 0 {
		t := now.Add(time.Duration(in.DurationMinutes) * time.Minute)
		until = &t
	}
	target.Suspend(strings.TrimSpace(in.Reason), strings.TrimSpace(in.Feedback), until, now)
	if err := u.users.Save(ctx, target); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "user suspended", "actor", actor.UserID, "target", targetID, "until", until)
	dto := ToDTO(target)
	return &dto, nil
}

func (u *Usecase) Unsuspend(ctx context.Context, actor policy.Identity, targetID string) (*UserDTO, error) {
	target, err := u.moderationTarget(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}
	target.ClearSuspension()
	if err := u.users.Save(ctx, target); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "user unsuspended", "actor", actor.UserID, "target", targetID)
	dto := ToDTO(target)
	return &dto, nil
}

// moderationTarget applies the rules shared by suspend and unsuspend.
func (u *Usecase) moderationTarget(ctx context.Context, actor policy.Identity, targetID string) (*domain.User, error) {
	if err := policy.RequireRole(actor, domain.RoleManager); err != nil {
		return nil, err
	}
	if err := policy.RequireActive(actor); err != nil {
		return nil, err
	}
	if err := policy.ForbidSelfAction(actor, targetID); err != nil {
		return nil, err
	}
	target, err := u.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := policy.ForbidSuspendingPeer(actor.Role, target.Role); err != nil {
		return nil, err
	}
	return target, nil
}

// SweepExpiredSuspensions clears every lapsed timed suspension in one
// conditional update.
func (u *Usecase) SweepExpiredSuspensions(ctx context.Context) (int64, error) {
	n, err := u.users.ClearAllLapsedSuspensions(ctx, u.now())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.WarnContext(ctx, "suspension sweep timed out")
		}
		return 0, err
	}
	metrics.ObserveSuspensionsCleared("sweep", n)
	if n > 0 {
		logger.InfoContext(ctx, "lapsed suspensions cleared", "count", n)
	}
	return n, nil
}
