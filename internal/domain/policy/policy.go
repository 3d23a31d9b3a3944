// Package policy holds the pure authorization predicates shared by every
// usecase. Each predicate returns nil when the action is allowed.
package policy

import (
	"errors"
	"time"

	"loanlink-backend/internal/domain/user"
)

var (
	ErrUnauthenticated = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden")
)

// Identity is the resolved caller attached to a request.
type Identity struct {
	UserID          string
	Email           string
	Role            user.Role
	IsSuspended     bool
	SuspendUntil    *time.Time
	SuspendReason   string
	SuspendFeedback string
}

// SuspendedError carries the moderator's explanation back to the caller.
type SuspendedError struct {
	Reason   string
	Feedback string
	Until    *time.Time
}

func (e *SuspendedError) Error() string { return user.ErrSuspended.Error() }

func (e *SuspendedError) Is(target error) bool { return target == user.ErrSuspended }

func RequireRole(id Identity, required user.Role) error {
	if !id.Role.Satisfies(required) {
		return ErrForbidden
	}
	return nil
}

// RequireExactRole is for role-exclusive actions where a higher role must
// not stand in.
func RequireExactRole(id Identity, role user.Role) error {
	if id.Role != role {
		return ErrForbidden
	}
	return nil
}

func RequireOwnerOrAdmin(id Identity, ownerID string) error {
	if id.Role == user.RoleAdmin || (ownerID != "" && id.UserID == ownerID) {
		return nil
	}
	return ErrForbidden
}

// ForbidSelfAction blocks role changes and (un)suspensions on oneself.
func ForbidSelfAction(id Identity, targetUserID string) error {
	if id.UserID == targetUserID {
		return ErrForbidden
	}
	return nil
}

// ForbidSuspendingPeer: nobody acts on an admin, and managers may only act
// on borrowers.
func ForbidSuspendingPeer(actor, target user.Role) error {
	if target == user.RoleAdmin {
		return ErrForbidden
	}
	if actor == user.RoleManager && target != user.RoleBorrower {
		return ErrForbidden
	}
	if actor != user.RoleAdmin && actor != user.RoleManager {
		return ErrForbidden
	}
	return nil
}

// RequireActive rejects suspended callers from mutations.
func RequireActive(id Identity) error {
	if id.IsSuspended {
		return &SuspendedError{Reason: id.SuspendReason, Feedback: id.SuspendFeedback, Until: id.SuspendUntil}
	}
	return nil
}
