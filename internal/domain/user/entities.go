package user

import (
	"errors"
	"strings"
	"time"
)

type Role string

const (
	RoleUnset    Role = ""
	RoleBorrower Role = "borrower"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleBorrower:
		return 1
	}
	return 0
}

// Satisfies reports whether r meets or exceeds required in the
// admin > manager > borrower hierarchy. An unset role satisfies nothing.
func (r Role) Satisfies(required Role) bool {
	return r.rank() > 0 && r.rank() >= required.rank()
}

func (r Role) Valid() bool { return r.rank() > 0 }

// ParseRole accepts only the three assignable roles.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return RoleUnset, ErrInvalidRole
	}
	return r, nil
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrInvalidRole    = errors.New("invalid role")
	ErrRoleAlreadySet = errors.New("role already selected")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrSuspended      = errors.New("account suspended")

	// ErrInvalidDuration: a timed suspension longer than MaxSuspendMinutes.
	ErrInvalidDuration = errors.New("invalid suspension duration")
)

// MaxSuspendMinutes caps timed suspensions at ten years; longer ones are
// expressed as indefinite.
const MaxSuspendMinutes = 10 * 365 * 24 * 60

type User struct {
	ID              string     `gorm:"type:char(32);primaryKey;column:id"`
	Email           string     `gorm:"type:varchar(191);not null;uniqueIndex:ux_users_email;column:email"`
	Name            string     `gorm:"type:varchar(120);column:name"`
	PhotoURL        string     `gorm:"type:varchar(512);column:photo_url"`
	PasswordHash    string     `gorm:"type:varchar(100);column:password_hash"`
	Role            Role       `gorm:"type:varchar(16);index:idx_users_role;column:role"`
	Status          Status     `gorm:"type:varchar(16);not null;default:active;column:status"`
	SuspendReason   string     `gorm:"type:varchar(255);column:suspend_reason"`
	SuspendFeedback string     `gorm:"type:text;column:suspend_feedback"`
	SuspendedAt     *time.Time `gorm:"column:suspended_at"`
	SuspendUntil    *time.Time `gorm:"index:idx_users_suspend_until;column:suspend_until"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string { return "users" }

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// IsSuspended: a nil SuspendUntil means indefinite.
func (u *User) IsSuspended(now time.Time) bool {
	if u.Status != StatusSuspended {
		return false
	}
	return u.SuspendUntil == nil || now.Before(*u.SuspendUntil)
}

// SuspensionLapsed is true for a timed suspension whose end has passed but
// whose record has not been cleared yet.
func (u *User) SuspensionLapsed(now time.Time) bool {
	return u.Status == StatusSuspended && u.SuspendUntil != nil && !now.Before(*u.SuspendUntil)
}

func (u *User) Suspend(reason, feedback string, until *time.Time, now time.Time) {
	u.Status = StatusSuspended
	u.SuspendReason = reason
	u.SuspendFeedback = feedback
	u.SuspendedAt = &now
	u.SuspendUntil = until
}

func (u *User) ClearSuspension() {
	u.Status = StatusActive
	u.SuspendReason = ""
	u.SuspendFeedback = ""
	u.SuspendedAt = nil
	u.SuspendUntil = nil
}
