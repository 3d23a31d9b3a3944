package mysql

import (
	"context"
	"time"

	userDomain "loanlink-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	u.Email = userDomain.NormalizeEmail(u.Email)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return userDomain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, mapNotFound(res.Error, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("email = ?", userDomain.NormalizeEmail(email)).First(&out)
	if res.Error != nil {
		return nil, mapNotFound(res.Error, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) List(ctx context.Context, f userDomain.Filter) ([]userDomain.User, error) {
	q := r.db.WithContext(ctx).Model(&userDomain.User{})
	if f.Role != userDomain.RoleUnset {
		q = q.Where("role = ?", f.Role)
	}
	var out []userDomain.User
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userDomain.User{}).Count(&n).Error
	return n, err
}

var clearedSuspension = map[string]any{
	"status":           userDomain.StatusActive,
	"suspend_reason":   "",
	"suspend_feedback": "",
	"suspended_at":     nil,
	"suspend_until":    nil,
}

func lapsedScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ? AND suspend_until IS NOT NULL AND suspend_until <= ?", userDomain.StatusSuspended, now)
	}
}

func (r *UserRepository) ClearLapsedSuspension(ctx context.Context, id string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).
		Scopes(lapsedScope(now)).
		Where("id = ?", id).
		Updates(clearedSuspension)
	return res.RowsAffected > 0, res.Error
}

func (r *UserRepository) ClearAllLapsedSuspensions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).
		Scopes(lapsedScope(now)).
		Updates(clearedSuspension)
	return res.RowsAffected, res.Error
}
