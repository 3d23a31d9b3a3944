package mysql

import (
	"context"

	appDomain "loanlink-backend/internal/domain/application"
	payDomain "loanlink-backend/internal/domain/payment"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, mapNotFound(res.Error, appDomain.ErrNotFound)
	}
	return &out, nil
}

// GetByIDForUpdate takes a row lock; call it inside a transaction.
func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, id string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	if res.Error != nil {
		return nil, mapNotFound(res.Error, appDomain.ErrNotFound)
	}
	return &out, nil
}

func filterApplications(f appDomain.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.UserID != "" {
			q = q.Where("user_id = ?", f.UserID)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.ScopeToLoans {
			if len(f.LoanIDs) == 0 {
				return q.Where("1 = 0")
			}
			q = q.Where("loan_id IN ?", f.LoanIDs)
		}
		return q
	}
}

func (r *ApplicationRepository) List(ctx context.Context, f appDomain.Filter) ([]appDomain.Application, error) {
	var out []appDomain.Application
	err := r.db.WithContext(ctx).Model(&appDomain.Application{}).
		Scopes(filterApplications(f)).
		Order(orderApplications(f.Order)).
		Find(&out).Error
	return out, err
}

func orderApplications(o appDomain.Order) string {
	if o == appDomain.OrderRecentlyApproved {
		return "approved_at DESC, created_at DESC"
	}
	return "created_at DESC"
}

func (r *ApplicationRepository) Count(ctx context.Context, f appDomain.Filter) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&appDomain.Application{}).Scopes(filterApplications(f)).Count(&n).Error
	return n, err
}

func (r *ApplicationRepository) SumLoanAmount(ctx context.Context, f appDomain.Filter) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&appDomain.Application{}).
		Scopes(filterApplications(f)).
		Select("SUM(loan_amount)").
		Row().Scan(&sum)
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *ApplicationRepository) FindOrphanPaid(ctx context.Context, k appDomain.DedupeKey) (*appDomain.Application, error) {
	var out appDomain.Application
	paid := r.db.Model(&payDomain.Payment{}).Select("application_id")
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND loan_id = ? AND first_name = ? AND last_name = ? AND application_fee_status = ?",
			k.UserID, k.LoanID, k.FirstName, k.LastName, appDomain.FeePaid).
		Where("id NOT IN (?)", paid).
		Order("created_at ASC").
		First(&out)
	if res.Error != nil {
		return nil, mapNotFound(res.Error, appDomain.ErrNotFound)
	}
	return &out, nil
}
