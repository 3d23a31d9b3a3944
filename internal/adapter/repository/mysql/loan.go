package mysql

import (
	"context"

	loanDomain "loanlink-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Save never rewrites created_by.
func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit("created_by", "created_at").Save(l).Error
}

func (r *LoanRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&loanDomain.Loan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrNotFound
	}
	return nil
}

func (r *LoanRepository) GetByID(ctx context.Context, id string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, mapNotFound(res.Error, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func filterLoans(f loanDomain.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.CreatedBy != "" {
			q = q.Where("created_by = ?", f.CreatedBy)
		}
		if f.ShowOnHome != nil {
			q = q.Where("show_on_home = ?", *f.ShowOnHome)
		}
		return q
	}
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.Filter) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Scopes(filterLoans(f)).Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []loanDomain.Loan
	err := q.Find(&out).Error
	return out, err
}

func (r *LoanRepository) Count(ctx context.Context, f loanDomain.Filter) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Scopes(filterLoans(f)).Count(&n).Error
	return n, err
}

func (r *LoanRepository) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("created_by = ?", ownerID).
		Pluck("id", &ids).Error
	return ids, err
}
