package mysql

import (
	"context"

	appDomain "loanlink-backend/internal/domain/application"
	loanDomain "loanlink-backend/internal/domain/loan"
	payDomain "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/domain/uow"
	userDomain "loanlink-backend/internal/domain/user"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:        &UserRepository{db: tx},
		Loans:        &LoanRepository{db: tx},
		Applications: &ApplicationRepository{db: tx},
		Payments:     &PaymentRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *appDomain.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the application row up-front to serialize decisions
		a, err := r.Applications.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{
		&userDomain.User{}, &loanDomain.Loan{}, &appDomain.Application{}, &payDomain.Payment{},
	}
}
