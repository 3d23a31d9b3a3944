package uow

import (
	"context"

	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/domain/user"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Users        user.Repository
	Loans        loan.Repository
	Applications application.Repository
	Payments     payment.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinApplicationTx locks the application row first, then passes it in.
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
