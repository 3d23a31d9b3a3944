package loan

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	domain "loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/domain/policy"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/logger"
	"loanlink-backend/pkg/id"
)

// ErrInvalidTerms: negative rate or limit, or an empty title.
var ErrInvalidTerms = errors.New("invalid loan terms")

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) List(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.repo.List(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

// Home is the curated listing, newest first, capped at HomeLimit.
func (u *Usecase) Home(ctx context.Context) ([]LoanDTO, error) {
	show := true
	ls, err := u.repo.List(ctx, domain.Filter{ShowOnHome: &show, Limit: domain.HomeLimit})
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(l)
	return &dto, nil
}

// Mine lists the loans the manager owns.
func (u *Usecase) Mine(ctx context.Context, actor policy.Identity) ([]LoanDTO, error) {
	if err := policy.RequireRole(actor, user.RoleManager); err != nil {
		return nil, err
	}
	ls, err := u.repo.List(ctx, domain.Filter{CreatedBy: actor.UserID})
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

func (u *Usecase) Create(ctx context.Context, actor policy.Identity, in CreateLoanInput) (*LoanDTO, error) {
	if err := canManage(actor); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || in.InterestRate.IsNegative() || in.MaxLoanLimit.IsNegative() {
		return nil, ErrInvalidTerms
	}
	l := &domain.Loan{
		ID:                id.NewID32(),
		Title:             title,
		Description:       in.Description,
		Category:          strings.TrimSpace(in.Category),
		InterestRate:      in.InterestRate.Round(2),
		MaxLoanLimit:      in.MaxLoanLimit.Round(2),
		RequiredDocuments: in.RequiredDocuments,
		EMIPlans:          in.EMIPlans,
		Images:            in.Images,
		ShowOnHome:        in.ShowOnHome,
		CreatedBy:         actor.UserID,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "loan created", "loan_id", l.ID, "owner", actor.UserID)
	dto := toDTO(l)
	return &dto, nil
}

// Update applies p to a loan the actor owns (admins may edit any loan).
// The owner never changes.
func (u *Usecase) Update(ctx context.Context, actor policy.Identity, loanID string, p domain.Patch) (*LoanDTO, error) {
	l, err := u.owned(ctx, actor, loanID)
	if err != nil {
		return nil, err
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, ErrInvalidTerms
	}
	if negative(p.InterestRate) || negative(p.MaxLoanLimit) {
		return nil, ErrInvalidTerms
	}
	l.Apply(p)
	if err := u.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	dto := toDTO(l)
	return &dto, nil
}

func (u *Usecase) Delete(ctx context.Context, actor policy.Identity, loanID string) error {
	if _, err := u.owned(ctx, actor, loanID); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, loanID); err != nil {
		return err
	}
	logger.InfoContext(ctx, "loan deleted", "loan_id", loanID, "actor", actor.UserID)
	return nil
}

// ToggleHome flips the home-page flag. Admin only.
func (u *Usecase) ToggleHome(ctx context.Context, actor policy.Identity, loanID string) (*LoanDTO, error) {
	if err := policy.RequireRole(actor, user.RoleAdmin); err != nil {
		return nil, err
	}
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	l.ShowOnHome = !l.ShowOnHome
	if err := u.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	dto := toDTO(l)
	return &dto, nil
}

func (u *Usecase) owned(ctx context.Context, actor policy.Identity, loanID string) (*domain.Loan, error) {
	if err := canManage(actor); err != nil {
		return nil, err
	}
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwnerOrAdmin(actor, l.CreatedBy); err != nil {
		return nil, err
	}
	return l, nil
}

func canManage(actor policy.Identity) error {
	if err := policy.RequireRole(actor, user.RoleManager); err != nil {
		return err
	}
	return policy.RequireActive(actor)
}

func negative(d *decimal.Decimal) bool { return d != nil && d.IsNegative() }
