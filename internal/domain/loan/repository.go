package loan

import "context"

type Filter struct {
	CreatedBy  string
	ShowOnHome *bool
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Loan, error)
	// List returns newest first.
	List(ctx context.Context, f Filter) ([]Loan, error)
	Count(ctx context.Context, f Filter) (int64, error)
	IDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}
