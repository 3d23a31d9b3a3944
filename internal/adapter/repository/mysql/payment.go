package mysql

import (
	"context"
	"fmt"

	payDomain "loanlink-backend/internal/domain/payment"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *payDomain.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: %v", payDomain.ErrDuplicate, err)
		}
		return err
	}
	return nil
}

func (r *PaymentRepository) getBy(ctx context.Context, column, value string) (*payDomain.Payment, error) {
	var out payDomain.Payment
	res := r.db.WithContext(ctx).Where(column+" = ?", value).First(&out)
	if res.Error != nil {
		return nil, mapNotFound(res.Error, payDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *PaymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*payDomain.Payment, error) {
	return r.getBy(ctx, "stripe_session_id", sessionID)
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, txID string) (*payDomain.Payment, error) {
	return r.getBy(ctx, "transaction_id", txID)
}

func (r *PaymentRepository) GetByApplicationID(ctx context.Context, applicationID string) (*payDomain.Payment, error) {
	return r.getBy(ctx, "application_id", applicationID)
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]payDomain.Payment, error) {
	var out []payDomain.Payment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *PaymentRepository) SumAmount(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&payDomain.Payment{}).
		Where("status = ?", payDomain.StatusCompleted).
		Select("SUM(amount)").
		Row().Scan(&sum)
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
