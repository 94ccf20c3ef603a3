package repository

import (
	"context"

	"github.com/vibast-solutions/ms-go-orders/app/entity"
)

type RefundRepository struct {
	db DBTX
}

func NewRefundRepository(db DBTX) *RefundRepository {
	return &RefundRepository{db: db}
}

func (r *RefundRepository) Create(ctx context.Context, refund *entity.Refund) error {
	query := `
		INSERT INTO refunds (refund_id, amount, currency, payment_id, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		refund.RefundID,
		refund.Amount,
		refund.Currency,
		refund.PaymentID,
		refund.Status,
		refund.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	refund.ID = uint64(id)
	return nil
}
