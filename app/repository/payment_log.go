package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-orders/app/entity"
)

var ErrPaymentLogExists = errors.New("payment log already exists")

type PaymentLogRepository struct {
	db DBTX
}

func NewPaymentLogRepository(db DBTX) *PaymentLogRepository {
	return &PaymentLogRepository{db: db}
}

// Insert records the first notification for a payment identifier. The
// unique key on payment_id makes concurrent first deliveries collapse
// into one row; the loser sees ErrPaymentLogExists.
func (r *PaymentLogRepository) Insert(ctx context.Context, log *entity.PaymentLog) error {
	query := `
		INSERT INTO rzp_payments (payment_id, order_id, amount, currency, status, description, email, contact, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		log.PaymentID,
		log.OrderID,
		log.Amount,
		log.Currency,
		log.Status,
		nullableStringValue(log.Description),
		nullableStringValue(log.Email),
		nullableStringValue(log.Contact),
		log.CreatedAt,
		log.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrPaymentLogExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	log.ID = uint64(id)
	return nil
}

// MarkPaid promotes an existing row to the terminal paid status. The
// status guard in the WHERE clause keeps a paid row from ever being
// rewritten; it reports whether this call performed the transition.
func (r *PaymentLogRepository) MarkPaid(ctx context.Context, paymentID string, now time.Time) (bool, error) {
	query := `
		UPDATE rzp_payments
		SET status = ?, updated_at = ?
		WHERE payment_id = ? AND status <> ?
	`

	result, err := r.db.ExecContext(ctx, query, entity.PaymentLogStatusPaid, now, paymentID, entity.PaymentLogStatusPaid)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// ListUserData returns the fixed projection served by the user-data
// listing, newest order identifiers first.
func (r *PaymentLogRepository) ListUserData(ctx context.Context) ([]*entity.PaymentLog, error) {
	query := `
		SELECT order_id, amount, currency, status, payment_id
		FROM rzp_payments
		ORDER BY order_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*entity.PaymentLog, 0)
	for rows.Next() {
		item := &entity.PaymentLog{}
		if err := rows.Scan(&item.OrderID, &item.Amount, &item.Currency, &item.Status, &item.PaymentID); err != nil {
			return nil, err
		}
		logs = append(logs, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
