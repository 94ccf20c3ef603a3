package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-orders/app/entity"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
)

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (order_id, amount, currency, receipt, status, payment_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.OrderID,
		order.Amount,
		order.Currency,
		order.Receipt,
		order.Status,
		nullableStringValue(order.PaymentID),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrOrderAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = uint64(id)
	return nil
}

// MarkPaid transitions the order matching the gateway order identifier
// to paid and records the payment identifier.
func (r *OrderRepository) MarkPaid(ctx context.Context, orderID, paymentID string, now time.Time) error {
	query := `
		UPDATE orders
		SET status = ?, payment_id = ?, updated_at = ?
		WHERE order_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, entity.OrderStatusPaid, paymentID, now, orderID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *OrderRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error) {
	query := `
		SELECT id, order_id, amount, currency, receipt, status, payment_id, created_at, updated_at
		FROM orders
		WHERE order_id = ?
		LIMIT 1
	`

	order := &entity.Order{}
	if err := scanOrder(r.db.QueryRowContext(ctx, query, orderID), order); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	query := `
		SELECT id, order_id, amount, currency, receipt, status, payment_id, created_at, updated_at
		FROM orders
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0)
	for rows.Next() {
		item := &entity.Order{}
		if err := scanOrder(rows, item); err != nil {
			return nil, err
		}
		orders = append(orders, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(scan rowScanner, order *entity.Order) error {
	var paymentID sql.NullString

	err := scan.Scan(
		&order.ID,
		&order.OrderID,
		&order.Amount,
		&order.Currency,
		&order.Receipt,
		&order.Status,
		&paymentID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return err
	}

	order.PaymentID = stringPtrFromNull(paymentID)
	return nil
}
