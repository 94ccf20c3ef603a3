package entity

import "time"

const PaymentLogStatusPaid = "paid"

// PaymentLog is a gateway payment record captured from webhook
// notifications, one row per payment identifier. Once the status
// reaches "paid" the row is terminal and later notifications leave it
// untouched.
type PaymentLog struct {
	ID uint64

	PaymentID string
	OrderID   string
	Amount    float64
	Currency  string
	Status    string

	Description *string
	Email       *string
	Contact     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
