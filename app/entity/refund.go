package entity

import "time"

// Refund records the outcome of a gateway refund call. Rows are
// append-only; CreatedAt is the gateway-supplied creation time.
type Refund struct {
	ID uint64

	RefundID  string
	Amount    float64
	Currency  string
	PaymentID string
	Status    string

	CreatedAt time.Time
}
