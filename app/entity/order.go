package entity

import "time"

const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
)

// Order is the local record of a payment intent registered with the
// gateway. OrderID is the gateway-assigned identifier and the natural
// key linking payment and refund activity. Amount is in major currency
// units; the gateway boundary speaks paise.
type Order struct {
	ID uint64

	OrderID  string
	Amount   float64
	Currency string
	Receipt  string
	Status   string

	PaymentID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
