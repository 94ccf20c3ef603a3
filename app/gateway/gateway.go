package gateway

import "context"

type CreateOrderInput struct {
	AmountPaise int64
	Currency    string
	Receipt     string
}

// RefundResult carries the fields persisted from a gateway refund
// response. Raw is the gateway payload verbatim, for echoing back to
// the caller. AmountPaise and CreatedAtUnix are in gateway units
// (paise, epoch seconds).
type RefundResult struct {
	RefundID      string
	AmountPaise   int64
	Currency      string
	PaymentID     string
	Status        string
	CreatedAtUnix int64
	Raw           map[string]interface{}
}

type Gateway interface {
	CreateOrder(ctx context.Context, input *CreateOrderInput) (map[string]interface{}, error)
	RefundPayment(ctx context.Context, paymentID string, amountPaise int64) (*RefundResult, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	VerifyWebhookSignature(payload []byte, signature string) bool
}
