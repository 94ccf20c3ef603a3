package types

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

type CreateOrderRequest struct {
	Amount float64 `json:"amount"`
}

func NewCreateOrderRequestFromContext(ctx echo.Context) (*CreateOrderRequest, error) {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (r *CreateOrderRequest) Validate() error {
	if r.Amount <= 0 {
		return errors.New("amount is required")
	}
	return nil
}

func (r *CreateOrderRequest) GetAmount() float64 { return r.Amount }

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func NewVerifyPaymentRequestFromContext(ctx echo.Context) (*VerifyPaymentRequest, error) {
	var body VerifyPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.RazorpayOrderID = strings.TrimSpace(body.RazorpayOrderID)
	body.RazorpayPaymentID = strings.TrimSpace(body.RazorpayPaymentID)
	body.RazorpaySignature = strings.TrimSpace(body.RazorpaySignature)

	return &body, nil
}

func (r *VerifyPaymentRequest) Validate() error {
	if r.RazorpayOrderID == "" {
		return errors.New("razorpay_order_id is required")
	}
	if r.RazorpayPaymentID == "" {
		return errors.New("razorpay_payment_id is required")
	}
	if r.RazorpaySignature == "" {
		return errors.New("razorpay_signature is required")
	}
	return nil
}

func (r *VerifyPaymentRequest) GetRazorpayOrderID() string   { return r.RazorpayOrderID }
func (r *VerifyPaymentRequest) GetRazorpayPaymentID() string { return r.RazorpayPaymentID }
func (r *VerifyPaymentRequest) GetRazorpaySignature() string { return r.RazorpaySignature }

type RefundRequest struct {
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amount"`
}

func NewRefundRequestFromContext(ctx echo.Context) (*RefundRequest, error) {
	var body RefundRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.PaymentID = strings.TrimSpace(body.PaymentID)

	return &body, nil
}

func (r *RefundRequest) Validate() error {
	if r.PaymentID == "" {
		return errors.New("paymentId is required")
	}
	if r.Amount <= 0 {
		return errors.New("amount is required")
	}
	return nil
}

func (r *RefundRequest) GetPaymentID() string { return r.PaymentID }
func (r *RefundRequest) GetAmount() float64   { return r.Amount }

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusMessageResponse is the envelope used by verification and
// webhook responses.
type StatusMessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type OrderData struct {
	ID        uint64  `json:"id"`
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Receipt   string  `json:"receipt"`
	Status    string  `json:"status"`
	PaymentID string  `json:"payment_id,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

type VerifyPaymentResponse struct {
	Status string     `json:"status"`
	Data   *OrderData `json:"data"`
}

type OrderListResponse struct {
	Success bool         `json:"success"`
	Data    []*OrderData `json:"data"`
}

type PaymentLogData struct {
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	PaymentID string  `json:"payment_id"`
}

type UserDataListResponse struct {
	Success bool              `json:"success"`
	Data    []*PaymentLogData `json:"data"`
}

type ListErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type RefundResponse struct {
	Message string                 `json:"message"`
	Refund  map[string]interface{} `json:"refund"`
}

type RefundErrorResponse struct {
	Message string `json:"message"`
}
