package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
)

type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

type RazorpayGateway struct {
	cfg    RazorpayConfig
	client *razorpay.Client
}

func NewRazorpayGateway(cfg RazorpayConfig) *RazorpayGateway {
	return &RazorpayGateway{
		cfg:    cfg,
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
	}
}

func (g *RazorpayGateway) CreateOrder(_ context.Context, input *CreateOrderInput) (map[string]interface{}, error) {
	if strings.TrimSpace(g.cfg.KeyID) == "" || strings.TrimSpace(g.cfg.KeySecret) == "" {
		return nil, errors.New("razorpay credentials are not configured")
	}

	orderData := map[string]interface{}{
		"amount":          input.AmountPaise,
		"currency":        input.Currency,
		"receipt":         input.Receipt,
		"payment_capture": 1,
	}

	return g.client.Order.Create(orderData, nil)
}

func (g *RazorpayGateway) RefundPayment(_ context.Context, paymentID string, amountPaise int64) (*RefundResult, error) {
	if strings.TrimSpace(g.cfg.KeyID) == "" || strings.TrimSpace(g.cfg.KeySecret) == "" {
		return nil, errors.New("razorpay credentials are not configured")
	}

	payload, err := g.client.Payment.Refund(paymentID, int(amountPaise), map[string]interface{}{}, nil)
	if err != nil {
		return nil, err
	}

	return parseRefundPayload(payload)
}

func (g *RazorpayGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return hmacMatches([]byte(orderID+"|"+paymentID), signature, g.cfg.KeySecret)
}

func (g *RazorpayGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	return hmacMatches(payload, signature, g.cfg.WebhookSecret)
}

func parseRefundPayload(payload map[string]interface{}) (*RefundResult, error) {
	result := &RefundResult{
		RefundID:      stringField(payload, "id"),
		AmountPaise:   int64Field(payload, "amount"),
		Currency:      stringField(payload, "currency"),
		PaymentID:     stringField(payload, "payment_id"),
		Status:        stringField(payload, "status"),
		CreatedAtUnix: int64Field(payload, "created_at"),
		Raw:           payload,
	}
	if result.RefundID == "" {
		return nil, errors.New("razorpay refund response missing id")
	}
	return result, nil
}

func stringField(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func int64Field(payload map[string]interface{}, key string) int64 {
	switch v := payload[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

// hmacMatches checks a hex-encoded HMAC-SHA256 signature, the scheme
// Razorpay uses for both payment and webhook signatures.
func hmacMatches(payload []byte, signature, secret string) bool {
	signature = strings.TrimSpace(signature)
	if signature == "" || strings.TrimSpace(secret) == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(payload)
	expected := mac.Sum(nil)

	candidate, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(candidate, expected)
}
