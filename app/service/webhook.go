package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-orders/app/entity"
	"github.com/vibast-solutions/ms-go-orders/app/repository"
)

const webhookEventPaymentCaptured = "payment.captured"

type WebhookResult struct {
	Status  string
	Message string
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity webhookPaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type webhookPaymentEntity struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	OrderID     string `json:"order_id"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Contact     string `json:"contact"`
}

// HandleWebhook ingests a gateway notification. The payload signature
// is verified against the webhook secret before anything is parsed.
// Ingestion is insert-first: the unique key on the payment identifier
// resolves concurrent deliveries, and a duplicate falls back to the
// guarded paid transition, so a paid row is never rewritten.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	if !s.gateway.VerifyWebhookSignature(payload, signature) {
		return nil, ErrWebhookRejected
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, ErrWebhookRejected
	}

	if envelope.Event != webhookEventPaymentCaptured {
		return &WebhookResult{Status: "ignored", Message: "Unhandled event type"}, nil
	}

	payment := envelope.Payload.Payment.Entity
	if strings.TrimSpace(payment.ID) == "" || strings.TrimSpace(payment.OrderID) == "" {
		return nil, ErrWebhookRejected
	}

	now := time.Now().UTC()
	log := &entity.PaymentLog{
		PaymentID:   payment.ID,
		OrderID:     payment.OrderID,
		Amount:      fromPaise(payment.Amount),
		Currency:    payment.Currency,
		Status:      payment.Status,
		Description: normalizeOptionalString(payment.Description),
		Email:       normalizeOptionalString(payment.Email),
		Contact:     normalizeOptionalString(payment.Contact),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.logRepo.Insert(ctx, log)
	if err == nil {
		return &WebhookResult{Status: "success", Message: "Webhook processed"}, nil
	}
	if !errors.Is(err, repository.ErrPaymentLogExists) {
		return nil, err
	}

	if _, err := s.logRepo.MarkPaid(ctx, payment.ID, now); err != nil {
		return nil, err
	}
	return &WebhookResult{Status: "success", Message: "Payment already captured"}, nil
}
