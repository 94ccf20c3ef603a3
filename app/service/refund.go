package service

import (
	"context"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-orders/app/entity"
	"github.com/vibast-solutions/ms-go-orders/app/gateway"
)

type refundRequest interface {
	GetPaymentID() string
	GetAmount() float64
}

// RefundPayment initiates a refund with the gateway and records the
// outcome. The gateway call is not compensated if the local insert
// fails; the refund may have succeeded externally.
func (s *PaymentService) RefundPayment(ctx context.Context, req refundRequest) (*gateway.RefundResult, error) {
	paymentID := strings.TrimSpace(req.GetPaymentID())
	amount := req.GetAmount()
	if paymentID == "" || amount <= 0 {
		return nil, ErrInvalidRequest
	}

	result, err := s.gateway.RefundPayment(ctx, paymentID, toPaise(amount))
	if err != nil {
		return nil, err
	}

	refund := &entity.Refund{
		RefundID:  result.RefundID,
		Amount:    fromPaise(result.AmountPaise),
		Currency:  result.Currency,
		PaymentID: result.PaymentID,
		Status:    result.Status,
		CreatedAt: time.Unix(result.CreatedAtUnix, 0).UTC(),
	}
	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}

	return result, nil
}
