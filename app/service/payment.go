package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-orders/app/entity"
	"github.com/vibast-solutions/ms-go-orders/app/gateway"
	"github.com/vibast-solutions/ms-go-orders/app/repository"
)

// Gateway amounts are denominated in paise; INR is the only currency
// orders are created in.
const defaultCurrency = "INR"

type createOrderRequest interface {
	GetAmount() float64
}

type verifyPaymentRequest interface {
	GetRazorpayOrderID() string
	GetRazorpayPaymentID() string
	GetRazorpaySignature() string
}

type orderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	MarkPaid(ctx context.Context, orderID, paymentID string, now time.Time) error
	FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
}

type paymentLogRepository interface {
	Insert(ctx context.Context, log *entity.PaymentLog) error
	MarkPaid(ctx context.Context, paymentID string, now time.Time) (bool, error)
	ListUserData(ctx context.Context) ([]*entity.PaymentLog, error)
}

type refundRepository interface {
	Create(ctx context.Context, refund *entity.Refund) error
}

type PaymentService struct {
	orderRepo  orderRepository
	logRepo    paymentLogRepository
	refundRepo refundRepository
	gateway    gateway.Gateway
}

func NewPaymentService(
	orderRepo orderRepository,
	logRepo paymentLogRepository,
	refundRepo refundRepository,
	gw gateway.Gateway,
) *PaymentService {
	return &PaymentService{
		orderRepo:  orderRepo,
		logRepo:    logRepo,
		refundRepo: refundRepo,
		gateway:    gw,
	}
}

// CreateOrder registers a payment intent with the gateway and records
// it locally. The returned map is the gateway's order object verbatim.
func (s *PaymentService) CreateOrder(ctx context.Context, req createOrderRequest) (map[string]interface{}, error) {
	amount := req.GetAmount()
	if amount <= 0 {
		return nil, ErrInvalidRequest
	}

	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	order, err := s.gateway.CreateOrder(ctx, &gateway.CreateOrderInput{
		AmountPaise: toPaise(amount),
		Currency:    defaultCurrency,
		Receipt:     receipt,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &entity.Order{
		OrderID:   stringField(order, "id"),
		Amount:    amount,
		Currency:  stringField(order, "currency"),
		Receipt:   stringField(order, "receipt"),
		Status:    entity.OrderStatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.orderRepo.Create(ctx, row); err != nil {
		return nil, err
	}

	return order, nil
}

// VerifyPayment checks the client-supplied signature against the key
// secret and, when valid, transitions the order to paid. Repeated
// verification of the same order is effectively a no-op update.
func (s *PaymentService) VerifyPayment(ctx context.Context, req verifyPaymentRequest) (*entity.Order, error) {
	orderID := strings.TrimSpace(req.GetRazorpayOrderID())
	paymentID := strings.TrimSpace(req.GetRazorpayPaymentID())
	signature := strings.TrimSpace(req.GetRazorpaySignature())
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, ErrInvalidRequest
	}

	if !s.gateway.VerifyPaymentSignature(orderID, paymentID, signature) {
		return nil, ErrSignatureMismatch
	}

	now := time.Now().UTC()
	if err := s.orderRepo.MarkPaid(ctx, orderID, paymentID, now); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *PaymentService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

func (s *PaymentService) ListUserData(ctx context.Context) ([]*entity.PaymentLog, error) {
	logs, err := s.logRepo.ListUserData(ctx)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoUserData
	}
	return logs, nil
}

func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromPaise(paise int64) float64 {
	return float64(paise) / 100
}

func stringField(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func normalizeOptionalString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
