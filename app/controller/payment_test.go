package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-orders/app/entity"
	"github.com/vibast-solutions/ms-go-orders/app/gateway"
	"github.com/vibast-solutions/ms-go-orders/app/repository"
	"github.com/vibast-solutions/ms-go-orders/app/service"
)

type fakeOrderRepo struct {
	createFn   func(ctx context.Context, order *entity.Order) error
	markPaidFn func(ctx context.Context, orderID, paymentID string, now time.Time) error
	findFn     func(ctx context.Context, orderID string) (*entity.Order, error)
	listFn     func(ctx context.Context) ([]*entity.Order, error)
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if r.createFn != nil {
		return r.createFn(ctx, order)
	}
	return nil
}

func (r *fakeOrderRepo) MarkPaid(ctx context.Context, orderID, paymentID string, now time.Time) error {
	if r.markPaidFn != nil {
		return r.markPaidFn(ctx, orderID, paymentID, now)
	}
	return repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error) {
	if r.findFn != nil {
		return r.findFn(ctx, orderID)
	}
	return nil, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	if r.listFn != nil {
		return r.listFn(ctx)
	}
	return nil, nil
}

type fakeLogRepo struct {
	insertFn   func(ctx context.Context, log *entity.PaymentLog) error
	markPaidFn func(ctx context.Context, paymentID string, now time.Time) (bool, error)
	listFn     func(ctx context.Context) ([]*entity.PaymentLog, error)
}

func (r *fakeLogRepo) Insert(ctx context.Context, log *entity.PaymentLog) error {
	if r.insertFn != nil {
		return r.insertFn(ctx, log)
	}
	return nil
}

func (r *fakeLogRepo) MarkPaid(ctx context.Context, paymentID string, now time.Time) (bool, error) {
	if r.markPaidFn != nil {
		return r.markPaidFn(ctx, paymentID, now)
	}
	return false, nil
}

func (r *fakeLogRepo) ListUserData(ctx context.Context) ([]*entity.PaymentLog, error) {
	if r.listFn != nil {
		return r.listFn(ctx)
	}
	return nil, nil
}

type fakeRefundRepo struct {
	createFn func(ctx context.Context, refund *entity.Refund) error
}

func (r *fakeRefundRepo) Create(ctx context.Context, refund *entity.Refund) error {
	if r.createFn != nil {
		return r.createFn(ctx, refund)
	}
	return nil
}

type fakeGateway struct {
	createOrderFn func(ctx context.Context, input *gateway.CreateOrderInput) (map[string]interface{}, error)
	refundFn      func(ctx context.Context, paymentID string, amountPaise int64) (*gateway.RefundResult, error)
	paymentSigOK  bool
	webhookSigOK  bool
}

func (g *fakeGateway) CreateOrder(ctx context.Context, input *gateway.CreateOrderInput) (map[string]interface{}, error) {
	if g.createOrderFn != nil {
		return g.createOrderFn(ctx, input)
	}
	return map[string]interface{}{"id": "order_abc", "currency": input.Currency, "receipt": input.Receipt}, nil
}

func (g *fakeGateway) RefundPayment(ctx context.Context, paymentID string, amountPaise int64) (*gateway.RefundResult, error) {
	if g.refundFn != nil {
		return g.refundFn(ctx, paymentID, amountPaise)
	}
	return &gateway.RefundResult{
		RefundID:    "rfnd_1",
		AmountPaise: amountPaise,
		Currency:    "INR",
		PaymentID:   paymentID,
		Status:      "processed",
		Raw:         map[string]interface{}{"id": "rfnd_1"},
	}, nil
}

func (g *fakeGateway) VerifyPaymentSignature(string, string, string) bool { return g.paymentSigOK }
func (g *fakeGateway) VerifyWebhookSignature([]byte, string) bool         { return g.webhookSigOK }

type controllerFixture struct {
	orderRepo  *fakeOrderRepo
	logRepo    *fakeLogRepo
	refundRepo *fakeRefundRepo
	gateway    *fakeGateway
	controller *PaymentController
	echo       *echo.Echo
}

func newControllerFixture() *controllerFixture {
	orderRepo := &fakeOrderRepo{}
	logRepo := &fakeLogRepo{}
	refundRepo := &fakeRefundRepo{}
	gw := &fakeGateway{paymentSigOK: true, webhookSigOK: true}
	svc := service.NewPaymentService(orderRepo, logRepo, refundRepo, gw)
	return &controllerFixture{
		orderRepo:  orderRepo,
		logRepo:    logRepo,
		refundRepo: refundRepo,
		gateway:    gw,
		controller: NewPaymentController(svc),
		echo:       echo.New(),
	}
}

func (f *controllerFixture) request(method, path, body string, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return f.echo.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	f := newControllerFixture()
	ctx, rec := f.request(http.MethodGet, "/api", "", nil)

	if err := f.controller.Health(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "API is running successfully" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRouteNotFound(t *testing.T) {
	f := newControllerFixture()
	ctx, rec := f.request(http.MethodGet, "/nope", "", nil)

	if err := f.controller.RouteNotFound(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "Route not found" {
		t.Fatal("expected route not found body")
	}
}

func TestCreateOrderReturnsGatewayObject(t *testing.T) {
	f := newControllerFixture()
	ctx, rec := f.request(http.MethodPost, "/api/create-order", `{"amount": 500}`, nil)

	if err := f.controller.CreateOrder(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if decodeBody(t, rec)["id"] != "order_abc" {
		t.Fatal("expected gateway order object in the response")
	}
}

func TestCreateOrderMissingAmount(t *testing.T) {
	f := newControllerFixture()
	ctx, rec := f.request(http.MethodPost, "/api/create-order", `{}`, nil)

	if err := f.controller.CreateOrder(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateOrderMalformedBody(t *testing.T) {
	f := newControllerFixture()
	ctx, rec := f.request(http.MethodPost, "/api/create-order", `{"amount": `, nil)

	if err := f.controller.CreateOrder(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	f := newControllerFixture()
	f.gateway.createOrderFn = func(context.Context, *gateway.CreateOrderInput) (map[string]interface{}, error) {
		return nil, errors.New("gateway unavailable")
	}
	ctx, rec := f.request(http.MethodPost, "/api/create-order", `{"amount": 500}`, nil)

	if err := f.controller.CreateOrder(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "Failed to create order" {
		t.Fatal("expected generic failure message")
	}
}

func TestVerifyPaymentSuccess(t *testing.T) {
	f := newControllerFixture()
	f.orderRepo.markPaidFn = func(context.Context, string, string, time.Time) error { return nil }
	f.orderRepo.findFn = func(_ context.Context, orderID string) (*entity.Order, error) {
		paymentID := "pay_1"
		return &entity.Order{OrderID: orderID, Status: entity.OrderStatusPaid, PaymentID: &paymentID}, nil
	}
	body := `{"razorpay_order_id": "order_abc", "razorpay_payment_id": "pay_1", "razorpay_signature": "sig"}`
	ctx, rec := f.request(http.MethodPost, "/api/verify-payment", body, nil)

	if err := f.controller.VerifyPayment(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["status"] != "ok" {
		t.Fatalf("expected ok status, got %v", resp["status"])
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok || data["payment_id"] != "pay_1" {
		t.Fatalf("unexpected data: %v", resp["data"])
	}
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	f := newControllerFixture()
	f.gateway.paymentSigOK = false
	body := `{"razorpay_order_id": "order_abc", "razorpay_payment_id": "pay_1", "razorpay_signature": "bad"}`
	ctx, rec := f.request(http.MethodPost, "/api/verify-payment", body, nil)

	if err := f.controller.VerifyPayment(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "payment verification failed" {
		t.Fatal("expected verification failure message")
	}
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	f := newControllerFixture()
	body := `{"razorpay_order_id": "order_missing", "razorpay_payment_id": "pay_1", "razorpay_signature": "sig"}`
	ctx, rec := f.request(http.MethodPost, "/api/verify-payment", body, nil)

	if err := f.controller.VerifyPayment(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	f := newControllerFixture()
	ctx, rec := f.request(http.MethodPost, "/api/verify-payment", `{"razorpay_order_id": "order_abc"}`, nil)

	if err := f.controller.VerifyPayment(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRefundSuccess(t *testing.T) {
	f := newControllerFixture()
	ctx, rec := f.request(http.MethodPost, "/api/refund", `{"paymentId": "pay_1", "amount": 500}`, nil)

	if err := f.controller.Refund(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Refund initiated successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	refund, ok := resp["refund"].(map[string]interface{})
	if !ok || refund["id"] != "rfnd_1" {
		t.Fatalf("expected gateway refund object, got %v", resp["refund"])
	}
}

func TestRefundMissingFields(t *testing.T) {
	f := newControllerFixture()
	ctx, rec := f.request(http.MethodPost, "/api/refund", `{"paymentId": "pay_1"}`, nil)

	if err := f.controller.Refund(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRefundGatewayFailure(t *testing.T) {
	f := newControllerFixture()
	f.gateway.refundFn = func(context.Context, string, int64) (*gateway.RefundResult, error) {
		return nil, errors.New("gateway unavailable")
	}
	ctx, rec := f.request(http.MethodPost, "/api/refund", `{"paymentId": "pay_1", "amount": 500}`, nil)

	if err := f.controller.Refund(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Failed to initiate refund" {
		t.Fatal("expected generic failure message")
	}
}

func TestListOrders(t *testing.T) {
	f := newControllerFixture()
	f.orderRepo.listFn = func(context.Context) ([]*entity.Order, error) {
		return []*entity.Order{{ID: 2, OrderID: "order_b", Amount: 700, Status: entity.OrderStatusCreated}}, nil
	}
	ctx, rec := f.request(http.MethodGet, "/api/get-all-orders", "", nil)

	if err := f.controller.ListOrders(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true {
		t.Fatalf("expected success true, got %v", resp["success"])
	}
	data, ok := resp["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Fatalf("expected one order, got %v", resp["data"])
	}
}

func TestListOrdersRepositoryFailure(t *testing.T) {
	f := newControllerFixture()
	f.orderRepo.listFn = func(context.Context) ([]*entity.Order, error) {
		return nil, errors.New("db down")
	}
	ctx, rec := f.request(http.MethodGet, "/api/get-all-orders", "", nil)

	if err := f.controller.ListOrders(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestListUserDataEmpty(t *testing.T) {
	f := newControllerFixture()
	ctx, rec := f.request(http.MethodGet, "/api/get-all-user-data", "", nil)

	if err := f.controller.ListUserData(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "No user data found" {
		t.Fatal("expected no user data message")
	}
}

func TestListUserData(t *testing.T) {
	f := newControllerFixture()
	f.logRepo.listFn = func(context.Context) ([]*entity.PaymentLog, error) {
		return []*entity.PaymentLog{{PaymentID: "pay_1", OrderID: "order_abc", Amount: 500, Currency: "INR", Status: "paid"}}, nil
	}
	ctx, rec := f.request(http.MethodGet, "/api/get-all-user-data", "", nil)

	if err := f.controller.ListUserData(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	data, ok := resp["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Fatalf("expected one row, got %v", resp["data"])
	}
	row := data[0].(map[string]interface{})
	if row["payment_id"] != "pay_1" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestWebhookProcessed(t *testing.T) {
	f := newControllerFixture()
	body := `{"event": "payment.captured", "payload": {"payment": {"entity": {"id": "pay_1", "amount": 50000, "order_id": "order_abc", "status": "captured"}}}}`
	ctx, rec := f.request(http.MethodPost, "/webhook", body, map[string]string{"X-Razorpay-Signature": "sig"})

	if err := f.controller.Webhook(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["status"] != "success" || resp["message"] != "Webhook processed" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestWebhookBadSignature(t *testing.T) {
	f := newControllerFixture()
	f.gateway.webhookSigOK = false
	ctx, rec := f.request(http.MethodPost, "/webhook", `{}`, map[string]string{"X-Razorpay-Signature": "bad"})

	if err := f.controller.Webhook(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "webhook validation failed" {
		t.Fatal("expected validation failure message")
	}
}

func TestWebhookUnhandledEvent(t *testing.T) {
	f := newControllerFixture()
	body := `{"event": "payment.failed", "payload": {"payment": {"entity": {"id": "pay_1", "order_id": "order_abc"}}}}`
	ctx, rec := f.request(http.MethodPost, "/webhook", body, map[string]string{"X-Razorpay-Signature": "sig"})

	if err := f.controller.Webhook(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if decodeBody(t, rec)["status"] != "ignored" {
		t.Fatal("expected ignored status")
	}
}
