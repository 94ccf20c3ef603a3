package types

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestCreateOrderValidate(t *testing.T) {
	req := &CreateOrderRequest{}
	if err := req.Validate(); err == nil {
		t.Fatal("expected amount validation error")
	}

	req = &CreateOrderRequest{Amount: -5}
	if err := req.Validate(); err == nil {
		t.Fatal("expected negative amount validation error")
	}

	req = &CreateOrderRequest{Amount: 500}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestNewVerifyPaymentRequestFromContextTrimsFields(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("POST", "/api/verify-payment", bytes.NewBufferString(`{"razorpay_order_id":" order_abc ","razorpay_payment_id":"pay_1","razorpay_signature":"sig"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	parsed, err := NewVerifyPaymentRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.GetRazorpayOrderID() != "order_abc" {
		t.Fatalf("expected trimmed order id, got %q", parsed.GetRazorpayOrderID())
	}
	if err := parsed.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestVerifyPaymentValidateRequiresEachField(t *testing.T) {
	cases := []VerifyPaymentRequest{
		{RazorpayPaymentID: "pay_1", RazorpaySignature: "sig"},
		{RazorpayOrderID: "order_abc", RazorpaySignature: "sig"},
		{RazorpayOrderID: "order_abc", RazorpayPaymentID: "pay_1"},
	}
	for i := range cases {
		if err := cases[i].Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestRefundValidate(t *testing.T) {
	req := &RefundRequest{Amount: 500}
	if err := req.Validate(); err == nil {
		t.Fatal("expected paymentId validation error")
	}

	req = &RefundRequest{PaymentID: "pay_1"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected amount validation error")
	}

	req = &RefundRequest{PaymentID: "pay_1", Amount: 500}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}
