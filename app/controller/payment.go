package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-orders/app/factory"
	"github.com/vibast-solutions/ms-go-orders/app/mapper"
	"github.com/vibast-solutions/ms-go-orders/app/service"
	"github.com/vibast-solutions/ms-go-orders/app/types"
)

type PaymentController struct {
	paymentService *service.PaymentService
	logger         logrus.FieldLogger
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         factory.NewModuleLogger("orders-controller"),
	}
}

func (c *PaymentController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "Ok", Message: "API is running successfully"})
}

func (c *PaymentController) RouteNotFound(ctx echo.Context) error {
	return ctx.JSON(http.StatusNotFound, &types.ErrorResponse{Error: "Route not found"})
}

// CreateOrder responds with the gateway's order object verbatim.
func (c *PaymentController) CreateOrder(ctx echo.Context) error {
	req, err := types.NewCreateOrderRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, &types.ErrorResponse{Error: "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, &types.ErrorResponse{Error: err.Error()})
	}

	order, err := c.paymentService.CreateOrder(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return ctx.JSON(http.StatusBadRequest, &types.ErrorResponse{Error: "amount is required"})
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create order failed")
		return ctx.JSON(http.StatusInternalServerError, &types.ErrorResponse{Error: "Failed to create order"})
	}

	return ctx.JSON(http.StatusOK, order)
}

func (c *PaymentController) VerifyPayment(ctx echo.Context) error {
	req, err := types.NewVerifyPaymentRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, &types.StatusMessageResponse{Status: "error", Message: "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, &types.StatusMessageResponse{Status: "error", Message: err.Error()})
	}

	order, err := c.paymentService.VerifyPayment(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrSignatureMismatch):
			return ctx.JSON(http.StatusBadRequest, &types.StatusMessageResponse{Status: "error", Message: "payment verification failed"})
		case errors.Is(err, service.ErrOrderNotFound):
			return ctx.JSON(http.StatusNotFound, &types.StatusMessageResponse{Status: "error", Message: "Order not found"})
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Verify payment failed")
			return ctx.JSON(http.StatusInternalServerError, &types.StatusMessageResponse{Status: "error", Message: "Error verifying payment"})
		}
	}

	return ctx.JSON(http.StatusOK, &types.VerifyPaymentResponse{Status: "ok", Data: mapper.OrderToData(order)})
}

func (c *PaymentController) Refund(ctx echo.Context) error {
	req, err := types.NewRefundRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, &types.RefundErrorResponse{Message: "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, &types.RefundErrorResponse{Message: err.Error()})
	}

	result, err := c.paymentService.RefundPayment(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return ctx.JSON(http.StatusBadRequest, &types.RefundErrorResponse{Message: "Payment ID and amount are required"})
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Refund failed")
		return ctx.JSON(http.StatusInternalServerError, &types.RefundErrorResponse{Message: "Failed to initiate refund"})
	}

	return ctx.JSON(http.StatusOK, &types.RefundResponse{Message: "Refund initiated successfully", Refund: result.Raw})
}

func (c *PaymentController) ListOrders(ctx echo.Context) error {
	orders, err := c.paymentService.ListOrders(ctx.Request().Context())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List orders failed")
		return ctx.JSON(http.StatusInternalServerError, &types.ListErrorResponse{Success: false, Error: "Failed to fetch orders"})
	}

	return ctx.JSON(http.StatusOK, &types.OrderListResponse{Success: true, Data: mapper.OrdersToData(orders)})
}

func (c *PaymentController) ListUserData(ctx echo.Context) error {
	logs, err := c.paymentService.ListUserData(ctx.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrNoUserData) {
			return ctx.JSON(http.StatusNotFound, &types.ListErrorResponse{Success: false, Message: "No user data found"})
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List user data failed")
		return ctx.JSON(http.StatusInternalServerError, &types.ListErrorResponse{Success: false, Error: "Failed to fetch user data"})
	}

	return ctx.JSON(http.StatusOK, &types.UserDataListResponse{Success: true, Data: mapper.PaymentLogsToData(logs)})
}

// Webhook reads the raw body so the gateway signature can be checked
// over the exact bytes delivered.
func (c *PaymentController) Webhook(ctx echo.Context) error {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, &types.StatusMessageResponse{Status: "error", Message: "invalid request body"})
	}
	signature := ctx.Request().Header.Get("X-Razorpay-Signature")

	result, err := c.paymentService.HandleWebhook(ctx.Request().Context(), payload, signature)
	if err != nil {
		if errors.Is(err, service.ErrWebhookRejected) {
			return ctx.JSON(http.StatusBadRequest, &types.StatusMessageResponse{Status: "error", Message: "webhook validation failed"})
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Webhook processing failed")
		return ctx.JSON(http.StatusInternalServerError, &types.StatusMessageResponse{Status: "error", Message: "Webhook processing failed"})
	}

	return ctx.JSON(http.StatusOK, &types.StatusMessageResponse{Status: result.Status, Message: result.Message})
}
