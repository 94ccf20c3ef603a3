package mapper

import (
	"time"

	"github.com/vibast-solutions/ms-go-orders/app/entity"
	"github.com/vibast-solutions/ms-go-orders/app/types"
)

func OrderToData(item *entity.Order) *types.OrderData {
	if item == nil {
		return nil
	}

	return &types.OrderData{
		ID:        item.ID,
		OrderID:   item.OrderID,
		Amount:    item.Amount,
		Currency:  item.Currency,
		Receipt:   item.Receipt,
		Status:    item.Status,
		PaymentID: derefString(item.PaymentID),
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func OrdersToData(items []*entity.Order) []*types.OrderData {
	result := make([]*types.OrderData, 0, len(items))
	for _, item := range items {
		result = append(result, OrderToData(item))
	}
	return result
}

func PaymentLogToData(item *entity.PaymentLog) *types.PaymentLogData {
	if item == nil {
		return nil
	}

	return &types.PaymentLogData{
		OrderID:   item.OrderID,
		Amount:    item.Amount,
		Currency:  item.Currency,
		Status:    item.Status,
		PaymentID: item.PaymentID,
	}
}

func PaymentLogsToData(items []*entity.PaymentLog) []*types.PaymentLogData {
	result := make([]*types.PaymentLogData, 0, len(items))
	for _, item := range items {
		result = append(result, PaymentLogToData(item))
	}
	return result
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
