package service

import (
	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"
)

// resolveReturnStatus 根据明细退回情况推导订单状态
func resolveReturnStatus(items []models.OrderItem, currentStatus string) string {
	if len(items) == 0 {
		return constants.OrderStatusCompleted
	}

	totalQty := 0
	returnedQty := 0
	for i := range items {
		totalQty += items[i].Quantity
		returnedQty += items[i].QtyReturned
	}

	switch {
	case returnedQty <= 0:
		if currentStatus == constants.OrderStatusPartiallyReturned ||
			currentStatus == constants.OrderStatusFullyReturned {
			return constants.OrderStatusCompleted
		}
		return currentStatus
	case returnedQty >= totalQty:
		return constants.OrderStatusFullyReturned
	default:
		return constants.OrderStatusPartiallyReturned
	}
}
