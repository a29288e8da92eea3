package queue

import (
	"encoding/json"

	"github.com/aurelion-pos/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskLowStockAlert 低库存告警任务
	TaskLowStockAlert = constants.TaskLowStockAlert
	// TaskReceiptArchive 小票归档任务
	TaskReceiptArchive = constants.TaskReceiptArchive
)

// LowStockAlertPayload 低库存告警任务载荷
type LowStockAlertPayload struct {
	VariantID uint   `json:"variant_id"`
	SKU       string `json:"sku"`
	OnHand    int    `json:"on_hand"`
	MinStock  int    `json:"min_stock"`
}

// ReceiptArchivePayload 小票归档任务载荷
type ReceiptArchivePayload struct {
	OrderID uint `json:"order_id"`
}

// NewLowStockAlertTask 创建低库存告警任务
func NewLowStockAlertTask(payload LowStockAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockAlert, body), nil
}

// NewReceiptArchiveTask 创建小票归档任务
func NewReceiptArchiveTask(payload ReceiptArchivePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReceiptArchive, body), nil
}
