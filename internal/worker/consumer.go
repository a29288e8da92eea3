package worker

import (
	"context"
	"encoding/json"

	"github.com/aurelion-pos/internal/logger"
	"github.com/aurelion-pos/internal/provider"
	"github.com/aurelion-pos/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register 注册任务处理器
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLowStockAlert, c.handleLowStockAlert)
	mux.HandleFunc(queue.TaskReceiptArchive, c.handleReceiptArchive)
}

// handleLowStockAlert 低库存告警：消费时复核现存量，已补货则跳过
func (c *Consumer) handleLowStockAlert(_ context.Context, task *asynq.Task) error {
	var payload queue.LowStockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.SKU == "" {
		logger.Debugw("worker_low_stock_alert_skip_invalid_payload", "variant_id", payload.VariantID)
		return nil
	}

	variant, err := c.VariantRepo.GetBySKU(payload.SKU)
	if err != nil {
		logger.Warnw("worker_low_stock_alert_fetch_failed", "sku", payload.SKU, "error", err)
		return err
	}
	if variant == nil {
		logger.Debugw("worker_low_stock_alert_skip_variant_missing", "sku", payload.SKU)
		return nil
	}
	if variant.OnHand >= variant.MinStock {
		logger.Debugw("worker_low_stock_alert_skip_restocked",
			"sku", variant.SKU,
			"on_hand", variant.OnHand,
			"min_stock", variant.MinStock,
		)
		return nil
	}

	logger.Warnw("low_stock_alert",
		"variant_id", variant.ID,
		"sku", variant.SKU,
		"on_hand", variant.OnHand,
		"min_stock", variant.MinStock,
	)
	return nil
}

// handleReceiptArchive 小票归档：预生成小票并写入缓存
func (c *Consumer) handleReceiptArchive(ctx context.Context, task *asynq.Task) error {
	var payload queue.ReceiptArchivePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_receipt_archive_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_receipt_archive_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_receipt_archive_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_receipt_archive_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	if _, err := c.ReceiptService.ForOrder(ctx, order.Code); err != nil {
		logger.Warnw("worker_receipt_archive_build_failed", "order_code", order.Code, "error", err)
		return err
	}
	logger.Infow("worker_receipt_archived", "order_id", order.ID, "order_code", order.Code)
	return nil
}
