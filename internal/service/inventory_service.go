package service

import (
	"github.com/aurelion-pos/internal/logger"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/queue"
	"github.com/aurelion-pos/internal/repository"
)

// InventoryService 库存服务（收货、盘点调整与低库存巡检）
type InventoryService struct {
	variantRepo repository.VariantRepository
	queueClient *queue.Client
}

// NewInventoryService 创建库存服务
func NewInventoryService(variantRepo repository.VariantRepository, queueClient *queue.Client) *InventoryService {
	return &InventoryService{
		variantRepo: variantRepo,
		queueClient: queueClient,
	}
}

// Receive 入库收货
func (s *InventoryService) Receive(sku string, quantity int) (*models.Variant, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	variant, err := s.variantRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrNotFound
	}
	if _, err := s.variantRepo.IncrementOnHand(variant.ID, quantity); err != nil {
		return nil, err
	}
	logger.Infow("inventory_received",
		"sku", variant.SKU,
		"quantity", quantity,
	)
	return s.variantRepo.GetByID(variant.ID)
}

// Deduct 盘亏扣减（条件更新，不允许扣到负数）
func (s *InventoryService) Deduct(sku string, quantity int) (*models.Variant, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	variant, err := s.variantRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrNotFound
	}
	affected, err := s.variantRepo.DecrementOnHand(variant.ID, quantity)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		stockErr := &InsufficientStockError{
			SKU:       variant.SKU,
			Variant:   variant.Describe(),
			Available: variant.OnHand,
			Requested: quantity,
		}
		if variant.Product != nil {
			stockErr.ProductName = variant.Product.FullName()
		}
		return nil, stockErr
	}
	logger.Infow("inventory_deducted",
		"sku", variant.SKU,
		"quantity", quantity,
	)
	return s.variantRepo.GetByID(variant.ID)
}

// LowStock 获取低库存清单
func (s *InventoryService) LowStock() ([]models.Variant, error) {
	return s.variantRepo.ListBelowMinStock()
}

// SweepLowStock 巡检低库存并逐个推送告警任务，返回触线数量
func (s *InventoryService) SweepLowStock() (int, error) {
	variants, err := s.variantRepo.ListBelowMinStock()
	if err != nil {
		return 0, err
	}
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return len(variants), nil
	}
	for i := range variants {
		variant := &variants[i]
		if err := s.queueClient.EnqueueLowStockAlert(queue.LowStockAlertPayload{
			VariantID: variant.ID,
			SKU:       variant.SKU,
			OnHand:    variant.OnHand,
			MinStock:  variant.MinStock,
		}); err != nil {
			logger.Warnw("low_stock_alert_enqueue_failed",
				"sku", variant.SKU,
				"error", err,
			)
		}
	}
	return len(variants), nil
}
