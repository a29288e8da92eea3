package service

import (
	"context"
	"time"

	"github.com/aurelion-pos/internal/cache"
	"github.com/aurelion-pos/internal/logger"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/repository"
)

// ReceiptLine 小票单行
type ReceiptLine struct {
	SKU         string       `json:"sku"`
	ProductName string       `json:"product_name"`
	Color       string       `json:"color,omitempty"`
	Size        string       `json:"size,omitempty"`
	UnitPrice   models.Money `json:"unit_price"`
	Quantity    int          `json:"quantity"`
	LineTotal   models.Money `json:"line_total"`
}

// Receipt 订单小票
type Receipt struct {
	OrderCode     string        `json:"order_code"`
	OrderType     string        `json:"order_type"`
	Status        string        `json:"status"`
	ClientName    string        `json:"client_name"`
	StaffName     string        `json:"staff_name,omitempty"`
	Lines         []ReceiptLine `json:"lines"`
	Subtotal      models.Money  `json:"subtotal"`
	Discount      models.Money  `json:"discount"`
	Total         models.Money  `json:"total"`
	Currency      string        `json:"currency"`
	PromotionName string        `json:"promotion_name,omitempty"`
	PromotionCode string        `json:"promotion_code,omitempty"`
	IssuedAt      time.Time     `json:"issued_at"`
}

// ReceiptService 小票服务（生成 + Redis 缓存）
type ReceiptService struct {
	orderRepo repository.OrderRepository
	staffRepo repository.StaffRepository
	cacheTTL  time.Duration
}

// NewReceiptService 创建小票服务
func NewReceiptService(orderRepo repository.OrderRepository, staffRepo repository.StaffRepository, cacheTTL time.Duration) *ReceiptService {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &ReceiptService{
		orderRepo: orderRepo,
		staffRepo: staffRepo,
		cacheTTL:  cacheTTL,
	}
}

// ForOrder 按订单号生成小票，优先命中缓存
func (s *ReceiptService) ForOrder(ctx context.Context, orderCode string) (*Receipt, error) {
	var cached Receipt
	hit, err := cache.GetReceipt(ctx, orderCode, &cached)
	if err != nil {
		logger.Warnw("receipt_cache_read_failed",
			"order_code", orderCode,
			"error", err,
		)
	}
	if hit {
		return &cached, nil
	}

	order, err := s.orderRepo.GetByCode(orderCode)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	receipt := s.build(order)
	if err := cache.SetReceipt(ctx, order.Code, receipt, s.cacheTTL); err != nil {
		logger.Warnw("receipt_cache_write_failed",
			"order_code", order.Code,
			"error", err,
		)
	}
	return receipt, nil
}

// Invalidate 退换货后失效小票缓存
func (s *ReceiptService) Invalidate(ctx context.Context, orderCode string) {
	if err := cache.DelReceipt(ctx, orderCode); err != nil {
		logger.Warnw("receipt_cache_invalidate_failed",
			"order_code", orderCode,
			"error", err,
		)
	}
}

// build 从订单构建小票视图
func (s *ReceiptService) build(order *models.Order) *Receipt {
	receipt := &Receipt{
		OrderCode:  order.Code,
		OrderType:  order.Type,
		Status:     order.Status,
		ClientName: "Walk-in",
		Subtotal:   order.Subtotal,
		Discount:   order.DiscountAmount,
		Total:      order.TotalAmount,
		Currency:   order.Currency,
		IssuedAt:   order.CreatedAt,
	}
	if order.Client != nil {
		receipt.ClientName = order.Client.DisplayName()
	}
	if order.Staff != nil {
		receipt.StaffName = order.Staff.DisplayName
	}
	if order.Promotion != nil {
		receipt.PromotionName = order.Promotion.Name
		receipt.PromotionCode = order.Promotion.Code
	}
	for i := range order.Items {
		item := &order.Items[i]
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			SKU:         item.SKU,
			ProductName: item.ProductName,
			Color:       item.Color,
			Size:        item.Size,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal(),
		})
	}
	return receipt
}
