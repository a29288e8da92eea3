package service

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/logger"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/queue"
	"github.com/aurelion-pos/internal/repository"
)

// CheckoutItemInput 结账单行输入。不传 unit_price 时按当前零售价成交。
type CheckoutItemInput struct {
	SKU       string        `json:"sku" binding:"required"`
	Quantity  int           `json:"quantity" binding:"required,gt=0"`
	UnitPrice *models.Money `json:"unit_price"`
}

// CheckoutInput 结账输入。Discount 为柜台手动折扣，与促销折扣叠加。
type CheckoutInput struct {
	ClientID   *uint               `json:"client_id"`
	StaffID    *uint               `json:"-"`
	LocationID *uint               `json:"location_id"`
	Items      []CheckoutItemInput `json:"items" binding:"required,dive"`
	PromoCode  string              `json:"promo_code"`
	Discount   models.Money        `json:"discount"`
	Notes      string              `json:"notes"`
}

// CheckoutQuote 结账试算结果。Discount = 促销折扣 + 手动折扣。
type CheckoutQuote struct {
	Lines          []models.OrderItem `json:"lines"`
	Subtotal       models.Money       `json:"subtotal"`
	PromoDiscount  models.Money       `json:"promo_discount"`
	ManualDiscount models.Money       `json:"manual_discount"`
	Discount       models.Money       `json:"discount"`
	Total          models.Money       `json:"total"`
	Promotion      *models.Promotion  `json:"promotion,omitempty"`
	ClientTier     string             `json:"client_tier"`
	pricingLines   []PricingLine
	variantBySKU   map[string]*models.Variant
}

// CheckoutService 结账服务
type CheckoutService struct {
	orderRepo        repository.OrderRepository
	variantRepo      repository.VariantRepository
	clientRepo       repository.ClientRepository
	usageRepo        repository.PromotionUsageRepository
	promotionRepo    repository.PromotionRepository
	promotionService *PromotionService
	loyaltyService   *LoyaltyService
	queueClient      *queue.Client
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	variantRepo repository.VariantRepository,
	clientRepo repository.ClientRepository,
	promotionRepo repository.PromotionRepository,
	usageRepo repository.PromotionUsageRepository,
	promotionService *PromotionService,
	loyaltyService *LoyaltyService,
	queueClient *queue.Client,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:        orderRepo,
		variantRepo:      variantRepo,
		clientRepo:       clientRepo,
		promotionRepo:    promotionRepo,
		usageRepo:        usageRepo,
		promotionService: promotionService,
		loyaltyService:   loyaltyService,
		queueClient:      queueClient,
	}
}

// Preview 结账试算（不动库存、不落单）
func (s *CheckoutService) Preview(input CheckoutInput) (*CheckoutQuote, error) {
	return s.buildQuote(input, time.Now())
}

// Checkout 结账落单。库存扣减走条件更新防止超卖，促销命中后在同一事务内登记使用。
func (s *CheckoutService) Checkout(input CheckoutInput) (*models.Order, error) {
	now := time.Now()
	quote, err := s.buildQuote(input, now)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Type:           constants.OrderTypeSale,
		Status:         constants.OrderStatusCompleted,
		ClientID:       input.ClientID,
		StaffID:        input.StaffID,
		LocationID:     input.LocationID,
		Subtotal:       quote.Subtotal,
		DiscountAmount: quote.Discount,
		TotalAmount:    quote.Total,
		Currency:       constants.DefaultCurrency,
		Notes:          input.Notes,
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)

		code, err := generateUniqueOrderCode(orderRepo)
		if err != nil {
			return err
		}
		order.Code = code

		for _, line := range quote.Lines {
			affected, err := variantRepo.DecrementOnHand(line.VariantID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return s.stockError(variantRepo, line.SKU, line.Quantity)
			}
		}

		if quote.Promotion != nil {
			applied, err := s.applyPromotionTx(tx, quote, input)
			if err != nil {
				return err
			}
			if !applied {
				// 自动促销在并发下被用尽：退化为仅手动折扣成交
				quote.Promotion = nil
				quote.PromoDiscount = models.ZeroMoney()
				quote.Discount = quote.ManualDiscount
				quote.Total = models.NewMoneyFromDecimal(quote.Subtotal.Decimal.Sub(quote.Discount.Decimal))
				order.DiscountAmount = quote.Discount
				order.TotalAmount = quote.Total
			}
		}
		if quote.Promotion != nil {
			order.PromotionID = &quote.Promotion.ID
			order.PromotionCode = quote.Promotion.Code
		}

		order.Items = quote.Lines
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		if quote.Promotion != nil {
			usage := &models.PromotionUsage{
				PromotionID:    quote.Promotion.ID,
				ClientID:       input.ClientID,
				OrderID:        order.ID,
				DiscountAmount: quote.PromoDiscount,
			}
			if err := s.usageRepo.WithTx(tx).Create(usage); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("checkout_completed",
		"order_id", order.ID,
		"order_code", order.Code,
		"subtotal", order.Subtotal.String(),
		"discount", order.DiscountAmount.String(),
		"total", order.TotalAmount.String(),
	)

	s.alertLowStock(quote)
	s.archiveReceipt(order.ID)

	return s.orderRepo.GetByID(order.ID)
}

// archiveReceipt 成交后异步预热小票缓存（队列不可用时忽略）
func (s *CheckoutService) archiveReceipt(orderID uint) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueReceiptArchive(queue.ReceiptArchivePayload{OrderID: orderID}); err != nil {
		logger.Warnw("receipt_archive_enqueue_failed",
			"order_id", orderID,
			"error", err,
		)
	}
}

// applyPromotionTx 事务内占用促销名额。促销码路径占用失败直接报错，自动促销路径返回 false 让调用方降级。
func (s *CheckoutService) applyPromotionTx(tx *gorm.DB, quote *CheckoutQuote, input CheckoutInput) (bool, error) {
	affected, err := s.promotionRepo.WithTx(tx).IncrementUsedCount(quote.Promotion.ID)
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return true, nil
	}
	if strings.TrimSpace(input.PromoCode) != "" {
		return false, ErrPromotionExhausted
	}
	return false, nil
}

// buildQuote 校验输入、预检库存并计算价格与促销
func (s *CheckoutService) buildQuote(input CheckoutInput, now time.Time) (*CheckoutQuote, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if input.Discount.Decimal.IsNegative() {
		return nil, ErrInvalidDiscount
	}

	lines, err := mergeCheckoutItems(input.Items)
	if err != nil {
		return nil, err
	}

	skus := make([]string, 0, len(lines))
	qtyBySKU := make(map[string]int, len(lines))
	for _, line := range lines {
		if _, seen := qtyBySKU[line.SKU]; !seen {
			skus = append(skus, line.SKU)
		}
		qtyBySKU[line.SKU] += line.Quantity
	}

	variants, err := s.variantRepo.ListBySKUs(skus)
	if err != nil {
		return nil, err
	}
	variantBySKU := make(map[string]*models.Variant, len(variants))
	for i := range variants {
		variantBySKU[variants[i].SKU] = &variants[i]
	}

	quote := &CheckoutQuote{
		Subtotal:       models.ZeroMoney(),
		PromoDiscount:  models.ZeroMoney(),
		ManualDiscount: input.Discount,
		Discount:       models.ZeroMoney(),
		Total:          models.ZeroMoney(),
		ClientTier:     constants.TierRegular,
		variantBySKU:   variantBySKU,
	}

	// 按 SKU 汇总预检库存，防止同一 SKU 的多行各自通过
	for _, sku := range skus {
		variant, ok := variantBySKU[sku]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSKU, sku)
		}
		if variant.OnHand < qtyBySKU[sku] {
			return nil, s.describeStockError(variant, qtyBySKU[sku])
		}
	}

	subtotal := models.ZeroMoney().Decimal
	for _, cartLine := range lines {
		variant := variantBySKU[cartLine.SKU]
		unitPrice := variant.RetailPrice
		if cartLine.UnitPrice != nil {
			unitPrice = *cartLine.UnitPrice
		}

		item := models.OrderItem{
			VariantID: variant.ID,
			SKU:       variant.SKU,
			Color:     variant.Color,
			Size:      variant.Size,
			UnitPrice: unitPrice,
			Quantity:  cartLine.Quantity,
		}
		line := PricingLine{
			ProductID: variant.ProductID,
			UnitPrice: unitPrice,
			Quantity:  cartLine.Quantity,
		}
		if variant.Product != nil {
			item.ProductName = variant.Product.FullName()
			item.Brand = variant.Product.Brand
			item.Category = variant.Product.Category
			line.Category = variant.Product.Category
			line.Brand = variant.Product.Brand
		}
		quote.Lines = append(quote.Lines, item)
		quote.pricingLines = append(quote.pricingLines, line)
		subtotal = subtotal.Add(line.LineTotal())
	}
	quote.Subtotal = models.NewMoneyFromDecimal(subtotal)

	clientTier, clientID, err := s.resolveClientTier(input.ClientID)
	if err != nil {
		return nil, err
	}
	quote.ClientTier = clientTier

	if code := strings.TrimSpace(input.PromoCode); code != "" {
		promotion, discount, err := s.promotionService.ResolveForCode(code, clientTier, clientID, quote.pricingLines, now)
		if err != nil {
			return nil, err
		}
		if discount.Decimal.GreaterThan(models.ZeroMoney().Decimal) {
			quote.Promotion = promotion
			quote.PromoDiscount = discount
		}
	}
	if quote.Promotion == nil {
		// 无码或码折扣为零时走自动促销择优
		promotion, discount, err := s.promotionService.BestAutomatic(clientTier, clientID, quote.pricingLines, now)
		if err != nil {
			return nil, err
		}
		if promotion != nil && discount.Decimal.GreaterThan(models.ZeroMoney().Decimal) {
			quote.Promotion = promotion
			quote.PromoDiscount = discount
		}
	}

	quote.Discount = models.NewMoneyFromDecimal(quote.PromoDiscount.Decimal.Add(quote.ManualDiscount.Decimal))
	quote.Total = models.NewMoneyFromDecimal(quote.Subtotal.Decimal.Sub(quote.Discount.Decimal))
	return quote, nil
}

// resolveClientTier 解析客户生效会员等级，散客按 REGULAR 处理
func (s *CheckoutService) resolveClientTier(clientID *uint) (string, uint, error) {
	if clientID == nil || *clientID == 0 {
		return constants.TierRegular, 0, nil
	}
	client, err := s.clientRepo.GetByID(*clientID)
	if err != nil {
		return "", 0, err
	}
	if client == nil {
		return "", 0, ErrNotFound
	}
	tier, err := s.loyaltyService.EffectiveTier(client)
	if err != nil {
		return "", 0, err
	}
	return tier, client.ID, nil
}

// describeStockError 构造带商品信息的库存不足错误
func (s *CheckoutService) describeStockError(variant *models.Variant, requested int) error {
	stockErr := &InsufficientStockError{
		SKU:       variant.SKU,
		Variant:   variant.Describe(),
		Available: variant.OnHand,
		Requested: requested,
	}
	if variant.Product != nil {
		stockErr.ProductName = variant.Product.FullName()
	}
	return stockErr
}

// stockError 事务内扣减失败后重查现货构造报错
func (s *CheckoutService) stockError(variantRepo repository.VariantRepository, sku string, requested int) error {
	variant, err := variantRepo.GetBySKU(sku)
	if err != nil || variant == nil {
		return &InsufficientStockError{SKU: sku, Requested: requested}
	}
	return s.describeStockError(variant, requested)
}

// alertLowStock 成交后对触线 SKU 推送低库存告警（队列不可用时忽略）
func (s *CheckoutService) alertLowStock(quote *CheckoutQuote) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	for _, line := range quote.Lines {
		variant, err := s.variantRepo.GetBySKU(line.SKU)
		if err != nil || variant == nil {
			continue
		}
		if variant.OnHand >= variant.MinStock {
			continue
		}
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
}

// checkoutLine 规整后的购物车行。UnitPrice 为空表示按当前零售价成交。
type checkoutLine struct {
	SKU       string
	Quantity  int
	UnitPrice *models.Money
}

// mergeCheckoutItems 校验并合并购物车行，保持首次出现顺序。
// 同一 SKU 同一成交价的行合并数量，不同成交价保留为独立行。
func mergeCheckoutItems(items []CheckoutItemInput) ([]checkoutLine, error) {
	lines := make([]checkoutLine, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		sku := strings.TrimSpace(item.SKU)
		if sku == "" {
			return nil, ErrUnknownSKU
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.UnitPrice != nil && item.UnitPrice.Decimal.IsNegative() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidUnitPrice, sku)
		}

		key := sku
		if item.UnitPrice != nil {
			key = sku + "@" + item.UnitPrice.String()
		}
		if at, seen := index[key]; seen {
			lines[at].Quantity += item.Quantity
			continue
		}
		index[key] = len(lines)
		lines = append(lines, checkoutLine{
			SKU:       sku,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return lines, nil
}
