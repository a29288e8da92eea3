package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/logger"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/queue"
	"github.com/aurelion-pos/internal/repository"
)

// 退货明细资格标记
const (
	ReturnEligibilityReturnable      = "returnable"
	ReturnEligibilityAlreadyReturned = "already_returned"
	ReturnEligibilityNotEligible     = "not_eligible"
)

// ReturnLookupItem 可退查询的单行结果
type ReturnLookupItem struct {
	OrderItemID  uint         `json:"order_item_id"`
	SKU          string       `json:"sku"`
	ProductName  string       `json:"product_name"`
	Color        string       `json:"color,omitempty"`
	Size         string       `json:"size,omitempty"`
	UnitPrice    models.Money `json:"unit_price"`
	Quantity     int          `json:"quantity"`
	QtyReturned  int          `json:"qty_returned"`
	QtyRemaining int          `json:"qty_remaining"`
	Eligibility  string       `json:"eligibility"`
}

// ReturnLookupResult 可退查询结果
type ReturnLookupResult struct {
	Order        *models.Order      `json:"order"`
	WindowOpen   bool               `json:"window_open"`
	WindowCloses time.Time          `json:"window_closes"`
	Items        []ReturnLookupItem `json:"items"`
}

// ReturnItemInput 退货明细输入
type ReturnItemInput struct {
	OrderItemID uint   `json:"order_item_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Reason      string `json:"reason" binding:"required"`
	Action      string `json:"action" binding:"required"`
}

// ReturnCheckoutInput 退换货结账输入
type ReturnCheckoutInput struct {
	OrderRef      string              `json:"order_ref" binding:"required"`
	Items         []ReturnItemInput   `json:"items" binding:"required,dive"`
	ExchangeItems []CheckoutItemInput `json:"exchange_items"`
	StaffID       *uint               `json:"-"`
	Notes         string              `json:"notes"`
}

// ReturnService 退换货服务
type ReturnService struct {
	orderRepo   repository.OrderRepository
	returnRepo  repository.ReturnRepository
	variantRepo repository.VariantRepository
	queueClient *queue.Client
	windowDays  int
}

// NewReturnService 创建退换货服务
func NewReturnService(
	orderRepo repository.OrderRepository,
	returnRepo repository.ReturnRepository,
	variantRepo repository.VariantRepository,
	queueClient *queue.Client,
	windowDays int,
) *ReturnService {
	if windowDays <= 0 {
		windowDays = constants.DefaultReturnWindowDays
	}
	return &ReturnService{
		orderRepo:   orderRepo,
		returnRepo:  returnRepo,
		variantRepo: variantRepo,
		queueClient: queueClient,
		windowDays:  windowDays,
	}
}

// Lookup 按订单号（或数字 ID 兜底）查询可退情况
func (s *ReturnService) Lookup(orderRef string) (*ReturnLookupResult, error) {
	order, err := s.findOrder(orderRef)
	if err != nil {
		return nil, err
	}
	if order.Type == constants.OrderTypeReturn {
		return nil, ErrOrderNotReturnable
	}
	if order.Status == constants.OrderStatusFullyReturned {
		return nil, ErrOrderFullyReturned
	}

	now := time.Now()
	windowOpen := s.withinWindow(order.CreatedAt, now)
	result := &ReturnLookupResult{
		Order:        order,
		WindowOpen:   windowOpen,
		WindowCloses: order.CreatedAt.AddDate(0, 0, s.windowDays),
	}

	returnable := 0
	for i := range order.Items {
		item := &order.Items[i]
		lookupItem := ReturnLookupItem{
			OrderItemID:  item.ID,
			SKU:          item.SKU,
			ProductName:  item.ProductName,
			Color:        item.Color,
			Size:         item.Size,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			QtyReturned:  item.QtyReturned,
			QtyRemaining: item.QtyRemaining(),
		}
		switch {
		case item.IsFullyReturned():
			lookupItem.Eligibility = ReturnEligibilityAlreadyReturned
		case !windowOpen:
			lookupItem.Eligibility = ReturnEligibilityNotEligible
		default:
			lookupItem.Eligibility = ReturnEligibilityReturnable
			returnable++
		}
		result.Items = append(result.Items, lookupItem)
	}

	// 无任何可退明细时整单拒绝，区分窗口已关与已全退
	if returnable == 0 {
		if !windowOpen {
			return nil, ErrReturnWindowClosed
		}
		return nil, ErrOrderFullyReturned
	}
	return result, nil
}

// Checkout 提交退换货。退回、回库、换货扣减、开换货单与状态推导在同一事务内完成。
func (s *ReturnService) Checkout(input ReturnCheckoutInput) (*models.Return, error) {
	order, err := s.findOrder(input.OrderRef)
	if err != nil {
		return nil, err
	}
	if order.Type == constants.OrderTypeReturn {
		return nil, ErrOrderNotReturnable
	}
	if order.Status == constants.OrderStatusFullyReturned {
		return nil, ErrOrderFullyReturned
	}
	now := time.Now()
	if !s.withinWindow(order.CreatedAt, now) {
		return nil, ErrReturnWindowClosed
	}
	if len(input.Items) == 0 {
		return nil, ErrReturnNothing
	}

	itemByID := make(map[uint]*models.OrderItem, len(order.Items))
	for i := range order.Items {
		itemByID[order.Items[i].ID] = &order.Items[i]
	}

	for _, returnItem := range input.Items {
		orderItem, ok := itemByID[returnItem.OrderItemID]
		if !ok {
			return nil, &ReturnItemError{
				OrderItemID: returnItem.OrderItemID,
				Reason:      "not part of this order",
				Err:         ErrReturnItemMismatch,
			}
		}
		if !constants.ValidReturnReason(returnItem.Reason) {
			return nil, &ReturnItemError{
				OrderItemID: returnItem.OrderItemID,
				SKU:         orderItem.SKU,
				Reason:      "unknown reason " + returnItem.Reason,
				Err:         ErrReturnInvalidReason,
			}
		}
		if !constants.ValidReturnAction(returnItem.Action) {
			return nil, &ReturnItemError{
				OrderItemID: returnItem.OrderItemID,
				SKU:         orderItem.SKU,
				Reason:      "unknown action " + returnItem.Action,
				Err:         ErrReturnInvalidAction,
			}
		}
		if returnItem.Quantity <= 0 || returnItem.Quantity > orderItem.QtyRemaining() {
			return nil, &ReturnItemError{
				OrderItemID: returnItem.OrderItemID,
				SKU:         orderItem.SKU,
				Reason:      "quantity exceeds remaining",
				Err:         ErrReturnExcessQuantity,
			}
		}
	}

	exchangeLines, err := s.prevalidateExchange(input.ExchangeItems)
	if err != nil {
		return nil, err
	}

	ret := &models.Return{
		Reference: uuid.NewString(),
		OrderID:   order.ID,
		StaffID:   input.StaffID,
		Notes:     input.Notes,
	}

	err = s.returnRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)
		returnRepo := s.returnRepo.WithTx(tx)

		refund := models.ZeroMoney().Decimal
		for _, returnItem := range input.Items {
			orderItem := itemByID[returnItem.OrderItemID]

			affected, err := orderRepo.UpdateItemReturnedQty(orderItem.ID, returnItem.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &ReturnItemError{
					OrderItemID: orderItem.ID,
					SKU:         orderItem.SKU,
					Reason:      "quantity exceeds remaining",
					Err:         ErrReturnExcessQuantity,
				}
			}

			if _, err := variantRepo.IncrementOnHand(orderItem.VariantID, returnItem.Quantity); err != nil {
				return err
			}

			line := models.ReturnItem{
				OrderItemID: orderItem.ID,
				SKU:         orderItem.SKU,
				Quantity:    returnItem.Quantity,
				UnitPrice:   orderItem.UnitPrice,
				Reason:      returnItem.Reason,
				Action:      returnItem.Action,
				Restocked:   true,
			}
			ret.Items = append(ret.Items, line)
			refund = refund.Add(line.LineRefund().Decimal)
		}
		ret.RefundAmount = models.NewMoneyFromDecimal(refund)

		if len(exchangeLines) > 0 {
			exchangeOrder, err := s.createExchangeOrderTx(tx, order, input.StaffID, exchangeLines)
			if err != nil {
				return err
			}
			ret.ExchangeOrderID = &exchangeOrder.ID
			ret.ReplacementValue = exchangeOrder.TotalAmount
		}
		ret.NetAmount = models.NewMoneyFromDecimal(ret.ReplacementValue.Decimal.Sub(ret.RefundAmount.Decimal))

		if err := returnRepo.Create(ret); err != nil {
			return err
		}

		fresh, err := orderRepo.GetByID(order.ID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return ErrOrderNotFound
		}
		newStatus := resolveReturnStatus(fresh.Items, fresh.Status)
		if newStatus != fresh.Status {
			if err := orderRepo.UpdateStatus(order.ID, newStatus); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("return_completed",
		"return_reference", ret.Reference,
		"order_id", order.ID,
		"order_code", order.Code,
		"refund", ret.RefundAmount.String(),
		"replacement", ret.ReplacementValue.String(),
		"net", ret.NetAmount.String(),
	)

	s.alertExchangeLowStock(exchangeLines)

	return s.returnRepo.GetByID(ret.ID)
}

// createExchangeOrderTx 事务内创建换货新单（关联原单，按行成交价落单，缺省零售价）
func (s *ReturnService) createExchangeOrderTx(tx *gorm.DB, parent *models.Order, staffID *uint, lines []checkoutLine) (*models.Order, error) {
	orderRepo := s.orderRepo.WithTx(tx)
	variantRepo := s.variantRepo.WithTx(tx)

	code, err := generateUniqueOrderCode(orderRepo)
	if err != nil {
		return nil, err
	}

	exchangeOrder := &models.Order{
		Code:          code,
		Type:          constants.OrderTypeExchange,
		Status:        constants.OrderStatusCompleted,
		ClientID:      parent.ClientID,
		StaffID:       staffID,
		LocationID:    parent.LocationID,
		ParentOrderID: &parent.ID,
		Currency:      parent.Currency,
	}

	subtotal := models.ZeroMoney().Decimal
	for _, line := range lines {
		variant, err := variantRepo.GetBySKU(line.SKU)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSKU, line.SKU)
		}

		affected, err := variantRepo.DecrementOnHand(variant.ID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			stockErr := &InsufficientStockError{
				SKU:       variant.SKU,
				Variant:   variant.Describe(),
				Available: variant.OnHand,
				Requested: line.Quantity,
			}
			if variant.Product != nil {
				stockErr.ProductName = variant.Product.FullName()
			}
			return nil, stockErr
		}

		unitPrice := variant.RetailPrice
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		item := models.OrderItem{
			VariantID: variant.ID,
			SKU:       variant.SKU,
			Color:     variant.Color,
			Size:      variant.Size,
			UnitPrice: unitPrice,
			Quantity:  line.Quantity,
		}
		if variant.Product != nil {
			item.ProductName = variant.Product.FullName()
			item.Brand = variant.Product.Brand
			item.Category = variant.Product.Category
		}
		exchangeOrder.Items = append(exchangeOrder.Items, item)
		subtotal = subtotal.Add(item.LineTotal().Decimal)
	}

	exchangeOrder.Subtotal = models.NewMoneyFromDecimal(subtotal)
	exchangeOrder.DiscountAmount = models.ZeroMoney()
	exchangeOrder.TotalAmount = exchangeOrder.Subtotal

	if err := orderRepo.Create(exchangeOrder); err != nil {
		return nil, err
	}
	return exchangeOrder, nil
}

// prevalidateExchange 合并换货输入并预检库存
func (s *ReturnService) prevalidateExchange(items []CheckoutItemInput) ([]checkoutLine, error) {
	if len(items) == 0 {
		return nil, nil
	}
	lines, err := mergeCheckoutItems(items)
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
	for _, sku := range skus {
		variant, ok := variantBySKU[sku]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSKU, sku)
		}
		if variant.OnHand < qtyBySKU[sku] {
			stockErr := &InsufficientStockError{
				SKU:       variant.SKU,
				Variant:   variant.Describe(),
				Available: variant.OnHand,
				Requested: qtyBySKU[sku],
			}
			if variant.Product != nil {
				stockErr.ProductName = variant.Product.FullName()
			}
			return nil, stockErr
		}
	}
	return lines, nil
}

// alertExchangeLowStock 换货出库后对触线 SKU 推送低库存告警
func (s *ReturnService) alertExchangeLowStock(lines []checkoutLine) {
	if s.queueClient == nil || !s.queueClient.Enabled() || len(lines) == 0 {
		return
	}
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if seen[line.SKU] {
			continue
		}
		seen[line.SKU] = true
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

// findOrder 按订单号查找订单，纯数字输入兜底按 ID 查找
func (s *ReturnService) findOrder(orderRef string) (*models.Order, error) {
	orderRef = strings.TrimSpace(orderRef)
	if orderRef == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByCode(orderRef)
	if err != nil {
		return nil, err
	}
	if order == nil {
		if id, convErr := strconv.ParseUint(orderRef, 10, 64); convErr == nil {
			order, err = s.orderRepo.GetByID(uint(id))
			if err != nil {
				return nil, err
			}
		}
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// withinWindow 判断是否仍在退货窗口内（按整天计算）
func (s *ReturnService) withinWindow(orderedAt, now time.Time) bool {
	days := int(now.Sub(orderedAt).Hours() / 24)
	return days <= s.windowDays
}
