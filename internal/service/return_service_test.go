package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type returnFixture struct {
	db       *gorm.DB
	service  *ReturnService
	order    models.Order
	loafer   models.Variant
	sneaker  models.Variant
}

// setupReturnDB 造一张已完成订单：2 双乐福鞋 + 1 双运动鞋
func setupReturnDB(t *testing.T) *returnFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:return_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{}, &models.Variant{},
		&models.Order{}, &models.OrderItem{},
		&models.Return{}, &models.ReturnItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	product := models.Product{
		Brand:    "Gucci",
		Name:     "Horsebit Loafer",
		Category: "Shoes",
		BaseSKU:  "GUC-HBL",
		Variants: []models.Variant{
			{SKU: "GUC-HBL-39", Color: "Brown", Size: "39", RetailPrice: mustMoney("890.00"), OnHand: 3, MinStock: 1},
			{SKU: "GUC-SNK-40", Color: "White", Size: "40", RetailPrice: mustMoney("450.00"), OnHand: 4, MinStock: 1},
		},
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	loafer := product.Variants[0]
	sneaker := product.Variants[1]

	order := models.Order{
		Code:           "RTN001",
		Type:           constants.OrderTypeSale,
		Status:         constants.OrderStatusCompleted,
		Subtotal:       mustMoney("2230.00"),
		DiscountAmount: mustMoney("0"),
		TotalAmount:    mustMoney("2230.00"),
		Currency:       constants.DefaultCurrency,
		Items: []models.OrderItem{
			{VariantID: loafer.ID, SKU: loafer.SKU, ProductName: "Gucci Horsebit Loafer", UnitPrice: mustMoney("890.00"), Quantity: 2},
			{VariantID: sneaker.ID, SKU: sneaker.SKU, ProductName: "Gucci Sneaker", UnitPrice: mustMoney("450.00"), Quantity: 1},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	service := NewReturnService(
		repository.NewOrderRepository(db),
		repository.NewReturnRepository(db),
		repository.NewVariantRepository(db),
		nil,
		constants.DefaultReturnWindowDays,
	)

	return &returnFixture{db: db, service: service, order: order, loafer: loafer, sneaker: sneaker}
}

func (f *returnFixture) backdateOrder(t *testing.T, days int) {
	t.Helper()
	past := time.Now().AddDate(0, 0, -days)
	if err := f.db.Model(&models.Order{}).Where("id = ?", f.order.ID).Update("created_at", past).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}
}

func TestReturnLookupListsItems(t *testing.T) {
	f := setupReturnDB(t)

	result, err := f.service.Lookup("rtn001")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if !result.WindowOpen {
		t.Fatalf("expected window open")
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 lookup items, got %d", len(result.Items))
	}
	for _, item := range result.Items {
		if item.Eligibility != ReturnEligibilityReturnable {
			t.Fatalf("expected returnable, got %s", item.Eligibility)
		}
		if item.QtyRemaining != item.Quantity {
			t.Fatalf("expected full quantity remaining, got %+v", item)
		}
	}
}

func TestReturnLookupByNumericID(t *testing.T) {
	f := setupReturnDB(t)
	result, err := f.service.Lookup(fmt.Sprintf("%d", f.order.ID))
	if err != nil {
		t.Fatalf("lookup by id error: %v", err)
	}
	if result.Order.Code != "RTN001" {
		t.Fatalf("expected order RTN001, got %s", result.Order.Code)
	}
}

func TestReturnLookupWindowClosedRejects(t *testing.T) {
	f := setupReturnDB(t)
	f.backdateOrder(t, constants.DefaultReturnWindowDays+1)

	if _, err := f.service.Lookup("RTN001"); !errors.Is(err, ErrReturnWindowClosed) {
		t.Fatalf("expected ErrReturnWindowClosed, got %v", err)
	}
}

func TestReturnLookupAllItemsReturnedRejects(t *testing.T) {
	f := setupReturnDB(t)
	// 明细全部退完但订单状态尚未刷新
	if err := f.db.Model(&models.OrderItem{}).
		Where("order_id = ?", f.order.ID).
		Update("qty_returned", gorm.Expr("quantity")).Error; err != nil {
		t.Fatalf("mark items returned failed: %v", err)
	}

	if _, err := f.service.Lookup("RTN001"); !errors.Is(err, ErrOrderFullyReturned) {
		t.Fatalf("expected ErrOrderFullyReturned, got %v", err)
	}
}

func TestReturnLookupMixedEligibility(t *testing.T) {
	f := setupReturnDB(t)
	// 乐福鞋已全退，运动鞋仍可退：查询应成功并区分资格
	if err := f.db.Model(&models.OrderItem{}).
		Where("id = ?", f.order.Items[0].ID).
		Update("qty_returned", 2).Error; err != nil {
		t.Fatalf("mark item returned failed: %v", err)
	}

	result, err := f.service.Lookup("RTN001")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	byID := make(map[uint]string, len(result.Items))
	for _, item := range result.Items {
		byID[item.OrderItemID] = item.Eligibility
	}
	if byID[f.order.Items[0].ID] != ReturnEligibilityAlreadyReturned {
		t.Fatalf("expected already_returned for loafer line, got %s", byID[f.order.Items[0].ID])
	}
	if byID[f.order.Items[1].ID] != ReturnEligibilityReturnable {
		t.Fatalf("expected returnable for sneaker line, got %s", byID[f.order.Items[1].ID])
	}
}

func TestReturnLookupRejectsReturnOrders(t *testing.T) {
	f := setupReturnDB(t)
	returnOrder := models.Order{
		Code:   "RTNORD",
		Type:   constants.OrderTypeReturn,
		Status: constants.OrderStatusCompleted,
	}
	if err := f.db.Create(&returnOrder).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := f.service.Lookup("RTNORD"); !errors.Is(err, ErrOrderNotReturnable) {
		t.Fatalf("expected ErrOrderNotReturnable, got %v", err)
	}
	if _, err := f.service.Lookup("MISSING"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestReturnCheckoutPartialRefundAndRestock(t *testing.T) {
	f := setupReturnDB(t)
	loaferItemID := f.order.Items[0].ID

	ret, err := f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: loaferItemID, Quantity: 1, Reason: constants.ReturnReasonWrongSize, Action: constants.ReturnActionRefund},
		},
	})
	if err != nil {
		t.Fatalf("return checkout error: %v", err)
	}
	if ret.Reference == "" {
		t.Fatalf("expected return reference")
	}
	if !ret.RefundAmount.Decimal.Equal(decimal.RequireFromString("890")) {
		t.Fatalf("expected refund 890, got %s", ret.RefundAmount.String())
	}
	if !ret.NetAmount.Decimal.Equal(decimal.RequireFromString("-890")) {
		t.Fatalf("expected net -890, got %s", ret.NetAmount.String())
	}

	var order models.Order
	if err := f.db.First(&order, f.order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPartiallyReturned {
		t.Fatalf("expected PARTIALLY_RETURNED, got %s", order.Status)
	}

	var variant models.Variant
	if err := f.db.First(&variant, f.loafer.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if variant.OnHand != 4 {
		t.Fatalf("expected restocked on_hand 4, got %d", variant.OnHand)
	}

	var item models.OrderItem
	if err := f.db.First(&item, loaferItemID).Error; err != nil {
		t.Fatalf("reload order item failed: %v", err)
	}
	if item.QtyReturned != 1 {
		t.Fatalf("expected qty_returned 1, got %d", item.QtyReturned)
	}
}

func TestReturnCheckoutFullReturn(t *testing.T) {
	f := setupReturnDB(t)

	_, err := f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: f.order.Items[0].ID, Quantity: 2, Reason: constants.ReturnReasonChangedMind, Action: constants.ReturnActionRefund},
			{OrderItemID: f.order.Items[1].ID, Quantity: 1, Reason: constants.ReturnReasonDefective, Action: constants.ReturnActionRefund},
		},
	})
	if err != nil {
		t.Fatalf("return checkout error: %v", err)
	}

	var order models.Order
	if err := f.db.First(&order, f.order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if order.Status != constants.OrderStatusFullyReturned {
		t.Fatalf("expected FULLY_RETURNED, got %s", order.Status)
	}

	// 全退后再退直接拒绝
	_, err = f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: f.order.Items[0].ID, Quantity: 1, Reason: constants.ReturnReasonOther, Action: constants.ReturnActionRefund},
		},
	})
	if !errors.Is(err, ErrOrderFullyReturned) {
		t.Fatalf("expected ErrOrderFullyReturned, got %v", err)
	}
}

func TestReturnCheckoutValidation(t *testing.T) {
	f := setupReturnDB(t)
	itemID := f.order.Items[0].ID

	_, err := f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: itemID, Quantity: 3, Reason: constants.ReturnReasonOther, Action: constants.ReturnActionRefund},
		},
	})
	if !errors.Is(err, ErrReturnExcessQuantity) {
		t.Fatalf("expected ErrReturnExcessQuantity, got %v", err)
	}

	_, err = f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: itemID, Quantity: 1, Reason: "BECAUSE", Action: constants.ReturnActionRefund},
		},
	})
	if !errors.Is(err, ErrReturnInvalidReason) {
		t.Fatalf("expected ErrReturnInvalidReason, got %v", err)
	}

	_, err = f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: itemID, Quantity: 1, Reason: constants.ReturnReasonOther, Action: "TRADE"},
		},
	})
	if !errors.Is(err, ErrReturnInvalidAction) {
		t.Fatalf("expected ErrReturnInvalidAction, got %v", err)
	}

	_, err = f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: 9999, Quantity: 1, Reason: constants.ReturnReasonOther, Action: constants.ReturnActionRefund},
		},
	})
	if !errors.Is(err, ErrReturnItemMismatch) {
		t.Fatalf("expected ErrReturnItemMismatch, got %v", err)
	}

	_, err = f.service.Checkout(ReturnCheckoutInput{OrderRef: "RTN001"})
	if !errors.Is(err, ErrReturnNothing) {
		t.Fatalf("expected ErrReturnNothing, got %v", err)
	}
}

func TestReturnCheckoutWindowClosed(t *testing.T) {
	f := setupReturnDB(t)
	f.backdateOrder(t, constants.DefaultReturnWindowDays+1)

	_, err := f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: f.order.Items[0].ID, Quantity: 1, Reason: constants.ReturnReasonOther, Action: constants.ReturnActionRefund},
		},
	})
	if !errors.Is(err, ErrReturnWindowClosed) {
		t.Fatalf("expected ErrReturnWindowClosed, got %v", err)
	}
}

func TestExchangeCreatesLinkedOrder(t *testing.T) {
	f := setupReturnDB(t)

	ret, err := f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: f.order.Items[0].ID, Quantity: 1, Reason: constants.ReturnReasonWrongSize, Action: constants.ReturnActionExchange},
		},
		ExchangeItems: []CheckoutItemInput{
			{SKU: "GUC-SNK-40", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("exchange checkout error: %v", err)
	}
	if ret.ExchangeOrderID == nil {
		t.Fatalf("expected exchange order linked")
	}

	var exchange models.Order
	if err := f.db.Preload("Items").First(&exchange, *ret.ExchangeOrderID).Error; err != nil {
		t.Fatalf("load exchange order failed: %v", err)
	}
	if exchange.Type != constants.OrderTypeExchange || exchange.Status != constants.OrderStatusCompleted {
		t.Fatalf("unexpected exchange type/status: %s/%s", exchange.Type, exchange.Status)
	}
	if exchange.ParentOrderID == nil || *exchange.ParentOrderID != f.order.ID {
		t.Fatalf("expected parent link to original order")
	}
	if !exchange.TotalAmount.Decimal.Equal(decimal.RequireFromString("900")) {
		t.Fatalf("expected replacement value 900, got %s", exchange.TotalAmount.String())
	}

	// 净额 = 换货价值 - 退款
	if !ret.ReplacementValue.Decimal.Equal(decimal.RequireFromString("900")) {
		t.Fatalf("expected replacement 900, got %s", ret.ReplacementValue.String())
	}
	if !ret.NetAmount.Decimal.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected net 10, got %s", ret.NetAmount.String())
	}

	// 退回 +1、换出 -2
	var loafer, sneaker models.Variant
	if err := f.db.First(&loafer, f.loafer.ID).Error; err != nil {
		t.Fatalf("reload loafer failed: %v", err)
	}
	if err := f.db.First(&sneaker, f.sneaker.ID).Error; err != nil {
		t.Fatalf("reload sneaker failed: %v", err)
	}
	if loafer.OnHand != 4 {
		t.Fatalf("expected loafer on_hand 4, got %d", loafer.OnHand)
	}
	if sneaker.OnHand != 2 {
		t.Fatalf("expected sneaker on_hand 2, got %d", sneaker.OnHand)
	}
}

func TestExchangeHonorsPostedUnitPrice(t *testing.T) {
	f := setupReturnDB(t)

	ret, err := f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: f.order.Items[0].ID, Quantity: 1, Reason: constants.ReturnReasonWrongSize, Action: constants.ReturnActionExchange},
		},
		ExchangeItems: []CheckoutItemInput{
			{SKU: "GUC-SNK-40", Quantity: 2, UnitPrice: moneyPtr("400.00")},
		},
	})
	if err != nil {
		t.Fatalf("exchange checkout error: %v", err)
	}
	if ret.ExchangeOrderID == nil {
		t.Fatalf("expected exchange order linked")
	}

	var exchange models.Order
	if err := f.db.Preload("Items").First(&exchange, *ret.ExchangeOrderID).Error; err != nil {
		t.Fatalf("load exchange order failed: %v", err)
	}
	if len(exchange.Items) != 1 {
		t.Fatalf("expected 1 exchange line, got %d", len(exchange.Items))
	}
	if !exchange.Items[0].UnitPrice.Decimal.Equal(decimal.RequireFromString("400")) {
		t.Fatalf("expected posted price 400 on snapshot, got %s", exchange.Items[0].UnitPrice.String())
	}
	if !exchange.TotalAmount.Decimal.Equal(decimal.RequireFromString("800")) {
		t.Fatalf("expected replacement value 800, got %s", exchange.TotalAmount.String())
	}
	// 净额 = 800 换货 - 890 退款
	if !ret.NetAmount.Decimal.Equal(decimal.RequireFromString("-90")) {
		t.Fatalf("expected net -90, got %s", ret.NetAmount.String())
	}
}

func TestExchangeInsufficientStockAborts(t *testing.T) {
	f := setupReturnDB(t)

	_, err := f.service.Checkout(ReturnCheckoutInput{
		OrderRef: "RTN001",
		Items: []ReturnItemInput{
			{OrderItemID: f.order.Items[0].ID, Quantity: 1, Reason: constants.ReturnReasonWrongSize, Action: constants.ReturnActionExchange},
		},
		ExchangeItems: []CheckoutItemInput{
			{SKU: "GUC-SNK-40", Quantity: 99},
		},
	})
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	// 整单回滚：原单状态与库存不变
	var order models.Order
	if err := f.db.First(&order, f.order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if order.Status != constants.OrderStatusCompleted {
		t.Fatalf("expected order untouched, got %s", order.Status)
	}
	var loafer models.Variant
	if err := f.db.First(&loafer, f.loafer.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if loafer.OnHand != 3 {
		t.Fatalf("expected stock untouched 3, got %d", loafer.OnHand)
	}
}
