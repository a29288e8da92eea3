package repository

import (
	"testing"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func repoMoney(raw string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(raw))
}

func orderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return setupRepoDB(t, &models.Client{}, &models.Order{}, &models.OrderItem{})
}

func TestUpdateItemReturnedQtyGuard(t *testing.T) {
	db := orderTestDB(t)
	repo := NewOrderRepository(db)

	order := models.Order{
		Code:   "ORDQTY",
		Type:   constants.OrderTypeSale,
		Status: constants.OrderStatusCompleted,
		Items: []models.OrderItem{
			{SKU: "SKU-1", ProductName: "Test Product", VariantID: 1, Quantity: 3, UnitPrice: repoMoney("100.00")},
		},
	}
	if err := repo.Create(&order); err != nil {
		t.Fatalf("create error: %v", err)
	}
	itemID := order.Items[0].ID

	rows, err := repo.UpdateItemReturnedQty(itemID, 2)
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}

	// 剩余可退 1 件，退 2 件条件不满足
	rows, err = repo.UpdateItemReturnedQty(itemID, 2)
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows affected, got %d", rows)
	}

	var item models.OrderItem
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if item.QtyReturned != 2 {
		t.Fatalf("expected qty_returned 2, got %d", item.QtyReturned)
	}

	if _, err := repo.UpdateItemReturnedQty(itemID, 0); err == nil {
		t.Fatalf("expected error for non-positive quantity")
	}
}

func TestCompletedStatsByClient(t *testing.T) {
	db := orderTestDB(t)
	repo := NewOrderRepository(db)

	client := models.Client{FirstName: "Amara", Phone: "+1555000001"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client failed: %v", err)
	}

	orders := []models.Order{
		{Code: "STAT01", Type: constants.OrderTypeSale, Status: constants.OrderStatusCompleted, ClientID: &client.ID, TotalAmount: repoMoney("1200.00")},
		{Code: "STAT02", Type: constants.OrderTypeExchange, Status: constants.OrderStatusCompleted, ClientID: &client.ID, TotalAmount: repoMoney("300.00")},
		{Code: "STAT03", Type: constants.OrderTypeReturn, Status: constants.OrderStatusCompleted, ClientID: &client.ID, TotalAmount: repoMoney("-500.00")},
		{Code: "STAT04", Type: constants.OrderTypeSale, Status: constants.OrderStatusCancelled, ClientID: &client.ID, TotalAmount: repoMoney("900.00")},
	}
	for i := range orders {
		if err := repo.Create(&orders[i]); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	visits, spend, err := repo.CompletedStatsByClient(client.ID)
	if err != nil {
		t.Fatalf("stats error: %v", err)
	}
	if visits != 2 {
		t.Fatalf("expected 2 visits, got %d", visits)
	}
	if !spend.Decimal.Equal(decimal.RequireFromString("1500")) {
		t.Fatalf("expected spend 1500, got %s", spend)
	}
}

func TestGetByCodeNormalizes(t *testing.T) {
	db := orderTestDB(t)
	repo := NewOrderRepository(db)

	order := models.Order{Code: "AB12CD", Type: constants.OrderTypeSale, Status: constants.OrderStatusCompleted}
	if err := repo.Create(&order); err != nil {
		t.Fatalf("create error: %v", err)
	}

	found, err := repo.GetByCode("  ab12cd ")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if found == nil || found.ID != order.ID {
		t.Fatalf("expected order found by lowercase code")
	}

	exists, err := repo.CodeExists("ab12cd")
	if err != nil {
		t.Fatalf("exists error: %v", err)
	}
	if !exists {
		t.Fatalf("expected code to exist")
	}
}

func TestOrderListFilters(t *testing.T) {
	db := orderTestDB(t)
	repo := NewOrderRepository(db)

	client := models.Client{FirstName: "Noor", Phone: "+1555000002"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client failed: %v", err)
	}

	orders := []models.Order{
		{Code: "LIST01", Type: constants.OrderTypeSale, Status: constants.OrderStatusCompleted, ClientID: &client.ID},
		{Code: "LIST02", Type: constants.OrderTypeReturn, Status: constants.OrderStatusCompleted, ClientID: &client.ID},
		{Code: "LIST03", Type: constants.OrderTypeSale, Status: constants.OrderStatusCompleted},
	}
	for i := range orders {
		if err := repo.Create(&orders[i]); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	sales, total, err := repo.List(OrderListFilter{Type: constants.OrderTypeSale, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 2 || len(sales) != 2 {
		t.Fatalf("expected 2 sale orders, got total=%d len=%d", total, len(sales))
	}

	byClient, total, err := repo.List(OrderListFilter{ClientID: client.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 2 || len(byClient) != 2 {
		t.Fatalf("expected 2 client orders, got total=%d len=%d", total, len(byClient))
	}

	paged, total, err := repo.List(OrderListFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 3 || len(paged) != 2 {
		t.Fatalf("expected total 3 with page of 2, got total=%d len=%d", total, len(paged))
	}
}
