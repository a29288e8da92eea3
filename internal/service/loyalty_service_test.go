package service

import (
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

func TestDynamicTierThresholds(t *testing.T) {
	cases := []struct {
		visits   int64
		spend    string
		expected string
	}{
		{0, "0", constants.TierRegular},
		{1, "0", constants.TierSilver},
		{5, "900", constants.TierSilver},
		{6, "1000", constants.TierGold},
		{11, "9999", constants.TierGold},
		{12, "4999.99", constants.TierGold},
		{12, "5000", constants.TierPlatinum},
		{30, "25000", constants.TierPlatinum},
	}
	for _, tc := range cases {
		got := dynamicTier(tc.visits, decimal.RequireFromString(tc.spend))
		if got != tc.expected {
			t.Fatalf("visits=%d spend=%s: expected %s, got %s", tc.visits, tc.spend, tc.expected, got)
		}
	}
}

func TestEffectiveTierManualOverrideWins(t *testing.T) {
	svc := NewLoyaltyService(nil)
	client := &models.Client{ID: 1, LoyaltyTier: constants.TierPlatinum}
	tier, err := svc.EffectiveTier(client)
	if err != nil {
		t.Fatalf("effective tier error: %v", err)
	}
	if tier != constants.TierPlatinum {
		t.Fatalf("expected manual platinum, got %s", tier)
	}
}

func TestEffectiveTierDynamicFromHistory(t *testing.T) {
	dsn := fmt.Sprintf("file:loyalty_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	client := models.Client{FirstName: "Isabelle", Phone: "+33600000001", LoyaltyTier: constants.TierRegular}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client failed: %v", err)
	}

	// 6 笔已完成订单共 1200：GOLD。退货单与未完成单不计入。
	for i := 0; i < 6; i++ {
		order := models.Order{
			Code:        fmt.Sprintf("LOY%03d", i),
			Type:        constants.OrderTypeSale,
			Status:      constants.OrderStatusCompleted,
			ClientID:    &client.ID,
			TotalAmount: mustMoney("200.00"),
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}
	ignored := []models.Order{
		{Code: "LOYRET", Type: constants.OrderTypeReturn, Status: constants.OrderStatusCompleted, ClientID: &client.ID, TotalAmount: mustMoney("999.00")},
		{Code: "LOYCXL", Type: constants.OrderTypeSale, Status: constants.OrderStatusCancelled, ClientID: &client.ID, TotalAmount: mustMoney("999.00")},
	}
	for i := range ignored {
		if err := db.Create(&ignored[i]).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	svc := NewLoyaltyService(repository.NewOrderRepository(db))
	tier, err := svc.EffectiveTier(&client)
	if err != nil {
		t.Fatalf("effective tier error: %v", err)
	}
	if tier != constants.TierGold {
		t.Fatalf("expected GOLD, got %s", tier)
	}
}
