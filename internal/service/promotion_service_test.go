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

func money(t *testing.T, raw string) models.Money {
	t.Helper()
	m, err := models.NewMoneyFromString(raw)
	if err != nil {
		t.Fatalf("parse money %q: %v", raw, err)
	}
	return m
}

func pricingLine(t *testing.T, productID uint, category, brand, unitPrice string, quantity int) PricingLine {
	t.Helper()
	return PricingLine{
		ProductID: productID,
		Category:  category,
		Brand:     brand,
		UnitPrice: money(t, unitPrice),
		Quantity:  quantity,
	}
}

func TestCalculateDiscountPercentage(t *testing.T) {
	promotion := &models.Promotion{
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "10"),
		AppliesTo:     constants.PromotionScopeAll,
	}
	lines := []PricingLine{
		pricingLine(t, 1, "Bags", "Chanel", "100.00", 2),
		pricingLine(t, 2, "Shoes", "Gucci", "50.00", 1),
	}
	discount := CalculateDiscount(promotion, lines, constants.TierRegular)
	if !discount.Decimal.Equal(decimal.RequireFromString("25")) {
		t.Fatalf("expected 25, got %s", discount.String())
	}
}

func TestCalculateDiscountFixedCappedAtSubtotal(t *testing.T) {
	promotion := &models.Promotion{
		Type:          constants.PromotionTypeFixed,
		DiscountValue: money(t, "500"),
		AppliesTo:     constants.PromotionScopeAll,
	}
	lines := []PricingLine{pricingLine(t, 1, "Shoes", "Gucci", "120.00", 1)}
	discount := CalculateDiscount(promotion, lines, constants.TierRegular)
	if !discount.Decimal.Equal(decimal.RequireFromString("120")) {
		t.Fatalf("expected discount capped at 120, got %s", discount.String())
	}
}

func TestCalculateDiscountBOGOCheapestFree(t *testing.T) {
	promotion := &models.Promotion{
		Type:        constants.PromotionTypeBOGO,
		BuyQuantity: 2,
		GetQuantity: 1,
		AppliesTo:   constants.PromotionScopeAll,
	}
	// 4 件凑一组（2+1），最便宜 1 件免单；剩 1 件不成组
	lines := []PricingLine{
		pricingLine(t, 1, "Shoes", "Gucci", "300.00", 2),
		pricingLine(t, 2, "Shoes", "Gucci", "120.00", 2),
	}
	discount := CalculateDiscount(promotion, lines, constants.TierRegular)
	if !discount.Decimal.Equal(decimal.RequireFromString("120")) {
		t.Fatalf("expected 120, got %s", discount.String())
	}

	// 6 件两组，最便宜 2 件免单
	lines = []PricingLine{
		pricingLine(t, 1, "Shoes", "Gucci", "300.00", 3),
		pricingLine(t, 2, "Shoes", "Gucci", "120.00", 3),
	}
	discount = CalculateDiscount(promotion, lines, constants.TierRegular)
	if !discount.Decimal.Equal(decimal.RequireFromString("240")) {
		t.Fatalf("expected 240, got %s", discount.String())
	}
}

func TestCalculateDiscountBOGONotEnoughItems(t *testing.T) {
	promotion := &models.Promotion{
		Type:        constants.PromotionTypeBOGO,
		BuyQuantity: 2,
		GetQuantity: 1,
		AppliesTo:   constants.PromotionScopeAll,
	}
	lines := []PricingLine{pricingLine(t, 1, "Shoes", "Gucci", "300.00", 2)}
	discount := CalculateDiscount(promotion, lines, constants.TierRegular)
	if !discount.Decimal.IsZero() {
		t.Fatalf("expected zero discount, got %s", discount.String())
	}
}

func TestCalculateDiscountTieredRates(t *testing.T) {
	promotion := &models.Promotion{
		Type:         constants.PromotionTypeTiered,
		SilverRate:   money(t, "5"),
		GoldRate:     money(t, "10"),
		PlatinumRate: money(t, "15"),
		AppliesTo:    constants.PromotionScopeAll,
	}
	lines := []PricingLine{pricingLine(t, 1, "Bags", "Chanel", "1000.00", 1)}

	cases := []struct {
		tier     string
		expected string
	}{
		{constants.TierRegular, "0"},
		{constants.TierSilver, "50"},
		{constants.TierGold, "100"},
		{constants.TierPlatinum, "150"},
	}
	for _, tc := range cases {
		discount := CalculateDiscount(promotion, lines, tc.tier)
		if !discount.Decimal.Equal(decimal.RequireFromString(tc.expected)) {
			t.Fatalf("tier %s: expected %s, got %s", tc.tier, tc.expected, discount.String())
		}
	}
}

func TestCalculateDiscountBundleIsZero(t *testing.T) {
	promotion := &models.Promotion{
		Type:      constants.PromotionTypeBundle,
		AppliesTo: constants.PromotionScopeAll,
	}
	lines := []PricingLine{pricingLine(t, 1, "Bags", "Chanel", "1000.00", 2)}
	discount := CalculateDiscount(promotion, lines, constants.TierPlatinum)
	if !discount.Decimal.IsZero() {
		t.Fatalf("expected zero discount for bundle, got %s", discount.String())
	}
}

func TestCalculateDiscountScopeFiltering(t *testing.T) {
	lines := []PricingLine{
		pricingLine(t, 1, "Bags", "Chanel", "1000.00", 1),
		pricingLine(t, 2, "Shoes", "Gucci", "200.00", 1),
	}

	byCategory := &models.Promotion{
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "10"),
		AppliesTo:     constants.PromotionScopeCategory,
		Category:      "Shoes",
	}
	discount := CalculateDiscount(byCategory, lines, constants.TierRegular)
	if !discount.Decimal.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("category scope: expected 20, got %s", discount.String())
	}

	byBrand := &models.Promotion{
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "10"),
		AppliesTo:     constants.PromotionScopeBrand,
		Brand:         "Chanel",
	}
	discount = CalculateDiscount(byBrand, lines, constants.TierRegular)
	if !discount.Decimal.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("brand scope: expected 100, got %s", discount.String())
	}

	byProducts := &models.Promotion{
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "50"),
		AppliesTo:     constants.PromotionScopeProducts,
		ProductLinks:  []models.PromotionProduct{{ProductID: 2}},
	}
	discount = CalculateDiscount(byProducts, lines, constants.TierRegular)
	if !discount.Decimal.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("products scope: expected 100, got %s", discount.String())
	}
}

func TestCalculateDiscountThresholdsOnEligibleSubset(t *testing.T) {
	// 门槛只看适用子集：鞋类小计 200，不满足 300 最低消费
	promotion := &models.Promotion{
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "10"),
		AppliesTo:     constants.PromotionScopeCategory,
		Category:      "Shoes",
		MinPurchase:   money(t, "300"),
	}
	lines := []PricingLine{
		pricingLine(t, 1, "Bags", "Chanel", "5000.00", 1),
		pricingLine(t, 2, "Shoes", "Gucci", "200.00", 1),
	}
	discount := CalculateDiscount(promotion, lines, constants.TierRegular)
	if !discount.Decimal.IsZero() {
		t.Fatalf("expected zero discount below min purchase, got %s", discount.String())
	}

	promotion.MinPurchase = models.ZeroMoney()
	promotion.MinItems = 2
	discount = CalculateDiscount(promotion, lines, constants.TierRegular)
	if !discount.Decimal.IsZero() {
		t.Fatalf("expected zero discount below min items, got %s", discount.String())
	}
}

func setupPromotionServiceDB(t *testing.T) (*gorm.DB, *PromotionService) {
	t.Helper()
	dsn := fmt.Sprintf("file:promotion_service_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}, &models.PromotionProduct{}, &models.PromotionUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewPromotionService(
		repository.NewPromotionRepository(db),
		repository.NewPromotionUsageRepository(db),
	)
	return db, svc
}

func TestBestAutomaticPicksLargestDiscount(t *testing.T) {
	db, svc := setupPromotionServiceDB(t)

	small := models.Promotion{
		Name:          "Small",
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "5"),
		AppliesTo:     constants.PromotionScopeAll,
		CustomerTier:  constants.TierRestrictionAll,
		IsActive:      true,
	}
	large := models.Promotion{
		Name:          "Large",
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "20"),
		AppliesTo:     constants.PromotionScopeAll,
		CustomerTier:  constants.TierRestrictionAll,
		IsActive:      true,
	}
	if err := db.Create(&small).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	if err := db.Create(&large).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	lines := []PricingLine{pricingLine(t, 1, "Bags", "Chanel", "100.00", 1)}
	best, discount, err := svc.BestAutomatic(constants.TierRegular, 0, lines, time.Now())
	if err != nil {
		t.Fatalf("BestAutomatic error: %v", err)
	}
	if best == nil || best.Name != "Large" {
		t.Fatalf("expected Large to win, got %+v", best)
	}
	if !discount.Decimal.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("expected 20, got %s", discount.String())
	}
}

func TestBestAutomaticSkipsCodeAndInactive(t *testing.T) {
	db, svc := setupPromotionServiceDB(t)

	coded := models.Promotion{
		Name:          "Coded",
		Code:          "SECRET",
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "50"),
		AppliesTo:     constants.PromotionScopeAll,
		CustomerTier:  constants.TierRestrictionAll,
		IsActive:      true,
	}
	inactive := models.Promotion{
		Name:          "Inactive",
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "40"),
		AppliesTo:     constants.PromotionScopeAll,
		CustomerTier:  constants.TierRestrictionAll,
		IsActive:      false,
	}
	if err := db.Create(&coded).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	lines := []PricingLine{pricingLine(t, 1, "Bags", "Chanel", "100.00", 1)}
	best, discount, err := svc.BestAutomatic(constants.TierRegular, 0, lines, time.Now())
	if err != nil {
		t.Fatalf("BestAutomatic error: %v", err)
	}
	if best != nil {
		t.Fatalf("expected no automatic promotion, got %s", best.Name)
	}
	if !discount.Decimal.IsZero() {
		t.Fatalf("expected zero discount, got %s", discount.String())
	}
}

func TestResolveForCodeErrors(t *testing.T) {
	db, svc := setupPromotionServiceDB(t)
	lines := []PricingLine{pricingLine(t, 1, "Bags", "Chanel", "100.00", 1)}
	now := time.Now()

	if _, _, err := svc.ResolveForCode("MISSING", constants.TierRegular, 0, lines, now); !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("expected ErrPromotionNotFound, got %v", err)
	}

	expired := now.Add(-time.Hour)
	promotion := models.Promotion{
		Name:          "Expired",
		Code:          "EXPIRED",
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "10"),
		AppliesTo:     constants.PromotionScopeAll,
		CustomerTier:  constants.TierRestrictionAll,
		IsActive:      true,
		EndsAt:        &expired,
	}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	if _, _, err := svc.ResolveForCode("expired", constants.TierRegular, 0, lines, now); !errors.Is(err, ErrPromotionInvalid) {
		t.Fatalf("expected ErrPromotionInvalid for expired code, got %v", err)
	}

	vipOnly := models.Promotion{
		Name:          "VIP Only",
		Code:          "VIPGOLD",
		Type:          constants.PromotionTypePercentage,
		DiscountValue: money(t, "10"),
		AppliesTo:     constants.PromotionScopeAll,
		CustomerTier:  constants.TierGold,
		IsActive:      true,
	}
	if err := db.Create(&vipOnly).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	if _, _, err := svc.ResolveForCode("VIPGOLD", constants.TierSilver, 0, lines, now); !errors.Is(err, ErrPromotionInvalid) {
		t.Fatalf("expected ErrPromotionInvalid for tier mismatch, got %v", err)
	}
	if _, _, err := svc.ResolveForCode("VIPGOLD", constants.TierPlatinum, 0, lines, now); err != nil {
		t.Fatalf("expected platinum to qualify, got %v", err)
	}
}

func TestResolveForCodePerCustomerCap(t *testing.T) {
	db, svc := setupPromotionServiceDB(t)
	promotion := models.Promotion{
		Name:               "Once",
		Code:               "ONCE",
		Type:               constants.PromotionTypePercentage,
		DiscountValue:      money(t, "10"),
		AppliesTo:          constants.PromotionScopeAll,
		CustomerTier:       constants.TierRestrictionAll,
		IsActive:           true,
		MaxUsesPerCustomer: 1,
	}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	clientID := uint(7)
	usage := models.PromotionUsage{
		PromotionID:    promotion.ID,
		ClientID:       &clientID,
		OrderID:        1,
		DiscountAmount: money(t, "10"),
	}
	if err := db.Create(&usage).Error; err != nil {
		t.Fatalf("create usage failed: %v", err)
	}

	lines := []PricingLine{pricingLine(t, 1, "Bags", "Chanel", "100.00", 1)}
	if _, _, err := svc.ResolveForCode("ONCE", constants.TierRegular, clientID, lines, time.Now()); !errors.Is(err, ErrPromotionExhausted) {
		t.Fatalf("expected ErrPromotionExhausted, got %v", err)
	}
	// 其他客户不受影响
	if _, _, err := svc.ResolveForCode("ONCE", constants.TierRegular, 99, lines, time.Now()); err != nil {
		t.Fatalf("expected other client to qualify, got %v", err)
	}
}
