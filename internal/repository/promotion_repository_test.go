package repository

import (
	"testing"

	"github.com/aurelion-pos/internal/models"

	"github.com/shopspring/decimal"
)

func TestGetByCodeCaseInsensitive(t *testing.T) {
	db := setupRepoDB(t, &models.Promotion{}, &models.PromotionProduct{})
	repo := NewPromotionRepository(db)

	promotion := models.Promotion{
		Name:          "Welcome",
		Code:          "WELCOME10",
		Type:          "PERCENTAGE",
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive:      true,
	}
	if err := repo.Create(&promotion); err != nil {
		t.Fatalf("create error: %v", err)
	}

	found, err := repo.GetByCode("  welcome10  ")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if found == nil || found.ID != promotion.ID {
		t.Fatalf("expected promotion found by lowercase code")
	}

	missing, err := repo.GetByCode("NOPE")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown code")
	}

	empty, err := repo.GetByCode("   ")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if empty != nil {
		t.Fatalf("expected nil for blank code")
	}
}

func TestListAutomaticExcludesCodedAndInactive(t *testing.T) {
	db := setupRepoDB(t, &models.Promotion{}, &models.PromotionProduct{})
	repo := NewPromotionRepository(db)

	seed := []models.Promotion{
		{Name: "Auto A", Type: "PERCENTAGE", DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)), IsActive: true},
		{Name: "Auto B", Type: "TIERED", IsActive: true},
		{Name: "Coded", Code: "VIP500", Type: "FIXED", DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(500)), IsActive: true},
		{Name: "Disabled", Type: "PERCENTAGE", DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(20)), IsActive: false},
	}
	for i := range seed {
		if err := repo.Create(&seed[i]); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	automatic, err := repo.ListAutomatic()
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(automatic) != 2 {
		t.Fatalf("expected 2 automatic promotions, got %d", len(automatic))
	}
	for _, p := range automatic {
		if p.Code != "" || !p.IsActive {
			t.Fatalf("unexpected promotion in automatic list: %+v", p)
		}
	}
}

func TestIncrementUsedCountGuard(t *testing.T) {
	db := setupRepoDB(t, &models.Promotion{}, &models.PromotionProduct{})
	repo := NewPromotionRepository(db)

	capped := models.Promotion{Name: "Capped", Code: "CAP1", Type: "FIXED", DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(50)), IsActive: true, MaxUses: 1}
	if err := repo.Create(&capped); err != nil {
		t.Fatalf("create error: %v", err)
	}

	rows, err := repo.IncrementUsedCount(capped.ID)
	if err != nil {
		t.Fatalf("increment error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}

	// 已达上限，条件不满足
	rows, err = repo.IncrementUsedCount(capped.ID)
	if err != nil {
		t.Fatalf("increment error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows at cap, got %d", rows)
	}

	// max_uses = 0 表示不限次数
	unlimited := models.Promotion{Name: "Unlimited", Type: "PERCENTAGE", DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), IsActive: true}
	if err := repo.Create(&unlimited); err != nil {
		t.Fatalf("create error: %v", err)
	}
	for i := 0; i < 3; i++ {
		rows, err := repo.IncrementUsedCount(unlimited.ID)
		if err != nil {
			t.Fatalf("increment error: %v", err)
		}
		if rows != 1 {
			t.Fatalf("expected 1 row affected, got %d", rows)
		}
	}
}

func TestReplaceProductLinks(t *testing.T) {
	db := setupRepoDB(t, &models.Promotion{}, &models.PromotionProduct{})
	repo := NewPromotionRepository(db)

	promotion := models.Promotion{Name: "Select", Type: "PERCENTAGE", DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(15)), AppliesTo: "PRODUCTS", IsActive: true}
	if err := repo.Create(&promotion); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := repo.ReplaceProductLinks(promotion.ID, []uint{1, 2, 3}); err != nil {
		t.Fatalf("replace error: %v", err)
	}
	if err := repo.ReplaceProductLinks(promotion.ID, []uint{7}); err != nil {
		t.Fatalf("replace error: %v", err)
	}

	reloaded, err := repo.GetByID(promotion.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if len(reloaded.ProductLinks) != 1 || reloaded.ProductLinks[0].ProductID != 7 {
		t.Fatalf("expected single link to product 7, got %+v", reloaded.ProductLinks)
	}
}
