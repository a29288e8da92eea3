package main

import (
	"github.com/aurelion-pos/internal/config"
	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/logger"
	"github.com/aurelion-pos/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func money(raw string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(raw))
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	db := models.DB

	// 门店
	store := models.Location{
		Name:    "Aurelion Flagship",
		Code:    "MAIN",
		Address: "12 Rue Saint-Honoré",
		IsStore: true,
	}
	if err := db.Where("code = ?", store.Code).FirstOrCreate(&store).Error; err != nil {
		stdLog.Fatalf("failed to seed location: %v", err)
	}

	// 员工
	staff := []models.Staff{
		{Username: "owner", PasswordHash: mustHash("Owner@12345"), DisplayName: "Aurelia Moreau", Role: constants.RoleOwner, IsActive: true},
		{Username: "cashier", PasswordHash: mustHash("Cashier@12345"), DisplayName: "Jules Perrin", Role: constants.RoleCashier, IsActive: true},
		{Username: "associate", PasswordHash: mustHash("Sales@12345"), DisplayName: "Mina Okafor", Role: constants.RoleSalesAssociate, IsActive: true},
	}
	for i := range staff {
		if err := db.Where("username = ?", staff[i].Username).FirstOrCreate(&staff[i]).Error; err != nil {
			stdLog.Fatalf("failed to seed staff %s: %v", staff[i].Username, err)
		}
	}

	// 商品与规格
	products := []models.Product{
		{
			Brand:    "Hermès",
			Name:     "Evelyne III 29",
			Category: "Bags",
			BaseSKU:  "HRM-EVE29",
			Variants: []models.Variant{
				{SKU: "HRM-EVE29-GLD-29", Color: "Gold", Size: "29", CostPrice: money("1850.00"), RetailPrice: money("3250.00"), OnHand: 4, MinStock: 2},
				{SKU: "HRM-EVE29-NOIR-29", Color: "Noir", Size: "29", CostPrice: money("1850.00"), RetailPrice: money("3250.00"), OnHand: 2, MinStock: 2},
			},
		},
		{
			Brand:    "Chanel",
			Name:     "Classic Flap Medium",
			Category: "Bags",
			BaseSKU:  "CHN-CF-MED",
			Variants: []models.Variant{
				{SKU: "CHN-CF-MED-BLK", Color: "Black", Size: "Medium", CostPrice: money("6200.00"), RetailPrice: money("10200.00"), OnHand: 3, MinStock: 1},
			},
		},
		{
			Brand:    "Gucci",
			Name:     "Horsebit Loafer",
			Category: "Shoes",
			BaseSKU:  "GUC-HBL",
			Variants: []models.Variant{
				{SKU: "GUC-HBL-BRN-39", Color: "Brown", Size: "39", CostPrice: money("420.00"), RetailPrice: money("890.00"), OnHand: 6, MinStock: 2},
				{SKU: "GUC-HBL-BRN-40", Color: "Brown", Size: "40", CostPrice: money("420.00"), RetailPrice: money("890.00"), OnHand: 5, MinStock: 2},
				{SKU: "GUC-HBL-BLK-39", Color: "Black", Size: "39", CostPrice: money("420.00"), RetailPrice: money("890.00"), OnHand: 1, MinStock: 2},
			},
		},
		{
			Brand:    "Cartier",
			Name:     "Love Bracelet",
			Category: "Jewelry",
			BaseSKU:  "CRT-LOVE",
			Variants: []models.Variant{
				{SKU: "CRT-LOVE-YG-17", Color: "Yellow Gold", Size: "17", CostPrice: money("3900.00"), RetailPrice: money("7350.00"), OnHand: 2, MinStock: 1},
			},
		},
	}
	for i := range products {
		if err := db.Where("base_sku = ?", products[i].BaseSKU).FirstOrCreate(&products[i]).Error; err != nil {
			stdLog.Fatalf("failed to seed product %s: %v", products[i].BaseSKU, err)
		}
	}

	// 客户
	clients := []models.Client{
		{FirstName: "Isabelle", LastName: "Laurent", Phone: "+33612345678", Email: "isabelle@example.com"},
		{FirstName: "Viktor", LastName: "Hale", Phone: "+14155550123", LoyaltyTier: constants.TierPlatinum, Notes: "Prefers private appointments"},
		{FirstName: "Sofia", LastName: "Marchetti", Phone: "+393331234567"},
	}
	for i := range clients {
		if err := db.Where("phone = ?", clients[i].Phone).FirstOrCreate(&clients[i]).Error; err != nil {
			stdLog.Fatalf("failed to seed client %s: %v", clients[i].Phone, err)
		}
	}

	// 促销活动
	promotions := []models.Promotion{
		{
			Name:          "Welcome 10",
			Code:          "WELCOME10",
			Type:          constants.PromotionTypePercentage,
			DiscountValue: money("10"),
			AppliesTo:     constants.PromotionScopeAll,
			CustomerTier:  constants.TierRestrictionAll,
			IsActive:      true,
		},
		{
			Name:          "Shoe Event",
			Type:          constants.PromotionTypeBOGO,
			BuyQuantity:   2,
			GetQuantity:   1,
			AppliesTo:     constants.PromotionScopeCategory,
			Category:      "Shoes",
			CustomerTier:  constants.TierRestrictionAll,
			IsActive:      true,
		},
		{
			Name:         "Member Appreciation",
			Type:         constants.PromotionTypeTiered,
			SilverRate:   money("5"),
			GoldRate:     money("10"),
			PlatinumRate: money("15"),
			AppliesTo:    constants.PromotionScopeAll,
			CustomerTier: constants.TierSilver,
			IsActive:     true,
		},
		{
			Name:          "High Spender",
			Code:          "VIP500",
			Type:          constants.PromotionTypeFixed,
			DiscountValue: money("500"),
			AppliesTo:     constants.PromotionScopeAll,
			CustomerTier:  constants.TierRestrictionAll,
			MinPurchase:   money("5000"),
			MaxUses:       100,
			IsActive:      true,
		},
	}
	for i := range promotions {
		if err := db.Where("name = ?", promotions[i].Name).FirstOrCreate(&promotions[i]).Error; err != nil {
			stdLog.Fatalf("failed to seed promotion %s: %v", promotions[i].Name, err)
		}
	}

	stdLog.Printf("seed completed: %d products, %d clients, %d promotions", len(products), len(clients), len(promotions))
}
