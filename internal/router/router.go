package router

import (
	"github.com/aurelion-pos/internal/config"
	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/http/handlers/pos"
	"github.com/aurelion-pos/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 组装路由
func SetupRouter(cfg *config.Config, container *provider.Container) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestIDMiddleware())
	engine.Use(LoggerMiddleware())
	engine.Use(CORSMiddleware(&cfg.CORS))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	handler := pos.New(container)

	loginLimit := RateLimitRule{
		Prefix:        "login",
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, try again later",
	}

	api := engine.Group("/api/v1")

	// 无需认证
	api.POST("/auth/login", RateLimitMiddleware(loginLimit, KeyByIPAndJSONField("username")), handler.Login)

	// 登录后可用（收银台基础操作）
	authed := api.Group("")
	authed.Use(StaffAuthMiddleware(container))
	{
		authed.GET("/auth/me", handler.Me)
		authed.POST("/auth/password", handler.ChangePassword)

		authed.GET("/products", handler.ListProducts)
		authed.GET("/products/:id", handler.GetProduct)
		authed.GET("/variants/:sku", handler.LookupVariant)

		authed.GET("/clients", handler.ListClients)
		authed.GET("/clients/:id", handler.GetClientProfile)
		authed.POST("/clients", handler.CreateClient)
		authed.PUT("/clients/:id", handler.UpdateClient)

		authed.POST("/checkout/preview", handler.CheckoutPreview)
		authed.POST("/checkout", handler.Checkout)

		authed.GET("/orders", handler.ListOrders)
		authed.GET("/orders/:ref", handler.GetOrder)
		authed.GET("/orders/:ref/receipt", handler.Receipt)
		authed.GET("/orders/:ref/returnable", handler.ReturnLookup)

		authed.GET("/returns", handler.ListReturns)
		authed.GET("/returns/:ref", handler.GetReturn)
		authed.POST("/returns", handler.ReturnCheckout)

		authed.GET("/inventory/low-stock", handler.LowStock)
	}

	// 收银主管及以上（商品与库存维护）
	cashier := authed.Group("")
	cashier.Use(RequireRole(constants.RoleCashier))
	{
		cashier.POST("/products", handler.CreateProduct)
		cashier.PUT("/products/:id", handler.UpdateProduct)
		cashier.DELETE("/products/:id", handler.ArchiveProduct)
		cashier.POST("/products/:id/variants", handler.AddVariant)
		cashier.PUT("/variants/:id", handler.UpdateVariant)

		cashier.POST("/inventory/receive", handler.ReceiveStock)
		cashier.POST("/inventory/deduct", handler.DeductStock)
	}

	// 店主专属（促销、员工、门店）
	owner := authed.Group("")
	owner.Use(RequireRole(constants.RoleOwner))
	{
		owner.GET("/promotions", handler.ListPromotions)
		owner.GET("/promotions/:id", handler.GetPromotion)
		owner.POST("/promotions", handler.CreatePromotion)
		owner.PUT("/promotions/:id", handler.UpdatePromotion)
		owner.DELETE("/promotions/:id", handler.DeactivatePromotion)

		owner.GET("/staff", handler.ListStaff)
		owner.POST("/staff", handler.CreateStaff)
		owner.PUT("/staff/:id", handler.UpdateStaff)

		owner.GET("/locations", handler.ListLocations)
		owner.POST("/locations", handler.CreateLocation)

		owner.POST("/inventory/low-stock/sweep", handler.SweepLowStock)
	}

	return engine
}
