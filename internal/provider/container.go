package provider

import (
	"time"

	"github.com/aurelion-pos/internal/cache"
	"github.com/aurelion-pos/internal/config"
	"github.com/aurelion-pos/internal/logger"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/queue"
	"github.com/aurelion-pos/internal/repository"
	"github.com/aurelion-pos/internal/service"
)

// Container 依赖容器：集中初始化仓库与服务
type Container struct {
	Config *config.Config

	QueueClient *queue.Client

	// 仓库
	StaffRepo          repository.StaffRepository
	LocationRepo       repository.LocationRepository
	ClientRepo         repository.ClientRepository
	ProductRepo        repository.ProductRepository
	VariantRepo        repository.VariantRepository
	OrderRepo          repository.OrderRepository
	ReturnRepo         repository.ReturnRepository
	PromotionRepo      repository.PromotionRepository
	PromotionUsageRepo repository.PromotionUsageRepository

	// 服务
	AuthService           *service.AuthService
	StaffService          *service.StaffService
	ProductService        *service.ProductService
	InventoryService      *service.InventoryService
	ClientService         *service.ClientService
	LoyaltyService        *service.LoyaltyService
	OrderService          *service.OrderService
	CheckoutService       *service.CheckoutService
	ReturnService         *service.ReturnService
	PromotionService      *service.PromotionService
	PromotionAdminService *service.PromotionAdminService
	ReceiptService        *service.ReceiptService
}

// NewContainer 创建依赖容器
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}

	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("redis_init_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Warnw("queue_client_init_failed", "error", err)
	}
	c.QueueClient = queueClient

	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.StaffRepo = repository.NewStaffRepository(db)
	c.LocationRepo = repository.NewLocationRepository(db)
	c.ClientRepo = repository.NewClientRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewVariantRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReturnRepo = repository.NewReturnRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.PromotionUsageRepo = repository.NewPromotionUsageRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.StaffRepo)
	c.StaffService = service.NewStaffService(c.StaffRepo, c.AuthService)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo)
	c.InventoryService = service.NewInventoryService(c.VariantRepo, c.QueueClient)
	c.LoyaltyService = service.NewLoyaltyService(c.OrderRepo)
	c.ClientService = service.NewClientService(c.ClientRepo, c.OrderRepo, c.LoyaltyService)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo, c.PromotionUsageRepo)
	c.PromotionAdminService = service.NewPromotionAdminService(c.PromotionRepo)
	c.CheckoutService = service.NewCheckoutService(
		c.OrderRepo,
		c.VariantRepo,
		c.ClientRepo,
		c.PromotionRepo,
		c.PromotionUsageRepo,
		c.PromotionService,
		c.LoyaltyService,
		c.QueueClient,
	)
	c.ReturnService = service.NewReturnService(
		c.OrderRepo,
		c.ReturnRepo,
		c.VariantRepo,
		c.QueueClient,
		c.Config.Return.WindowDays,
	)
	c.ReceiptService = service.NewReceiptService(
		c.OrderRepo,
		c.StaffRepo,
		time.Duration(c.Config.Receipt.CacheTTLSeconds)*time.Second,
	)
}
