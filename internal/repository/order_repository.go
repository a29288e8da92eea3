package repository

import (
	"errors"
	"strings"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByCode(code string) (*models.Order, error)
	CodeExists(code string) (bool, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(orderID uint, status string) error
	UpdateItemReturnedQty(itemID uint, quantity int) (int64, error)
	CompletedStatsByClient(clientID uint) (int64, models.Money, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建订单（明细随订单一并写入）
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.preloadAll().First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByCode 根据订单号获取订单（不区分大小写）
func (r *GormOrderRepository) GetByCode(code string) (*models.Order, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}
	var order models.Order
	if err := r.preloadAll().Where("code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// CodeExists 判断订单号是否已存在
func (r *GormOrderRepository) CodeExists(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order

	query := r.db.Model(&models.Order{})
	if filter.ClientID > 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if orderType := strings.TrimSpace(filter.Type); orderType != "" {
		query = query.Where("type = ?", orderType)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if code := strings.TrimSpace(filter.Code); code != "" {
		query = query.Where("code = ?", strings.ToUpper(code))
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(orderID uint, status string) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

// UpdateItemReturnedQty 累加订单明细已退数量（条件更新防止超退，返回受影响行数）
func (r *GormOrderRepository) UpdateItemReturnedQty(itemID uint, quantity int) (int64, error) {
	if itemID == 0 || quantity <= 0 {
		return 0, errors.New("invalid returned qty params")
	}
	result := r.db.Model(&models.OrderItem{}).
		Where("id = ? AND quantity - qty_returned >= ?", itemID, quantity).
		Update("qty_returned", gorm.Expr("qty_returned + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CompletedStatsByClient 统计客户已完成订单的次数与消费总额（会员等级计算用）
func (r *GormOrderRepository) CompletedStatsByClient(clientID uint) (int64, models.Money, error) {
	type row struct {
		Visits int64
		Spend  models.Money
	}
	var result row
	if err := r.db.Model(&models.Order{}).
		Select("COUNT(*) AS visits, COALESCE(SUM(total_amount), 0) AS spend").
		Where("client_id = ? AND status = ? AND type != ?", clientID, constants.OrderStatusCompleted, constants.OrderTypeReturn).
		Scan(&result).Error; err != nil {
		return 0, models.ZeroMoney(), err
	}
	return result.Visits, result.Spend, nil
}

func (r *GormOrderRepository) preloadAll() *gorm.DB {
	return r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.Variant").
		Preload("Items.Variant.Product").
		Preload("Client").
		Preload("Staff").
		Preload("Promotion")
}
