package repository

import (
	"errors"
	"strings"

	"github.com/aurelion-pos/internal/models"

	"gorm.io/gorm"
)

// ReturnRepository 退货单数据访问接口
type ReturnRepository interface {
	Create(ret *models.Return) error
	GetByID(id uint) (*models.Return, error)
	GetByReference(reference string) (*models.Return, error)
	List(filter ReturnListFilter) ([]models.Return, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ReturnRepository
}

// GormReturnRepository GORM 实现
type GormReturnRepository struct {
	db *gorm.DB
}

// NewReturnRepository 创建退货单仓库
func NewReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReturnRepository) WithTx(tx *gorm.DB) ReturnRepository {
	if tx == nil {
		return r
	}
	return &GormReturnRepository{db: tx}
}

// Transaction 执行事务
func (r *GormReturnRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建退货单（明细随单写入）
func (r *GormReturnRepository) Create(ret *models.Return) error {
	return r.db.Create(ret).Error
}

// GetByID 根据 ID 获取退货单
func (r *GormReturnRepository) GetByID(id uint) (*models.Return, error) {
	var ret models.Return
	if err := r.preloadAll().First(&ret, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ret, nil
}

// GetByReference 根据退货单号获取退货单
func (r *GormReturnRepository) GetByReference(reference string) (*models.Return, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	var ret models.Return
	if err := r.preloadAll().Where("reference = ?", reference).First(&ret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ret, nil
}

// List 退货单列表
func (r *GormReturnRepository) List(filter ReturnListFilter) ([]models.Return, int64, error) {
	var returns []models.Return

	query := r.db.Model(&models.Return{})
	if filter.OrderID > 0 {
		query = query.Where("order_id = ?", filter.OrderID)
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
		Find(&returns).Error; err != nil {
		return nil, 0, err
	}

	return returns, total, nil
}

func (r *GormReturnRepository) preloadAll() *gorm.DB {
	return r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.OrderItem").
		Preload("Order").
		Preload("ExchangeOrder")
}
