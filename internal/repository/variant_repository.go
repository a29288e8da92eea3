package repository

import (
	"errors"
	"strings"

	"github.com/aurelion-pos/internal/models"

	"gorm.io/gorm"
)

// VariantRepository 商品规格数据访问接口
type VariantRepository interface {
	GetByID(id uint) (*models.Variant, error)
	GetBySKU(sku string) (*models.Variant, error)
	ListBySKUs(skus []string) ([]models.Variant, error)
	ListBelowMinStock() ([]models.Variant, error)
	Create(variant *models.Variant) error
	Update(variant *models.Variant) error
	DecrementOnHand(variantID uint, quantity int) (int64, error)
	IncrementOnHand(variantID uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) VariantRepository
}

// GormVariantRepository GORM 实现
type GormVariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository 创建规格仓库
func NewVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVariantRepository) WithTx(tx *gorm.DB) VariantRepository {
	if tx == nil {
		return r
	}
	return &GormVariantRepository{db: tx}
}

// GetByID 根据 ID 获取规格
func (r *GormVariantRepository) GetByID(id uint) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.Preload("Product").First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// GetBySKU 根据 SKU 获取规格
func (r *GormVariantRepository) GetBySKU(sku string) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.Preload("Product").
		Where("sku = ?", strings.TrimSpace(sku)).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// ListBySKUs 批量获取规格
func (r *GormVariantRepository) ListBySKUs(skus []string) ([]models.Variant, error) {
	if len(skus) == 0 {
		return []models.Variant{}, nil
	}
	var variants []models.Variant
	if err := r.db.Preload("Product").
		Where("sku IN ?", skus).
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// ListBelowMinStock 获取库存低于阈值的规格
func (r *GormVariantRepository) ListBelowMinStock() ([]models.Variant, error) {
	var variants []models.Variant
	if err := r.db.Preload("Product").
		Where("on_hand < min_stock").
		Order("on_hand ASC, id ASC").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// Create 创建规格
func (r *GormVariantRepository) Create(variant *models.Variant) error {
	return r.db.Create(variant).Error
}

// Update 更新规格
func (r *GormVariantRepository) Update(variant *models.Variant) error {
	return r.db.Save(variant).Error
}

// DecrementOnHand 扣减现货库存（条件更新保证不超卖，返回受影响行数）
func (r *GormVariantRepository) DecrementOnHand(variantID uint, quantity int) (int64, error) {
	if variantID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.Variant{}).
		Where("id = ? AND on_hand >= ?", variantID, quantity).
		Update("on_hand", gorm.Expr("on_hand - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementOnHand 回补现货库存（退货回库用）
func (r *GormVariantRepository) IncrementOnHand(variantID uint, quantity int) (int64, error) {
	if variantID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock increment params")
	}
	result := r.db.Model(&models.Variant{}).
		Where("id = ?", variantID).
		Update("on_hand", gorm.Expr("on_hand + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
