package repository

import (
	"errors"
	"strings"

	"github.com/aurelion-pos/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 促销数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	GetByCode(code string) (*models.Promotion, error)
	ListAutomatic() ([]models.Promotion, error)
	List(filter PromotionListFilter) ([]models.Promotion, int64, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Deactivate(id uint) error
	ReplaceProductLinks(promotionID uint, productIDs []uint) error
	IncrementUsedCount(promotionID uint) (int64, error)
	WithTx(tx *gorm.DB) PromotionRepository
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) PromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// GetByID 根据 ID 获取促销
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Preload("ProductLinks").First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetByCode 根据促销码获取促销（不区分大小写）
func (r *GormPromotionRepository) GetByCode(code string) (*models.Promotion, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var promotion models.Promotion
	if err := r.db.Preload("ProductLinks").
		Where("UPPER(code) = ?", strings.ToUpper(code)).
		First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// ListAutomatic 获取全部无码自动促销（新建优先）
func (r *GormPromotionRepository) ListAutomatic() ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := r.db.Preload("ProductLinks").
		Where("is_active = ? AND (code IS NULL OR code = '')", true).
		Order("created_at DESC, id DESC").
		Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// List 促销列表
func (r *GormPromotionRepository) List(filter PromotionListFilter) ([]models.Promotion, int64, error) {
	var promotions []models.Promotion

	query := r.db.Model(&models.Promotion{})
	if promotionType := strings.TrimSpace(filter.Type); promotionType != "" {
		query = query.Where("type = ?", promotionType)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("ProductLinks").
		Order("created_at DESC, id DESC").
		Find(&promotions).Error; err != nil {
		return nil, 0, err
	}

	return promotions, total, nil
}

// Create 创建促销
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新促销
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

// Deactivate 停用促销
func (r *GormPromotionRepository) Deactivate(id uint) error {
	return r.db.Model(&models.Promotion{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// ReplaceProductLinks 全量替换促销关联的商品
func (r *GormPromotionRepository) ReplaceProductLinks(promotionID uint, productIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("promotion_id = ?", promotionID).
			Delete(&models.PromotionProduct{}).Error; err != nil {
			return err
		}
		for _, productID := range productIDs {
			link := models.PromotionProduct{PromotionID: promotionID, ProductID: productID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// IncrementUsedCount 累加促销使用次数（条件更新保证不超全局上限，返回受影响行数）
func (r *GormPromotionRepository) IncrementUsedCount(promotionID uint) (int64, error) {
	if promotionID == 0 {
		return 0, errors.New("invalid promotion id")
	}
	result := r.db.Model(&models.Promotion{}).
		Where("id = ? AND (max_uses = 0 OR used_count < max_uses)", promotionID).
		Update("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
