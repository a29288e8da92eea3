package repository

import (
	"github.com/aurelion-pos/internal/models"

	"gorm.io/gorm"
)

// PromotionUsageRepository 促销使用记录数据访问接口
type PromotionUsageRepository interface {
	Create(usage *models.PromotionUsage) error
	CountByPromotionAndClient(promotionID, clientID uint) (int64, error)
	WithTx(tx *gorm.DB) PromotionUsageRepository
}

// GormPromotionUsageRepository GORM 实现
type GormPromotionUsageRepository struct {
	db *gorm.DB
}

// NewPromotionUsageRepository 创建促销使用记录仓库
func NewPromotionUsageRepository(db *gorm.DB) *GormPromotionUsageRepository {
	return &GormPromotionUsageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionUsageRepository) WithTx(tx *gorm.DB) PromotionUsageRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionUsageRepository{db: tx}
}

// Create 写入使用记录
func (r *GormPromotionUsageRepository) Create(usage *models.PromotionUsage) error {
	return r.db.Create(usage).Error
}

// CountByPromotionAndClient 统计某客户对某促销的使用次数
func (r *GormPromotionUsageRepository) CountByPromotionAndClient(promotionID, clientID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.PromotionUsage{}).
		Where("promotion_id = ? AND client_id = ?", promotionID, clientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
