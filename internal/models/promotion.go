package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aurelion-pos/internal/constants"
)

// Promotion 促销活动表
type Promotion struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                     // 主键
	Name               string         `gorm:"not null" json:"name"`                     // 活动名称
	Code               string         `gorm:"index;default:''" json:"code"`             // 促销码（空表示自动生效）
	Type               string         `gorm:"not null" json:"type"`                     // 类型（PERCENTAGE/FIXED/BOGO/TIERED/BUNDLE）
	DiscountValue      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"` // 折扣值（百分比或固定金额）
	BuyQuantity        int            `gorm:"not null;default:0" json:"buy_quantity"`   // BOGO 买 N
	GetQuantity        int            `gorm:"not null;default:0" json:"get_quantity"`   // BOGO 赠 M
	SilverRate         Money          `gorm:"type:decimal(20,2);not null;default:5" json:"silver_rate"`     // TIERED 银卡折扣率（%）
	GoldRate           Money          `gorm:"type:decimal(20,2);not null;default:10" json:"gold_rate"`      // TIERED 金卡折扣率（%）
	PlatinumRate       Money          `gorm:"type:decimal(20,2);not null;default:15" json:"platinum_rate"`  // TIERED 白金折扣率（%）
	AppliesTo          string         `gorm:"not null;default:'ALL'" json:"applies_to"` // 适用范围（ALL/CATEGORY/BRAND/PRODUCTS）
	Category           string         `gorm:"default:''" json:"category,omitempty"`     // 适用分类
	Brand              string         `gorm:"default:''" json:"brand,omitempty"`        // 适用品牌
	CustomerTier       string         `gorm:"not null;default:'ALL'" json:"customer_tier"` // 会员等级门槛（ALL 表示不限）
	MinPurchase        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_purchase"` // 最低消费金额（按适用子集计）
	MinItems           int            `gorm:"not null;default:0" json:"min_items"`      // 最低件数（按适用子集计）
	StartsAt           *time.Time     `json:"starts_at"`                                // 生效时间（空表示立即）
	EndsAt             *time.Time     `json:"ends_at"`                                  // 失效时间（空表示长期）
	IsActive           bool           `gorm:"not null;default:true;index" json:"is_active"` // 是否启用
	MaxUses            int            `gorm:"not null;default:0" json:"max_uses"`       // 全局使用上限（0 不限）
	UsedCount          int            `gorm:"not null;default:0" json:"used_count"`     // 已使用次数
	MaxUsesPerCustomer int            `gorm:"not null;default:0" json:"max_uses_per_customer"` // 单客使用上限（0 不限）
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                               // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间

	ProductLinks []PromotionProduct `gorm:"foreignKey:PromotionID" json:"product_links,omitempty"` // PRODUCTS 范围的商品关联
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// IsCodeBased 判断是否为促销码活动
func (p *Promotion) IsCodeBased() bool {
	return strings.TrimSpace(p.Code) != ""
}

// IsLive 判断活动当前是否可用（启用、在有效期内、未超全局上限）
func (p *Promotion) IsLive(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return false
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return false
	}
	return true
}

// TierAllows 判断客户会员等级是否满足活动门槛
func (p *Promotion) TierAllows(clientTier string) bool {
	if p.CustomerTier == "" || p.CustomerTier == constants.TierRestrictionAll {
		return true
	}
	return constants.TierAtLeast(clientTier, p.CustomerTier)
}

// ProductIDs 返回 PRODUCTS 范围关联的商品ID集合
func (p *Promotion) ProductIDs() map[uint]struct{} {
	ids := make(map[uint]struct{}, len(p.ProductLinks))
	for i := range p.ProductLinks {
		ids[p.ProductLinks[i].ProductID] = struct{}{}
	}
	return ids
}
