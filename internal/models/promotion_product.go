package models

import "time"

// PromotionProduct 促销-商品关联表（AppliesTo=PRODUCTS 时使用）
type PromotionProduct struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                        // 主键
	PromotionID uint      `gorm:"not null;uniqueIndex:uk_promotion_product" json:"promotion_id"` // 促销ID
	ProductID   uint      `gorm:"not null;uniqueIndex:uk_promotion_product" json:"product_id"`   // 商品ID
	CreatedAt   time.Time `json:"created_at"`                                                  // 创建时间
}

// TableName 指定表名
func (PromotionProduct) TableName() string {
	return "promotion_products"
}
