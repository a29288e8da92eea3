package models

import "time"

// PromotionUsage 促销使用记录表（用于单客使用上限统计）
type PromotionUsage struct {
	ID             uint      `gorm:"primarykey" json:"id"`                  // 主键
	PromotionID    uint      `gorm:"not null;index" json:"promotion_id"`    // 促销ID
	ClientID       *uint     `gorm:"index" json:"client_id"`                // 客户ID（散客为空）
	OrderID        uint      `gorm:"not null;index" json:"order_id"`        // 订单ID
	DiscountAmount Money     `gorm:"type:decimal(20,2);not null" json:"discount_amount"` // 本次折扣金额
	CreatedAt      time.Time `json:"created_at"`                            // 创建时间
}

// TableName 指定表名
func (PromotionUsage) TableName() string {
	return "promotion_usages"
}
