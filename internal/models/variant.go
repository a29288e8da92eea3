package models

import (
	"time"

	"gorm.io/gorm"
)

// Variant 商品规格表（颜色/尺码维度，库存与售价在此）
type Variant struct {
	ID          uint           `gorm:"primarykey" json:"id"`                   // 主键
	ProductID   uint           `gorm:"not null;index" json:"product_id"`       // 商品ID
	SKU         string         `gorm:"uniqueIndex;not null" json:"sku"`        // SKU 编码（全局唯一）
	Color       string         `gorm:"default:''" json:"color"`                // 颜色
	Size        string         `gorm:"default:''" json:"size"`                 // 尺码
	CostPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost_price"`   // 成本价
	RetailPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"retail_price"` // 零售价
	Currency    string         `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`    // 币种
	OnHand      int            `gorm:"column:on_hand;not null;default:0" json:"on_hand"`          // 现货库存（不允许为负）
	MinStock    int            `gorm:"column:min_stock;not null;default:1" json:"min_stock"`      // 低库存阈值
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (Variant) TableName() string {
	return "variants"
}

// Describe 返回颜色/尺码描述（用于报错与小票）
func (v *Variant) Describe() string {
	switch {
	case v.Color != "" && v.Size != "":
		return v.Color + "/" + v.Size
	case v.Color != "":
		return v.Color
	case v.Size != "":
		return v.Size
	default:
		return "variant"
	}
}
