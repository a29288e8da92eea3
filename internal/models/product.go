package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（SPU 维度，价格与库存在 Variant 上）
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                 // 主键
	Brand       string         `gorm:"not null;index" json:"brand"`          // 品牌
	Name        string         `gorm:"not null" json:"name"`                 // 名称
	Category    string         `gorm:"not null;index" json:"category"`       // 分类（Bags/Shoes/...）
	BaseSKU     string         `gorm:"column:base_sku;uniqueIndex;not null" json:"base_sku"` // 商品编码
	Description string         `gorm:"type:text" json:"description,omitempty"` // 描述
	Condition   string         `gorm:"default:'New'" json:"condition"`       // 成色
	IsArchived  bool           `gorm:"not null;default:false;index" json:"is_archived"` // 是否归档
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间

	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"` // 规格列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// FullName 返回品牌+名称的展示名
func (p *Product) FullName() string {
	return p.Brand + " " + p.Name
}
