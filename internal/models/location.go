package models

import (
	"time"

	"gorm.io/gorm"
)

// Location 门店/仓库位置表
type Location struct {
	ID          uint           `gorm:"primarykey" json:"id"`             // 主键
	Name        string         `gorm:"not null" json:"name"`             // 名称
	Code        string         `gorm:"uniqueIndex;not null" json:"code"` // 位置编码
	Address     string         `gorm:"type:text" json:"address"`         // 地址
	IsStore     bool           `gorm:"not null;default:true" json:"is_store"`      // 是否门店
	IsWarehouse bool           `gorm:"not null;default:false" json:"is_warehouse"` // 是否仓库
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Location) TableName() string {
	return "locations"
}
