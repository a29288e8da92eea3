package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff 门店员工表
type Staff struct {
	ID           uint           `gorm:"primarykey" json:"id"`                // 主键
	Username     string         `gorm:"uniqueIndex;not null" json:"username"` // 登录名
	PasswordHash string         `gorm:"not null" json:"-"`                   // 密码哈希（不返回给前端）
	DisplayName  string         `gorm:"default:''" json:"display_name"`      // 姓名
	Role         string         `gorm:"not null;index" json:"role"`          // 角色（OWNER/CASHIER/SALES_ASSOCIATE）
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"` // 是否启用
	LastLoginAt  *time.Time     `json:"last_login_at"`                       // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                          // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间
}

// TableName 指定表名
func (Staff) TableName() string {
	return "staff"
}
