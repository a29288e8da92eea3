package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Client 客户表
type Client struct {
	ID          uint           `gorm:"primarykey" json:"id"`              // 主键
	FirstName   string         `gorm:"not null" json:"first_name"`        // 名
	LastName    string         `gorm:"default:''" json:"last_name"`       // 姓
	Phone       string         `gorm:"uniqueIndex;not null" json:"phone"` // 手机号
	Email       string         `gorm:"index" json:"email,omitempty"`      // 邮箱
	Notes       string         `gorm:"type:text" json:"notes,omitempty"`  // 备注
	LoyaltyTier string         `gorm:"not null;default:'REGULAR'" json:"loyalty_tier"` // 手动指定的会员等级（REGULAR 表示走动态计算）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                        // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (Client) TableName() string {
	return "clients"
}

// DisplayName 返回客户展示名（姓名为空时回退手机号）
func (c *Client) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name != "" {
		return name
	}
	return c.Phone
}
