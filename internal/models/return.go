package models

import (
	"time"

	"gorm.io/gorm"
)

// Return 退换货单表
type Return struct {
	ID               uint           `gorm:"primarykey" json:"id"`                 // 主键
	Reference        string         `gorm:"uniqueIndex;not null;type:varchar(36)" json:"reference"` // 退货单号（UUID）
	OrderID          uint           `gorm:"not null;index" json:"order_id"`       // 原订单ID
	ExchangeOrderID  *uint          `gorm:"index" json:"exchange_order_id"`       // 换货新单ID（纯退货为空）
	StaffID          *uint          `gorm:"index" json:"staff_id"`                // 经办员工ID
	RefundAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"refund_amount"`      // 退款金额
	ReplacementValue Money          `gorm:"type:decimal(20,2);not null;default:0" json:"replacement_value"`  // 换货商品金额
	NetAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"net_amount"`         // 净差额（换货金额-退款金额）
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`     // 备注
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间

	Items         []ReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"`           // 退货明细
	Order         *Order       `gorm:"foreignKey:OrderID" json:"order,omitempty"`            // 原订单
	ExchangeOrder *Order       `gorm:"foreignKey:ExchangeOrderID" json:"exchange_order,omitempty"` // 换货新单
}

// TableName 指定表名
func (Return) TableName() string {
	return "returns"
}
