package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnItem 退货明细表（一行对应原订单明细的一次退回）
type ReturnItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                  // 主键
	ReturnID    uint      `gorm:"not null;index" json:"return_id"`       // 退货单ID
	OrderItemID uint      `gorm:"not null;index" json:"order_item_id"`   // 原订单明细ID
	SKU         string    `gorm:"not null" json:"sku"`                   // SKU 快照
	Quantity    int       `gorm:"not null" json:"quantity"`              // 退回数量
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null" json:"unit_price"` // 原成交单价
	Reason      string    `gorm:"not null" json:"reason"`                // 退货原因
	Action      string    `gorm:"not null" json:"action"`                // 处置方式（REFUND/EXCHANGE/STORE_CREDIT）
	Restocked   bool      `gorm:"not null;default:true" json:"restocked"` // 是否已回库
	CreatedAt   time.Time `json:"created_at"`                            // 创建时间

	OrderItem *OrderItem `gorm:"foreignKey:OrderItemID" json:"order_item,omitempty"` // 原订单明细
}

// TableName 指定表名
func (ReturnItem) TableName() string {
	return "return_items"
}

// LineRefund 返回该行退款金额（单价 × 退回数量）
func (i *ReturnItem) LineRefund() Money {
	return NewMoneyFromDecimal(i.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(i.Quantity))))
}
