package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem 订单明细表（下单时快照商品信息，不随商品变更）
type OrderItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`             // 主键
	OrderID      uint      `gorm:"not null;index" json:"order_id"`   // 订单ID
	VariantID    uint      `gorm:"not null;index" json:"variant_id"` // 规格ID
	SKU          string    `gorm:"not null;index" json:"sku"`        // SKU 快照
	ProductName  string    `gorm:"not null" json:"product_name"`     // 商品名快照
	Brand        string    `gorm:"default:''" json:"brand"`          // 品牌快照
	Category     string    `gorm:"default:''" json:"category"`       // 分类快照
	Color        string    `gorm:"default:''" json:"color"`          // 颜色快照
	Size         string    `gorm:"default:''" json:"size"`           // 尺码快照
	UnitPrice    Money     `gorm:"type:decimal(20,2);not null" json:"unit_price"`              // 成交单价
	Quantity     int       `gorm:"not null" json:"quantity"`                                   // 购买数量
	LineDiscount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"line_discount"` // 行级折扣
	QtyReturned  int       `gorm:"column:qty_returned;not null;default:0" json:"qty_returned"` // 已退数量
	CreatedAt    time.Time `json:"created_at"`                                                 // 创建时间

	Variant *Variant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // 关联规格
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal 返回行小计（单价 × 数量 − 行级折扣）
func (i *OrderItem) LineTotal() Money {
	gross := i.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(i.Quantity)))
	return NewMoneyFromDecimal(gross.Sub(i.LineDiscount.Decimal))
}

// QtyRemaining 返回仍可退的数量
func (i *OrderItem) QtyRemaining() int {
	remaining := i.Quantity - i.QtyReturned
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFullyReturned 判断该行是否已全部退回
func (i *OrderItem) IsFullyReturned() bool {
	return i.QtyReturned >= i.Quantity
}
