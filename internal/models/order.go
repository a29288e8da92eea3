package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/aurelion-pos/internal/constants"
)

// Order 订单表（销售单与换货单共用，换货单通过 ParentOrderID 关联原单）
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                       // 主键
	Code           string         `gorm:"uniqueIndex;not null;type:varchar(12)" json:"code"` // 订单号（6 位 A-Z0-9）
	Type           string         `gorm:"not null;index;default:'SALE'" json:"type"`  // 类型（SALE/RETURN/EXCHANGE）
	Status         string         `gorm:"not null;index;default:'COMPLETED'" json:"status"` // 状态
	ClientID       *uint          `gorm:"index" json:"client_id"`                     // 客户ID（散客为空）
	StaffID        *uint          `gorm:"index" json:"staff_id"`                      // 收银员工ID
	LocationID     *uint          `gorm:"index" json:"location_id"`                   // 门店ID
	ParentOrderID  *uint          `gorm:"index" json:"parent_order_id"`               // 原订单ID（换货单用）
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 折前小计
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 折扣金额
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 应付金额
	Currency       string         `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`       // 币种
	PromotionID    *uint          `gorm:"index" json:"promotion_id"`                  // 命中的促销ID
	PromotionCode  string         `gorm:"default:''" json:"promotion_code,omitempty"` // 命中的促销码快照
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`           // 备注
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                 // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间

	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`        // 订单明细
	Client      *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`      // 客户
	Staff       *Staff      `gorm:"foreignKey:StaffID" json:"staff,omitempty"`        // 员工
	Promotion   *Promotion  `gorm:"foreignKey:PromotionID" json:"promotion,omitempty"` // 促销
	ParentOrder *Order      `gorm:"foreignKey:ParentOrderID" json:"-"`                // 原订单
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// IsReturnable 判断订单类型是否允许发起退货
func (o *Order) IsReturnable() bool {
	return o.Type != constants.OrderTypeReturn
}

// RemainingQuantity 返回订单上仍可退的商品总件数
func (o *Order) RemainingQuantity() int {
	total := 0
	for i := range o.Items {
		total += o.Items[i].QtyRemaining()
	}
	return total
}
