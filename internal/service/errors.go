package service

import (
	"errors"
	"fmt"
)

// 业务错误定义
var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials 登录凭证错误
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrStaffDisabled 员工已停用
	ErrStaffDisabled = errors.New("staff account disabled")
	// ErrInvalidPassword 原密码错误
	ErrInvalidPassword = errors.New("invalid password")
	// ErrWeakPassword 密码不满足策略
	ErrWeakPassword = errors.New("password does not meet policy")
	// ErrPermissionDenied 角色权限不足
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidRole 员工角色非法
	ErrInvalidRole = errors.New("invalid staff role")

	// ErrEmptyCart 购物车为空
	ErrEmptyCart = errors.New("checkout requires at least one item")
	// ErrUnknownSKU SKU 不存在
	ErrUnknownSKU = errors.New("unknown sku")
	// ErrInvalidQuantity 数量非法
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidUnitPrice 成交单价非法
	ErrInvalidUnitPrice = errors.New("unit price must not be negative")
	// ErrInvalidDiscount 手动折扣非法
	ErrInvalidDiscount = errors.New("manual discount must not be negative")
	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOrderCodeExhausted 订单号生成重试耗尽
	ErrOrderCodeExhausted = errors.New("order code generation exhausted")
	// ErrOrderCreateFailed 订单创建失败
	ErrOrderCreateFailed = errors.New("order create failed")

	// ErrPromotionInvalid 促销不可用
	ErrPromotionInvalid = errors.New("promotion not applicable")
	// ErrPromotionNotFound 促销码不存在
	ErrPromotionNotFound = errors.New("promotion code not found")
	// ErrPromotionExhausted 促销使用次数已满
	ErrPromotionExhausted = errors.New("promotion usage limit reached")

	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotReturnable 订单类型不允许退货
	ErrOrderNotReturnable = errors.New("order type not returnable")
	// ErrOrderFullyReturned 订单已全退
	ErrOrderFullyReturned = errors.New("order already fully returned")
	// ErrReturnWindowClosed 超出退货窗口
	ErrReturnWindowClosed = errors.New("return window closed")
	// ErrReturnNothing 没有可退明细
	ErrReturnNothing = errors.New("return requires at least one item")
	// ErrReturnExcessQuantity 退货数量超过可退数量
	ErrReturnExcessQuantity = errors.New("return quantity exceeds remaining")
	// ErrReturnItemMismatch 退货明细不属于该订单
	ErrReturnItemMismatch = errors.New("return item does not belong to order")
	// ErrReturnInvalidReason 退货原因非法
	ErrReturnInvalidReason = errors.New("invalid return reason")
	// ErrReturnInvalidAction 退货处理方式非法
	ErrReturnInvalidAction = errors.New("invalid return action")
	// ErrReturnCreateFailed 退货单创建失败
	ErrReturnCreateFailed = errors.New("return create failed")
)

// InsufficientStockError 库存不足明细错误（携带报错上下文，Is 命中 ErrInsufficientStock）
type InsufficientStockError struct {
	SKU         string
	ProductName string
	Variant     string
	Available   int
	Requested   int
}

// Error 实现 error 接口
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%s %s): available %d, requested %d",
		e.SKU, e.ProductName, e.Variant, e.Available, e.Requested)
}

// Unwrap 解包到哨兵错误
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ReturnItemError 退货明细校验错误（携带明细级原因）
type ReturnItemError struct {
	OrderItemID uint
	SKU         string
	Reason      string
	Err         error
}

// Error 实现 error 接口
func (e *ReturnItemError) Error() string {
	return fmt.Sprintf("return item %d (%s): %s", e.OrderItemID, e.SKU, e.Reason)
}

// Unwrap 解包到哨兵错误
func (e *ReturnItemError) Unwrap() error {
	return e.Err
}
