package constants

// 订单类型常量
const (
	OrderTypeSale     = "SALE"
	OrderTypeReturn   = "RETURN"
	OrderTypeExchange = "EXCHANGE"
)

// 订单状态常量
const (
	OrderStatusDraft             = "DRAFT"
	OrderStatusCancelled         = "CANCELLED"
	OrderStatusCompleted         = "COMPLETED"
	OrderStatusPartiallyReturned = "PARTIALLY_RETURNED"
	OrderStatusFullyReturned     = "FULLY_RETURNED"
	OrderStatusRefunded          = "REFUNDED"
	OrderStatusRefundPending     = "REFUND_PENDING"
)

// 促销类型常量
const (
	PromotionTypePercentage = "PERCENTAGE"
	PromotionTypeFixed      = "FIXED"
	PromotionTypeBOGO       = "BOGO"
	PromotionTypeTiered     = "TIERED"
	PromotionTypeBundle     = "BUNDLE"
)

// 促销适用范围常量
const (
	PromotionScopeAll      = "ALL"
	PromotionScopeCategory = "CATEGORY"
	PromotionScopeBrand    = "BRAND"
	PromotionScopeProducts = "PRODUCTS"
)

// 客户等级常量（从低到高）
const (
	TierRegular  = "REGULAR"
	TierSilver   = "SILVER"
	TierGold     = "GOLD"
	TierPlatinum = "PLATINUM"
)

// TierRestrictionAll 促销不限制客户等级
const TierRestrictionAll = "ALL"

// 退货原因常量
const (
	ReturnReasonChangedMind = "CHANGED_MIND"
	ReturnReasonDefective   = "DEFECTIVE"
	ReturnReasonWrongSize   = "WRONG_SIZE"
	ReturnReasonWrongItem   = "WRONG_ITEM"
	ReturnReasonOther       = "OTHER"
)

// 退货处理方式常量
const (
	ReturnActionRefund      = "REFUND"
	ReturnActionExchange    = "EXCHANGE"
	ReturnActionStoreCredit = "STORE_CREDIT"
)

// 员工角色常量
const (
	RoleOwner          = "OWNER"
	RoleCashier        = "CASHIER"
	RoleSalesAssociate = "SALES_ASSOCIATE"
)

// 订单编号字符集与长度
const (
	OrderCodeAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	OrderCodeLength     = 6
	OrderCodeMaxRetries = 32
)

// DefaultReturnWindowDays 默认退货窗口（天）
const DefaultReturnWindowDays = 10

// DefaultCurrency 默认币种
const DefaultCurrency = "USD"

// 队列与任务常量
const (
	QueueDefault       = "default"
	TaskLowStockAlert  = "inventory:low_stock_alert"
	TaskReceiptArchive = "order:receipt_archive"
)

// tierRanks 客户等级序（用于 >= 比较）
var tierRanks = map[string]int{
	TierRegular:  0,
	TierSilver:   1,
	TierGold:     2,
	TierPlatinum: 3,
}

// TierRank 返回客户等级序号，未知等级按 REGULAR 处理
func TierRank(tier string) int {
	if rank, ok := tierRanks[tier]; ok {
		return rank
	}
	return 0
}

// TierAtLeast 判断客户等级是否达到要求等级
func TierAtLeast(tier, required string) bool {
	return TierRank(tier) >= TierRank(required)
}

// roleRanks 员工角色序（用于最低角色判断）
var roleRanks = map[string]int{
	RoleSalesAssociate: 0,
	RoleCashier:        1,
	RoleOwner:          2,
}

// RoleRank 返回角色序号，未知角色按最低权限处理
func RoleRank(role string) int {
	if rank, ok := roleRanks[role]; ok {
		return rank
	}
	return 0
}

// RoleAtLeast 判断角色是否不低于要求角色
func RoleAtLeast(role, required string) bool {
	return RoleRank(role) >= RoleRank(required)
}

// ValidRole 判断员工角色是否合法
func ValidRole(role string) bool {
	_, ok := roleRanks[role]
	return ok
}

// ValidReturnReason 判断退货原因是否合法
func ValidReturnReason(reason string) bool {
	switch reason {
	case ReturnReasonChangedMind, ReturnReasonDefective, ReturnReasonWrongSize, ReturnReasonWrongItem, ReturnReasonOther:
		return true
	}
	return false
}

// ValidReturnAction 判断退货处理方式是否合法
func ValidReturnAction(action string) bool {
	switch action {
	case ReturnActionRefund, ReturnActionExchange, ReturnActionStoreCredit:
		return true
	}
	return false
}
