package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page            int
	PageSize        int
	Search          string
	Brand           string
	Category        string
	IncludeArchived bool
	WithVariants    bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	ClientID    uint
	Type        string
	Status      string
	Code        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ClientListFilter 查询客户列表的过滤条件
type ClientListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// PromotionListFilter 查询促销列表的过滤条件
type PromotionListFilter struct {
	Page       int
	PageSize   int
	Type       string
	ActiveOnly bool
}

// ReturnListFilter 查询退货单列表的过滤条件
type ReturnListFilter struct {
	Page        int
	PageSize    int
	OrderID     uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
