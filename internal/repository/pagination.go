package repository

import "gorm.io/gorm"

// maxPageSize 列表接口单页上限，防止终端误传超大分页拖垮查询
const maxPageSize = 200

// Pager 分页参数。PageSize 为 0 表示不分页（内部批量场景使用）。
type Pager struct {
	Page     int
	PageSize int
}

// Limit 返回规整后的单页条数
func (p Pager) Limit() int {
	if p.PageSize > maxPageSize {
		return maxPageSize
	}
	return p.PageSize
}

// Offset 返回规整后的偏移量
func (p Pager) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

// applyPagination 按 Pager 语义为查询追加分页
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil {
		return query
	}
	pager := Pager{Page: page, PageSize: pageSize}
	if pager.Limit() <= 0 {
		return query
	}
	return query.Limit(pager.Limit()).Offset(pager.Offset())
}
