package pos

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	maxPageSize     = 100
	defaultPageSize = 20
)

// staffIDFromContext 从上下文取当前员工 ID（由认证中间件写入）
func staffIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("staff_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// roleFromContext 从上下文取当前员工角色
func roleFromContext(c *gin.Context) string {
	return c.GetString("role")
}

// normalizePagination 解析并规范分页参数
func normalizePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// parseUintParam 解析路径中的数字 ID
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
