package pos

import (
	"strconv"
	"time"

	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := normalizePagination(c)
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		Code:     c.Query("code"),
	}
	if clientID, err := strconv.ParseUint(c.Query("client_id"), 10, 64); err == nil {
		filter.ClientID = uint(clientID)
	}
	if from, err := time.Parse(time.RFC3339, c.Query("created_from")); err == nil {
		filter.CreatedFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("created_to")); err == nil {
		filter.CreatedTo = &to
	}

	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, total, page, pageSize)
}

// GetOrder 按订单号或 ID 查询订单
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.OrderService.Get(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, order)
}
