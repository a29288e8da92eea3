package pos

import (
	"strconv"

	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/repository"
	"github.com/aurelion-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// ReturnLookup 按订单号查询可退明细与窗口状态
func (h *Handler) ReturnLookup(c *gin.Context) {
	orderRef := c.Query("order")
	if orderRef == "" {
		orderRef = c.Param("ref")
	}
	result, err := h.ReturnService.Lookup(orderRef)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// ReturnCheckout 退换货结账
func (h *Handler) ReturnCheckout(c *gin.Context) {
	var input service.ReturnCheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid return payload")
		return
	}
	if staffID, ok := staffIDFromContext(c); ok {
		input.StaffID = &staffID
	}

	ret, err := h.ReturnService.Checkout(input)
	if err != nil {
		respondError(c, err)
		return
	}

	// 原订单小票已失真，退货成功后失效缓存
	if order, err := h.OrderRepo.GetByID(ret.OrderID); err == nil && order != nil {
		h.ReceiptService.Invalidate(c.Request.Context(), order.Code)
	}

	response.Success(c, ret)
}

// ListReturns 退货单列表
func (h *Handler) ListReturns(c *gin.Context) {
	page, pageSize := normalizePagination(c)
	filter := repository.ReturnListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if orderID, err := strconv.ParseUint(c.Query("order_id"), 10, 64); err == nil {
		filter.OrderID = uint(orderID)
	}

	returns, total, err := h.ReturnRepo.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithPage(c, returns, total, page, pageSize)
}

// GetReturn 按编号或 ID 查询退货单
func (h *Handler) GetReturn(c *gin.Context) {
	ref := c.Param("ref")
	ret, err := h.ReturnRepo.GetByReference(ref)
	if err != nil {
		respondError(c, err)
		return
	}
	if ret == nil {
		if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
			ret, err = h.ReturnRepo.GetByID(uint(id))
			if err != nil {
				respondError(c, err)
				return
			}
		}
	}
	if ret == nil {
		response.NotFound(c, "return not found")
		return
	}
	response.Success(c, ret)
}
