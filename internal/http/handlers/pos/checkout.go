package pos

import (
	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutPreview 结账试算：计算折扣与总额，不动库存
func (h *Handler) CheckoutPreview(c *gin.Context) {
	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid checkout payload")
		return
	}
	quote, err := h.CheckoutService.Preview(input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, quote)
}

// Checkout 结账落单
func (h *Handler) Checkout(c *gin.Context) {
	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid checkout payload")
		return
	}
	if staffID, ok := staffIDFromContext(c); ok {
		input.StaffID = &staffID
	}

	order, err := h.CheckoutService.Checkout(input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, order)
}

// Receipt 按订单号获取小票
func (h *Handler) Receipt(c *gin.Context) {
	orderRef := c.Param("ref")
	receipt, err := h.ReceiptService.ForOrder(c.Request.Context(), orderRef)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, receipt)
}
