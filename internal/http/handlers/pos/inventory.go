package pos

import (
	"github.com/aurelion-pos/internal/http/response"

	"github.com/gin-gonic/gin"
)

type stockMovementRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// ReceiveStock 入库
func (h *Handler) ReceiveStock(c *gin.Context) {
	var req stockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "sku and positive quantity are required")
		return
	}
	variant, err := h.InventoryService.Receive(req.SKU, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, variant)
}

// DeductStock 手工出库（盘亏、调拨）
func (h *Handler) DeductStock(c *gin.Context) {
	var req stockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "sku and positive quantity are required")
		return
	}
	variant, err := h.InventoryService.Deduct(req.SKU, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, variant)
}

// LowStock 低库存列表
func (h *Handler) LowStock(c *gin.Context) {
	variants, err := h.InventoryService.LowStock()
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, variants)
}

// SweepLowStock 扫描低库存并投递告警任务
func (h *Handler) SweepLowStock(c *gin.Context) {
	count, err := h.InventoryService.SweepLowStock()
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"alerted": count})
}
