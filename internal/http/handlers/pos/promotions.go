package pos

import (
	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/repository"
	"github.com/aurelion-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPromotions 促销列表
func (h *Handler) ListPromotions(c *gin.Context) {
	page, pageSize := normalizePagination(c)
	filter := repository.PromotionListFilter{
		Page:       page,
		PageSize:   pageSize,
		Type:       c.Query("type"),
		ActiveOnly: c.Query("active_only") == "true",
	}
	promotions, total, err := h.PromotionAdminService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithPage(c, promotions, total, page, pageSize)
}

// GetPromotion 促销详情
func (h *Handler) GetPromotion(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid promotion id")
		return
	}
	promotion, err := h.PromotionAdminService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, promotion)
}

// CreatePromotion 创建促销
func (h *Handler) CreatePromotion(c *gin.Context) {
	var input service.PromotionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid promotion payload")
		return
	}
	promotion, err := h.PromotionAdminService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, promotion)
}

// UpdatePromotion 更新促销
func (h *Handler) UpdatePromotion(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid promotion id")
		return
	}
	var input service.PromotionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid promotion payload")
		return
	}
	promotion, err := h.PromotionAdminService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, promotion)
}

// DeactivatePromotion 停用促销
func (h *Handler) DeactivatePromotion(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid promotion id")
		return
	}
	if err := h.PromotionAdminService.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "promotion deactivated", nil)
}
