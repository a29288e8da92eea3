package pos

import (
	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/repository"
	"github.com/aurelion-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// ListClients 客户列表
func (h *Handler) ListClients(c *gin.Context) {
	page, pageSize := normalizePagination(c)
	filter := repository.ClientListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}
	clients, total, err := h.ClientService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithPage(c, clients, total, page, pageSize)
}

// GetClientProfile 客户档案（含生效等级与消费统计）
func (h *Handler) GetClientProfile(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid client id")
		return
	}
	profile, err := h.ClientService.Profile(id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, profile)
}

// CreateClient 创建客户
func (h *Handler) CreateClient(c *gin.Context) {
	var input service.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid client payload")
		return
	}
	client, err := h.ClientService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, client)
}

// UpdateClient 更新客户
func (h *Handler) UpdateClient(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid client id")
		return
	}
	var input service.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid client payload")
		return
	}
	client, err := h.ClientService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, client)
}
