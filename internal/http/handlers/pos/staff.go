package pos

import (
	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// ListStaff 员工列表
func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := h.StaffService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, staff)
}

// CreateStaff 创建员工账号
func (h *Handler) CreateStaff(c *gin.Context) {
	var input service.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid staff payload")
		return
	}
	staff, err := h.StaffService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, staff)
}

// UpdateStaff 更新员工资料
func (h *Handler) UpdateStaff(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid staff id")
		return
	}
	var input service.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid staff payload")
		return
	}
	staff, err := h.StaffService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, staff)
}

// ListLocations 门店/仓库列表
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.LocationRepo.List()
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, locations)
}

// CreateLocation 创建门店/仓库
func (h *Handler) CreateLocation(c *gin.Context) {
	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		response.BadRequest(c, "invalid location payload")
		return
	}
	if err := h.LocationRepo.Create(&location); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, location)
}
