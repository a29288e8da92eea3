package pos

import (
	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/repository"
	"github.com/aurelion-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := normalizePagination(c)
	filter := repository.ProductListFilter{
		Page:            page,
		PageSize:        pageSize,
		Search:          c.Query("search"),
		Brand:           c.Query("brand"),
		Category:        c.Query("category"),
		IncludeArchived: c.Query("include_archived") == "true",
		WithVariants:    c.DefaultQuery("with_variants", "true") == "true",
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithPage(c, products, total, page, pageSize)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid product payload")
		return
	}
	product, err := h.ProductService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid product payload")
		return
	}
	product, err := h.ProductService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, product)
}

// ArchiveProduct 下架商品
func (h *Handler) ArchiveProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	if err := h.ProductService.Archive(id); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "product archived", nil)
}

// AddVariant 为商品新增规格
func (h *Handler) AddVariant(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	var input service.VariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid variant payload")
		return
	}
	variant, err := h.ProductService.AddVariant(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, variant)
}

// UpdateVariant 更新规格
func (h *Handler) UpdateVariant(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid variant id")
		return
	}
	var input service.VariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid variant payload")
		return
	}
	variant, err := h.ProductService.UpdateVariant(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, variant)
}

// LookupVariant 按 SKU 查询规格（扫码录单用）
func (h *Handler) LookupVariant(c *gin.Context) {
	variant, err := h.ProductService.LookupVariant(c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, variant)
}
